package listings

import (
	"context"
	"errors"
	"sort"
	"testing"

	"family-connect-go/internal/domain/apperr"
	"family-connect-go/internal/domain/user"
)

const (
	ownerID = "00000000-0000-4000-8000-00000000000a"
	otherID = "00000000-0000-4000-8000-00000000000b"
	ghostID = "00000000-0000-4000-8000-0000000000ff"
)

type fakeListingsRepo struct {
	businesses map[string]*Business
	cards      map[string]*WelcomeCard
}

func newFakeListingsRepo() *fakeListingsRepo {
	return &fakeListingsRepo{businesses: make(map[string]*Business), cards: make(map[string]*WelcomeCard)}
}

func (r *fakeListingsRepo) CreateBusiness(ctx context.Context, business *Business) error {
	copied := *business
	r.businesses[business.ID] = &copied
	return nil
}

func (r *fakeListingsRepo) GetBusiness(ctx context.Context, id string) (*Business, error) {
	business, ok := r.businesses[id]
	if !ok {
		return nil, ErrBusinessNotFound
	}
	copied := *business
	return &copied, nil
}

func (r *fakeListingsRepo) ListActiveBusinesses(ctx context.Context, category string) ([]Business, error) {
	result := make([]Business, 0)
	for _, business := range r.businesses {
		if business.Active && (category == "" || business.Category == category) {
			result = append(result, *business)
		}
	}
	return result, nil
}

func (r *fakeListingsRepo) ListBusinessesByOwner(ctx context.Context, userID string) ([]Business, error) {
	result := make([]Business, 0)
	for _, business := range r.businesses {
		if business.UserID == userID {
			result = append(result, *business)
		}
	}
	return result, nil
}

func (r *fakeListingsRepo) UpdateBusiness(ctx context.Context, business *Business) error {
	copied := *business
	r.businesses[business.ID] = &copied
	return nil
}

func (r *fakeListingsRepo) DeleteBusiness(ctx context.Context, id string) (bool, error) {
	if _, ok := r.businesses[id]; !ok {
		return false, nil
	}
	delete(r.businesses, id)
	return true, nil
}

func (r *fakeListingsRepo) CreateWelcomeCard(ctx context.Context, card *WelcomeCard) error {
	copied := *card
	r.cards[card.ID] = &copied
	return nil
}

func (r *fakeListingsRepo) GetWelcomeCard(ctx context.Context, id string) (*WelcomeCard, error) {
	card, ok := r.cards[id]
	if !ok {
		return nil, ErrWelcomeCardNotFound
	}
	copied := *card
	return &copied, nil
}

func (r *fakeListingsRepo) ListWelcomeCards(ctx context.Context, activeOnly bool) ([]WelcomeCard, error) {
	result := make([]WelcomeCard, 0)
	for _, card := range r.cards {
		if !activeOnly || card.Active {
			result = append(result, *card)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })
	return result, nil
}

func (r *fakeListingsRepo) UpdateWelcomeCard(ctx context.Context, card *WelcomeCard) error {
	copied := *card
	r.cards[card.ID] = &copied
	return nil
}

func (r *fakeListingsRepo) DeleteWelcomeCard(ctx context.Context, id string) (bool, error) {
	if _, ok := r.cards[id]; !ok {
		return false, nil
	}
	delete(r.cards, id)
	return true, nil
}

type fakeDirectory map[string]user.PublicUser

func (d fakeDirectory) PublicUsers(ctx context.Context, ids []string) (map[string]user.PublicUser, error) {
	result := make(map[string]user.PublicUser)
	for _, id := range ids {
		if profile, ok := d[id]; ok {
			result[id] = profile
		}
	}
	return result, nil
}

func newListingsService(repo Repository) *Service {
	return NewService(repo, fakeDirectory{ownerID: {ID: ownerID}, otherID: {ID: otherID}})
}

func str(v string) *string { return &v }
func flag(v bool) *bool    { return &v }
func num(v int) *int       { return &v }

func TestCreateBusinessValidation(t *testing.T) {
	svc := newListingsService(newFakeListingsRepo())
	ctx := context.Background()

	cases := map[string]BusinessInput{
		"missing name":     {UserID: ownerID, Category: str("food")},
		"missing category": {UserID: ownerID, Name: str("Cafe")},
		"bad website":      {UserID: ownerID, Name: str("Cafe"), Category: str("food"), Website: str("ftp://cafe")},
	}
	for name, input := range cases {
		if _, err := svc.CreateBusiness(ctx, input); !errors.Is(err, apperr.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}

	_, err := svc.CreateBusiness(ctx, BusinessInput{UserID: ghostID, Name: str("Cafe"), Category: str("food")})
	if !errors.Is(err, user.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestBusinessLifecycle(t *testing.T) {
	repo := newFakeListingsRepo()
	svc := newListingsService(repo)
	ctx := context.Background()

	business, err := svc.CreateBusiness(ctx, BusinessInput{
		UserID:   ownerID,
		Name:     str(" Corner Cafe "),
		Category: str("food"),
		Website:  str("https://cafe.example.com"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if business.Name != "Corner Cafe" || !business.Active {
		t.Fatalf("unexpected business %+v", business)
	}

	if _, err := svc.UpdateBusiness(ctx, business.ID, BusinessInput{UserID: otherID, Name: str("Mine")}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	updated, err := svc.UpdateBusiness(ctx, business.ID, BusinessInput{UserID: ownerID, Active: flag(false), Phone: str("021 000")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Active || updated.Phone == nil || updated.Name != "Corner Cafe" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	active, _ := svc.ListBusinesses(ctx, "")
	if len(active) != 0 {
		t.Fatalf("inactive business should be hidden, got %d", len(active))
	}
	owned, _ := svc.ListBusinessesByOwner(ctx, ownerID)
	if len(owned) != 1 {
		t.Fatalf("owner should still see the business, got %d", len(owned))
	}

	if err := svc.DeleteBusiness(ctx, business.ID, otherID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := svc.DeleteBusiness(ctx, business.ID, ownerID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetBusiness(ctx, business.ID); !errors.Is(err, ErrBusinessNotFound) {
		t.Fatalf("expected ErrBusinessNotFound, got %v", err)
	}
}

func TestWelcomeCardsOrderedAndFiltered(t *testing.T) {
	svc := newListingsService(newFakeListingsRepo())
	ctx := context.Background()

	second, err := svc.CreateWelcomeCard(ctx, WelcomeCardInput{Title: str("Meet"), Body: str("Say hi"), SortOrder: num(2)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateWelcomeCard(ctx, WelcomeCardInput{Title: str("Welcome"), Body: str("Hello"), SortOrder: num(1)}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateWelcomeCard(ctx, WelcomeCardInput{Title: str("Old"), Body: str("Gone"), Active: flag(false)}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateWelcomeCard(ctx, WelcomeCardInput{Title: str(" ")}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	cards, _ := svc.ListWelcomeCards(ctx, false)
	if len(cards) != 2 || cards[0].Title != "Welcome" || cards[1].Title != "Meet" {
		t.Fatalf("unexpected cards %+v", cards)
	}
	all, _ := svc.ListWelcomeCards(ctx, true)
	if len(all) != 3 {
		t.Fatalf("expected 3 cards including inactive, got %d", len(all))
	}

	updated, err := svc.UpdateWelcomeCard(ctx, second.ID, WelcomeCardInput{SortOrder: num(0)})
	if err != nil || updated.SortOrder != 0 {
		t.Fatalf("update: %+v %v", updated, err)
	}
	if err := svc.DeleteWelcomeCard(ctx, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteWelcomeCard(ctx, second.ID); !errors.Is(err, ErrWelcomeCardNotFound) {
		t.Fatalf("expected ErrWelcomeCardNotFound, got %v", err)
	}
}
