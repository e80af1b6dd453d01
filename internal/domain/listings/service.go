package listings

import (
	"context"
	"net/url"
	"strings"

	"family-connect-go/internal/domain/apperr"
	"family-connect-go/internal/domain/ids"
	"family-connect-go/internal/domain/user"
)

type Service struct {
	repo  Repository
	users UserDirectory
}

func NewService(repo Repository, users UserDirectory) *Service {
	return &Service{repo: repo, users: users}
}

func (s *Service) CreateBusiness(ctx context.Context, input BusinessInput) (*Business, error) {
	ownerID, err := ids.Parse("userId", input.UserID)
	if err != nil {
		return nil, err
	}
	name := trimmed(input.Name)
	category := trimmed(input.Category)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if category == "" {
		return nil, apperr.Validation("category is required")
	}
	website, err := websiteOf(input.Website)
	if err != nil {
		return nil, err
	}

	profiles, err := s.users.PublicUsers(ctx, []string{ownerID})
	if err != nil {
		return nil, err
	}
	if _, ok := profiles[ownerID]; !ok {
		return nil, user.ErrUserNotFound
	}

	business := Business{
		ID:          ids.New(),
		UserID:      ownerID,
		Name:        name,
		Description: optional(input.Description),
		Category:    category,
		Location:    optional(input.Location),
		Website:     website,
		Phone:       optional(input.Phone),
		ImageURL:    optional(input.ImageURL),
		Active:      true,
	}
	if input.Active != nil {
		business.Active = *input.Active
	}
	if err := s.repo.CreateBusiness(ctx, &business); err != nil {
		return nil, err
	}
	return &business, nil
}

func (s *Service) GetBusiness(ctx context.Context, businessID string) (*Business, error) {
	businessID, err := ids.Parse("businessId", businessID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetBusiness(ctx, businessID)
}

func (s *Service) ListBusinesses(ctx context.Context, category string) ([]Business, error) {
	return s.repo.ListActiveBusinesses(ctx, strings.TrimSpace(category))
}

// ListBusinessesByOwner includes inactive listings.
func (s *Service) ListBusinessesByOwner(ctx context.Context, userID string) ([]Business, error) {
	userID, err := ids.Parse("userId", userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListBusinessesByOwner(ctx, userID)
}

func (s *Service) UpdateBusiness(ctx context.Context, businessID string, input BusinessInput) (*Business, error) {
	business, err := s.ownedBusiness(ctx, businessID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if business.Name = trimmed(input.Name); business.Name == "" {
			return nil, apperr.Validation("name is required")
		}
	}
	if input.Category != nil {
		if business.Category = trimmed(input.Category); business.Category == "" {
			return nil, apperr.Validation("category is required")
		}
	}
	if input.Website != nil {
		website, err := websiteOf(input.Website)
		if err != nil {
			return nil, err
		}
		business.Website = website
	}
	if input.Description != nil {
		business.Description = optional(input.Description)
	}
	if input.Location != nil {
		business.Location = optional(input.Location)
	}
	if input.Phone != nil {
		business.Phone = optional(input.Phone)
	}
	if input.ImageURL != nil {
		business.ImageURL = optional(input.ImageURL)
	}
	if input.Active != nil {
		business.Active = *input.Active
	}

	if err := s.repo.UpdateBusiness(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

func (s *Service) DeleteBusiness(ctx context.Context, businessID, userID string) error {
	business, err := s.ownedBusiness(ctx, businessID, userID)
	if err != nil {
		return err
	}
	deleted, err := s.repo.DeleteBusiness(ctx, business.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBusinessNotFound
	}
	return nil
}

func (s *Service) ListWelcomeCards(ctx context.Context, includeInactive bool) ([]WelcomeCard, error) {
	return s.repo.ListWelcomeCards(ctx, !includeInactive)
}

func (s *Service) CreateWelcomeCard(ctx context.Context, input WelcomeCardInput) (*WelcomeCard, error) {
	title := trimmed(input.Title)
	body := trimmed(input.Body)
	if title == "" {
		return nil, apperr.Validation("title is required")
	}
	if body == "" {
		return nil, apperr.Validation("body is required")
	}

	card := WelcomeCard{
		ID:       ids.New(),
		Title:    title,
		Body:     body,
		ImageURL: optional(input.ImageURL),
		Active:   true,
	}
	if input.SortOrder != nil {
		card.SortOrder = *input.SortOrder
	}
	if input.Active != nil {
		card.Active = *input.Active
	}
	if err := s.repo.CreateWelcomeCard(ctx, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *Service) UpdateWelcomeCard(ctx context.Context, cardID string, input WelcomeCardInput) (*WelcomeCard, error) {
	cardID, err := ids.Parse("cardId", cardID)
	if err != nil {
		return nil, err
	}
	card, err := s.repo.GetWelcomeCard(ctx, cardID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if card.Title = trimmed(input.Title); card.Title == "" {
			return nil, apperr.Validation("title is required")
		}
	}
	if input.Body != nil {
		if card.Body = trimmed(input.Body); card.Body == "" {
			return nil, apperr.Validation("body is required")
		}
	}
	if input.ImageURL != nil {
		card.ImageURL = optional(input.ImageURL)
	}
	if input.SortOrder != nil {
		card.SortOrder = *input.SortOrder
	}
	if input.Active != nil {
		card.Active = *input.Active
	}

	if err := s.repo.UpdateWelcomeCard(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *Service) DeleteWelcomeCard(ctx context.Context, cardID string) error {
	cardID, err := ids.Parse("cardId", cardID)
	if err != nil {
		return err
	}
	deleted, err := s.repo.DeleteWelcomeCard(ctx, cardID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrWelcomeCardNotFound
	}
	return nil
}

func (s *Service) ownedBusiness(ctx context.Context, businessID, userID string) (*Business, error) {
	businessID, err := ids.Parse("businessId", businessID)
	if err != nil {
		return nil, err
	}
	userID, err = ids.Parse("userId", userID)
	if err != nil {
		return nil, err
	}
	business, err := s.repo.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business.UserID != userID {
		return nil, ErrNotOwner
	}
	return business, nil
}

func websiteOf(value *string) (*string, error) {
	website := optional(value)
	if website == nil {
		return nil, nil
	}
	parsed, err := url.Parse(*website)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, apperr.Validation("website must be an http(s) URL")
	}
	return website, nil
}

func trimmed(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func optional(value *string) *string {
	v := trimmed(value)
	if v == "" {
		return nil
	}
	return &v
}
