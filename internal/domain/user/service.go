package user

import (
	"context"
	"strings"

	"family-connect-go/internal/domain/apperr"
	"family-connect-go/internal/domain/ids"
)

const (
	maxRadiusKm    = 500
	maxMemberAge   = 120
	maxInterests   = 30
	maxFamilyLabel = 120
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*PublicUser, error) {
	userID, err := ids.Parse("userId", userID)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	public := user.Public()
	return &public, nil
}

// GetUser returns the stored row; used by collaborators that need the role flag.
func (s *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	userID, err := ids.Parse("userId", userID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID)
}

// PublicUsers resolves ids to public views. Unknown ids are absent from the map.
func (s *Service) PublicUsers(ctx context.Context, userIDs []string) (map[string]PublicUser, error) {
	result := make(map[string]PublicUser, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	users, err := s.repo.ListByIDs(ctx, uniqueStrings(userIDs))
	if err != nil {
		return nil, err
	}
	for i := range users {
		result[users[i].ID] = users[i].Public()
	}
	return result, nil
}

func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*PublicUser, error) {
	userID, err := ids.Parse("userId", input.UserID)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FamilyName != nil {
		name := strings.TrimSpace(*input.FamilyName)
		if name == "" {
			return nil, apperr.Validation("familyName is required")
		}
		if len(name) > maxFamilyLabel {
			return nil, apperr.Validation("familyName is too long")
		}
		user.FamilyName = name
	}
	if input.Bio != nil {
		user.Bio = optionalText(*input.Bio)
	}
	if input.AvatarURL != nil {
		user.AvatarURL = optionalText(*input.AvatarURL)
	}
	if input.Suburb != nil {
		user.Suburb = optionalText(*input.Suburb)
	}
	if input.City != nil {
		user.City = optionalText(*input.City)
	}
	if input.Latitude != nil || input.Longitude != nil {
		if input.Latitude == nil || input.Longitude == nil {
			return nil, apperr.Validation("latitude and longitude must be set together")
		}
		if *input.Latitude < -90 || *input.Latitude > 90 {
			return nil, apperr.Validation("latitude must be between -90 and 90")
		}
		if *input.Longitude < -180 || *input.Longitude > 180 {
			return nil, apperr.Validation("longitude must be between -180 and 180")
		}
		lat, lon := *input.Latitude, *input.Longitude
		user.Latitude = &lat
		user.Longitude = &lon
	}
	if input.RadiusKm != nil {
		if *input.RadiusKm <= 0 || *input.RadiusKm > maxRadiusKm {
			return nil, apperr.Validation("radiusKm must be between 1 and %d", maxRadiusKm)
		}
		user.RadiusKm = *input.RadiusKm
	}
	if input.Interests != nil {
		interests := normalizeInterests(*input.Interests)
		if len(interests) > maxInterests {
			return nil, apperr.Validation("at most %d interests are allowed", maxInterests)
		}
		user.Interests = interests
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	public := user.Public()
	return &public, nil
}

func (s *Service) ListFamilyMembers(ctx context.Context, userID string) ([]FamilyMember, error) {
	userID, err := ids.Parse("userId", userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListFamilyMembers(ctx, []string{userID})
}

// FamilyMembersByUser groups members by owning user id.
func (s *Service) FamilyMembersByUser(ctx context.Context, userIDs []string) (map[string][]FamilyMember, error) {
	result := make(map[string][]FamilyMember, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	members, err := s.repo.ListFamilyMembers(ctx, uniqueStrings(userIDs))
	if err != nil {
		return nil, err
	}
	for _, member := range members {
		result[member.UserID] = append(result[member.UserID], member)
	}
	return result, nil
}

func (s *Service) AddFamilyMember(ctx context.Context, userID string, input FamilyMemberInput) (*FamilyMember, error) {
	userID, err := ids.Parse("userId", userID)
	if err != nil {
		return nil, err
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperr.Validation("name is required")
	}
	if err := validateAge(input.Age); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	member := FamilyMember{
		ID:     ids.New(),
		UserID: userID,
		Name:   strings.TrimSpace(*input.Name),
		Age:    input.Age,
	}
	if err := s.repo.CreateFamilyMember(ctx, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *Service) UpdateFamilyMember(ctx context.Context, memberID string, input FamilyMemberInput) (*FamilyMember, error) {
	memberID, err := ids.Parse("memberId", memberID)
	if err != nil {
		return nil, err
	}
	if input.Name == nil && input.Age == nil {
		return nil, apperr.Validation("no fields to update")
	}

	member, err := s.repo.GetFamilyMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperr.Validation("name is required")
		}
		member.Name = name
	}
	if input.Age != nil {
		if err := validateAge(input.Age); err != nil {
			return nil, err
		}
		member.Age = input.Age
	}

	if err := s.repo.UpdateFamilyMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *Service) RemoveFamilyMember(ctx context.Context, memberID string) error {
	memberID, err := ids.Parse("memberId", memberID)
	if err != nil {
		return err
	}

	deleted, err := s.repo.DeleteFamilyMember(ctx, memberID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrFamilyMemberNotFound
	}
	return nil
}

func validateAge(age *int) error {
	if age == nil {
		return nil
	}
	if *age < 0 || *age > maxMemberAge {
		return apperr.Validation("age must be between 0 and %d", maxMemberAge)
	}
	return nil
}

func optionalText(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func normalizeInterests(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		item := strings.TrimSpace(value)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, item)
	}
	return result
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}
