package discovery

import (
	"context"
	"sort"

	"family-connect-go/internal/domain/ids"
)

type Service struct {
	repo   Repository
	users  UserLookup
	blocks BlockLister
}

func NewService(repo Repository, users UserLookup, blocks BlockLister) *Service {
	return &Service{repo: repo, users: users, blocks: blocks}
}

// Discover lists the users visible to userID, nearest first. Self, admins and anyone in a
// block relation with userID in either direction never appear. Candidates without a
// computable distance go last.
func (s *Service) Discover(ctx context.Context, userID string) ([]Candidate, error) {
	userID, err := ids.Parse("userId", userID)
	if err != nil {
		return nil, err
	}

	requester, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	hidden, err := s.blocks.BlockedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	exclude := make([]string, 0, len(hidden)+1)
	exclude = append(exclude, userID)
	for id := range hidden {
		exclude = append(exclude, id)
	}

	users, err := s.repo.ListCandidates(ctx, exclude)
	if err != nil {
		return nil, err
	}

	candidateIDs := make([]string, 0, len(users))
	for _, u := range users {
		candidateIDs = append(candidateIDs, u.ID)
	}
	members, err := s.users.FamilyMembersByUser(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}

	result := make([]Candidate, 0, len(users))
	for i := range users {
		u := &users[i]
		// Same filter as the store query; these rows must never be returned.
		if u.ID == userID || u.IsAdmin() {
			continue
		}
		if _, ok := hidden[u.ID]; ok {
			continue
		}

		candidate := Candidate{
			User:          u.Public(),
			FamilyMembers: members[u.ID],
		}
		if requester.HasLocation() && u.HasLocation() {
			distance := DistanceKm(
				Point{Lat: *requester.Latitude, Lon: *requester.Longitude},
				Point{Lat: *u.Latitude, Lon: *u.Longitude},
			)
			candidate.DistanceKm = &distance
		}
		result = append(result, candidate)
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].DistanceKm, result[j].DistanceKm
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	return result, nil
}
