package discovery

import "family-connect-go/internal/domain/user"

type Candidate struct {
	User          user.PublicUser
	FamilyMembers []user.FamilyMember
	// DistanceKm is nil when either side has no coordinates.
	DistanceKm *float64
}
