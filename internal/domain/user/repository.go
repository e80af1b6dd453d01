package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListByIDs(ctx context.Context, ids []string) ([]User, error)
	Create(ctx context.Context, user *User) error
	UpdateProfile(ctx context.Context, user *User) error
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
	ListFamilyMembers(ctx context.Context, userIDs []string) ([]FamilyMember, error)
	GetFamilyMember(ctx context.Context, id string) (*FamilyMember, error)
	CreateFamilyMember(ctx context.Context, member *FamilyMember) error
	UpdateFamilyMember(ctx context.Context, member *FamilyMember) error
	DeleteFamilyMember(ctx context.Context, id string) (bool, error)
}
