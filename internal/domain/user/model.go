package user

import (
	"time"

	"github.com/lib/pq"
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User is the stored account row. It carries the credential hash and must never be
// serialized directly; transport code works with PublicUser.
type User struct {
	ID           string         `gorm:"type:uuid;primaryKey"`
	Email        string         `gorm:"not null;uniqueIndex"`
	PasswordHash string         `gorm:"not null"`
	FamilyName   string         `gorm:"not null"`
	Bio          *string        `gorm:"type:text"`
	AvatarURL    *string        `gorm:"type:text"`
	Suburb       *string        `gorm:"type:text"`
	City         *string        `gorm:"type:text"`
	Latitude     *float64       `gorm:"type:double precision"`
	Longitude    *float64       `gorm:"type:double precision"`
	RadiusKm     int            `gorm:"column:radius_km;not null;default:10"`
	Interests    pq.StringArray `gorm:"type:text[]"`
	Role         string         `gorm:"type:varchar(16);not null;default:member"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

// PublicUser is the read-only projection of User without the credential field.
type PublicUser struct {
	ID         string
	Email      string
	FamilyName string
	Bio        *string
	AvatarURL  *string
	Suburb     *string
	City       *string
	Latitude   *float64
	Longitude  *float64
	RadiusKm   int
	Interests  []string
	Role       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (u *User) Public() PublicUser {
	interests := make([]string, len(u.Interests))
	copy(interests, u.Interests)
	return PublicUser{
		ID:         u.ID,
		Email:      u.Email,
		FamilyName: u.FamilyName,
		Bio:        u.Bio,
		AvatarURL:  u.AvatarURL,
		Suburb:     u.Suburb,
		City:       u.City,
		Latitude:   u.Latitude,
		Longitude:  u.Longitude,
		RadiusKm:   u.RadiusKm,
		Interests:  interests,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) HasLocation() bool {
	return u.Latitude != nil && u.Longitude != nil
}

type FamilyMember struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	Age       *int
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type UpdateProfileInput struct {
	UserID     string
	FamilyName *string
	Bio        *string
	AvatarURL  *string
	Suburb     *string
	City       *string
	Latitude   *float64
	Longitude  *float64
	RadiusKm   *int
	Interests  *[]string
}

type FamilyMemberInput struct {
	Name *string
	Age  *int
}
