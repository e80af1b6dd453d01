package listings

import "time"

type Business struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	UserID      string    `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	Description *string   `gorm:"type:text"`
	Category    string    `gorm:"not null"`
	Location    *string   `gorm:"type:text"`
	Website     *string   `gorm:"type:text"`
	Phone       *string   `gorm:"type:varchar(32)"`
	ImageURL    *string   `gorm:"type:text"`
	Active      bool      `gorm:"column:is_active;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type WelcomeCard struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"not null"`
	Body      string    `gorm:"type:text;not null"`
	ImageURL  *string   `gorm:"type:text"`
	SortOrder int       `gorm:"not null;default:0"`
	Active    bool      `gorm:"column:is_active;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type BusinessInput struct {
	UserID      string
	Name        *string
	Description *string
	Category    *string
	Location    *string
	Website     *string
	Phone       *string
	ImageURL    *string
	Active      *bool
}

type WelcomeCardInput struct {
	Title     *string
	Body      *string
	ImageURL  *string
	SortOrder *int
	Active    *bool
}
