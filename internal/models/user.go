package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string  `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Phone        *string `gorm:"size:20;index" json:"phone"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	Role         string  `gorm:"size:20;not null;default:'customer'" json:"role"`
	ProfileImage *string `gorm:"size:255" json:"profile_image,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
