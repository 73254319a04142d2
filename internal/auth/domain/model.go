// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a platform account and its public profile.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;type:text;not null"`
	Role         string    `gorm:"type:text;not null;default:user"`

	FullName         *string `gorm:"column:full_name;type:text"`
	Bio              *string `gorm:"type:text"`
	AvatarURL        *string `gorm:"column:avatar_url;type:text"`
	JobTitle         *string `gorm:"column:job_title;type:text"`
	Company          *string `gorm:"type:text"`
	City             *string `gorm:"type:text"`
	Country          *string `gorm:"type:text"`
	LinkedinURL      *string `gorm:"column:linkedin_url;type:text"`
	WebsiteURL       *string `gorm:"column:website_url;type:text"`
	PcsoftExperience *string `gorm:"column:pcsoft_experience;type:text"`
	PhoneNumber      *string `gorm:"column:phone_number;type:text"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// RoleAdmin is issued to the out-of-band administrative identity.
const RoleAdmin = "admin"

// RoleUser is the default role for accounts from the user store.
const RoleUser = "user"
