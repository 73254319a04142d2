// Package domain contains core types for the course catalog.
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("course not found")

// Course is a catalog entry. Price is a decimal amount in major units;
// StudentsCount is the popularity counter incremented on enrollment.
type Course struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string    `gorm:"type:text;not null" json:"title"`
	Subtitle      *string   `gorm:"type:text" json:"subtitle"`
	Description   string    `gorm:"column:description_long;type:text" json:"description"`
	ThumbnailURL  *string   `gorm:"column:thumbnail_url;type:text" json:"thumbnail_url"`
	IntroVideoURL *string   `gorm:"column:intro_video_url;type:text" json:"intro_video_url"`
	Price         float64   `gorm:"type:numeric" json:"price"`
	Level         *string   `gorm:"type:text" json:"level"`
	// Versions holds the product versions the course applies to,
	// comma-separated (for example "WD25,WD26").
	Versions      string    `gorm:"column:compatibility_versions;type:text" json:"-"`
	RatingAverage float64   `gorm:"column:rating_average;not null;default:0" json:"rating_average"`
	RatingCount   int64     `gorm:"column:rating_count;not null;default:0" json:"rating_count"`
	StudentsCount int64     `gorm:"column:students_count;not null;default:0" json:"students_count"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Course) TableName() string { return "courses" }

// ListFilter narrows catalog listings.
type ListFilter struct {
	Version string
	Level   string
}
