// Package domain contains the enrollment record created when a payment
// completion event is committed.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment links a user to a purchased course. Unique on
// (user_id, course_id): redelivered completion events insert nothing.
type Enrollment struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	UserID    uuid.UUID    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_enrollments_user_course"`
	CourseID  uuid.UUID    `gorm:"column:course_id;type:uuid;not null;uniqueIndex:idx_enrollments_user_course"`
	SessionID string       `gorm:"column:checkout_session_id;type:text;not null"`
	// AmountCents is the amount actually paid, in minor currency units.
	AmountCents int64     `gorm:"column:amount_cents;not null"`
	Currency    string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Enrollment) TableName() string { return "enrollments" }

// Repository takes the database handle per call so the committer can run
// Insert inside its own transaction.
type Repository interface {
	// Insert writes the enrollment unless one already exists for the
	// (user, course) pair. Returns whether a row was actually inserted.
	Insert(ctx context.Context, db *gorm.DB, enrollment *Enrollment) (bool, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]Enrollment, error)
	CountByCourse(ctx context.Context, db *gorm.DB, courseID uuid.UUID) (int64, error)
}
