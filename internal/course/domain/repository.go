package domain

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Course, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Course, error)

	// IncrementStudents bumps the enrolled-students counter inside the
	// caller's transaction.
	IncrementStudents(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}
