package domain

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	List(ctx context.Context, filter ListFilter) ([]Course, error)
	Get(ctx context.Context, id uuid.UUID) (*Course, error)
}
