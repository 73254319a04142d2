package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hamzazerouala/windevexpert/internal/course/domain"
	"go.uber.org/zap"
)

type Service struct {
	log  *zap.Logger
	repo domain.Repository
}

func New(log *zap.Logger, repo domain.Repository) domain.Service {
	return &Service{
		log:  log.Named("course.service"),
		repo: repo,
	}
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]domain.Course, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	return s.repo.FindByID(ctx, id)
}
