package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hamzazerouala/windevexpert/internal/course/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) List(ctx context.Context, filter domain.ListFilter) ([]domain.Course, error) {
	query := r.db.WithContext(ctx).Model(&domain.Course{})

	if version := strings.TrimSpace(filter.Version); version != "" {
		query = query.Where("compatibility_versions LIKE ?", "%"+version+"%")
	}
	if level := strings.TrimSpace(filter.Level); level != "" {
		query = query.Where("level = ?", level)
	}

	var courses []domain.Course
	if err := query.Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *repo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *repo) IncrementStudents(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Model(&domain.Course{}).
		Where("id = ?", id).
		UpdateColumn("students_count", gorm.Expr("students_count + 1")).Error
}
