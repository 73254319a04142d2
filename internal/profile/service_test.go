package profile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	authdomain "github.com/hamzazerouala/windevexpert/internal/auth/domain"
	authrepo "github.com/hamzazerouala/windevexpert/internal/auth/repository"
	"github.com/hamzazerouala/windevexpert/internal/profile"
	"github.com/hamzazerouala/windevexpert/pkg/db"
)

func str(s string) *string { return &s }

func newService(t *testing.T) (*profile.Service, authdomain.User) {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&authdomain.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	user := authdomain.User{
		ID:           uuid.New(),
		Email:        "dev@example.com",
		PasswordHash: "x",
		Role:         authdomain.RoleUser,
		FullName:     str("Old Name"),
		City:         str("Lyon"),
	}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return profile.NewService(zap.NewNop(), authrepo.New(conn)), user
}

func TestUpdateOnlyProvidedFields(t *testing.T) {
	svc, user := newService(t)

	updated, err := svc.Update(context.Background(), user.ID, profile.UpdateRequest{
		FullName: str("New Name"),
		JobTitle: str("WinDev Consultant"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.FullName == nil || *updated.FullName != "New Name" {
		t.Fatalf("full_name not updated: %v", updated.FullName)
	}
	if updated.JobTitle == nil || *updated.JobTitle != "WinDev Consultant" {
		t.Fatalf("job_title not updated: %v", updated.JobTitle)
	}
	if updated.City == nil || *updated.City != "Lyon" {
		t.Fatalf("city should be unchanged, got %v", updated.City)
	}
}

func TestUpdateEmptyRequestIsNoOp(t *testing.T) {
	svc, user := newService(t)

	updated, err := svc.Update(context.Background(), user.ID, profile.UpdateRequest{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FullName == nil || *updated.FullName != "Old Name" {
		t.Fatalf("expected unchanged profile, got %v", updated.FullName)
	}
}

func TestUpdateUnknownUser(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Update(context.Background(), uuid.New(), profile.UpdateRequest{FullName: str("X")})
	if !errors.Is(err, authdomain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
