// Package seed provisions demo data for non-production environments so the
// catalog and login flow work immediately after first boot.
package seed

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authdomain "github.com/hamzazerouala/windevexpert/internal/auth/domain"
	"github.com/hamzazerouala/windevexpert/internal/auth/password"
	coursedomain "github.com/hamzazerouala/windevexpert/internal/course/domain"
	enrollmentdomain "github.com/hamzazerouala/windevexpert/internal/enrollment/domain"
)

// Models lists every persisted model, in dependency order.
func Models() []any {
	return []any{
		&authdomain.User{},
		&coursedomain.Course{},
		&enrollmentdomain.Enrollment{},
	}
}

const (
	demoUserEmail    = "demo@windevexpert.dev"
	demoUserPassword = "demo-password-1234"
)

func str(s string) *string { return &s }

func demoCourses() []coursedomain.Course {
	return []coursedomain.Course{
		{
			ID:       uuid.MustParse("0c2b5f1e-8f57-4a14-9a4e-2f3d6b1a7c01"),
			Title:    "WLanguage Foundations",
			Subtitle: str("From zero to your first WinDev window"),
			Description: "Variables, procedures, classes and the runtime model of WLanguage, " +
				"taught through a small inventory application.",
			Price:    19.99,
			Level:    str("beginner"),
			Versions: "2024,2025",
		},
		{
			ID:       uuid.MustParse("5e9d3a77-42c6-4f02-b5d9-8a1f0c6e2b02"),
			Title:    "HFSQL in Practice",
			Subtitle: str("Schema design, replication and query tuning"),
			Description: "A working tour of HFSQL Classic and Client/Server, including " +
				"indexes, transactions and live backup.",
			Price:    49.90,
			Level:    str("intermediate"),
			Versions: "2023,2024,2025",
		},
		{
			ID:       uuid.MustParse("a41c8d20-6b3e-49d5-8c77-1e5f9b4d3c03"),
			Title:    "WebDev REST APIs",
			Subtitle: str("Building and securing webservices"),
			Description: "REST endpoint design with WebDev, token authentication and " +
				"deployment behind a reverse proxy.",
			Price:    59.00,
			Level:    str("advanced"),
			Versions: "2025",
		},
	}
}

// EnsureDemoData inserts the demo catalog and a demo account. Existing rows
// are left untouched, so repeated boots are safe.
func EnsureDemoData(conn *gorm.DB, log *zap.Logger) error {
	for _, course := range demoCourses() {
		var existing coursedomain.Course
		err := conn.Where("id = ?", course.ID).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check demo course: %w", err)
		}
		if err := conn.Create(&course).Error; err != nil {
			return fmt.Errorf("seed demo course %q: %w", course.Title, err)
		}
		log.Info("seeded demo course", zap.String("title", course.Title))
	}

	var existing authdomain.User
	err := conn.Where("email = ?", demoUserEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check demo user: %w", err)
	}

	hash, err := password.Hash(demoUserPassword)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}
	user := authdomain.User{
		ID:           uuid.New(),
		Email:        demoUserEmail,
		PasswordHash: hash,
		Role:         authdomain.RoleUser,
		FullName:     str("Demo Student"),
	}
	if err := conn.Create(&user).Error; err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	log.Info("seeded demo user", zap.String("email", demoUserEmail))
	return nil
}
