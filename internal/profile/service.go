// Package profile updates the public profile attached to a user account.
// Updates are partial; absent fields keep their stored value.
package profile

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"

	authdomain "github.com/hamzazerouala/windevexpert/internal/auth/domain"
)

// UpdateRequest carries the profile fields a client may change. Nil means
// "leave unchanged".
type UpdateRequest struct {
	FullName         *string `json:"full_name"`
	Bio              *string `json:"bio"`
	AvatarURL        *string `json:"avatar_url"`
	JobTitle         *string `json:"job_title"`
	Company          *string `json:"company"`
	City             *string `json:"city"`
	Country          *string `json:"country"`
	LinkedinURL      *string `json:"linkedin_url"`
	WebsiteURL       *string `json:"website_url"`
	PcsoftExperience *string `json:"pcsoft_experience"`
	PhoneNumber      *string `json:"phone_number"`
}

type Service struct {
	log   *zap.Logger
	users authdomain.Repository
}

func NewService(log *zap.Logger, users authdomain.Repository) *Service {
	return &Service{log: log.Named("profile"), users: users}
}

// Update applies the non-nil fields of req and returns the fresh record.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, req UpdateRequest) (*authdomain.User, error) {
	fields := map[string]any{}
	set := func(column string, value *string) {
		if value != nil {
			fields[column] = *value
		}
	}
	set("full_name", req.FullName)
	set("bio", req.Bio)
	set("avatar_url", req.AvatarURL)
	set("job_title", req.JobTitle)
	set("company", req.Company)
	set("city", req.City)
	set("country", req.Country)
	set("linkedin_url", req.LinkedinURL)
	set("website_url", req.WebsiteURL)
	set("pcsoft_experience", req.PcsoftExperience)
	set("phone_number", req.PhoneNumber)

	if len(fields) > 0 {
		if err := s.users.UpdateFields(ctx, userID, fields); err != nil {
			return nil, err
		}
		s.log.Info("profile updated",
			zap.String("user_id", userID.String()),
			zap.Int("fields", len(fields)),
		)
	}
	return s.users.FindByID(ctx, userID)
}

var Module = fx.Module("profile.service",
	fx.Provide(NewService),
)
