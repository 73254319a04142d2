// Package domain contains the hosted checkout model. Initiating a
// checkout opens a session with the payment provider; the enrollment
// itself is committed later by the webhook path.
package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrUnauthorized is returned when the bearer token does not verify.
	ErrUnauthorized = errors.New("checkout unauthorized")
	// ErrMisconfigured is returned when the provider credentials are absent.
	ErrMisconfigured = errors.New("payment provider not configured")
	// ErrProviderFailure is returned when the provider rejects the session.
	ErrProviderFailure = errors.New("payment provider failure")
)

// Session is a hosted checkout session opened with the provider.
type Session struct {
	URL string `json:"url"`
}

// Service opens hosted checkout sessions for course purchases.
type Service interface {
	// Initiate verifies the bearer token, prices the course and opens a
	// provider session carrying the (user, course) correlation metadata.
	Initiate(ctx context.Context, courseID uuid.UUID, bearerToken string) (*Session, error)
}
