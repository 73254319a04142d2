// Package domain contains the inbound payment event model. An event is
// untrusted until its signature is verified; only the checkout-completed
// variant is actionable.
package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrUnauthorized is returned when the event signature did not verify.
	ErrUnauthorized = errors.New("webhook unauthorized")
	// ErrInvalidPayload is returned for bodies that are not valid JSON.
	ErrInvalidPayload = errors.New("invalid webhook payload")
	// ErrInvalidMetadata is returned when the correlation metadata does not
	// carry well-formed user and course identifiers. Rejecting (rather than
	// dropping) keeps the provider's retry machinery informed.
	ErrInvalidMetadata = errors.New("invalid correlation metadata")
)

// EventTypeCheckoutCompleted is the only event type that commits state.
const EventTypeCheckoutCompleted = "checkout.session.completed"

// CompletionEvent is a verified, parsed checkout completion.
type CompletionEvent struct {
	SessionID   string
	AmountCents int64
	Currency    string
	UserID      uuid.UUID
	CourseID    uuid.UUID
}

// Service applies verified payment events exactly once.
type Service interface {
	// Apply parses rawBody and commits its effects. verified reports the
	// outcome of signature verification; when false the body is rejected
	// unparsed. Unrecognized event types are acknowledged as no-ops.
	Apply(ctx context.Context, rawBody []byte, verified bool) error
}
