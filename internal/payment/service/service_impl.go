package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authdomain "github.com/hamzazerouala/windevexpert/internal/auth/domain"
	coursedomain "github.com/hamzazerouala/windevexpert/internal/course/domain"
	enrollmentdomain "github.com/hamzazerouala/windevexpert/internal/enrollment/domain"
	"github.com/hamzazerouala/windevexpert/internal/observability/metrics"
	paymentdomain "github.com/hamzazerouala/windevexpert/internal/payment/domain"
	"github.com/hamzazerouala/windevexpert/internal/providers/email"
)

// eventEnvelope is the outer shape of a provider webhook body. Unknown
// fields are ignored so unrelated event types decode cleanly.
type eventEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object sessionObject `json:"object"`
	} `json:"data"`
}

type sessionObject struct {
	ID          string            `json:"id"`
	AmountTotal int64             `json:"amount_total"`
	Currency    string            `json:"currency"`
	Metadata    map[string]string `json:"metadata"`
}

type Params struct {
	fx.In

	Log         *zap.Logger
	DB          *gorm.DB
	GenID       *snowflake.Node
	Enrollments enrollmentdomain.Repository
	Courses     coursedomain.Repository
	Users       authdomain.Repository
	Email       email.Provider
}

// Service commits verified payment completion events. Redeliveries of an
// already-applied completion acknowledge without changing state.
type Service struct {
	log         *zap.Logger
	db          *gorm.DB
	genID       *snowflake.Node
	enrollments enrollmentdomain.Repository
	courses     coursedomain.Repository
	users       authdomain.Repository
	email       email.Provider
	metrics     *metrics.HTTPMetrics
}

func NewService(p Params, m *metrics.HTTPMetrics) paymentdomain.Service {
	return &Service{
		log:         p.Log.Named("payment.committer"),
		db:          p.DB,
		genID:       p.GenID,
		enrollments: p.Enrollments,
		courses:     p.Courses,
		users:       p.Users,
		email:       p.Email,
		metrics:     m,
	}
}

func (s *Service) Apply(ctx context.Context, rawBody []byte, verified bool) error {
	if !verified {
		// Never parse an unauthenticated body.
		s.metrics.RecordWebhookEvent("unknown", "unauthorized")
		return paymentdomain.ErrUnauthorized
	}

	var envelope eventEnvelope
	if err := json.Unmarshal(rawBody, &envelope); err != nil {
		s.metrics.RecordWebhookEvent("unknown", "malformed")
		return fmt.Errorf("%w: %v", paymentdomain.ErrInvalidPayload, err)
	}

	if envelope.Type != paymentdomain.EventTypeCheckoutCompleted {
		s.log.Debug("ignoring event",
			zap.String("event_id", envelope.ID),
			zap.String("event_type", envelope.Type),
		)
		s.metrics.RecordWebhookEvent(envelope.Type, "ignored")
		return nil
	}

	event, err := s.completionEvent(envelope.Data.Object)
	if err != nil {
		s.metrics.RecordWebhookEvent(envelope.Type, "invalid_metadata")
		return err
	}

	inserted, err := s.commit(ctx, event)
	if err != nil {
		s.metrics.RecordWebhookEvent(envelope.Type, "error")
		return err
	}

	if !inserted {
		s.log.Info("enrollment already committed",
			zap.String("session_id", event.SessionID),
			zap.String("user_id", event.UserID.String()),
			zap.String("course_id", event.CourseID.String()),
		)
		s.metrics.RecordWebhookEvent(envelope.Type, "duplicate")
		return nil
	}

	s.log.Info("enrollment committed",
		zap.String("session_id", event.SessionID),
		zap.String("user_id", event.UserID.String()),
		zap.String("course_id", event.CourseID.String()),
		zap.Int64("amount_cents", event.AmountCents),
	)
	s.metrics.RecordWebhookEvent(envelope.Type, "committed")
	s.metrics.RecordEnrollment()

	s.sendConfirmation(ctx, event)
	return nil
}

func (s *Service) completionEvent(obj sessionObject) (*paymentdomain.CompletionEvent, error) {
	userID, err := uuid.Parse(obj.Metadata["user_id"])
	if err != nil {
		return nil, fmt.Errorf("%w: user_id", paymentdomain.ErrInvalidMetadata)
	}
	courseID, err := uuid.Parse(obj.Metadata["course_id"])
	if err != nil {
		return nil, fmt.Errorf("%w: course_id", paymentdomain.ErrInvalidMetadata)
	}
	currency := obj.Currency
	if currency == "" {
		currency = "usd"
	}
	return &paymentdomain.CompletionEvent{
		SessionID:   obj.ID,
		AmountCents: obj.AmountTotal,
		Currency:    currency,
		UserID:      userID,
		CourseID:    courseID,
	}, nil
}

// commit inserts the enrollment and bumps the course counter in one
// transaction. The counter moves only when the insert affected a row, so
// redeliveries leave it untouched.
func (s *Service) commit(ctx context.Context, event *paymentdomain.CompletionEvent) (bool, error) {
	var inserted bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		inserted, err = s.enrollments.Insert(ctx, tx, &enrollmentdomain.Enrollment{
			ID:          s.genID.Generate(),
			UserID:      event.UserID,
			CourseID:    event.CourseID,
			SessionID:   event.SessionID,
			AmountCents: event.AmountCents,
			Currency:    event.Currency,
			CreatedAt:   time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		if !inserted {
			return nil
		}
		return s.courses.IncrementStudents(ctx, tx, event.CourseID)
	})
	if err != nil {
		return false, fmt.Errorf("commit enrollment: %w", err)
	}
	return inserted, nil
}

// sendConfirmation is best effort; a mail failure never fails the event.
func (s *Service) sendConfirmation(ctx context.Context, event *paymentdomain.CompletionEvent) {
	user, err := s.users.FindByID(ctx, event.UserID)
	if err != nil {
		s.log.Warn("confirmation skipped, user lookup failed",
			zap.String("user_id", event.UserID.String()),
			zap.Error(err),
		)
		return
	}

	title := "your course"
	if course, err := s.courses.FindByID(ctx, event.CourseID); err == nil {
		title = course.Title
	}

	data := map[string]interface{}{"course_title": title}
	if err := s.email.SendTemplate(ctx, []string{user.Email}, "enrollment_confirmed", data); err != nil {
		s.log.Warn("confirmation email failed",
			zap.String("user_id", event.UserID.String()),
			zap.Error(err),
		)
	}
}
