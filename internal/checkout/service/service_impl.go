package service

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"

	checkoutdomain "github.com/hamzazerouala/windevexpert/internal/checkout/domain"
	"github.com/hamzazerouala/windevexpert/internal/config"
	coursedomain "github.com/hamzazerouala/windevexpert/internal/course/domain"
	"github.com/hamzazerouala/windevexpert/internal/observability/metrics"
	"github.com/hamzazerouala/windevexpert/internal/token"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Config  config.Config
	Courses coursedomain.Repository
}

// Service opens hosted checkout sessions. It holds no session state; the
// provider redirects back to the frontend and confirms via webhook.
type Service struct {
	log         *zap.Logger
	courses     coursedomain.Repository
	provider    *providerClient
	secret      string
	frontendURL string
	configured  bool
	metrics     *metrics.HTTPMetrics
}

func NewService(p Params, m *metrics.HTTPMetrics) checkoutdomain.Service {
	return newService(p, m)
}

func newService(p Params, m *metrics.HTTPMetrics) *Service {
	return &Service{
		log:         p.Log.Named("checkout"),
		courses:     p.Courses,
		provider:    newProviderClient(p.Config.StripeAPIKey, p.Config.StripeAPIBase),
		secret:      p.Config.JWTSecret,
		frontendURL: strings.TrimRight(p.Config.FrontendURL, "/"),
		configured:  p.Config.StripeAPIKey != "",
		metrics:     m,
	}
}

func (s *Service) Initiate(ctx context.Context, courseID uuid.UUID, bearerToken string) (*checkoutdomain.Session, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	claims, err := token.Verify(bearerToken, s.secret)
	if err != nil {
		return nil, checkoutdomain.ErrUnauthorized
	}

	if !s.configured {
		s.log.Error("checkout requested without provider credentials")
		return nil, checkoutdomain.ErrMisconfigured
	}

	sessionURL, err := s.provider.createSession(ctx, s.sessionForm(claims.Subject(), course))
	if err != nil {
		s.log.Error("open checkout session",
			zap.String("course_id", courseID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", checkoutdomain.ErrProviderFailure, err)
	}

	s.log.Info("checkout session opened",
		zap.String("user_id", claims.Subject()),
		zap.String("course_id", courseID.String()),
	)
	s.metrics.RecordCheckoutOpened()
	return &checkoutdomain.Session{URL: sessionURL}, nil
}

func (s *Service) sessionForm(userID string, course *coursedomain.Course) url.Values {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", s.frontendURL+"/payment/success?session_id={CHECKOUT_SESSION_ID}")
	form.Set("cancel_url", s.frontendURL+"/payment/cancel")
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", "usd")
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(amountCents(course.Price), 10))
	form.Set("line_items[0][price_data][product_data][name]", course.Title)
	form.Set("client_reference_id", userID)
	form.Set("metadata[user_id]", userID)
	form.Set("metadata[course_id]", course.ID.String())
	form.Set("expires_at", strconv.FormatInt(time.Now().Add(30*time.Minute).Unix(), 10))
	return form
}

// amountCents converts a display price to minor units. Negative prices
// clamp to zero.
func amountCents(price float64) int64 {
	if price < 0 {
		price = 0
	}
	return int64(math.Round(price * 100))
}
