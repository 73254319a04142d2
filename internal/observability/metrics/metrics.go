package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// HTTPMetrics tracks request counts and latencies per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	webhookEvents   *prometheus.CounterVec
	checkoutOpened  prometheus.Counter
	enrollmentsDone prometheus.Counter
}

// New registers the application metrics on the default registry.
func New() *HTTPMetrics {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		webhookEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_webhook_events_total",
				Help: "Payment webhook events by type and outcome",
			},
			[]string{"event_type", "outcome"},
		),
		checkoutOpened: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "checkout_sessions_opened_total",
				Help: "Hosted checkout sessions opened with the payment provider",
			},
		),
		enrollmentsDone: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "enrollments_committed_total",
				Help: "Enrollments committed from payment completion events",
			},
		),
	}

	prometheus.MustRegister(
		m.requests,
		m.duration,
		m.webhookEvents,
		m.checkoutOpened,
		m.enrollmentsDone,
	)
	return m
}

// RecordWebhookEvent counts an inbound payment event and its outcome.
func (m *HTTPMetrics) RecordWebhookEvent(eventType, outcome string) {
	if m == nil {
		return
	}
	if strings.TrimSpace(eventType) == "" {
		eventType = "unknown"
	}
	m.webhookEvents.WithLabelValues(eventType, outcome).Inc()
}

// RecordCheckoutOpened counts a successfully opened checkout session.
func (m *HTTPMetrics) RecordCheckoutOpened() {
	if m == nil {
		return
	}
	m.checkoutOpened.Inc()
}

// RecordEnrollment counts a committed enrollment.
func (m *HTTPMetrics) RecordEnrollment() {
	if m == nil {
		return
	}
	m.enrollmentsDone.Inc()
}

// GinMiddleware records per-request metrics.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Module provides the application metrics.
var Module = fx.Module("observability.metrics",
	fx.Provide(New),
)
