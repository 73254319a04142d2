package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody bounds inbound event payloads.
const maxWebhookBody = 1 << 20

// HandleStripeWebhook verifies the event signature over the raw body and
// hands the event to the committer. Redelivered events are acknowledged
// without rework.
func (s *Server) HandleStripeWebhook(c *gin.Context) {
	if !s.verifier.Configured() {
		s.log.Error("webhook secret not configured")
		AbortWithError(c, ErrInternal)
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	header := c.GetHeader("Stripe-Signature")
	if header == "" {
		header = c.GetHeader("X-Signature")
	}
	verified := s.verifier.Verify(header, payload)

	if err := s.paymentsvc.Apply(c.Request.Context(), payload, verified); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
