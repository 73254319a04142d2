package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hamzazerouala/windevexpert/internal/token"
)

const (
	contextSubjectKey = "subject"
	contextRoleKey    = "role"
	contextTokenKey   = "bearer_token"
)

// AuthRequired checks the Authorization bearer token and stashes the
// verified subject, role and raw token on the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		claims, err := token.Verify(raw, s.cfg.JWTSecret)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextSubjectKey, claims.Subject())
		c.Set(contextRoleKey, claims.Role)
		c.Set(contextTokenKey, raw)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, rest, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(rest)
}
