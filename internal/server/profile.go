package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hamzazerouala/windevexpert/internal/profile"
)

func (s *Server) UpdateProfile(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString(contextSubjectKey))
	if err != nil {
		// Admin bypass identities have no stored profile.
		AbortWithError(c, ErrNotFound)
		return
	}

	var req profile.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if _, err := s.profilesvc.Update(c.Request.Context(), userID, req); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
