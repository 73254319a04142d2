package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authdomain "github.com/hamzazerouala/windevexpert/internal/auth/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) Login(c *gin.Context) {
	if !s.loginLimiter.Allow(c.Request.Context(), c.ClientIP()) {
		AbortWithError(c, ErrTooManyRequests)
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": result.Token})
}

func (s *Server) Me(c *gin.Context) {
	subject := c.GetString(contextSubjectKey)
	role := c.GetString(contextRoleKey)

	// The administrative identity lives outside the user store.
	if role == authdomain.RoleAdmin {
		c.JSON(http.StatusOK, gin.H{"id": subject, "role": role})
		return
	}

	user, err := s.authsvc.CurrentUser(c.Request.Context(), subject)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse(user))
}

func userResponse(user *authdomain.User) gin.H {
	return gin.H{
		"id":                user.ID,
		"email":             user.Email,
		"role":              user.Role,
		"full_name":         user.FullName,
		"bio":               user.Bio,
		"avatar_url":        user.AvatarURL,
		"job_title":         user.JobTitle,
		"company":           user.Company,
		"city":              user.City,
		"country":           user.Country,
		"linkedin_url":      user.LinkedinURL,
		"website_url":       user.WebsiteURL,
		"pcsoft_experience": user.PcsoftExperience,
		"phone_number":      user.PhoneNumber,
		"created_at":        user.CreatedAt,
	}
}
