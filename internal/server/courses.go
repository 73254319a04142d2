package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	coursedomain "github.com/hamzazerouala/windevexpert/internal/course/domain"
)

func (s *Server) ListCourses(c *gin.Context) {
	courses, err := s.coursesvc.List(c.Request.Context(), coursedomain.ListFilter{
		Version: c.Query("version"),
		Level:   c.Query("level"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (s *Server) GetCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	course, err := s.coursesvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// PurchaseCourse opens a hosted checkout session and returns its URL. The
// enrollment itself is committed by the webhook once payment completes.
func (s *Server) PurchaseCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	session, err := s.checkoutsvc.Initiate(c.Request.Context(), id, c.GetString(contextTokenKey))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stripe_session_url": session.URL})
}

func (s *Server) ListMyEnrollments(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString(contextSubjectKey))
	if err != nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	enrollments, err := s.enrollments.ListByUser(c.Request.Context(), s.db, userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enrollments": enrollments})
}
