package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/macrotrack/backend/internal/middleware"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/service"
)

// currentUser reads the authenticated user or writes a 401.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}

// statusFor maps service errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmptyQuery), errors.Is(err, service.ErrUnknownPreset):
		return http.StatusBadRequest
	case errors.Is(err, nutrition.ErrRatioSumInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrLookupUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as JSON. Internal errors are logged and replaced
// by fallback; notFound overrides the message for missing records.
func respondError(c *gin.Context, err error, fallback, notFound string) {
	status := statusFor(err)
	switch status {
	case http.StatusInternalServerError:
		log.Printf("[API] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(status, gin.H{"error": fallback})
	case http.StatusNotFound:
		c.JSON(status, gin.H{"error": notFound})
	default:
		c.JSON(status, gin.H{"error": err.Error()})
	}
}

// bindError turns a binding failure into a 400 with the validator's message.
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}
