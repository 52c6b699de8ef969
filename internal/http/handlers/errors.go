package handlers

import (
	"errors"
	"net/http"

	"wallet_backend/internal/domain"
	"wallet_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors to HTTP statuses. Business-rule errors keep
// their message; storage failures are logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	var limitErr *domain.LimitExceededError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &limitErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": limitErr.Error()})
	case errors.Is(err, domain.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient wallet balance"})
	case errors.Is(err, domain.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": "referral is not pending"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		logger.Error("internal error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
