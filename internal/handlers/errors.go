package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wahu-store/internal/services"
)

// respondError maps service sentinel errors to HTTP statuses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrBelowMinimum),
		errors.Is(err, services.ErrPaymentMethodMissing),
		errors.Is(err, services.ErrReturnAlreadyOpen),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrInvalidOTP):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotActivated):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
