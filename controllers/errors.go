package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/fidelity-club/fidelity-be/services"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error kind to its HTTP status and writes
// the JSON error body. Unexpected errors are logged and reported as 500
// without leaking internals.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCouponNotFound),
		errors.Is(err, services.ErrRedemptionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyRedeemed),
		errors.Is(err, services.ErrCouponInUse),
		errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrCouponInactive),
		errors.Is(err, services.ErrAlreadyUsed),
		errors.Is(err, services.ErrInsufficientPoints),
		errors.Is(err, services.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
	}
}
