package handlers

import (
	"errors"
	"net/http"

	"matchpoint-api/packages/core/apperrors"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy to HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusForbidden
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
