package handlers

import (
	"net/http"

	"quiz-api/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy to transport status codes.
func respondError(c *gin.Context, err error) {
	switch service.KindOf(err) {
	case service.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case service.KindInvalidState, service.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
