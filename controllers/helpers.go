package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"scholar-monitor-api/services"

	"github.com/gin-gonic/gin"
)

func parseIntOrDefault(value string, def int) int {
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": "invalid id"})
		return 0, false
	}
	return uint(id64), true
}

// respondServiceError translates the service error taxonomy into HTTP status
// codes with a human-readable detail message.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrUpstream):
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": err.Error()})
}
