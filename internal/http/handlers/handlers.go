package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/urbanfix/backend/internal/auth"
	"github.com/urbanfix/backend/internal/db"
	"github.com/urbanfix/backend/internal/geocode"
	"github.com/urbanfix/backend/internal/models"
	"github.com/urbanfix/backend/internal/service"
)

type Handler struct {
	Store     *db.Store
	Geocoder  geocode.Geocoder
	Tokens    *auth.Manager
	Rules     []models.DepartmentRule
	Validator *validator.Validate
	Logger    zerolog.Logger
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// writeEngineError maps the routing engine's typed failures onto the API
// error envelope.
func writeEngineError(c *gin.Context, err error) {
	var invalid *service.InvalidIssueDataError
	switch {
	case errors.As(err, &invalid):
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", fmt.Sprintf("Invalid %s", invalid.Field), invalid.Reason)
	case errors.Is(err, service.ErrNoDepartments):
		writeError(c, http.StatusInternalServerError, "NO_DEPARTMENTS", "No departments configured", nil)
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(c, http.StatusBadRequest, "INVALID_STATUS", "Status must be one of REPORTED, ASSIGNED, IN_PROGRESS, RESOLVED", nil)
	case errors.Is(err, service.ErrInvalidAttendance):
		writeError(c, http.StatusBadRequest, "INVALID_ATTENDANCE", "Attendance coordinates must be finite numbers", nil)
	default:
		writeError(c, http.StatusInternalServerError, "INTERNAL", "Unexpected error", err.Error())
	}
}
