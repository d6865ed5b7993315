package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/urbanfix/backend/internal/http/middleware"
	"github.com/urbanfix/backend/internal/models"
	"github.com/urbanfix/backend/internal/service"
)

// @Summary Ranked task list for field staff
// @Description Department issues ordered by status priority then recency; lat/lon attach display distances
// @Tags staff
// @Produce json
// @Param lat query number false "Staff latitude"
// @Param lon query number false "Staff longitude"
// @Success 200 {object} map[string]any
// @Router /api/staff/tasks [get]
func (h *Handler) StaffTasks(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims.DepartmentID == nil {
		writeError(c, http.StatusBadRequest, "NO_DEPARTMENT", "Staff account has no department", nil)
		return
	}

	staffLat, staffLon, err := parseOptionalCoords(c.Query("lat"), c.Query("lon"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "lat and lon must be numbers, both or neither", err.Error())
		return
	}

	issues, err := h.Store.ListIssuesByDepartment(c.Request.Context(), *claims.DepartmentID, nil)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list issues", err.Error())
		return
	}

	tasks := service.RankTasks(issues, staffLat, staffLon)
	c.JSON(http.StatusOK, gin.H{"items": tasks})
}

// parseOptionalCoords accepts either no coordinates or a full pair.
func parseOptionalCoords(latRaw, lonRaw string) (*float64, *float64, error) {
	if latRaw == "" && lonRaw == "" {
		return nil, nil, nil
	}
	if latRaw == "" || lonRaw == "" {
		return nil, nil, errors.New("lat and lon must be supplied together")
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil, nil, err
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		return nil, nil, err
	}
	return &lat, &lon, nil
}

type AttendanceRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

// @Summary Record staff attendance at an issue site
// @Tags staff
// @Accept json
// @Produce json
// @Param id path string true "Issue ID"
// @Param payload body AttendanceRequest true "staff coordinates"
// @Success 201 {object} models.AttendanceRecord
// @Failure 400 {object} map[string]any
// @Router /api/issues/{id}/attendance [post]
func (h *Handler) RecordAttendance(c *gin.Context) {
	id := c.Param("id")
	var req AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ATTENDANCE", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ATTENDANCE", "latitude and longitude are required", err.Error())
		return
	}

	issue, err := h.Store.GetIssue(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Issue not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to get issue", err.Error())
		return
	}

	distanceMeters, err := service.AttendanceDistanceMeters(issue.Latitude, issue.Longitude, *req.Latitude, *req.Longitude)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	claims := middleware.ClaimsFrom(c)
	rec := models.AttendanceRecord{
		IssueID:        issue.ID,
		StaffID:        claims.UserID,
		StaffLatitude:  *req.Latitude,
		StaffLongitude: *req.Longitude,
		DistanceMeters: distanceMeters,
		CreatedAt:      time.Now().UTC(),
	}
	rec, err = h.Store.InsertAttendance(c.Request.Context(), rec)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to record attendance", err.Error())
		return
	}
	c.JSON(http.StatusCreated, rec)
}
