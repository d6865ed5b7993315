package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/urbanfix/backend/internal/http/middleware"
	"github.com/urbanfix/backend/internal/models"
	"github.com/urbanfix/backend/internal/service"
)

type CreateIssueRequest struct {
	Description  string   `json:"description" validate:"required,max=500"`
	IssueType    *string  `json:"issue_type"`
	DepartmentID *int64   `json:"department_id"`
	Latitude     *float64 `json:"latitude" validate:"required"`
	Longitude    *float64 `json:"longitude" validate:"required"`
	Address      *string  `json:"address"`
}

// @Summary Report a new issue
// @Description Allocates the issue to a department (explicit override, keyword classification, or nearest department) and persists it
// @Tags issues
// @Accept json
// @Produce json
// @Param payload body CreateIssueRequest true "issue data"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/issues [post]
func (h *Handler) CreateIssue(c *gin.Context) {
	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	claims := middleware.ClaimsFrom(c)

	departments, err := h.Store.ListDepartments(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load departments", err.Error())
		return
	}
	if req.DepartmentID != nil {
		// The engine uses an explicit id verbatim; existence is checked here.
		if _, err := h.Store.GetDepartment(c.Request.Context(), *req.DepartmentID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeError(c, http.StatusNotFound, "NOT_FOUND", "Department not found", nil)
				return
			}
			writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load department", err.Error())
			return
		}
	}

	issueType := ""
	if req.IssueType != nil {
		issueType = *req.IssueType
	}
	result, err := service.AllocateDepartment(service.AllocationInput{
		Description:          req.Description,
		IssueType:            issueType,
		ExplicitDepartmentID: req.DepartmentID,
		Latitude:             *req.Latitude,
		Longitude:            *req.Longitude,
	}, departments, h.Rules)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	departmentID := result.DepartmentID
	issue := models.Issue{
		ID:           uuid.NewString(),
		CitizenID:    claims.UserID,
		DepartmentID: &departmentID,
		IssueType:    req.IssueType,
		Description:  strings.TrimSpace(req.Description),
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		Address:      req.Address,
		Status:       service.StatusReported,
		CreatedAt:    time.Now().UTC(),
	}
	if issue.Address == nil && h.Geocoder != nil {
		issue.Address = h.reverseGeocode(c.Request.Context(), issue.Latitude, issue.Longitude)
	}

	if err := h.Store.CreateIssue(c.Request.Context(), issue); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create issue", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"issue": issue, "allocation": result})
}

// reverseGeocode is best-effort: intake never fails because an address
// could not be resolved.
func (h *Handler) reverseGeocode(ctx context.Context, lat, lon float64) *string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	address, err := h.Geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		h.Logger.Warn().Err(err).Float64("lat", lat).Float64("lon", lon).Msg("reverse geocode failed")
		return nil
	}
	return &address
}

func (h *Handler) MyIssues(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	status := ""
	if raw := c.Query("status"); raw != "" {
		parsed, err := service.ParseStatus(raw)
		if err != nil {
			writeEngineError(c, err)
			return
		}
		status = parsed
	}

	issues, err := h.Store.ListIssuesByCitizen(c.Request.Context(), claims.UserID, status)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list issues", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": issues})
}

func (h *Handler) IssueDetails(c *gin.Context) {
	id := c.Param("id")
	issue, err := h.Store.GetIssue(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Issue not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to get issue", err.Error())
		return
	}

	claims := middleware.ClaimsFrom(c)
	if !canViewIssue(claims.UserID, claims.Role, claims.DepartmentID, issue) {
		writeError(c, http.StatusForbidden, "FORBIDDEN", "Not allowed to view this issue", nil)
		return
	}

	resp := gin.H{"issue": issue}
	if issue.DepartmentID != nil {
		if dept, err := h.Store.GetDepartment(c.Request.Context(), *issue.DepartmentID); err == nil {
			resp["department"] = dept
		}
	}
	attendance, err := h.Store.ListAttendanceByIssue(c.Request.Context(), issue.ID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load attendance", err.Error())
		return
	}
	resp["attendance"] = attendance
	c.JSON(http.StatusOK, resp)
}

func canViewIssue(userID int64, role string, departmentID *int64, issue models.Issue) bool {
	if role == models.RoleCitizen {
		return issue.CitizenID == userID
	}
	if role == models.RoleStaff {
		return departmentID != nil && issue.DepartmentID != nil && *departmentID == *issue.DepartmentID
	}
	return false
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// @Summary Update issue status
// @Tags issues
// @Accept json
// @Produce json
// @Param id path string true "Issue ID"
// @Param payload body UpdateStatusRequest true "target status"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/issues/{id}/status [patch]
func (h *Handler) UpdateIssueStatus(c *gin.Context) {
	id := c.Param("id")
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	status, err := service.ParseStatus(req.Status)
	if err != nil {
		writeEngineError(c, err)
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
	claims := middleware.ClaimsFrom(c)
	if claims.DepartmentID == nil || issue.DepartmentID == nil || *claims.DepartmentID != *issue.DepartmentID {
		writeError(c, http.StatusForbidden, "FORBIDDEN", "Issue belongs to another department", nil)
		return
	}

	if err := h.Store.UpdateIssueStatus(c.Request.Context(), id, status); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to update status", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}
