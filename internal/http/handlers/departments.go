package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urbanfix/backend/internal/models"
)

func (h *Handler) DepartmentsList(c *gin.Context) {
	items, err := h.Store.ListDepartments(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list departments", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type SeedDepartmentsRequest struct {
	Departments []struct {
		Name      string  `json:"name" validate:"required"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"departments" validate:"required,min=1,dive"`
}

// @Summary Seed the department directory
// @Tags admin
// @Accept json
// @Produce json
// @Param payload body SeedDepartmentsRequest true "departments"
// @Success 201 {object} map[string]any
// @Router /api/admin/departments [post]
func (h *Handler) SeedDepartments(c *gin.Context) {
	var req SeedDepartmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	departments := make([]models.Department, 0, len(req.Departments))
	for _, d := range req.Departments {
		departments = append(departments, models.Department{
			Name:      d.Name,
			Latitude:  d.Latitude,
			Longitude: d.Longitude,
		})
	}

	inserted, err := h.Store.InsertDepartments(c.Request.Context(), departments)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to insert departments", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"inserted": inserted})
}
