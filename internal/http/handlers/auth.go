package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/urbanfix/backend/internal/auth"
	"github.com/urbanfix/backend/internal/http/middleware"
	"github.com/urbanfix/backend/internal/models"
)

type RegisterRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Role         string `json:"role" validate:"required,oneof=citizen staff"`
	DepartmentID *int64 `json:"department_id"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// @Summary Register a citizen or staff account
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body RegisterRequest true "account data"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	if req.Role == models.RoleStaff {
		if req.DepartmentID == nil {
			writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Staff accounts require department_id", nil)
			return
		}
		if _, err := h.Store.GetDepartment(c.Request.Context(), *req.DepartmentID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeError(c, http.StatusNotFound, "NOT_FOUND", "Department not found", nil)
				return
			}
			writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load department", err.Error())
			return
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "INTERNAL", "Failed to hash password", err.Error())
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         req.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if req.Role == models.RoleStaff {
		user.DepartmentID = req.DepartmentID
	}

	id, err := h.Store.CreateUser(c.Request.Context(), user)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			writeError(c, http.StatusConflict, "EMAIL_TAKEN", "Email already registered", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create user", err.Error())
		return
	}
	user.ID = id

	token, err := h.Tokens.Issue(user)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "INTERNAL", "Failed to issue token", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	user, err := h.Store.GetUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load user", err.Error())
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
		return
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "INTERNAL", "Failed to issue token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me returns the authenticated account's current record, so clients can
// refresh profile data without re-login.
func (h *Handler) Me(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	user, err := h.Store.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load user", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
