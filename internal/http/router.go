package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/urbanfix/backend/internal/auth"
	"github.com/urbanfix/backend/internal/config"
	"github.com/urbanfix/backend/internal/db"
	"github.com/urbanfix/backend/internal/geocode"
	"github.com/urbanfix/backend/internal/http/handlers"
	"github.com/urbanfix/backend/internal/http/middleware"
	"github.com/urbanfix/backend/internal/models"

	_ "github.com/urbanfix/backend/docs"
)

func Router(cfg config.Config, store *db.Store, tokens *auth.Manager, geocoder geocode.Geocoder, rules []models.DepartmentRule, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:     store,
		Geocoder:  geocoder,
		Tokens:    tokens,
		Rules:     rules,
		Validator: validator.New(),
		Logger:    logger,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
	}

	authed := api.Group("")
	authed.Use(middleware.Auth(tokens))
	{
		authed.GET("/auth/me", h.Me)
		authed.GET("/departments", h.DepartmentsList)
		authed.GET("/issues/:id", h.IssueDetails)
	}

	citizen := authed.Group("")
	citizen.Use(middleware.RequireRole(models.RoleCitizen))
	{
		citizen.POST("/issues", h.CreateIssue)
		citizen.GET("/issues", h.MyIssues)
	}

	staff := authed.Group("")
	staff.Use(middleware.RequireRole(models.RoleStaff))
	{
		staff.GET("/staff/tasks", h.StaffTasks)
		staff.PATCH("/issues/:id/status", h.UpdateIssueStatus)
		staff.POST("/issues/:id/attendance", h.RecordAttendance)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/departments", h.SeedDepartments)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
