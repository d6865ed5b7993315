package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/urbanfix/backend/internal/auth"
	"github.com/urbanfix/backend/internal/db"
	"github.com/urbanfix/backend/internal/http/middleware"
	"github.com/urbanfix/backend/internal/models"
)

func TestHealthzIntegration(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	store, err := db.New(context.Background(), url)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	defer store.Close()

	h := &Handler{Store: store, Logger: zerolog.Nop()}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthz", h.Healthz)

	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestMeIntegration(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	store, err := db.New(context.Background(), url)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	defer store.Close()

	tokens := auth.NewManager("test-secret", time.Hour)
	h := &Handler{Store: store, Tokens: tokens, Logger: zerolog.Nop()}

	email := fmt.Sprintf("me-%d@example.com", time.Now().UnixNano())
	hash, err := auth.HashPassword("integration-pass")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		Name:         "Integration User",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleCitizen,
		CreatedAt:    time.Now().UTC(),
	}
	user.ID, err = store.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/auth/me", middleware.Auth(tokens), h.Me)

	req, _ := http.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		User models.User `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User.ID != user.ID || resp.User.Email != email {
		t.Fatalf("unexpected user in response: %+v", resp.User)
	}
}
