package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/urbanfix/backend/internal/auth"
	"github.com/urbanfix/backend/internal/config"
	"github.com/urbanfix/backend/internal/db"
	"github.com/urbanfix/backend/internal/geocode"
	httpapi "github.com/urbanfix/backend/internal/http"
	"github.com/urbanfix/backend/internal/models"
	"github.com/urbanfix/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "urbanfix-backend").Logger()

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	var rules []models.DepartmentRule
	if cfg.RulesPath != "" {
		rules, err = service.LoadRulesFile(cfg.RulesPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.RulesPath).Msg("failed to load keyword rules")
		}
		logger.Info().Int("rules", len(rules)).Str("path", cfg.RulesPath).Msg("loaded keyword rules from file")
	} else {
		rules = service.DefaultRules()
	}

	var geocoder geocode.Geocoder
	if cfg.GeocoderURL != "" {
		geocoder = &geocode.NominatimGeocoder{BaseURL: cfg.GeocoderURL}
		logger.Info().Str("url", cfg.GeocoderURL).Msg("reverse geocoding enabled")
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	router := httpapi.Router(cfg, store, tokens, geocoder, rules, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
