package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/habithub/habithub-api/internal/auth"
	"github.com/habithub/habithub-api/internal/catalog"
	"github.com/habithub/habithub-api/internal/config"
	"github.com/habithub/habithub-api/internal/database"
	"github.com/habithub/habithub-api/internal/handlers"
	"github.com/habithub/habithub-api/internal/logging"
	"github.com/habithub/habithub-api/internal/notifier"
	"github.com/habithub/habithub-api/internal/service"
	"github.com/habithub/habithub-api/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if _, err := logging.New(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is empty, sessions are signed with an empty key")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", "err", err)
	}

	cat, err := catalog.Load()
	if err != nil {
		log.Fatal("Failed to load catalog", "err", err)
	}

	loc, _ := cfg.Location()
	s := store.New(db)
	engine := service.NewEngine(s, cat, notifier.FromConfig(context.Background(), cfg), service.Options{
		Location:         loc,
		XPPerCompletion:  cfg.XPPerCompletion,
		DefaultStatsDays: cfg.StatsDefaultDays,
	})

	authHandler := auth.NewAuthHandler(cfg, s)
	if !authHandler.OAuthEnabled() {
		log.Info("OAuth login disabled, OAUTH_CLIENT_ID/OAUTH_CLIENT_SECRET not set")
	}

	r := chi.NewRouter()
	handlers.RegisterRoutes(r, handlers.New(engine, s, authHandler))

	log.Info("Starting server", "port", cfg.Port, "driver", cfg.DatabaseDriver, "timezone", loc.String())
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal("Failed to start server", "err", err)
	}
}
