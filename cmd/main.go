package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "coldreach/internal/adapter/http"
	"coldreach/internal/adapter/postgres"
	"coldreach/internal/adapter/usecase"
	"coldreach/internal/config"
	"coldreach/internal/db"
)

// main is the entry point of the coldreach service. It loads configuration,
// optionally runs database migrations and seeding, initializes the database
// pool, repositories, the campaign execution engine and the HTTP server. On
// receiving a termination signal it gracefully shuts down the server and
// drains detached campaign runs.
func main() {
	// Best-effort .env loading for local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		// Initialise structured logger based on configuration.
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("migrations applied successfully")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Psql.Seed {
		if err = db.Seed(ctx, pool); err != nil {
			logger.Error("seed error", slog.Any("error", err))
		} else {
			logger.Info("demo data seeded")
		}
	}

	campaignRepo := postgres.NewCampaignRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	registry := usecase.NewRegistry()
	engine := usecase.NewEngine(campaignRepo, logger, usecase.Delays{
		Find:    cfg.Engine.FindDelay,
		Commit:  cfg.Engine.CommitDelay,
		Send:    cfg.Engine.SendInterval,
		Resolve: cfg.Engine.ResolveDelay,
	})
	campaigns := usecase.NewCampaignUseCase(campaignRepo, engine, registry, logger)
	auth := usecase.NewAuthUseCase(userRepo, []byte(cfg.Auth.Secret), cfg.Auth.TokenTTL)

	handler := httpadapter.NewHandler(campaigns, auth, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}
	if err = registry.Shutdown(shutdownCtx); err != nil {
		logger.Warn("campaign runs did not drain", slog.Any("error", err))
	}
	logger.Info("server gracefully stopped")
}
