package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/numengames/numinia-core/internal/api"
	"github.com/numengames/numinia-core/internal/config"
	"github.com/numengames/numinia-core/internal/factory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	level, _ := config.ParseLevel(cfg.Log.Level)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Build factory config from the environment
	factoryCfg, err := factory.ConfigFrom(cfg, logger)
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create application factory
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	app, err := factory.New(startCtx, factoryCfg)
	cancelStart()
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close application", slog.String("error", err.Error()))
		}
	}()

	origins, err := cfg.CORS.Patterns()
	if err != nil {
		logger.Error("invalid CORS configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.Auth.APIKeyHash == "" {
		logger.Warn("API_KEY_HASH is empty; admin routes will reject every request")
	}
	if !app.DiscordService.Enabled() {
		logger.Info("DISCORD_WEBHOOK is empty; space events are only logged")
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		Health:         app.Storage,
		PlayerService:  app.PlayerService,
		SessionService: app.SessionService,
		ScoreService:   app.ScoreService,
		RewardService:  app.RewardService,
		AssetService:   app.AssetService,
		DiscordService: app.DiscordService,
		APIKeyHash:     cfg.Auth.APIKeyHash,
		AllowedOrigins: origins,
	})

	// Create server
	server := api.NewServer(router, api.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, logger)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", factoryCfg.StorageType),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return
		}
	}

	logger.Info("server stopped")
}
