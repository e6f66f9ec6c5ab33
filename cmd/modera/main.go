package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/moderalabs/modera/internal/agents"
	agentapi "github.com/moderalabs/modera/internal/api/agent"
	"github.com/moderalabs/modera/internal/api/classify"
	"github.com/moderalabs/modera/internal/api/entity"
	"github.com/moderalabs/modera/internal/config"
	"github.com/moderalabs/modera/internal/detector"
	"github.com/moderalabs/modera/internal/moderation"
	"github.com/moderalabs/modera/internal/server"
	"github.com/moderalabs/modera/internal/storage"
	"github.com/moderalabs/modera/internal/storage/memory"
	"github.com/moderalabs/modera/internal/storage/sqlite"
	"github.com/moderalabs/modera/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	shutdown, err := telemetry.InitTracer("modera", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	cfg, err := config.Load(os.Getenv("MODERA_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	timeout := cfg.Services.Timeout

	piiDetector := detector.NewPIIDetector(
		entity.NewClient(cfg.Services.Entity.APIKey, entity.WithBaseURL(cfg.Services.Entity.BaseURL)),
		timeout, cfg.Moderation.FallbackConfidence, logger)
	classifier := detector.NewContentClassifier(
		classify.NewClient(cfg.Services.Classifier.APIKey, classify.WithBaseURL(cfg.Services.Classifier.BaseURL)),
		timeout, logger)

	agentClient := agentapi.NewClient(cfg.Services.Agent.APIKey, agentapi.WithBaseURL(cfg.Services.Agent.BaseURL))
	intentAgent := agents.NewIntentAgent(agentClient, timeout)
	actionAgent := agents.NewActionAgent(agentClient, timeout)

	orchestrator := moderation.NewOrchestrator(piiDetector, classifier, intentAgent, actionAgent, cfg.Moderation.ReviewThreshold, logger)
	moderator := moderation.NewService(orchestrator, logger)

	srv := server.New(cfg.Server.Port, moderator, store, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case <-sigChan:
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}

func openStore(cfg *config.Config) (storage.DecisionStore, error) {
	switch cfg.Storage.Type {
	case "memory":
		return memory.New(), nil
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.SQLite.Path), 0o755); err != nil {
			return nil, err
		}
		return sqlite.New(cfg.Storage.SQLite.Path)
	}
}
