package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/PRATHVI9607/PaymentAI/internal/agent"
	"github.com/PRATHVI9607/PaymentAI/internal/assistant"
	"github.com/PRATHVI9607/PaymentAI/internal/catalog"
	"github.com/PRATHVI9607/PaymentAI/internal/config"
	"github.com/PRATHVI9607/PaymentAI/internal/identity"
	"github.com/PRATHVI9607/PaymentAI/internal/journal"
	"github.com/PRATHVI9607/PaymentAI/internal/ledger"
	"github.com/PRATHVI9607/PaymentAI/internal/logging"
	"github.com/PRATHVI9607/PaymentAI/internal/seed"
	"github.com/PRATHVI9607/PaymentAI/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	dataset, err := loadDataset(cfg)
	if err != nil {
		logger.Error("failed to load seed dataset", "error", err)
		os.Exit(1)
	}

	led, err := ledger.New(dataset.Accounts)
	if err != nil {
		logger.Error("failed to build ledger", "error", err)
		os.Exit(1)
	}

	ids, err := identity.NewService(dataset.Users)
	if err != nil {
		logger.Error("failed to build user directory", "error", err)
		os.Exit(1)
	}

	cat := catalog.New(dataset.Products)
	jnl := journal.New()

	completions, err := buildCompletionClient(cfg)
	if err != nil {
		logger.Error("failed to create completion client", "error", err)
		os.Exit(1)
	}
	classifier := assistant.NewClassifier(completions, logger.With("component", "classifier"))

	executor := agent.NewExecutor(led, cat, jnl, classifier, ids, logger.With("component", "executor"))
	apiHandlers := server.NewAPIHandlers(logger, ids, executor, led, cat, jnl)

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.AssistantHealthService{Client: completions},
		API:              apiHandlers,
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router)

	logger.Info("seeded in-memory state",
		"users", len(dataset.Users),
		"products", len(dataset.Products),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	jnl.Close()
}

func loadDataset(cfg config.Config) (seed.Dataset, error) {
	if cfg.Seed.DataDir != "" {
		return seed.Load(cfg.Seed.DataDir)
	}
	return seed.Default()
}

func buildCompletionClient(cfg config.Config) (assistant.CompletionClient, error) {
	return assistant.NewHTTPClient(assistant.Options{
		BaseURL:     cfg.Assistant.BaseURL,
		APIKey:      cfg.Assistant.APIKey,
		Model:       cfg.Assistant.Model,
		Temperature: cfg.Assistant.Temperature,
		Timeout:     cfg.Assistant.Timeout,
	})
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	var origins []string
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
