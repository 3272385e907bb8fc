package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/PRATHVI9607/PaymentAI/internal/config"
	"github.com/PRATHVI9607/PaymentAI/internal/logging"
	"github.com/PRATHVI9607/PaymentAI/internal/replay"
)

func main() {
	var (
		script  = flag.String("script", "./script.json", "Path to a JSON array of {phone, password, message} entries")
		baseURL = flag.String("base-url", "http://localhost:8000", "Base URL of the running backend")
		workers = flag.Int("workers", 4, "Number of concurrent workers")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "replay")

	msgs, err := replay.LoadScript(*script)
	if err != nil {
		logger.Error("failed to load script", "error", err)
		os.Exit(1)
	}
	if len(msgs) == 0 {
		logger.Error("script is empty", "path", *script)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runner := replay.NewRunner(strings.TrimSuffix(*baseURL, "/"), *workers, logger)

	start := time.Now()
	logger.Info("replaying script", "messages", len(msgs), "workers", *workers)
	if err := runner.Run(ctx, msgs); err != nil {
		logger.Error("replay finished with errors", "error", err, "duration", time.Since(start).String())
		os.Exit(1)
	}
	logger.Info("replay complete", "messages", len(msgs), "duration", time.Since(start).String())
}
