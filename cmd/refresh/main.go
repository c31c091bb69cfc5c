package main

// Weekly insight refresh, run from cron:
//   go run ./cmd/refresh
//
// Exits non-zero when any industry fails so the scheduler can alert, while
// still refreshing every industry it can.

import (
	"context"
	"log"
	"os"
	"time"

	"coach-backend/internal/ai"
	"coach-backend/internal/ai/gemini"
	"coach-backend/internal/insights"
	"coach-backend/internal/shared/config"
	"coach-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if cfg.DatabaseURL == "" {
		log.Print("DATABASE_URL is required")
		os.Exit(1)
	}
	if cfg.GeminiAPIKey == "" {
		log.Print("GEMINI_API_KEY is required")
		os.Exit(1)
	}

	opts := db.OptionsFromEnv(db.DefaultBatchOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITimeout)
	if err != nil {
		log.Printf("build gemini client: %v", err)
		os.Exit(1)
	}

	svc := insights.NewService(
		&insights.PGRepo{DB: sqlDB},
		ai.NewRetryClient(client, cfg.AIMaxRetries, 500*time.Millisecond),
	)

	summary, err := svc.RefreshAll(ctx)
	if err != nil {
		log.Printf("refresh run: %v", err)
		os.Exit(1)
	}

	log.Printf("refreshed %d industries, %d failed", len(summary.Refreshed), len(summary.Failed))
	for _, failure := range summary.Failed {
		log.Printf("  %s: %v", failure.Industry, failure.Err)
	}
	if len(summary.Failed) > 0 {
		os.Exit(1)
	}
}
