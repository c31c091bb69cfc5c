package main

// Exercise a prompt against the live model without running the API:
//   go run ./cmd/prompttest -kind insights -industry tech-software-development

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"coach-backend/internal/ai"
	"coach-backend/internal/ai/gemini"
	"coach-backend/internal/insights"
	"coach-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	kind := flag.String("kind", "insights", "Prompt kind: insights, quiz, improve-resume")
	industry := flag.String("industry", "tech-software-development", "Industry key")
	skills := flag.String("skills", "", "Comma-separated skills (quiz)")
	section := flag.String("section", "summary", "Resume section (improve-resume)")
	current := flag.String("current", "", "Current section text (improve-resume)")
	parse := flag.Bool("parse", true, "Validate the response against the expected schema")
	flag.Parse()

	if cfg.GeminiAPIKey == "" {
		exitErr("GEMINI_API_KEY is required")
	}

	var prompt string
	switch *kind {
	case "insights":
		prompt = ai.InsightsPrompt(*industry)
	case "quiz":
		prompt = ai.QuizPrompt(15, *industry, splitSkills(*skills))
	case "improve-resume":
		if strings.TrimSpace(*current) == "" {
			exitErr("-current is required for improve-resume")
		}
		prompt = ai.ImproveResumePrompt(*section, *industry, *current)
	default:
		exitErr(fmt.Sprintf("unsupported prompt kind: %s", *kind))
	}

	ctx := context.Background()
	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITimeout)
	if err != nil {
		exitErr(fmt.Sprintf("build gemini client: %v", err))
	}

	start := time.Now()
	raw, err := client.GenerateContent(ctx, prompt)
	if err != nil {
		exitErr(fmt.Sprintf("generate: %v", err))
	}
	fmt.Fprintf(os.Stderr, "completed in %s\n", time.Since(start).Round(time.Millisecond))

	if *parse && *kind == "insights" {
		if _, err := insights.ParseInsight(*industry, raw); err != nil {
			fmt.Println(raw)
			exitErr(fmt.Sprintf("schema check failed: %v", err))
		}
		fmt.Fprintln(os.Stderr, "schema check passed")
	}

	fmt.Println(ai.StripFences(raw))
}

func splitSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
