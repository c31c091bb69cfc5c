package insights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coach-backend/internal/ai"
	"coach-backend/internal/shared/metrics"
	"coach-backend/internal/shared/telemetry"
)

// Service generates and refreshes industry insights.
type Service struct {
	Repo Repo
	AI   ai.Client

	// Now lets tests pin the clock.
	Now func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, client ai.Client) *Service {
	return &Service{
		Repo: repo,
		AI:   client,
		Now:  time.Now,
	}
}

// EnsureInsights returns the cached insight for an industry, generating and
// persisting one if the industry has never been seen.
func (s *Service) EnsureInsights(ctx context.Context, industry string) (Insight, error) {
	return s.EnsureInsightsWith(ctx, nil, industry)
}

// EnsureInsightsWith is EnsureInsights against an explicit repo. Onboarding
// passes a repo bound to its transaction so the insight row commits with the
// user row; a nil repo falls back to the service default.
func (s *Service) EnsureInsightsWith(ctx context.Context, repo Repo, industry string) (Insight, error) {
	if repo == nil {
		repo = s.Repo
	}
	if industry == "" {
		return Insight{}, fmt.Errorf("industry is required")
	}

	existing, err := repo.GetByIndustry(ctx, industry)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Insight{}, err
	}

	generated, err := s.generate(ctx, industry)
	if err != nil {
		return Insight{}, err
	}

	inserted, err := repo.Insert(ctx, generated)
	if err != nil {
		return Insight{}, err
	}
	if !inserted {
		// Another writer created the row first; theirs wins.
		return repo.GetByIndustry(ctx, industry)
	}

	metrics.IncInsightGenerated()
	telemetry.Info("insight.generated", map[string]any{
		"industry":    industry,
		"next_update": generated.NextUpdate.Format(time.RFC3339),
	})
	return generated, nil
}

// RefreshFailure records one industry that could not be refreshed.
type RefreshFailure struct {
	Industry string
	Err      error
}

// RefreshSummary reports the outcome of a refresh run.
type RefreshSummary struct {
	Refreshed []string
	Failed    []RefreshFailure
}

// RefreshAll regenerates the insight for every known industry. A failure on
// one industry never stops the rest; failures are collected in the summary.
func (s *Service) RefreshAll(ctx context.Context) (RefreshSummary, error) {
	industries, err := s.Repo.ListIndustries(ctx)
	if err != nil {
		return RefreshSummary{}, fmt.Errorf("list industries: %w", err)
	}

	var summary RefreshSummary
	for _, industry := range industries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := s.refreshOne(ctx, industry); err != nil {
			summary.Failed = append(summary.Failed, RefreshFailure{Industry: industry, Err: err})
			metrics.IncInsightRefreshFailed()
			telemetry.Error("insight.refresh_failed", map[string]any{
				"industry": industry,
				"error":    err.Error(),
			})
			continue
		}
		summary.Refreshed = append(summary.Refreshed, industry)
		metrics.IncInsightRefreshSucceeded()
	}
	return summary, nil
}

func (s *Service) refreshOne(ctx context.Context, industry string) error {
	start := s.Now()
	generated, err := s.generate(ctx, industry)
	if err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, generated); err != nil {
		return err
	}
	metrics.ObserveInsightRefreshDurationMs(metrics.SinceMillis(start))
	telemetry.Info("insight.refreshed", map[string]any{
		"industry":    industry,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

// generate asks the model for a fresh insight and stamps its refresh window.
// The stored row only ever contains a payload that passed validation.
func (s *Service) generate(ctx context.Context, industry string) (Insight, error) {
	raw, err := s.AI.GenerateContent(ctx, ai.InsightsPrompt(industry))
	if err != nil {
		return Insight{}, err
	}
	ins, err := ParseInsight(industry, raw)
	if err != nil {
		return Insight{}, err
	}
	now := s.Now()
	ins.LastUpdated = now
	ins.NextUpdate = now.Add(RefreshInterval)
	return ins, nil
}
