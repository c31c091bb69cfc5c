package users

import (
	"context"
	"errors"
	"strings"

	"coach-backend/internal/insights"
	"coach-backend/internal/shared/telemetry"
)

// Service owns user profiles and the onboarding flow.
type Service struct {
	Repo     Repo
	Insights *insights.Service
}

func NewService(repo Repo, insightSvc *insights.Service) *Service {
	return &Service{Repo: repo, Insights: insightSvc}
}

// UpsertFromAuth persists the user identity from OAuth so every later request
// has a profile row to attach work to.
func (s *Service) UpsertFromAuth(ctx context.Context, id, email, name, imageURL string) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	if strings.TrimSpace(id) == "" || strings.TrimSpace(email) == "" {
		return errors.New("user id and email are required")
	}
	return s.Repo.Upsert(ctx, User{
		ID:       id,
		Email:    email,
		FullName: name,
		ImageURL: imageURL,
	})
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// CompleteOnboarding validates the payload and applies it atomically with the
// industry-insight ensure. Re-running onboarding overwrites the previous
// profile fields.
func (s *Service) CompleteOnboarding(ctx context.Context, userID string, req OnboardingRequest) (User, error) {
	if s == nil || s.Repo == nil || s.Insights == nil {
		return User{}, errors.New("users service not configured")
	}
	update, err := req.Validate()
	if err != nil {
		return User{}, err
	}

	user, err := s.Repo.Onboard(ctx, userID, update, func(ctx context.Context, repo insights.Repo) (insights.Insight, error) {
		return s.Insights.EnsureInsightsWith(ctx, repo, update.Industry)
	})
	if err != nil {
		return User{}, err
	}

	telemetry.Info("user.onboarded", map[string]any{
		"user_id":  userID,
		"industry": update.Industry,
	})
	return user, nil
}

// OnboardingStatus reports whether the user has completed onboarding.
func (s *Service) OnboardingStatus(ctx context.Context, userID string) (bool, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.Onboarded(), nil
}
