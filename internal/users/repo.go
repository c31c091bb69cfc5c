package users

import (
	"context"
	"errors"

	"coach-backend/internal/insights"
)

var ErrNotFound = errors.New("user not found")

// EnsureInsightFunc makes sure the industry insight exists using the given
// repo. Onboard calls it with a repo bound to the onboarding transaction so
// the insight and the profile update commit or roll back together.
type EnsureInsightFunc func(ctx context.Context, repo insights.Repo) (insights.Insight, error)

type Repo interface {
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	// Onboard atomically ensures the industry insight and applies the profile
	// update, returning the updated user.
	Onboard(ctx context.Context, userID string, update OnboardingUpdate, ensure EnsureInsightFunc) (User, error)
}
