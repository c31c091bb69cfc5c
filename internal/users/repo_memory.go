package users

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo used when no database is
// configured. There is no transaction to bind, so Onboard ensures the insight
// through the caller's default repo and only applies the profile update when
// that succeeds.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]User
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]User)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[user.ID]
	if !ok {
		user.CreatedAt = time.Now().UTC()
		user.UpdatedAt = user.CreatedAt
		r.data[user.ID] = user
		return nil
	}
	existing.Email = user.Email
	existing.FullName = user.FullName
	existing.ImageURL = user.ImageURL
	existing.UpdatedAt = time.Now().UTC()
	r.data[user.ID] = existing
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.data[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepo) Onboard(ctx context.Context, userID string, update OnboardingUpdate, ensure EnsureInsightFunc) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, onboardTimeout)
	defer cancel()

	if _, err := ensure(ctx, nil); err != nil {
		return User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.data[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	industry := update.Industry
	experience := update.Experience
	user.Industry = &industry
	user.Experience = &experience
	user.Skills = update.Skills
	user.Bio = update.Bio
	user.UpdatedAt = time.Now().UTC()
	r.data[userID] = user
	return user, nil
}

var _ Repo = (*MemoryRepo)(nil)
