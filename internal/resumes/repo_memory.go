package resumes

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Resume // userID -> resume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Resume)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, resume Resume) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	existing, ok := r.data[resume.UserID]
	if ok {
		existing.Content = resume.Content
		existing.UpdatedAt = now
		r.data[resume.UserID] = existing
		return existing, nil
	}
	resume.CreatedAt = now
	resume.UpdatedAt = now
	r.data[resume.UserID] = resume
	return resume, nil
}

func (r *MemoryRepo) GetByUser(ctx context.Context, userID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.data[userID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

var _ Repo = (*MemoryRepo)(nil)
