package insights

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo used when no database is
// configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Insight // industry key -> insight
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Insight),
	}
}

// GetByIndustry returns the cached insight for an industry key.
func (r *MemoryRepo) GetByIndustry(ctx context.Context, industry string) (Insight, error) {
	if err := ctx.Err(); err != nil {
		return Insight{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ins, ok := r.data[industry]
	if !ok {
		return Insight{}, ErrNotFound
	}
	return ins, nil
}

// Insert stores a new insight. Reports false when the key already exists.
func (r *MemoryRepo) Insert(ctx context.Context, ins Insight) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[ins.Industry]; ok {
		return false, nil
	}
	r.data[ins.Industry] = ins
	return true, nil
}

// Update replaces the insight for an existing industry key.
func (r *MemoryRepo) Update(ctx context.Context, ins Insight) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[ins.Industry]; !ok {
		return ErrNotFound
	}
	r.data[ins.Industry] = ins
	return nil
}

// ListIndustries returns every cached industry key in sorted order.
func (r *MemoryRepo) ListIndustries(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.data))
	for industry := range r.data {
		out = append(out, industry)
	}
	sort.Strings(out)
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
