package assessments

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("assessment not found")

type Repo interface {
	Create(ctx context.Context, a Assessment) error
	// ListByUser returns assessments oldest-first so progress charts read
	// left to right.
	ListByUser(ctx context.Context, userID string) ([]Assessment, error)
}
