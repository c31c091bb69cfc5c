package coverletters

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("cover letter not found")

type Repo interface {
	Create(ctx context.Context, letter CoverLetter) error
	// ListByUser returns letters newest-first.
	ListByUser(ctx context.Context, userID string) ([]CoverLetter, error)
	GetByID(ctx context.Context, userID, letterID string) (CoverLetter, error)
	Delete(ctx context.Context, userID, letterID string) error
}
