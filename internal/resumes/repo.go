package resumes

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("resume not found")

type Repo interface {
	// Upsert stores the user's resume, replacing any previous content, and
	// returns the stored row.
	Upsert(ctx context.Context, resume Resume) (Resume, error)
	GetByUser(ctx context.Context, userID string) (Resume, error)
}
