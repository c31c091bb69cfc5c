package insights

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotFound is returned when no insight exists for an industry key.
var ErrNotFound = errors.New("insight not found")

// DBTX is satisfied by both *sql.DB and *sql.Tx so the Postgres repo can run
// inside an onboarding transaction or standalone.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repo defines persistence operations for industry insights.
type Repo interface {
	GetByIndustry(ctx context.Context, industry string) (Insight, error)
	// Insert creates the row for a new industry key. It reports false without
	// error when another writer created the row first.
	Insert(ctx context.Context, ins Insight) (bool, error)
	Update(ctx context.Context, ins Insight) error
	ListIndustries(ctx context.Context) ([]string, error)
}
