package resumes

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres. The UNIQUE constraint on user_id
// enforces the one-resume-per-user rule.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, resume Resume) (Resume, error) {
	const query = `
INSERT INTO resumes (id, user_id, content, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())
ON CONFLICT (user_id) DO UPDATE SET
  content = EXCLUDED.content,
  updated_at = now()
RETURNING id, user_id, content, created_at, updated_at`

	return scanResume(r.DB.QueryRowContext(ctx, query, resume.ID, resume.UserID, resume.Content))
}

func (r *PGRepo) GetByUser(ctx context.Context, userID string) (Resume, error) {
	const query = `
SELECT id, user_id, content, created_at, updated_at
FROM resumes
WHERE user_id = $1
LIMIT 1`
	return scanResume(r.DB.QueryRowContext(ctx, query, userID))
}

func scanResume(row *sql.Row) (Resume, error) {
	var resume Resume
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Content,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

var _ Repo = (*PGRepo)(nil)
