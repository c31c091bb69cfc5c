package coverletters

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const letterColumns = `id, user_id, content, job_description, company_name, job_title, status, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, letter CoverLetter) error {
	const query = `
INSERT INTO cover_letters (` + letterColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		letter.ID,
		letter.UserID,
		letter.Content,
		letter.JobDescription,
		letter.CompanyName,
		letter.JobTitle,
		letter.Status,
		letter.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]CoverLetter, error) {
	const query = `
SELECT ` + letterColumns + `
FROM cover_letters
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CoverLetter
	for rows.Next() {
		letter, err := scanLetter(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, letter)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, userID, letterID string) (CoverLetter, error) {
	const query = `
SELECT ` + letterColumns + `
FROM cover_letters
WHERE user_id = $1 AND id = $2
LIMIT 1`
	letter, err := scanLetter(r.DB.QueryRowContext(ctx, query, userID, letterID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CoverLetter{}, ErrNotFound
		}
		return CoverLetter{}, err
	}
	return letter, nil
}

func (r *PGRepo) Delete(ctx context.Context, userID, letterID string) error {
	const query = `
DELETE FROM cover_letters
WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, letterID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanLetter(scan func(dest ...any) error) (CoverLetter, error) {
	var letter CoverLetter
	err := scan(
		&letter.ID,
		&letter.UserID,
		&letter.Content,
		&letter.JobDescription,
		&letter.CompanyName,
		&letter.JobTitle,
		&letter.Status,
		&letter.CreatedAt,
		&letter.UpdatedAt,
	)
	return letter, err
}

var _ Repo = (*PGRepo)(nil)
