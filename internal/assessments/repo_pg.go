package assessments

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, a Assessment) error {
	const query = `
INSERT INTO assessments (id, user_id, quiz_score, questions, category, improvement_tip, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`

	questions, err := json.Marshal(a.Questions)
	if err != nil {
		return fmt.Errorf("marshal question results: %w", err)
	}
	var tip any
	if a.ImprovementTip != "" {
		tip = a.ImprovementTip
	}
	_, err = r.DB.ExecContext(ctx, query,
		a.ID,
		a.UserID,
		a.QuizScore,
		questions,
		a.Category,
		tip,
		a.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Assessment, error) {
	const query = `
SELECT id, user_id, quiz_score, questions, category, improvement_tip, created_at, updated_at
FROM assessments
WHERE user_id = $1
ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		var a Assessment
		var questions []byte
		var tip sql.NullString
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.QuizScore,
			&questions,
			&a.Category,
			&tip,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(questions, &a.Questions); err != nil {
			return nil, fmt.Errorf("unmarshal question results: %w", err)
		}
		if tip.Valid {
			a.ImprovementTip = tip.String
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
