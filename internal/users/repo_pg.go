package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"coach-backend/internal/insights"
)

// onboardTimeout bounds the onboarding transaction, including the AI call
// that may run inside it for a first-seen industry.
const onboardTimeout = 15 * time.Second

type PGRepo struct {
	DB *sql.DB
}

// Upsert creates or refreshes the identity fields of a user. Profile fields
// set during onboarding are left untouched.
func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, full_name, image_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  full_name = EXCLUDED.full_name,
  image_url = EXCLUDED.image_url,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		nullableString(user.FullName),
		nullableString(user.ImageURL),
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	return getUser(ctx, r.DB, userID)
}

// Onboard runs the insight-ensure and the profile update in one transaction.
// If the industry has never been seen, the insight is generated and inserted
// through a repo bound to this transaction, so a failed generation rolls the
// whole onboarding back.
func (r *PGRepo) Onboard(ctx context.Context, userID string, update OnboardingUpdate, ensure EnsureInsightFunc) (User, error) {
	txCtx, cancel := context.WithTimeout(ctx, onboardTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(txCtx, nil)
	if err != nil {
		return User{}, fmt.Errorf("begin onboarding tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := ensure(txCtx, &insights.PGRepo{DB: tx}); err != nil {
		return User{}, err
	}

	skills, err := json.Marshal(update.Skills)
	if err != nil {
		return User{}, fmt.Errorf("marshal skills: %w", err)
	}

	const query = `
UPDATE users
SET industry = $2,
    experience = $3,
    skills = $4,
    bio = $5,
    updated_at = now()
WHERE id = $1`
	res, err := tx.ExecContext(txCtx, query, userID, update.Industry, update.Experience, skills, nullableString(update.Bio))
	if err != nil {
		return User{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if affected == 0 {
		return User{}, ErrNotFound
	}

	user, err := getUser(txCtx, tx, userID)
	if err != nil {
		return User{}, err
	}
	if err := tx.Commit(); err != nil {
		return User{}, fmt.Errorf("commit onboarding tx: %w", err)
	}
	return user, nil
}

func getUser(ctx context.Context, db insights.DBTX, userID string) (User, error) {
	const query = `
SELECT id, email, full_name, image_url, industry, experience, skills, bio, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	var user User
	var fullName sql.NullString
	var imageURL sql.NullString
	var industry sql.NullString
	var experience sql.NullInt64
	var skills []byte
	var bio sql.NullString
	var updatedAt sql.NullTime
	err := db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&fullName,
		&imageURL,
		&industry,
		&experience,
		&skills,
		&bio,
		&user.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if fullName.Valid {
		user.FullName = fullName.String
	}
	if imageURL.Valid {
		user.ImageURL = imageURL.String
	}
	if industry.Valid {
		user.Industry = &industry.String
	}
	if experience.Valid {
		years := int(experience.Int64)
		user.Experience = &years
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &user.Skills); err != nil {
			return User{}, fmt.Errorf("unmarshal skills: %w", err)
		}
	}
	if bio.Valid {
		user.Bio = bio.String
	}
	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.Time
	}
	return user, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
