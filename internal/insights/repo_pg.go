package insights

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. DB may be a pool or an open
// transaction; the onboarding flow binds it to the user transaction so the
// insight and the user row commit together.
type PGRepo struct {
	DB DBTX
}

const insightColumns = `industry, salary_ranges, growth_rate, demand_level, top_skills, market_outlook, key_trends, recommended_skills, last_updated, next_update`

// GetByIndustry fetches the cached insight for an industry key.
func (r *PGRepo) GetByIndustry(ctx context.Context, industry string) (Insight, error) {
	const query = `
SELECT ` + insightColumns + `
FROM industry_insights
WHERE industry = $1`
	return scanInsight(r.DB.QueryRowContext(ctx, query, industry))
}

// Insert creates the row for a new industry. A concurrent writer winning the
// race is not an error: the caller re-reads the existing row instead.
func (r *PGRepo) Insert(ctx context.Context, ins Insight) (bool, error) {
	const query = `
INSERT INTO industry_insights (` + insightColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (industry) DO NOTHING`

	args, err := insightArgs(ins)
	if err != nil {
		return false, err
	}
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return inserted > 0, nil
}

// Update replaces the cached payload for an existing industry.
func (r *PGRepo) Update(ctx context.Context, ins Insight) error {
	const query = `
UPDATE industry_insights
SET salary_ranges = $2,
    growth_rate = $3,
    demand_level = $4,
    top_skills = $5,
    market_outlook = $6,
    key_trends = $7,
    recommended_skills = $8,
    last_updated = $9,
    next_update = $10
WHERE industry = $1`

	args, err := insightArgs(ins)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query, args...)
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

// ListIndustries returns every industry key that has a cached insight.
func (r *PGRepo) ListIndustries(ctx context.Context) ([]string, error) {
	const query = `
SELECT industry
FROM industry_insights
ORDER BY industry ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var industry string
		if err := rows.Scan(&industry); err != nil {
			return nil, err
		}
		out = append(out, industry)
	}
	return out, rows.Err()
}

func insightArgs(ins Insight) ([]any, error) {
	salaryRanges, err := json.Marshal(ins.SalaryRanges)
	if err != nil {
		return nil, fmt.Errorf("marshal salary ranges: %w", err)
	}
	topSkills, err := json.Marshal(ins.TopSkills)
	if err != nil {
		return nil, fmt.Errorf("marshal top skills: %w", err)
	}
	keyTrends, err := json.Marshal(ins.KeyTrends)
	if err != nil {
		return nil, fmt.Errorf("marshal key trends: %w", err)
	}
	recommended, err := json.Marshal(ins.RecommendedSkills)
	if err != nil {
		return nil, fmt.Errorf("marshal recommended skills: %w", err)
	}
	return []any{
		ins.Industry,
		salaryRanges,
		ins.GrowthRate,
		ins.DemandLevel,
		topSkills,
		ins.MarketOutlook,
		keyTrends,
		recommended,
		ins.LastUpdated,
		ins.NextUpdate,
	}, nil
}

func scanInsight(row *sql.Row) (Insight, error) {
	var ins Insight
	var salaryRanges, topSkills, keyTrends, recommended []byte
	err := row.Scan(
		&ins.Industry,
		&salaryRanges,
		&ins.GrowthRate,
		&ins.DemandLevel,
		&topSkills,
		&ins.MarketOutlook,
		&keyTrends,
		&recommended,
		&ins.LastUpdated,
		&ins.NextUpdate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Insight{}, ErrNotFound
		}
		return Insight{}, err
	}
	if err := json.Unmarshal(salaryRanges, &ins.SalaryRanges); err != nil {
		return Insight{}, fmt.Errorf("unmarshal salary ranges: %w", err)
	}
	if err := json.Unmarshal(topSkills, &ins.TopSkills); err != nil {
		return Insight{}, fmt.Errorf("unmarshal top skills: %w", err)
	}
	if err := json.Unmarshal(keyTrends, &ins.KeyTrends); err != nil {
		return Insight{}, fmt.Errorf("unmarshal key trends: %w", err)
	}
	if err := json.Unmarshal(recommended, &ins.RecommendedSkills); err != nil {
		return Insight{}, fmt.Errorf("unmarshal recommended skills: %w", err)
	}
	return ins, nil
}

var _ Repo = (*PGRepo)(nil)
