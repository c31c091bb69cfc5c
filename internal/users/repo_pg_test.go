package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"coach-backend/internal/insights"
)

func onboardUpdate() OnboardingUpdate {
	return OnboardingUpdate{
		Industry:   "tech-software-development",
		Experience: 5,
		Skills:     []string{"Go"},
		Bio:        "Backend engineer.",
	}
}

func TestPGRepoOnboardCommitsInsightAndProfileTogether(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM industry_insights").
		WithArgs("tech-software-development").
		WillReturnRows(sqlmock.NewRows([]string{"industry"}))
	mock.ExpectExec("INSERT INTO industry_insights").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users").
		WithArgs("user-1", "tech-software-development", 5, sqlmock.AnyArg(), "Backend engineer.").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .* FROM users").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "full_name", "image_url", "industry", "experience", "skills", "bio", "created_at", "updated_at",
		}).AddRow(
			"user-1", "u@example.com", "Test User", nil,
			"tech-software-development", 5, []byte(`["Go"]`), "Backend engineer.", now, now,
		))
	mock.ExpectCommit()

	repo := &PGRepo{DB: db}
	insightSvc := insights.NewService(nil, stubAI{resp: insightJSON})

	user, err := repo.Onboard(context.Background(), "user-1", onboardUpdate(), func(ctx context.Context, txRepo insights.Repo) (insights.Insight, error) {
		return insightSvc.EnsureInsightsWith(ctx, txRepo, "tech-software-development")
	})
	if err != nil {
		t.Fatalf("Onboard: %v", err)
	}
	if !user.Onboarded() {
		t.Fatal("returned user should be onboarded")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoOnboardRollsBackWhenInsightEnsureFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &PGRepo{DB: db}
	ensureErr := errors.New("provider down")

	_, err = repo.Onboard(context.Background(), "user-1", onboardUpdate(), func(ctx context.Context, txRepo insights.Repo) (insights.Insight, error) {
		return insights.Insight{}, ensureErr
	})
	if !errors.Is(err, ensureErr) {
		t.Fatalf("Onboard: got %v, want ensure failure", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoOnboardUnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM industry_insights").
		WillReturnRows(sqlmock.NewRows([]string{
			"industry", "salary_ranges", "growth_rate", "demand_level", "top_skills",
			"market_outlook", "key_trends", "recommended_skills", "last_updated", "next_update",
		}).AddRow(
			"tech-software-development",
			[]byte(`[{"role":"Engineer","min":1,"max":2,"median":1.5,"location":"US"}]`),
			3.0, insights.DemandHigh, []byte(`["Go"]`), insights.OutlookPositive,
			[]byte(`["AI"]`), []byte(`["Kubernetes"]`), time.Now(), time.Now(),
		))
	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := &PGRepo{DB: db}
	insightSvc := insights.NewService(nil, stubAI{resp: insightJSON})

	_, err = repo.Onboard(context.Background(), "missing", onboardUpdate(), func(ctx context.Context, txRepo insights.Repo) (insights.Insight, error) {
		return insightSvc.EnsureInsightsWith(ctx, txRepo, "tech-software-development")
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
