package insights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func testInsight() Insight {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return Insight{
		Industry:          "tech-software-development",
		SalaryRanges:      []SalaryRange{{Role: "Engineer", Min: 1, Max: 2, Median: 1.5, Location: "US"}},
		GrowthRate:        4.2,
		DemandLevel:       DemandHigh,
		TopSkills:         []string{"Go"},
		MarketOutlook:     OutlookPositive,
		KeyTrends:         []string{"AI"},
		RecommendedSkills: []string{"Kubernetes"},
		LastUpdated:       now,
		NextUpdate:        now.Add(RefreshInterval),
	}
}

func TestPGRepoInsertReportsLostRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	ins := testInsight()

	mock.ExpectExec("INSERT INTO industry_insights").
		WithArgs(
			ins.Industry,
			sqlmock.AnyArg(), // salary_ranges
			ins.GrowthRate,
			ins.DemandLevel,
			sqlmock.AnyArg(), // top_skills
			ins.MarketOutlook,
			sqlmock.AnyArg(), // key_trends
			sqlmock.AnyArg(), // recommended_skills
			ins.LastUpdated,
			ins.NextUpdate,
		).
		WillReturnResult(sqlmock.NewResult(0, 0))

	inserted, err := repo.Insert(context.Background(), ins)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if inserted {
		t.Fatal("ON CONFLICT DO NOTHING hit should report false")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateMissingIndustry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE industry_insights").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(context.Background(), testInsight()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update of missing row: got %v, want ErrNotFound", err)
	}
}

func TestPGRepoGetByIndustryDecodesJSONColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"industry", "salary_ranges", "growth_rate", "demand_level", "top_skills",
		"market_outlook", "key_trends", "recommended_skills", "last_updated", "next_update",
	}).AddRow(
		"tech",
		[]byte(`[{"role":"Engineer","min":1,"max":2,"median":1.5,"location":"US"}]`),
		4.2,
		DemandHigh,
		[]byte(`["Go","Postgres"]`),
		OutlookPositive,
		[]byte(`["AI"]`),
		[]byte(`["Kubernetes"]`),
		now,
		now.Add(RefreshInterval),
	)

	mock.ExpectQuery("SELECT .* FROM industry_insights").
		WithArgs("tech").
		WillReturnRows(rows)

	ins, err := repo.GetByIndustry(context.Background(), "tech")
	if err != nil {
		t.Fatalf("GetByIndustry: %v", err)
	}
	if len(ins.SalaryRanges) != 1 || ins.SalaryRanges[0].Median != 1.5 {
		t.Fatalf("salaryRanges = %+v", ins.SalaryRanges)
	}
	if len(ins.TopSkills) != 2 {
		t.Fatalf("topSkills = %v", ins.TopSkills)
	}
}

func TestPGRepoGetByIndustryNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT .* FROM industry_insights").
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows([]string{"industry"}))

	if _, err := repo.GetByIndustry(context.Background(), "unknown"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
