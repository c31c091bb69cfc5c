package users

import (
	"context"
	"errors"
	"testing"

	"coach-backend/internal/insights"
)

const insightJSON = `{
  "salaryRanges": [{"role": "Engineer", "min": 1, "max": 2, "median": 1.5, "location": "US"}],
  "growthRate": 3,
  "demandLevel": "High",
  "topSkills": ["Go"],
  "marketOutlook": "Positive",
  "keyTrends": ["AI"],
  "recommendedSkills": ["Kubernetes"]
}`

type stubAI struct {
	resp string
	err  error
}

func (s stubAI) GenerateContent(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return s.resp, s.err
}

func newTestService(t *testing.T, client stubAI) (*Service, *MemoryRepo, *insights.MemoryRepo) {
	t.Helper()
	userRepo := NewMemoryRepo()
	insightRepo := insights.NewMemoryRepo()
	insightSvc := insights.NewService(insightRepo, client)
	svc := NewService(userRepo, insightSvc)
	if err := svc.UpsertFromAuth(context.Background(), "user-1", "u@example.com", "Test User", ""); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return svc, userRepo, insightRepo
}

func TestCompleteOnboardingEnsuresInsight(t *testing.T) {
	svc, _, insightRepo := newTestService(t, stubAI{resp: insightJSON})

	user, err := svc.CompleteOnboarding(context.Background(), "user-1", validRequest())
	if err != nil {
		t.Fatalf("CompleteOnboarding: %v", err)
	}
	if !user.Onboarded() {
		t.Fatal("user should be onboarded")
	}
	if *user.Industry != "tech-software-development" {
		t.Fatalf("industry = %q", *user.Industry)
	}

	if _, err := insightRepo.GetByIndustry(context.Background(), "tech-software-development"); err != nil {
		t.Fatalf("insight was not created: %v", err)
	}
}

func TestCompleteOnboardingRollsBackOnInsightFailure(t *testing.T) {
	svc, userRepo, insightRepo := newTestService(t, stubAI{err: errors.New("provider down")})

	if _, err := svc.CompleteOnboarding(context.Background(), "user-1", validRequest()); err == nil {
		t.Fatal("expected onboarding to fail when the insight cannot be ensured")
	}

	user, err := userRepo.GetByID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.Onboarded() {
		t.Fatal("profile update should not survive an insight failure")
	}
	if _, err := insightRepo.GetByIndustry(context.Background(), "tech-software-development"); !errors.Is(err, insights.ErrNotFound) {
		t.Fatalf("insight should not exist: %v", err)
	}
}

func TestCompleteOnboardingReusesExistingInsightWithoutModelCall(t *testing.T) {
	// The model client always fails, so onboarding only succeeds if the
	// cached insight short-circuits generation.
	svc, _, insightRepo := newTestService(t, stubAI{err: errors.New("should not be called")})
	if _, err := insightRepo.Insert(context.Background(), insights.Insight{
		Industry:    "tech-software-development",
		DemandLevel: insights.DemandHigh,
	}); err != nil {
		t.Fatalf("seed insight: %v", err)
	}

	if _, err := svc.CompleteOnboarding(context.Background(), "user-1", validRequest()); err != nil {
		t.Fatalf("CompleteOnboarding: %v", err)
	}
}

func TestCompleteOnboardingRejectsInvalidPayloadBeforeAnyWork(t *testing.T) {
	svc, _, insightRepo := newTestService(t, stubAI{err: errors.New("should not be called")})

	req := validRequest()
	req.Experience = intPtr(51)
	if _, err := svc.CompleteOnboarding(context.Background(), "user-1", req); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	keys, err := insightRepo.ListIndustries(context.Background())
	if err != nil {
		t.Fatalf("ListIndustries: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("no insight work should run for invalid payloads, got %v", keys)
	}
}

func TestOnboardingStatus(t *testing.T) {
	svc, _, _ := newTestService(t, stubAI{resp: insightJSON})

	onboarded, err := svc.OnboardingStatus(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardingStatus: %v", err)
	}
	if onboarded {
		t.Fatal("fresh user should not be onboarded")
	}

	if _, err := svc.CompleteOnboarding(context.Background(), "user-1", validRequest()); err != nil {
		t.Fatalf("CompleteOnboarding: %v", err)
	}

	onboarded, err = svc.OnboardingStatus(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardingStatus: %v", err)
	}
	if !onboarded {
		t.Fatal("user should be onboarded after completing the flow")
	}
}
