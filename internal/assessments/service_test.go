package assessments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"coach-backend/internal/ai"
	"coach-backend/internal/insights"
	"coach-backend/internal/users"
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

// routedAI answers each prompt kind with its own canned response, matching on
// fragments of the prompt templates.
type routedAI struct {
	quizResp string
	tipResp  string
	tipErr   error
}

func (r *routedAI) GenerateContent(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	switch {
	case strings.Contains(prompt, "market analysis") || strings.Contains(prompt, "salaryRanges"):
		return insightJSON, nil
	case strings.Contains(prompt, "interview questions wrong"):
		if r.tipErr != nil {
			return "", r.tipErr
		}
		return r.tipResp, nil
	default:
		return r.quizResp, nil
	}
}

func quizJSON(t *testing.T, n int) string {
	t.Helper()
	questions := make([]Question, n)
	for i := range questions {
		questions[i] = Question{
			Question:      fmt.Sprintf("What is %d?", i),
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: "a",
			Explanation:   "because",
		}
	}
	raw, err := json.Marshal(quizPayload{Questions: questions})
	if err != nil {
		t.Fatalf("marshal quiz: %v", err)
	}
	return string(raw)
}

func newQuizService(t *testing.T, client ai.Client) *Service {
	t.Helper()
	userRepo := users.NewMemoryRepo()
	insightSvc := insights.NewService(insights.NewMemoryRepo(), client)
	userSvc := users.NewService(userRepo, insightSvc)

	if err := userSvc.UpsertFromAuth(context.Background(), "user-1", "u@example.com", "Test User", ""); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	experience := 5
	req := users.OnboardingRequest{
		Industry:    "tech",
		SubIndustry: "Software Development",
		Experience:  &experience,
		Skills:      []string{"Go", "Postgres"},
	}
	if _, err := userSvc.CompleteOnboarding(context.Background(), "user-1", req); err != nil {
		t.Fatalf("onboard user: %v", err)
	}

	svc := NewService(NewMemoryRepo(), userSvc, client)
	svc.Now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestGenerateQuizValidatesQuestions(t *testing.T) {
	client := &routedAI{quizResp: "```json\n" + quizJSON(t, QuizSize) + "\n```"}
	svc := newQuizService(t, client)

	questions, err := svc.GenerateQuiz(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GenerateQuiz: %v", err)
	}
	if len(questions) != QuizSize {
		t.Fatalf("got %d questions, want %d", len(questions), QuizSize)
	}
}

func TestGenerateQuizRejectsWrongQuestionCount(t *testing.T) {
	client := &routedAI{quizResp: quizJSON(t, QuizSize-5)}
	svc := newQuizService(t, client)

	_, err := svc.GenerateQuiz(context.Background(), "user-1")
	if !ai.IsMalformed(err) {
		t.Fatalf("expected malformed response error for short quiz, got %v", err)
	}
}

func TestGenerateQuizRejectsBadOptionCount(t *testing.T) {
	bad := `{"questions":[{"question":"q","options":["a","b"],"correctAnswer":"a","explanation":"e"}]}`
	client := &routedAI{quizResp: bad}
	svc := newQuizService(t, client)

	_, err := svc.GenerateQuiz(context.Background(), "user-1")
	if !ai.IsMalformed(err) {
		t.Fatalf("expected malformed response error, got %v", err)
	}
}

func TestGenerateQuizRejectsAnswerOutsideOptions(t *testing.T) {
	bad := `{"questions":[{"question":"q","options":["a","b","c","d"],"correctAnswer":"z","explanation":"e"}]}`
	client := &routedAI{quizResp: bad}
	svc := newQuizService(t, client)

	_, err := svc.GenerateQuiz(context.Background(), "user-1")
	if !ai.IsMalformed(err) {
		t.Fatalf("expected malformed response error, got %v", err)
	}
}

func TestGenerateQuizRequiresOnboarding(t *testing.T) {
	client := &routedAI{quizResp: quizJSON(t, QuizSize)}
	userRepo := users.NewMemoryRepo()
	insightSvc := insights.NewService(insights.NewMemoryRepo(), client)
	userSvc := users.NewService(userRepo, insightSvc)
	if err := userSvc.UpsertFromAuth(context.Background(), "user-2", "x@example.com", "", ""); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	svc := NewService(NewMemoryRepo(), userSvc, client)

	if _, err := svc.GenerateQuiz(context.Background(), "user-2"); !errors.Is(err, ErrNotOnboarded) {
		t.Fatalf("got %v, want ErrNotOnboarded", err)
	}
}

func TestSaveResultPersistsRecomputedScore(t *testing.T) {
	client := &routedAI{tipResp: "Focus on fundamentals."}
	svc := newQuizService(t, client)

	questions := makeQuestions(15)
	answers := make([]string, 15)
	for i := range answers {
		if i < 12 {
			answers[i] = "a"
		} else {
			answers[i] = "b"
		}
	}

	// Claimed score disagrees with the server-side computation.
	saved, err := svc.SaveResult(context.Background(), "user-1", questions, answers, 100)
	if err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	if saved.QuizScore != 80.0 {
		t.Fatalf("quizScore = %v, want recomputed 80", saved.QuizScore)
	}
	if saved.ImprovementTip != "Focus on fundamentals." {
		t.Fatalf("improvementTip = %q", saved.ImprovementTip)
	}
	if saved.Category != CategoryTechnical {
		t.Fatalf("category = %q", saved.Category)
	}
	if len(saved.Questions) != 15 {
		t.Fatalf("stored %d question results", len(saved.Questions))
	}
}

func TestSaveResultSkipsTipOnPerfectScore(t *testing.T) {
	client := &routedAI{tipErr: errors.New("tip generation must not run")}
	svc := newQuizService(t, client)

	questions := makeQuestions(5)
	answers := []string{"a", "a", "a", "a", "a"}

	saved, err := svc.SaveResult(context.Background(), "user-1", questions, answers, 100)
	if err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	if saved.ImprovementTip != "" {
		t.Fatalf("improvementTip = %q, want empty", saved.ImprovementTip)
	}
}

func TestSaveResultFailsWhenTipGenerationFails(t *testing.T) {
	client := &routedAI{tipErr: &ai.ProviderError{Err: errors.New("provider down")}}
	svc := newQuizService(t, client)

	questions := makeQuestions(5)
	answers := []string{"a", "b", "a", "a", "a"}

	if _, err := svc.SaveResult(context.Background(), "user-1", questions, answers, 80); err == nil {
		t.Fatal("expected save to fail when the tip cannot be generated")
	}

	list, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("assessment was stored despite tip failure: %+v", list)
	}
}

func TestSaveResultRejectsMismatchedAnswerCount(t *testing.T) {
	client := &routedAI{}
	svc := newQuizService(t, client)

	questions := makeQuestions(5)
	_, err := svc.SaveResult(context.Background(), "user-1", questions, []string{"a"}, 20)
	if !errors.Is(err, ErrInvalidSubmission) {
		t.Fatalf("got %v, want ErrInvalidSubmission", err)
	}
}

func TestListReturnsOldestFirst(t *testing.T) {
	client := &routedAI{tipResp: "tip"}
	svc := newQuizService(t, client)

	times := []time.Time{
		time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	}
	for i, ts := range times {
		svc.Now = func() time.Time { return ts }
		questions := makeQuestions(2)
		if _, err := svc.SaveResult(context.Background(), "user-1", questions, []string{"a", "a"}, 100); err != nil {
			t.Fatalf("SaveResult %d: %v", i, err)
		}
	}

	list, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d assessments", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt.Before(list[i-1].CreatedAt) {
			t.Fatalf("assessments not oldest-first: %v", []time.Time{list[0].CreatedAt, list[1].CreatedAt, list[2].CreatedAt})
		}
	}
}
