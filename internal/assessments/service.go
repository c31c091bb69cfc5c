package assessments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"coach-backend/internal/ai"
	"coach-backend/internal/shared/metrics"
	"coach-backend/internal/shared/telemetry"
	"coach-backend/internal/users"
)

// ErrNotOnboarded is returned when a quiz operation needs an industry the
// user has not picked yet.
var ErrNotOnboarded = errors.New("user has not completed onboarding")

// ErrInvalidSubmission is returned for quiz submissions that do not line up
// with their questions.
var ErrInvalidSubmission = errors.New("invalid quiz submission")

// Service generates quizzes and records scored attempts.
type Service struct {
	Repo  Repo
	Users *users.Service
	AI    ai.Client

	Now   func() time.Time
	NewID func() string
}

func NewService(repo Repo, userSvc *users.Service, client ai.Client) *Service {
	return &Service{
		Repo:  repo,
		Users: userSvc,
		AI:    client,
		Now:   time.Now,
		NewID: func() string { return uuid.NewString() },
	}
}

type quizPayload struct {
	Questions []Question `json:"questions"`
}

// GenerateQuiz produces a technical quiz tailored to the user's industry and
// skills. The payload is validated before it reaches the client so every
// question is renderable and scoreable.
func (s *Service) GenerateQuiz(ctx context.Context, userID string) ([]Question, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Onboarded() {
		return nil, ErrNotOnboarded
	}

	raw, err := s.AI.GenerateContent(ctx, ai.QuizPrompt(QuizSize, *user.Industry, user.Skills))
	if err != nil {
		return nil, err
	}
	var payload quizPayload
	if err := ai.DecodeJSON(raw, &payload); err != nil {
		return nil, err
	}
	if err := validateQuiz(payload.Questions); err != nil {
		return nil, &ai.MalformedResponseError{Raw: raw, Err: err}
	}
	// The prompt asks for exactly QuizSize questions; a short or long reply is
	// a malformed response, not a smaller quiz.
	if len(payload.Questions) != QuizSize {
		return nil, &ai.MalformedResponseError{
			Raw: raw,
			Err: fmt.Errorf("quiz has %d questions, want %d", len(payload.Questions), QuizSize),
		}
	}

	metrics.IncQuizGenerated()
	return payload.Questions, nil
}

func validateQuiz(questions []Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("quiz has no questions")
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("question %d is empty", i)
		}
		if len(q.Options) != optionsPerQuestion {
			return fmt.Errorf("question %d has %d options, want %d", i, len(q.Options), optionsPerQuestion)
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("question %d: correct answer is not among the options", i)
		}
	}
	return nil
}

// SaveResult scores the submission server-side and persists it. The stored
// score is always the recomputed one; a client-claimed score that disagrees
// is logged and ignored.
func (s *Service) SaveResult(ctx context.Context, userID string, questions []Question, answers []string, claimedScore float64) (Assessment, error) {
	if len(questions) == 0 {
		return Assessment{}, fmt.Errorf("%w: questions are required", ErrInvalidSubmission)
	}
	if len(answers) != len(questions) {
		return Assessment{}, fmt.Errorf("%w: %d answers for %d questions", ErrInvalidSubmission, len(answers), len(questions))
	}
	if err := validateQuiz(questions); err != nil {
		return Assessment{}, fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}

	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return Assessment{}, err
	}
	if !user.Onboarded() {
		return Assessment{}, ErrNotOnboarded
	}

	results := make([]QuestionResult, len(questions))
	var wrong []QuestionResult
	for i, q := range questions {
		result := QuestionResult{
			Question:    q.Question,
			Answer:      q.CorrectAnswer,
			UserAnswer:  answers[i],
			IsCorrect:   answers[i] == q.CorrectAnswer,
			Explanation: q.Explanation,
		}
		results[i] = result
		if !result.IsCorrect {
			wrong = append(wrong, result)
		}
	}

	score := Score(questions, answers)
	if claimedScore != score {
		telemetry.Warn("quiz.score_mismatch", map[string]any{
			"user_id":  userID,
			"claimed":  claimedScore,
			"computed": score,
		})
	}

	tip := ""
	if len(wrong) > 0 {
		tip, err = s.improvementTip(ctx, *user.Industry, wrong)
		if err != nil {
			return Assessment{}, err
		}
	}

	now := s.Now()
	assessment := Assessment{
		ID:             s.NewID(),
		UserID:         userID,
		QuizScore:      score,
		Questions:      results,
		Category:       CategoryTechnical,
		ImprovementTip: tip,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(ctx, assessment); err != nil {
		return Assessment{}, err
	}

	metrics.IncAssessmentSaved()
	telemetry.Info("assessment.saved", map[string]any{
		"user_id": userID,
		"score":   score,
		"wrong":   len(wrong),
	})
	return assessment, nil
}

// improvementTip asks the model for a short study tip built from the missed
// questions. A failure here fails the save: an attempt with missed questions
// is never stored without its tip.
func (s *Service) improvementTip(ctx context.Context, industry string, wrong []QuestionResult) (string, error) {
	var b strings.Builder
	for _, w := range wrong {
		fmt.Fprintf(&b, "Question: \"%s\"\nCorrect Answer: \"%s\"\nUser Answer: \"%s\"\n\n", w.Question, w.Answer, w.UserAnswer)
	}
	tip, err := s.AI.GenerateContent(ctx, ai.ImprovementPrompt(industry, b.String()))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(tip), nil
}

// List returns the user's assessments oldest-first.
func (s *Service) List(ctx context.Context, userID string) ([]Assessment, error) {
	return s.Repo.ListByUser(ctx, userID)
}
