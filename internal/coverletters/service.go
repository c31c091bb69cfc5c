package coverletters

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

// ErrNotOnboarded is returned when generation needs a profile the user has
// not filled in yet.
var ErrNotOnboarded = errors.New("user has not completed onboarding")

// GenerateInput is the job posting a letter is written for.
type GenerateInput struct {
	JobTitle       string `json:"jobTitle"`
	CompanyName    string `json:"companyName"`
	JobDescription string `json:"jobDescription"`
}

// ValidationError reports a rejected generation payload.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (in GenerateInput) validate() error {
	if strings.TrimSpace(in.JobTitle) == "" {
		return &ValidationError{Field: "jobTitle"}
	}
	if strings.TrimSpace(in.CompanyName) == "" {
		return &ValidationError{Field: "companyName"}
	}
	if strings.TrimSpace(in.JobDescription) == "" {
		return &ValidationError{Field: "jobDescription"}
	}
	return nil
}

// Service generates and stores cover letters.
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

// Generate writes a letter from the user's profile and the job posting and
// stores it. Users can keep as many letters as they like.
func (s *Service) Generate(ctx context.Context, userID string, input GenerateInput) (CoverLetter, error) {
	if err := input.validate(); err != nil {
		return CoverLetter{}, err
	}

	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return CoverLetter{}, err
	}
	if !user.Onboarded() {
		return CoverLetter{}, ErrNotOnboarded
	}

	experience := 0
	if user.Experience != nil {
		experience = *user.Experience
	}
	prompt := ai.CoverLetterPrompt(
		strings.TrimSpace(input.JobTitle),
		strings.TrimSpace(input.CompanyName),
		*user.Industry,
		experience,
		user.Skills,
		user.Bio,
		strings.TrimSpace(input.JobDescription),
	)
	content, err := s.AI.GenerateContent(ctx, prompt)
	if err != nil {
		return CoverLetter{}, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return CoverLetter{}, &ai.MalformedResponseError{Raw: content, Err: errors.New("empty letter")}
	}

	now := s.Now()
	letter := CoverLetter{
		ID:             s.NewID(),
		UserID:         userID,
		Content:        content,
		JobDescription: strings.TrimSpace(input.JobDescription),
		CompanyName:    strings.TrimSpace(input.CompanyName),
		JobTitle:       strings.TrimSpace(input.JobTitle),
		Status:         StatusCompleted,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(ctx, letter); err != nil {
		return CoverLetter{}, err
	}

	metrics.IncCoverLetterGenerated()
	telemetry.Info("coverletter.generated", map[string]any{
		"user_id": userID,
		"company": letter.CompanyName,
	})
	return letter, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]CoverLetter, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, letterID string) (CoverLetter, error) {
	return s.Repo.GetByID(ctx, userID, letterID)
}

func (s *Service) Delete(ctx context.Context, userID, letterID string) error {
	return s.Repo.Delete(ctx, userID, letterID)
}
