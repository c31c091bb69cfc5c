package resumes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"coach-backend/internal/ai"
	"coach-backend/internal/extract"
	"coach-backend/internal/shared/telemetry"
	"coach-backend/internal/users"
)

// ErrNotOnboarded is returned when an AI rewrite needs an industry the user
// has not picked yet.
var ErrNotOnboarded = errors.New("user has not completed onboarding")

// ErrEmptyContent is returned for saves and rewrites with nothing to work on.
var ErrEmptyContent = errors.New("resume content is empty")

// Service owns resume persistence and AI-assisted rewrites.
type Service struct {
	Repo  Repo
	Users *users.Service
	AI    ai.Client

	NewID func() string
}

func NewService(repo Repo, userSvc *users.Service, client ai.Client) *Service {
	return &Service{
		Repo:  repo,
		Users: userSvc,
		AI:    client,
		NewID: func() string { return uuid.NewString() },
	}
}

// Save upserts the user's resume.
func (s *Service) Save(ctx context.Context, userID, content string) (Resume, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Resume{}, ErrEmptyContent
	}
	return s.Repo.Upsert(ctx, Resume{
		ID:      s.NewID(),
		UserID:  userID,
		Content: content,
	})
}

func (s *Service) Get(ctx context.Context, userID string) (Resume, error) {
	return s.Repo.GetByUser(ctx, userID)
}

// Improve rewrites one resume section with the model, tuned to the user's
// industry. It returns the rewritten text without persisting it; the client
// decides whether to keep it.
func (s *Service) Improve(ctx context.Context, userID, section, current string) (string, error) {
	current = strings.TrimSpace(current)
	if current == "" {
		return "", ErrEmptyContent
	}
	if section == "" {
		section = "summary"
	}

	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !user.Onboarded() {
		return "", ErrNotOnboarded
	}

	improved, err := s.AI.GenerateContent(ctx, ai.ImproveResumePrompt(section, *user.Industry, current))
	if err != nil {
		return "", err
	}
	improved = strings.TrimSpace(improved)
	if improved == "" {
		return "", &ai.MalformedResponseError{Raw: improved, Err: fmt.Errorf("empty rewrite")}
	}
	return improved, nil
}

// Import extracts text from an uploaded resume file and stores it as the
// user's resume content.
func (s *Service) Import(ctx context.Context, userID string, data []byte, mimeType, fileName string) (Resume, error) {
	text, err := extract.TextFromBytes(ctx, data, mimeType, fileName)
	if err != nil {
		return Resume{}, err
	}
	if text == "" {
		return Resume{}, ErrEmptyContent
	}
	resume, err := s.Save(ctx, userID, text)
	if err != nil {
		return Resume{}, err
	}
	telemetry.Info("resume.imported", map[string]any{
		"user_id":   userID,
		"file_name": fileName,
		"chars":     len(text),
	})
	return resume, nil
}
