// Package bootstrap wires configuration, storage, AI, services, and the
// router into a runnable application.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/ai"
	"coach-backend/internal/ai/gemini"
	"coach-backend/internal/assessments"
	googleauth "coach-backend/internal/auth"
	"coach-backend/internal/coverletters"
	"coach-backend/internal/dashboard"
	"coach-backend/internal/insights"
	"coach-backend/internal/resumes"
	"coach-backend/internal/shared/config"
	"coach-backend/internal/shared/server"
	"coach-backend/internal/shared/storage/db"
	"coach-backend/internal/users"
)

// App holds the wired application.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	AI     ai.Client

	UsersRepo        users.Repo
	InsightsRepo     insights.Repo
	AssessmentsRepo  assessments.Repo
	ResumesRepo      resumes.Repo
	CoverLettersRepo coverletters.Repo

	InsightsService     *insights.Service
	UsersService        *users.Service
	AssessmentsService  *assessments.Service
	ResumesService      *resumes.Service
	CoverLettersService *coverletters.Service
	GoogleAuth          *googleauth.GoogleService
}

// Build prepares all dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	aiClient, err := buildAI(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		AI:     aiClient,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              cfg,
		GoogleAuth:          app.GoogleAuth,
		UsersHandler:        users.NewHandler(app.UsersService),
		DashboardHandler:    dashboard.NewHandler(app.UsersService, app.InsightsService),
		AssessmentsHandler:  assessments.NewHandler(app.AssessmentsService),
		ResumesHandler:      resumes.NewHandler(app.ResumesService),
		CoverLettersHandler: coverletters.NewHandler(app.CoverLettersService),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildAI(ctx context.Context, cfg config.Config) (ai.Client, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: GEMINI_API_KEY empty; AI endpoints will report provider_error")
			return ai.Nop{}, nil
		}
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITimeout)
	if err != nil {
		return nil, fmt.Errorf("build gemini client: %w", err)
	}
	return ai.NewRetryClient(client, cfg.AIMaxRetries, 500*time.Millisecond), nil
}

func buildServices(app *App) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.InsightsRepo = &insights.PGRepo{DB: app.DB}
		app.AssessmentsRepo = &assessments.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.CoverLettersRepo = &coverletters.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.InsightsRepo = insights.NewMemoryRepo()
		app.AssessmentsRepo = assessments.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.CoverLettersRepo = coverletters.NewMemoryRepo()
	}

	app.InsightsService = insights.NewService(app.InsightsRepo, app.AI)
	app.UsersService = users.NewService(app.UsersRepo, app.InsightsService)
	app.AssessmentsService = assessments.NewService(app.AssessmentsRepo, app.UsersService, app.AI)
	app.ResumesService = resumes.NewService(app.ResumesRepo, app.UsersService, app.AI)
	app.CoverLettersService = coverletters.NewService(app.CoverLettersRepo, app.UsersService, app.AI)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
