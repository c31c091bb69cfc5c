package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/assessments"
	googleauth "coach-backend/internal/auth"
	"coach-backend/internal/coverletters"
	"coach-backend/internal/dashboard"
	"coach-backend/internal/resumes"
	"coach-backend/internal/shared/config"
	"coach-backend/internal/shared/metrics"
	"coach-backend/internal/shared/server/middleware"
	"coach-backend/internal/shared/server/respond"
	"coach-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config              config.Config
	GoogleAuth          *googleauth.GoogleService
	UsersHandler        *users.Handler
	DashboardHandler    *dashboard.Handler
	AssessmentsHandler  *assessments.Handler
	ResumesHandler      *resumes.Handler
	CoverLettersHandler *coverletters.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				// Generation endpoints hit the AI provider, so they get a
				// tighter budget than plain reads.
				"AI": {Rate: 0.5, Burst: 5},
			},
			GroupFor: aiRouteGroup,
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.RegisterRoutes(api.Group("/dashboard"))
	}
	if deps.AssessmentsHandler != nil {
		deps.AssessmentsHandler.RegisterRoutes(api)
	}
	if deps.ResumesHandler != nil {
		deps.ResumesHandler.RegisterRoutes(api)
	}
	if deps.CoverLettersHandler != nil {
		deps.CoverLettersHandler.RegisterRoutes(api)
	}

	if deps.Config.Env == "dev" && deps.DashboardHandler != nil {
		deps.DashboardHandler.RegisterDevRoutes(api.Group("/dev"))
	}

	return r
}

// aiRouteGroup buckets requests that trigger model calls.
func aiRouteGroup(c *gin.Context) string {
	path := c.Request.URL.Path
	switch {
	case c.Request.Method == http.MethodPost && strings.HasPrefix(path, "/api/v1/interview/quiz"),
		c.Request.Method == http.MethodPost && path == "/api/v1/cover-letters",
		c.Request.Method == http.MethodPost && path == "/api/v1/resume/improve",
		path == "/api/v1/dashboard/insights":
		return "AI"
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
