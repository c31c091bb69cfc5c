// Package dashboard serves the industry-insight view for the signed-in user.
// It sits above users and insights so neither package depends on the other.
package dashboard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/insights"
	"coach-backend/internal/shared/server/middleware"
	"coach-backend/internal/shared/server/respond"
	"coach-backend/internal/users"
)

type Handler struct {
	Users    *users.Service
	Insights *insights.Service
}

func NewHandler(userSvc *users.Service, insightSvc *insights.Service) *Handler {
	return &Handler{Users: userSvc, Insights: insightSvc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/insights", h.industryInsights)
}

// RegisterDevRoutes attaches routes only exposed outside production.
func (h *Handler) RegisterDevRoutes(rg *gin.RouterGroup) {
	rg.POST("/insights/refresh", h.refreshAll)
}

func (h *Handler) industryInsights(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	user, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load user", nil)
		return
	}
	if !user.Onboarded() {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "complete onboarding first", nil)
		return
	}

	insight, err := h.Insights.EnsureInsights(c.Request.Context(), *user.Industry)
	if err != nil {
		if respond.AIError(c, err) {
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load industry insights", nil)
		return
	}
	respond.JSON(c, http.StatusOK, insight)
}

func (h *Handler) refreshAll(c *gin.Context) {
	summary, err := h.Insights.RefreshAll(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "refresh run failed", nil)
		return
	}
	failed := make([]gin.H, 0, len(summary.Failed))
	for _, f := range summary.Failed {
		failed = append(failed, gin.H{"industry": f.Industry, "error": f.Err.Error()})
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"refreshed": summary.Refreshed,
		"failed":    failed,
	})
}
