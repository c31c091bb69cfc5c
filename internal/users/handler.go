package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/shared/server/middleware"
	"coach-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.POST("/me/onboarding", h.onboard)
	rg.GET("/me/onboarding/status", h.onboardingStatus)
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load user", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toProfile(user))
}

func (h *Handler) onboard(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "invalid request body", nil)
		return
	}

	user, err := h.Svc.CompleteOnboarding(c.Request.Context(), userID, req)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			respond.Error(c, http.StatusBadRequest, "validation_failed", ve.Reason, gin.H{"field": ve.Field})
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "user not found", nil)
		case respond.AIError(c, err):
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to complete onboarding", nil)
		}
		return
	}

	respond.Result(c, http.StatusOK, "Onboarding completed", toProfile(user))
}

func (h *Handler) onboardingStatus(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	onboarded, err := h.Svc.OnboardingStatus(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load onboarding status", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"isOnboarded": onboarded})
}

func toProfile(user User) gin.H {
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"fullName":   user.FullName,
		"imageUrl":   user.ImageURL,
		"industry":   user.Industry,
		"experience": user.Experience,
		"skills":     user.Skills,
		"bio":        user.Bio,
	}
}
