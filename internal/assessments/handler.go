package assessments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/shared/server/middleware"
	"coach-backend/internal/shared/server/respond"
	"coach-backend/internal/users"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/interview/quiz", h.generateQuiz)
	rg.POST("/interview/quiz/results", h.saveResult)
	rg.GET("/interview/assessments", h.list)
}

func (h *Handler) generateQuiz(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	questions, err := h.Svc.GenerateQuiz(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err, "failed to generate quiz")
		return
	}
	respond.Result(c, http.StatusOK, "Quiz generated", questions)
}

type saveResultRequest struct {
	Questions []Question `json:"questions"`
	Answers   []string   `json:"answers"`
	Score     float64    `json:"score"`
}

func (h *Handler) saveResult(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req saveResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "invalid request body", nil)
		return
	}

	assessment, err := h.Svc.SaveResult(c.Request.Context(), userID, req.Questions, req.Answers, req.Score)
	if err != nil {
		h.respondError(c, err, "failed to save quiz result")
		return
	}
	respond.Result(c, http.StatusCreated, "Quiz result saved", assessment)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	assessments, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list assessments", nil)
		return
	}
	if assessments == nil {
		assessments = []Assessment{}
	}
	respond.JSON(c, http.StatusOK, assessments)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotOnboarded):
		respond.Error(c, http.StatusBadRequest, "validation_failed", "complete onboarding first", nil)
	case errors.Is(err, ErrInvalidSubmission):
		respond.Error(c, http.StatusBadRequest, "validation_failed", err.Error(), nil)
	case errors.Is(err, users.ErrNotFound):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "user not found", nil)
	case respond.AIError(c, err):
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", fallback, nil)
	}
}
