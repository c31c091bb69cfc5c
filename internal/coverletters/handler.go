package coverletters

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
	rg.POST("/cover-letters", h.generate)
	rg.GET("/cover-letters", h.list)
	rg.GET("/cover-letters/:id", h.get)
	rg.DELETE("/cover-letters/:id", h.delete)
}

func (h *Handler) generate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var input GenerateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "invalid request body", nil)
		return
	}

	letter, err := h.Svc.Generate(c.Request.Context(), userID, input)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			respond.Error(c, http.StatusBadRequest, "validation_failed", ve.Error(), gin.H{"field": ve.Field})
		case errors.Is(err, ErrNotOnboarded):
			respond.Error(c, http.StatusBadRequest, "validation_failed", "complete onboarding first", nil)
		case errors.Is(err, users.ErrNotFound):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "user not found", nil)
		case respond.AIError(c, err):
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to generate cover letter", nil)
		}
		return
	}
	respond.Result(c, http.StatusCreated, "Cover letter generated", letter)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	letters, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list cover letters", nil)
		return
	}
	if letters == nil {
		letters = []CoverLetter{}
	}
	respond.JSON(c, http.StatusOK, letters)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	letter, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "cover letter not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load cover letter", nil)
		return
	}
	respond.JSON(c, http.StatusOK, letter)
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "cover letter not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to delete cover letter", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"deleted": true})
}
