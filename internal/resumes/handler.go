package resumes

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/extract"
	"coach-backend/internal/shared/server/middleware"
	"coach-backend/internal/shared/server/respond"
	"coach-backend/internal/shared/util"
	"coach-backend/internal/users"
)

const maxImportSize = 10 << 20 // 10MB

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume", h.save)
	rg.GET("/resume", h.get)
	rg.POST("/resume/improve", h.improve)
	rg.POST("/resume/import", h.importFile)
}

type saveRequest struct {
	Content string `json:"content"`
}

func (h *Handler) save(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "invalid request body", nil)
		return
	}

	resume, err := h.Svc.Save(c.Request.Context(), userID, req.Content)
	if err != nil {
		h.respondError(c, err, "failed to save resume")
		return
	}
	respond.Result(c, http.StatusOK, "Resume saved", resume)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	resume, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load resume", nil)
		return
	}
	respond.JSON(c, http.StatusOK, resume)
}

type improveRequest struct {
	Section string `json:"section"`
	Current string `json:"current"`
}

func (h *Handler) improve(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req improveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "invalid request body", nil)
		return
	}

	improved, err := h.Svc.Improve(c.Request.Context(), userID, req.Section, req.Current)
	if err != nil {
		h.respondError(c, err, "failed to improve resume")
		return
	}
	respond.Result(c, http.StatusOK, "Resume section improved", gin.H{"content": improved})
}

func (h *Handler) importFile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "unable to read file", nil)
		return
	}

	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_failed", "invalid file name", nil)
		return
	}

	resume, err := h.Svc.Import(c.Request.Context(), userID, data, fileHeader.Header.Get("Content-Type"), fileName)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			respond.Error(c, http.StatusBadRequest, "validation_failed", "only PDF and plain text files are supported", nil)
			return
		}
		h.respondError(c, err, "failed to import resume")
		return
	}
	respond.Result(c, http.StatusCreated, "Resume imported", resume)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrEmptyContent):
		respond.Error(c, http.StatusBadRequest, "validation_failed", err.Error(), nil)
	case errors.Is(err, ErrNotOnboarded):
		respond.Error(c, http.StatusBadRequest, "validation_failed", "complete onboarding first", nil)
	case errors.Is(err, users.ErrNotFound):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "user not found", nil)
	case respond.AIError(c, err):
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", fallback, nil)
	}
}
