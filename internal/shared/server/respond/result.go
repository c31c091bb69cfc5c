package respond

import (
	"errors"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/ai"
)

// Result sends the workflow success envelope.
func Result(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// AIError maps AI failures to their error responses. It reports false when
// the error is not an AI failure so the caller can handle it.
func AIError(c *gin.Context, err error) bool {
	switch {
	case ai.IsMalformed(err):
		Error(c, 502, "malformed_ai_response", "the AI returned an unusable response", nil)
		return true
	case ai.IsProviderFailure(err), errors.Is(err, ai.ErrNotConfigured):
		Error(c, 502, "provider_error", "the AI provider is unavailable", nil)
		return true
	}
	return false
}
