package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voice-relay/internal/llm"
	"voice-relay/internal/service"
	"voice-relay/internal/speech"
)

// writeError traduce errores de dominio y de los relays a respuestas JSON.
// invalidMsg es el mensaje usado para errores de validación.
func writeError(c *gin.Context, logger *zap.Logger, err error, invalidMsg string) {
	var upstream *llm.UpstreamError

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidMsg})
	case errors.Is(err, service.ErrConversationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
	case errors.Is(err, service.ErrMessageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
	case errors.Is(err, llm.ErrNotConfigured):
		logger.Error("llm not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "OpenRouter API key not configured"})
	case errors.Is(err, speech.ErrNotConfigured):
		logger.Error("speech provider not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Deepgram API key not configured"})
	case errors.As(err, &upstream):
		logger.Error("llm upstream error", zap.Int("status", upstream.StatusCode), zap.String("body", upstream.Body))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  upstream.Error(),
			"detail": upstream.Body,
		})
	case errors.Is(err, llm.ErrTimeout):
		logger.Error("llm timeout", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Request to OpenRouter timed out"})
	case errors.Is(err, llm.ErrRequestFailed):
		logger.Error("llm request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Request to OpenRouter failed"})
	case errors.Is(err, speech.ErrTranscriptionFailed):
		logger.Warn("transcription failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transcription failed"})
	case errors.Is(err, speech.ErrSynthesisFailed):
		logger.Warn("synthesis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Text-to-speech failed"})
	default:
		logger.Error("unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
	}
}
