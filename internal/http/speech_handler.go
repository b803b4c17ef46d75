package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voice-relay/internal/service"
)

// SpeechHandler expone los relays de transcripción y síntesis.
type SpeechHandler struct {
	logger        *zap.Logger
	speechServ    *service.SpeechService
	maxAudioBytes int64
}

func NewSpeechHandler(logger *zap.Logger, speechServ *service.SpeechService, maxAudioBytes int64) *SpeechHandler {
	return &SpeechHandler{
		logger:        logger,
		speechServ:    speechServ,
		maxAudioBytes: maxAudioBytes,
	}
}

// Transcribe maneja POST /api/transcribe (multipart, campo "audio").
func (h *SpeechHandler) Transcribe(c *gin.Context) {
	if h.maxAudioBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxAudioBytes)
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No audio file provided"})
			return
		}
		h.logger.Warn("invalid audio upload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid audio upload"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		writeError(c, h.logger, err, "No audio file provided")
		return
	}
	defer f.Close()

	audio, err := io.ReadAll(f)
	if err != nil {
		writeError(c, h.logger, err, "No audio file provided")
		return
	}

	transcript, err := h.speechServ.Transcribe(c.Request.Context(), audio, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		writeError(c, h.logger, err, "No audio file provided")
		return
	}
	c.JSON(http.StatusOK, gin.H{"transcript": transcript})
}

// TextToSpeech maneja POST /api/text-to-speech.
func (h *SpeechHandler) TextToSpeech(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("invalid text-to-speech request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	audio, err := h.speechServ.Synthesize(c.Request.Context(), req.Text)
	if err != nil {
		writeError(c, h.logger, err, "No text provided")
		return
	}
	c.JSON(http.StatusOK, gin.H{"audio": audio})
}
