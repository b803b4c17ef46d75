package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voice-relay/internal/service"
)

// ChatHandler expone el relay de chat.
type ChatHandler struct {
	logger   *zap.Logger
	chatServ *service.ChatService
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, chatServ *service.ChatService) *ChatHandler {
	return &ChatHandler{
		logger:   logger,
		chatServ: chatServ,
	}
}

// Chat maneja POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req struct {
		ConversationID string `json:"conversation_id"`
		Message        string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	h.logger.Debug("chat request",
		zap.String("conversation_id", req.ConversationID),
		zap.Int("message_len", len(req.Message)),
	)

	reply, err := h.chatServ.Reply(c.Request.Context(), service.ChatInput{
		ConversationID: req.ConversationID,
		Message:        req.Message,
	})
	if err != nil {
		writeError(c, h.logger, err, "conversation_id or message is required")
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply})
}
