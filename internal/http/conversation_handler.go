package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voice-relay/internal/service"
)

// ConversationHandler mantiene dependencias para los endpoints de conversaciones.
type ConversationHandler struct {
	logger *zap.Logger
	convs  *service.ConversationService
}

// NewConversationHandler crea una instancia de ConversationHandler.
func NewConversationHandler(logger *zap.Logger, convs *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{
		logger: logger,
		convs:  convs,
	}
}

// ListConversations maneja GET /api/conversations.
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	list, err := h.convs.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "invalid request")
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": list})
}

// CreateConversation maneja POST /api/conversations. El body es opcional.
func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	var req struct {
		Title string `json:"title"`
	}
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	conv, err := h.convs.Create(c.Request.Context(), req.Title)
	if err != nil {
		writeError(c, h.logger, err, "invalid request")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":         conv.ID,
		"title":      conv.Title,
		"created_at": conv.CreatedAt,
	})
}

// GetConversation maneja GET /api/conversations/:id.
func (h *ConversationHandler) GetConversation(c *gin.Context) {
	conv, err := h.convs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err, "invalid request")
		return
	}
	c.JSON(http.StatusOK, conv)
}

// UpdateConversation maneja PUT /api/conversations/:id.
func (h *ConversationHandler) UpdateConversation(c *gin.Context) {
	var req struct {
		Title string `json:"title"`
	}
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	conv, err := h.convs.UpdateTitle(c.Request.Context(), c.Param("id"), req.Title)
	if err != nil {
		writeError(c, h.logger, err, "invalid request")
		return
	}
	c.JSON(http.StatusOK, conv)
}

// DeleteConversation maneja DELETE /api/conversations/:id.
func (h *ConversationHandler) DeleteConversation(c *gin.Context) {
	if err := h.convs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.logger, err, "invalid request")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AddMessage maneja POST /api/conversations/:id/messages.
func (h *ConversationHandler) AddMessage(c *gin.Context) {
	var req struct {
		Role    string `json:"role" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid add message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "role and content are required"})
		return
	}

	msg, err := h.convs.AddMessage(c.Request.Context(), c.Param("id"), req.Role, req.Content)
	if err != nil {
		writeError(c, h.logger, err, "role must be system, user or assistant and content must not be empty")
		return
	}
	c.JSON(http.StatusOK, msg)
}

// UpdateMessage maneja PUT /api/conversations/:id/messages/:msgId.
func (h *ConversationHandler) UpdateMessage(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	msg, err := h.convs.EditMessage(c.Request.Context(), c.Param("id"), c.Param("msgId"), req.Content)
	if err != nil {
		writeError(c, h.logger, err, "content is required")
		return
	}
	c.JSON(http.StatusOK, msg)
}

// DeleteMessage maneja DELETE /api/conversations/:id/messages/:msgId.
func (h *ConversationHandler) DeleteMessage(c *gin.Context) {
	if err := h.convs.DeleteMessage(c.Request.Context(), c.Param("id"), c.Param("msgId")); err != nil {
		writeError(c, h.logger, err, "invalid request")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// bindOptionalJSON acepta un body vacío; sólo falla con JSON malformado.
func (h *ConversationHandler) bindOptionalJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("invalid conversation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return false
	}
	return true
}
