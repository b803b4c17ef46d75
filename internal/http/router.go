package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// NewRouter configura el router de Gin con middlewares y rutas de la API.
func NewRouter(
	logger *zap.Logger,
	convH *ConversationHandler,
	chatH *ChatHandler,
	speechH *SpeechHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: request id + logging, recovery y CORS.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), corsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	conversations := api.Group("/conversations")
	conversations.GET("", convH.ListConversations)
	conversations.POST("", convH.CreateConversation)
	conversations.GET("/:id", convH.GetConversation)
	conversations.PUT("/:id", convH.UpdateConversation)
	conversations.DELETE("/:id", convH.DeleteConversation)
	conversations.POST("/:id/messages", convH.AddMessage)
	conversations.PUT("/:id/messages/:msgId", convH.UpdateMessage)
	conversations.DELETE("/:id/messages/:msgId", convH.DeleteMessage)

	api.POST("/chat", chatH.Chat)
	api.POST("/transcribe", speechH.Transcribe)
	api.POST("/text-to-speech", speechH.TextToSpeech)

	return r
}

// zapLoggerMiddleware asigna un request id y loguea cada request con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, requestID)

		c.Next()

		latency := time.Since(start)
		logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// corsMiddleware habilita CORS para cualquier origen; el front se sirve aparte.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+requestIDHeader)
		h.Set("Access-Control-Expose-Headers", requestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
