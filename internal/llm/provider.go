package llm

import (
	"context"
	"errors"
	"fmt"
)

// ChatMessage es un turno del historial enviado al proveedor.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMClient define la interfaz para obtener respuestas de un modelo de chat.
type LLMClient interface {
	Chat(ctx context.Context, messages []ChatMessage) (string, error)
	Configured() bool
}

var (
	ErrNotConfigured = errors.New("openrouter api key not configured")
	ErrTimeout       = errors.New("request to openrouter timed out")
	ErrRequestFailed = errors.New("request error")
	ErrEmptyResponse = errors.New("llm empty response")
)

// UpstreamError representa una respuesta no-2xx del proveedor.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("AI response failed with status %d", e.StatusCode)
}
