package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "openai/gpt-3.5-turbo"
	defaultTimeout = 30 * time.Second
	previewLimit   = 500
)

// Options agrupa los parámetros del cliente de chat completions.
type Options struct {
	BaseURL  string
	APIKey   string
	Model    string
	Referer  string
	AppTitle string
	Timeout  time.Duration
}

// HTTPClient implementa LLMClient usando una API de chat completions compatible con OpenAI.
type HTTPClient struct {
	opts   Options
	client *http.Client
	logger *zap.Logger
}

// NewHTTPClient construye un cliente HTTP apuntando a la API de chat completions.
func NewHTTPClient(opts Options, logger *zap.Logger) *HTTPClient {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &HTTPClient{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
		logger: logger,
	}
}

func (c *HTTPClient) Configured() bool {
	return c != nil && c.opts.APIKey != ""
}

func (c *HTTPClient) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	reqBody := chatRequest{
		Model:    c.opts.Model,
		Messages: messages,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	c.logger.Debug("sending chat request",
		zap.Int("messages", len(messages)),
		zap.String("payload", preview(string(bodyBytes))),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if c.opts.Referer != "" {
		req.Header.Set("HTTP-Referer", c.opts.Referer)
	}
	if c.opts.AppTitle != "" {
		req.Header.Set("X-Title", c.opts.AppTitle)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("%w: read response: %v", ErrRequestFailed, err)
	}
	c.logger.Debug("chat response received",
		zap.Int("status", resp.StatusCode),
		zap.String("body", preview(string(respBody))),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("llm error response", zap.Int("status", resp.StatusCode), zap.String("body", preview(string(respBody))))
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var cr chatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return "", fmt.Errorf("%w: unmarshal response: %v", ErrEmptyResponse, err)
	}

	if cr.Error != nil {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: cr.Error.Message}
	}

	if len(cr.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return cr.Choices[0].Message.Content, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func preview(s string) string {
	if len(s) <= previewLimit {
		return s
	}
	return s[:previewLimit] + "..."
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}
