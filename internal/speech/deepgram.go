package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL  = "https://api.deepgram.com/v1"
	defaultSTTModel = "nova-2"
	defaultTTSModel = "aura-asteria-en"
	defaultTimeout  = 60 * time.Second
)

var (
	ErrNotConfigured       = errors.New("deepgram api key not configured")
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrSynthesisFailed     = errors.New("text-to-speech failed")
)

// Transcriber convierte audio en texto.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)
}

// Synthesizer convierte texto en audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Model() string
}

// Options agrupa los parámetros del cliente de Deepgram.
type Options struct {
	BaseURL  string
	APIKey   string
	STTModel string
	TTSModel string
	Timeout  time.Duration
}

// DeepgramClient implementa Transcriber y Synthesizer contra la API REST de Deepgram.
type DeepgramClient struct {
	opts   Options
	client *http.Client
	logger *zap.Logger
}

func NewDeepgramClient(opts Options, logger *zap.Logger) *DeepgramClient {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.STTModel == "" {
		opts.STTModel = defaultSTTModel
	}
	if opts.TTSModel == "" {
		opts.TTSModel = defaultTTSModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &DeepgramClient{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
		logger: logger,
	}
}

func (c *DeepgramClient) Model() string {
	return c.opts.TTSModel
}

// Transcribe envía el audio crudo a /listen y devuelve el transcript de la
// primera alternativa del primer canal.
func (c *DeepgramClient) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	if c.opts.APIKey == "" {
		return "", ErrNotConfigured
	}

	q := url.Values{}
	q.Set("model", c.opts.STTModel)
	q.Set("smart_format", "true")
	endpoint := c.opts.BaseURL + "/listen?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.opts.APIKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	body, status, err := c.do(req)
	if err != nil {
		c.logger.Warn("deepgram listen request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}
	if status != http.StatusOK {
		c.logger.Warn("deepgram listen error response", zap.Int("status", status), zap.ByteString("body", body))
		return "", ErrTranscriptionFailed
	}

	var lr listenResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return "", fmt.Errorf("%w: unmarshal response: %v", ErrTranscriptionFailed, err)
	}
	if len(lr.Results.Channels) == 0 || len(lr.Results.Channels[0].Alternatives) == 0 {
		return "", fmt.Errorf("%w: no alternatives in response", ErrTranscriptionFailed)
	}
	return lr.Results.Channels[0].Alternatives[0].Transcript, nil
}

// Synthesize envía el texto a /speak y devuelve los bytes de audio tal cual.
func (c *DeepgramClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if c.opts.APIKey == "" {
		return nil, ErrNotConfigured
	}

	payload, err := json.Marshal(speakRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	q := url.Values{}
	q.Set("model", c.opts.TTSModel)
	endpoint := c.opts.BaseURL + "/speak?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.opts.APIKey)
	req.Header.Set("Content-Type", "application/json")

	body, status, err := c.do(req)
	if err != nil {
		c.logger.Warn("deepgram speak request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSynthesisFailed, err)
	}
	if status != http.StatusOK {
		c.logger.Warn("deepgram speak error response", zap.Int("status", status), zap.ByteString("body", body))
		return nil, ErrSynthesisFailed
	}
	return body, nil
}

func (c *DeepgramClient) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

type speakRequest struct {
	Text string `json:"text"`
}

type listenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}
