package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"voice-relay/internal/cache"
	"voice-relay/internal/speech"
)

var ErrSpeechServiceNotConfigured = errors.New("speech service not configured")

// SpeechService reenvía audio y texto al proveedor de voz.
type SpeechService struct {
	transcriber speech.Transcriber
	synthesizer speech.Synthesizer
	audioCache  cache.AudioCache
	cacheTTL    time.Duration
	logger      *zap.Logger
}

func NewSpeechService(
	transcriber speech.Transcriber,
	synthesizer speech.Synthesizer,
	audioCache cache.AudioCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *SpeechService {
	if audioCache == nil {
		audioCache = cache.NewNoopAudioCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpeechService{
		transcriber: transcriber,
		synthesizer: synthesizer,
		audioCache:  audioCache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

func (s *SpeechService) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	if s == nil || s.transcriber == nil {
		return "", ErrSpeechServiceNotConfigured
	}
	if len(audio) == 0 {
		return "", ErrInvalidInput
	}
	return s.transcriber.Transcribe(ctx, audio, contentType)
}

// Synthesize devuelve el audio codificado en base64 estándar.
func (s *SpeechService) Synthesize(ctx context.Context, text string) (string, error) {
	if s == nil || s.synthesizer == nil {
		return "", ErrSpeechServiceNotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrInvalidInput
	}

	key := cache.Key(s.synthesizer.Model(), text)
	if audio, ok, err := s.audioCache.Get(ctx, key); err != nil {
		s.logger.Warn("audio cache get failed", zap.Error(err))
	} else if ok {
		s.logger.Debug("audio cache hit", zap.Int("bytes", len(audio)))
		return base64.StdEncoding.EncodeToString(audio), nil
	}

	audio, err := s.synthesizer.Synthesize(ctx, text)
	if err != nil {
		return "", err
	}

	if err := s.audioCache.Set(ctx, key, audio, s.cacheTTL); err != nil {
		s.logger.Warn("audio cache set failed", zap.Error(err))
	}
	return base64.StdEncoding.EncodeToString(audio), nil
}
