package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort        string        `env:"PORT" envDefault:"5000"`
	AppEnv          string        `env:"APP_ENV" envDefault:"development"`
	LLMAPIKey       string        `env:"OPENROUTER_API_KEY"`
	LLMBaseURL      string        `env:"LLM_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	LLMModel        string        `env:"LLM_MODEL" envDefault:"openai/gpt-3.5-turbo"`
	LLMTimeout      time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`
	LLMReferer      string        `env:"LLM_REFERER" envDefault:"http://localhost:5000"`
	LLMAppTitle     string        `env:"LLM_APP_TITLE" envDefault:"AI Interview Bot"`
	DeepgramAPIKey  string        `env:"DEEPGRAM_API_KEY"`
	DeepgramBaseURL string        `env:"DEEPGRAM_BASE_URL" envDefault:"https://api.deepgram.com/v1"`
	STTModel        string        `env:"STT_MODEL" envDefault:"nova-2"`
	TTSModel        string        `env:"TTS_MODEL" envDefault:"aura-asteria-en"`
	SpeechTimeout   time.Duration `env:"SPEECH_TIMEOUT" envDefault:"60s"`
	MaxAudioBytes   int64         `env:"MAX_AUDIO_BYTES" envDefault:"26214400"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	TTSCacheTTL     time.Duration `env:"TTS_CACHE_TTL" envDefault:"24h"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction desactiva los diagnósticos verbosos.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
