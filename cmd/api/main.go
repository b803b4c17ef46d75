package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"voice-relay/internal/cache"
	"voice-relay/internal/config"
	apihttp "voice-relay/internal/http"
	"voice-relay/internal/llm"
	"voice-relay/internal/repository"
	"voice-relay/internal/service"
	"voice-relay/internal/speech"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("api keys",
		zap.Bool("openrouter_loaded", cfg.LLMAPIKey != ""),
		zap.Bool("deepgram_loaded", cfg.DeepgramAPIKey != ""),
	)

	audioCache := cache.NewNoopAudioCache()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, audio cache disabled", zap.Error(err))
		} else {
			audioCache = cache.NewRedisAudioCache(redisClient)
		}
		cancel()
	}

	// El store vive lo que vive el proceso.
	convRepo := repository.NewMemoryConversationRepository()

	llmClient := llm.NewHTTPClient(llm.Options{
		BaseURL:  cfg.LLMBaseURL,
		APIKey:   cfg.LLMAPIKey,
		Model:    cfg.LLMModel,
		Referer:  cfg.LLMReferer,
		AppTitle: cfg.LLMAppTitle,
		Timeout:  cfg.LLMTimeout,
	}, logger)
	deepgram := speech.NewDeepgramClient(speech.Options{
		BaseURL:  cfg.DeepgramBaseURL,
		APIKey:   cfg.DeepgramAPIKey,
		STTModel: cfg.STTModel,
		TTSModel: cfg.TTSModel,
		Timeout:  cfg.SpeechTimeout,
	}, logger)

	convSvc := service.NewConversationService(convRepo)
	chatSvc := service.NewChatService(llmClient, convRepo, logger)
	speechSvc := service.NewSpeechService(deepgram, deepgram, audioCache, cfg.TTSCacheTTL, logger)

	convHandler := apihttp.NewConversationHandler(logger, convSvc)
	chatHandler := apihttp.NewChatHandler(logger, chatSvc)
	speechHandler := apihttp.NewSpeechHandler(logger, speechSvc, cfg.MaxAudioBytes)
	router := apihttp.NewRouter(logger, convHandler, chatHandler, speechHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("env", cfg.AppEnv))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}
