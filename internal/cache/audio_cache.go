package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// AudioCache guarda audio sintetizado para no repetir llamadas idénticas al proveedor.
type AudioCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, audio []byte, ttl time.Duration) error
}

// Key deriva la clave de cache a partir del modelo de voz y el texto.
func Key(model, text string) string {
	sum := sha256.Sum256([]byte(model + "|" + text))
	return hex.EncodeToString(sum[:])
}

type noopAudioCache struct{}

// NewNoopAudioCache devuelve un cache que nunca encuentra nada.
func NewNoopAudioCache() AudioCache {
	return noopAudioCache{}
}

func (noopAudioCache) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, nil
}

func (noopAudioCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}

type redisKVClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type redisAudioCache struct {
	client redisKVClient
	prefix string
}

func NewRedisAudioCache(client *redis.Client) AudioCache {
	if client == nil {
		return NewNoopAudioCache()
	}
	return &redisAudioCache{
		client: client,
		prefix: "tts:",
	}
}

func (c *redisAudioCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	audio, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return audio, true, nil
}

func (c *redisAudioCache) Set(ctx context.Context, key string, audio []byte, ttl time.Duration) error {
	if len(audio) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.prefix+key, audio, ttl).Err()
}
