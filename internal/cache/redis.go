package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ConnectRedis dials Redis with exponential backoff between attempts.
func ConnectRedis(ctx context.Context, addr string, password string, maxRetries int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            addr,
		Password:        password,
		DB:              0,
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
	})

	var err error
	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Info().Dur("backoff", backoff).Msg("Waiting before Redis retry")
			time.Sleep(backoff)
		}

		err = client.Ping(ctx).Err()
		if err == nil {
			log.Info().Int("attempts_needed", i+1).Msg("Redis connected")
			return client, nil
		}

		log.Warn().Err(err).Int("attempt", i+1).Msg("Redis ping failed")
	}

	return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", maxRetries, err)
}

// AnswerCache stores final composed answers keyed by question and subject.
type AnswerCache interface {
	Get(ctx context.Context, question, subject string) (string, bool)
	Set(ctx context.Context, question, subject, answer string) error
}

type RedisAnswerCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisAnswerCache(client *redis.Client, prefix string, ttl time.Duration) *RedisAnswerCache {
	return &RedisAnswerCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *RedisAnswerCache) Get(ctx context.Context, question, subject string) (string, bool) {
	answer, err := c.client.Get(ctx, c.key(question, subject)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("Answer cache read failed")
		}
		return "", false
	}
	return answer, true
}

func (c *RedisAnswerCache) Set(ctx context.Context, question, subject, answer string) error {
	return c.client.Set(ctx, c.key(question, subject), answer, c.ttl).Err()
}

func (c *RedisAnswerCache) key(question, subject string) string {
	normalized := strings.ToLower(strings.TrimSpace(question)) + "|" + strings.ToLower(subject)
	sum := sha256.Sum256([]byte(normalized))
	return c.prefix + hex.EncodeToString(sum[:])
}

// NopAnswerCache is used when no Redis is configured.
type NopAnswerCache struct{}

func (NopAnswerCache) Get(ctx context.Context, question, subject string) (string, bool) {
	return "", false
}

func (NopAnswerCache) Set(ctx context.Context, question, subject, answer string) error {
	return nil
}
