package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Krimson/cardio-risk/assessor/internal/inference"
)

// ErrCacheMiss возвращается, когда по ключу ничего не закешировано.
var ErrCacheMiss = errors.New("cache miss")

const modelMetricsKey = "model:metrics"

// RedisMetricsCache кеширует ответ с метриками модели.
type RedisMetricsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMetricsCache(client *redis.Client, ttl time.Duration) *RedisMetricsCache {
	return &RedisMetricsCache{
		client: client,
		ttl:    ttl,
	}
}

// NewRedisClient создаёт клиент по адресу, паролю и номеру базы.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (c *RedisMetricsCache) Get(ctx context.Context) (*inference.ModelMetrics, error) {
	data, err := c.client.Get(ctx, modelMetricsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get model metrics: %w", err)
	}

	var metrics inference.ModelMetrics
	if err := json.Unmarshal(data, &metrics); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model metrics: %w", err)
	}
	return &metrics, nil
}

func (c *RedisMetricsCache) Set(ctx context.Context, metrics *inference.ModelMetrics) error {
	data, err := json.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal model metrics: %w", err)
	}

	if err := c.client.Set(ctx, modelMetricsKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save model metrics: %w", err)
	}
	return nil
}

// Ping проверяет подключение.
func (c *RedisMetricsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisMetricsCache) Close() error {
	return c.client.Close()
}
