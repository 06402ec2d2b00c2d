package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ojtrack/ojtrack-api/pkg/config"
)

// RedisBlob keeps each partition as a single redis string value.
type RedisBlob struct {
	client *redis.Client
}

// NewRedisBlob connects to redis and verifies the connection.
func NewRedisBlob(cfg config.RedisConfig) (*RedisBlob, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisBlob{client: client}, nil
}

// Get fetches the partition payload. A missing key is not an error.
func (b *RedisBlob) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := b.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return raw, nil
}

// Put replaces the partition payload. Partitions never expire.
func (b *RedisBlob) Put(ctx context.Context, key string, data []byte) error {
	if err := b.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (b *RedisBlob) Close() error {
	return b.client.Close()
}
