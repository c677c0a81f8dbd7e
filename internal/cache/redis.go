package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aresleonardo123/dashboard-trl/internal/source"
)

// RedisRows is a RowCache backed by Redis JSON blobs.
type RedisRows struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRows creates a Redis row cache. ttl <= 0 defaults to 24h.
func NewRedisRows(client *redis.Client, ttl time.Duration) *RedisRows {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisRows{client: client, ttl: ttl}
}

func rowsKey(key string) string {
	return fmt.Sprintf("trl:dataset:%s:rows", key)
}

func (c *RedisRows) Get(ctx context.Context, key string) ([]source.Row, error) {
	data, err := c.client.Get(ctx, rowsKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	var rows []source.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding cached rows: %w", err)
	}
	return rows, nil
}

func (c *RedisRows) Set(ctx context.Context, key string, rows []source.Row) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, rowsKey(key), data, c.ttl).Err()
}

func (c *RedisRows) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, rowsKey(key)).Err()
}
