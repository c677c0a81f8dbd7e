package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aresleonardo123/dashboard-trl/internal/source"
)

func TestMemoryRowsEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryRows(2)

	require.NoError(t, c.Set(ctx, "a", []source.Row{{"1": "a"}}))
	require.NoError(t, c.Set(ctx, "b", []source.Row{{"1": "b"}}))

	// Touch a so b becomes the oldest.
	got, _ := c.Get(ctx, "a")
	require.Len(t, got, 1)

	require.NoError(t, c.Set(ctx, "c", []source.Row{{"1": "c"}}))

	got, err := c.Get(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, got, "b should have been evicted")

	got, _ = c.Get(ctx, "a")
	assert.Equal(t, []source.Row{{"1": "a"}}, got)
}

func TestMemoryRowsDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryRows(0)

	require.NoError(t, c.Set(ctx, "a", []source.Row{{"1": "a"}}))
	require.NoError(t, c.Delete(ctx, "a"))
	require.NoError(t, c.Delete(ctx, "missing"))

	got, _ := c.Get(ctx, "a")
	assert.Nil(t, got)
}

func TestNewMemoryRowsFromEnv(t *testing.T) {
	t.Setenv("TRL_ROW_CACHE_SIZE", "3")
	assert.Equal(t, 3, NewMemoryRowsFromEnv().maxSize)

	t.Setenv("TRL_ROW_CACHE_SIZE", "bogus")
	assert.Equal(t, 8, NewMemoryRowsFromEnv().maxSize)
}

func TestRedisRows(t *testing.T) {
	addr := os.Getenv("TRL_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TRL_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	c := NewRedisRows(client, time.Minute)
	key := "test-" + time.Now().Format("150405.000000")
	defer c.Delete(ctx, key)

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)

	rows := []source.Row{{"1": "Solar Dryer", "14": "5"}}
	require.NoError(t, c.Set(ctx, key, rows))

	got, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestRowsKey(t *testing.T) {
	assert.Equal(t, "trl:dataset:submissions:rows", rowsKey("submissions"))
}
