package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/org-directory/internal/config"
)

// getTestRedis creates a Redis wrapper for testing
func getTestRedis(t *testing.T) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	return &Redis{client: client, logger: zap.NewNop()}
}

func TestNewRedis_UnreachableHost(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{Host: "127.0.0.1", Port: 1},
		Cache: config.CacheConfig{Backend: config.CacheBackendRedis, ResponseTTL: 10 * time.Second},
	}

	r, err := NewRedis(cfg, zap.NewNop())
	assert.Nil(t, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}

func TestCacheRepository_SetGetDelete(t *testing.T) {
	r := getTestRedis(t)
	defer r.Close()

	repo := NewCacheRepository(r)
	ctx := context.Background()
	require.NoError(t, repo.DeletePrefix(ctx))

	val, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, repo.Set(ctx, "k", []byte("v"), time.Minute))

	val, err = repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	require.NoError(t, repo.Delete(ctx, "k"))

	val, err = repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestCacheRepository_DeletePrefixKeepsForeignKeys(t *testing.T) {
	r := getTestRedis(t)
	defer r.Close()

	repo := NewCacheRepository(r)
	ctx := context.Background()

	require.NoError(t, r.Client().Set(ctx, "foreign:key", "x", time.Minute).Err())
	defer r.Client().Del(ctx, "foreign:key")

	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Set(ctx, key, []byte(key), time.Minute))
	}

	require.NoError(t, repo.DeletePrefix(ctx))

	for _, key := range []string{"a", "b", "c"} {
		val, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, val, key)
	}

	n, err := r.Client().Exists(ctx, "foreign:key").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
