package cache

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/org-directory/internal/domain/repository"
)

const storageTimeout = 2 * time.Second

// ResponseStorage adapts a CacheRepository to fiber.Storage, which is what the
// response cache middleware persists entries through.
type ResponseStorage struct {
	repo    repository.CacheRepository
	timeout time.Duration
}

var _ fiber.Storage = (*ResponseStorage)(nil)

func NewResponseStorage(repo repository.CacheRepository) *ResponseStorage {
	return &ResponseStorage{repo: repo, timeout: storageTimeout}
}

func (s *ResponseStorage) Get(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.repo.Get(ctx, key)
}

func (s *ResponseStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.repo.Set(ctx, key, val, exp)
}

func (s *ResponseStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.repo.Delete(ctx, key)
}

func (s *ResponseStorage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.repo.DeletePrefix(ctx)
}

// Close is a no-op: the Redis client is owned and closed by main.
func (s *ResponseStorage) Close() error {
	return nil
}
