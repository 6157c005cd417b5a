package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/org-directory/internal/repository/cache"
)

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) DeletePrefix(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestResponseStorage(t *testing.T) {
	anyCtx := mock.Anything

	t.Run("get delegates", func(t *testing.T) {
		repo := &MockCacheRepository{}
		repo.On("Get", anyCtx, "GET /api/v1/activities").Return([]byte("body"), nil)

		val, err := cache.NewResponseStorage(repo).Get("GET /api/v1/activities")

		assert.NoError(t, err)
		assert.Equal(t, []byte("body"), val)
		repo.AssertExpectations(t)
	})

	t.Run("set passes ttl", func(t *testing.T) {
		repo := &MockCacheRepository{}
		repo.On("Set", anyCtx, "k", []byte("v"), 10*time.Second).Return(nil)

		err := cache.NewResponseStorage(repo).Set("k", []byte("v"), 10*time.Second)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("empty values are ignored", func(t *testing.T) {
		repo := &MockCacheRepository{}
		s := cache.NewResponseStorage(repo)

		assert.NoError(t, s.Set("", []byte("v"), time.Second))
		assert.NoError(t, s.Set("k", nil, time.Second))
		assert.NoError(t, s.Delete(""))
		repo.AssertNotCalled(t, "Set", anyCtx, mock.Anything, mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Delete", anyCtx, mock.Anything)
	})

	t.Run("reset deletes namespace", func(t *testing.T) {
		repo := &MockCacheRepository{}
		repo.On("DeletePrefix", anyCtx).Return(errors.New("down"))

		err := cache.NewResponseStorage(repo).Reset()

		assert.Error(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("close is a no-op", func(t *testing.T) {
		assert.NoError(t, cache.NewResponseStorage(&MockCacheRepository{}).Close())
	})
}
