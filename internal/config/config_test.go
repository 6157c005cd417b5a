package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "X-API-Key", cfg.Auth.HeaderName)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 10*time.Second, cfg.Cache.ResponseTTL)
	assert.Equal(t, 3, cfg.Query.ActivitiesDepth)
	assert.Equal(t, 6_371_000.0, cfg.Query.EarthRadiusM)
	assert.Equal(t, "0.0.0.0:8000", cfg.GetServerAddr())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_PORT", "9090")
	t.Setenv("API_TOKEN", "secret")
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("ACTIVITIES_DEPTH", "2")
	t.Setenv("DB_CONN_MAX_LIFETIME", "60")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Auth.Token)
	assert.Equal(t, StorageDriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, ":memory:", cfg.SQLite.Path)
	assert.Equal(t, 2, cfg.Query.ActivitiesDepth)
	assert.Equal(t, time.Minute, cfg.Database.ConnMaxLifetime)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown driver": {"STORAGE_DRIVER": "mongo"},
		"unknown cache":  {"CACHE_BACKEND": "memcached"},
		"negative depth": {"ACTIVITIES_DEPTH": "-1"},
		"zero earth":     {"EARTH_RADIUS_M": "0"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
