package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/org-directory/internal/repository/sqlstore"
)

// TestDB represents a test database connection
type TestDB struct {
	DB     *sqlstore.DB
	Logger *zap.Logger
}

// SetupSQLite opens a private SQLite database in a temporary directory with the
// schema applied. A file is used rather than a shared in-memory database, which
// would vanish when a cancelled transaction discards its connection.
func SetupSQLite(t *testing.T) *TestDB {
	t.Helper()

	logger := zap.NewNop()
	path := filepath.Join(t.TempDir(), "org_directory_test.db")

	db, err := sqlstore.NewSQLite(path, logger)
	if err != nil {
		t.Fatalf("Failed to open sqlite database: %v", err)
	}

	if err := db.ApplySchema(context.Background()); err != nil {
		t.Fatalf("Failed to apply sqlite schema: %v", err)
	}

	return &TestDB{DB: db, Logger: logger}
}

// SetupPostgres connects to the database named by the TEST_DB_* variables.
// The test is skipped when TEST_DB_HOST is not set.
func SetupPostgres(t *testing.T) *TestDB {
	t.Helper()

	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST is not set, skipping PostgreSQL tests")
	}

	port := getEnv("TEST_DB_PORT", "5433")
	user := getEnv("TEST_DB_USER", "postgres")
	password := getEnv("TEST_DB_PASSWORD", "postgres")
	dbname := getEnv("TEST_DB_NAME", "org_directory_test")
	sslmode := getEnv("TEST_DB_SSLMODE", "disable")

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	// Retry connection with exponential backoff to wait for DB recovery
	var conn *sqlx.DB
	var err error
	maxRetries := 10
	retryDelay := 500 * time.Millisecond

	for i := 0; i < maxRetries; i++ {
		conn, err = sqlx.Connect("postgres", connStr)
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			t.Logf("Database not ready (attempt %d/%d), waiting %v...", i+1, maxRetries, retryDelay)
			time.Sleep(retryDelay)
			retryDelay *= 2
		}
	}

	if err != nil {
		t.Fatalf("Failed to connect to test database after %d attempts: %v", maxRetries, err)
	}

	logger := zap.NewNop()
	db := sqlstore.NewDBForTest(conn, logger)

	ctx := context.Background()
	if err := db.ApplySchema(ctx); err != nil {
		t.Fatalf("Failed to apply postgres schema: %v", err)
	}

	return &TestDB{DB: db, Logger: logger}
}

// Close closes the database connection
func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		_ = tdb.DB.Close()
	}
}

// Cleanup removes all rows, respecting FK constraints
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	return tdb.DB.Truncate(ctx)
}

// getEnv gets environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
