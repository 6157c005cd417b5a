package sqlstore

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/org-directory/internal/config"
)

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite"
)

type DB struct {
	*sqlx.DB
	logger  *zap.Logger
	dialect string
}

// NewPostgres подключается к PostgreSQL через драйвер pgx
func NewPostgres(cfg *config.Config, logger *zap.Logger) (*DB, error) {
	db, err := sqlx.Connect("pgx", cfg.GetDatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.DBName),
	)

	return &DB{DB: db, logger: logger, dialect: dialectPostgres}, nil
}

// NewSQLite открывает файл SQLite (или in-memory DSN) с включёнными внешними ключами
func NewSQLite(path string, logger *zap.Logger) (*DB, error) {
	registerSQLiteDriver()

	db, err := sqlx.Connect(sqliteDriverName, sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite serialises writers; a single connection also keeps shared
	// in-memory databases alive for the lifetime of the pool.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	logger.Info("SQLite opened", zap.String("path", path))

	return &DB{DB: db, logger: logger, dialect: dialectSQLite}, nil
}

func (db *DB) Close() error {
	db.logger.Info("Closing database connection", zap.String("dialect", db.dialect))
	return db.DB.Close()
}

func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// NewDBForTest wraps an already opened connection. The dialect follows the
// driver name: "postgres" and "pgx" map to PostgreSQL, anything else to SQLite.
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	dialect := dialectSQLite
	switch sqlxDB.DriverName() {
	case "postgres", "pgx":
		dialect = dialectPostgres
	}
	return &DB{
		DB:      sqlxDB,
		logger:  logger,
		dialect: dialect,
	}
}
