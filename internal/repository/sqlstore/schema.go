package sqlstore

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// ApplySchema creates the tables when they do not exist yet.
func (db *DB) ApplySchema(ctx context.Context) error {
	file := fmt.Sprintf("schema/%s.sql", db.dialect)
	content, err := schemaFS.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read schema %s: %w", file, err)
	}

	for _, stmt := range strings.Split(string(content), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema %s: %w", file, err)
		}
	}

	db.logger.Info("Schema applied", zap.String("dialect", db.dialect))
	return nil
}

// tables lists the tables in delete order.
var tables = []string{
	"organization_phone_numbers",
	"organization_activities",
	"organizations",
	"phone_numbers",
	"activities",
	"buildings",
}

// Truncate удаляет все данные; используется тестами
func (db *DB) Truncate(ctx context.Context) error {
	for _, table := range tables {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}
