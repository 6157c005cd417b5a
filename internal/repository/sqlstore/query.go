package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// The helpers below accept "?" placeholders, expand slice arguments with
// sqlx.In and rebind for the active driver.

func (db *DB) get(ctx context.Context, dest interface{}, query string, args ...interface{}) (bool, error) {
	conn := db.conn(ctx)
	err := sqlx.GetContext(ctx, conn, dest, conn.Rebind(query), args...)
	if stderrors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (db *DB) selectIn(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	q, qArgs, err := sqlx.In(query, args...)
	if err != nil {
		return err
	}
	conn := db.conn(ctx)
	return sqlx.SelectContext(ctx, conn, dest, conn.Rebind(q), qArgs...)
}

func (db *DB) execIn(ctx context.Context, query string, args ...interface{}) (int64, error) {
	q, qArgs, err := sqlx.In(query, args...)
	if err != nil {
		return 0, err
	}
	conn := db.conn(ctx)
	res, err := conn.ExecContext(ctx, conn.Rebind(q), qArgs...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// exec runs a statement without slice expansion, so nil pointers reach the
// driver as NULL.
func (db *DB) exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	conn := db.conn(ctx)
	res, err := conn.ExecContext(ctx, conn.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// insertPairs inserts (ownerID, id) rows into a link table, skipping pairs that
// already exist.
func (db *DB) insertPairs(ctx context.Context, table, ownerCol, targetCol string, ownerID uuid.UUID, ids []uuid.UUID) error {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO " + table + " (" + ownerCol + ", " + targetCol + ") VALUES ")
	args := make([]interface{}, 0, 2*len(ids))
	for i, id := range ids {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?)")
		args = append(args, ownerID, id)
	}
	sb.WriteString(" ON CONFLICT DO NOTHING")

	conn := db.conn(ctx)
	_, err := conn.ExecContext(ctx, conn.Rebind(sb.String()), args...)
	return err
}

// uniqueIDs drops duplicates keeping the first occurrence.
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
