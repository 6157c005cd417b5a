package sqlstore

import (
	stderrors "errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// pgForeignKeyViolation - SQLSTATE нарушения внешнего ключа
const pgForeignKeyViolation = "23503"

// isForeignKeyViolation reports whether err is a foreign key failure from any
// of the supported drivers.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}

	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return string(pqErr.Code) == pgForeignKeyViolation
	}

	var liteErr sqlite3.Error
	if stderrors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
