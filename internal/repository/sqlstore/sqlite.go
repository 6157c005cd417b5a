package sqlstore

import (
	"database/sql"
	"math"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

const sqliteDriverName = "sqlite3_geo"

var registerOnce sync.Once

// registerSQLiteDriver registers a sqlite3 driver with the math functions the
// radius filter needs. They are only built into SQLite behind a compile flag.
func registerSQLiteDriver() {
	registerOnce.Do(func() {
		sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				funcs := map[string]interface{}{
					"sin":   math.Sin,
					"cos":   math.Cos,
					"sqrt":  math.Sqrt,
					"atan2": math.Atan2,
				}
				for name, fn := range funcs {
					if err := conn.RegisterFunc(name, fn, true); err != nil {
						return err
					}
				}
				return nil
			},
		})
		sqlx.BindDriver(sqliteDriverName, sqlx.QUESTION)
	})
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}
