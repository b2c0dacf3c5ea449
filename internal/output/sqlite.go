// internal/output/sqlite.go
package output

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteWriter opens or creates a SQLite database at path and returns a
// writer targeting the given table.
func NewSQLiteWriter(path, table string) (*relationalWriter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)

	return &relationalWriter{
		db:    db,
		table: table,
		dialect: dialect{
			name:        "sqlite",
			quote:       func(ident string) string { return `"` + ident + `"` },
			placeholder: func(int) string { return "?" },
			columnType: func(column string) string {
				switch {
				case integerColumns[column]:
					return "INTEGER"
				case column == "isReel":
					return "INTEGER"
				default:
					return "TEXT"
				}
			},
		},
	}, nil
}
