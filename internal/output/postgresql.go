// internal/output/postgresql.go
package output

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// NewPostgreSQLWriter connects to PostgreSQL using the given DSN and
// returns a writer targeting the given table.
func NewPostgreSQLWriter(dsn, table string) (*relationalWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgresql connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach postgresql: %w", err)
	}

	return &relationalWriter{
		db:    db,
		table: table,
		dialect: dialect{
			name:        "postgresql",
			quote:       func(ident string) string { return `"` + ident + `"` },
			placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
			columnType: func(column string) string {
				switch {
				case integerColumns[column]:
					return "BIGINT"
				case column == "isReel":
					return "BOOLEAN"
				default:
					return "TEXT"
				}
			},
		},
	}, nil
}
