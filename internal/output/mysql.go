// internal/output/mysql.go
package output

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

// NewMySQLWriter connects to MySQL using the given DSN and returns a
// writer targeting the given table.
func NewMySQLWriter(dsn, table string) (*relationalWriter, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach mysql: %w", err)
	}

	return &relationalWriter{
		db:    db,
		table: table,
		dialect: dialect{
			name:        "mysql",
			quote:       func(ident string) string { return "`" + ident + "`" },
			placeholder: func(int) string { return "?" },
			columnType: func(column string) string {
				switch {
				case integerColumns[column]:
					return "BIGINT"
				case column == "isReel":
					return "BOOLEAN"
				case column == "caption" || column == "images" || column == "videos" || column == "comments":
					return "TEXT"
				default:
					return "VARCHAR(512)"
				}
			},
		},
	}, nil
}
