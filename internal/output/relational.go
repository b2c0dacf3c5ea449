// internal/output/relational.go
package output

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Sampath2CSE/instagram-post-scraper/internal/pipeline"
)

// dialect captures the per-database differences the relational writer
// needs: identifier quoting, placeholder style, and column typing.
type dialect struct {
	name        string
	quote       func(ident string) string
	placeholder func(n int) string
	columnType  func(column string) string
}

// relationalWriter persists records into a single table shared by the
// SQLite, PostgreSQL, and MySQL destinations. The table is created on
// first write from the columns actually present in the batch.
type relationalWriter struct {
	db      *sql.DB
	table   string
	dialect dialect
}

// Write creates the table if needed and inserts the batch in one
// transaction.
func (w *relationalWriter) Write(ctx context.Context, records []pipeline.FinalRecord) error {
	if len(records) == 0 {
		return nil
	}

	columns := collectColumns(records)
	if err := w.ensureTable(ctx, columns); err != nil {
		return err
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, w.insertStatement(columns))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]interface{}, len(columns))
	for _, rec := range records {
		for i, col := range columns {
			args[i], err = sqlValue(rec[col])
			if err != nil {
				return err
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (w *relationalWriter) Close() error {
	return w.db.Close()
}

func (w *relationalWriter) ensureTable(ctx context.Context, columns []string) error {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = fmt.Sprintf("%s %s", w.dialect.quote(col), w.dialect.columnType(col))
	}

	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		w.dialect.quote(w.table), strings.Join(defs, ", "))
	if _, err := w.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", w.table, err)
	}
	return nil
}

func (w *relationalWriter) insertStatement(columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = w.dialect.quote(col)
		placeholders[i] = w.dialect.placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		w.dialect.quote(w.table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "))
}

// integerColumns hold engagement counts and get numeric column types.
var integerColumns = map[string]bool{
	"likesCount":    true,
	"commentsCount": true,
	"viewCount":     true,
}
