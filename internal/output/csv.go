// internal/output/csv.go
package output

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sampath2CSE/instagram-post-scraper/internal/pipeline"
)

// CSVWriter writes records as a CSV file with a header row. Composite
// fields are JSON-encoded into their cells.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a CSV file writer.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Write replaces the destination file with the full record set.
func (w *CSVWriter) Write(ctx context.Context, records []pipeline.FinalRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	columns := collectColumns(records)
	writer := csv.NewWriter(file)

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(columns))
	for _, rec := range records {
		for i, col := range columns {
			cell, err := cellValue(rec[col])
			if err != nil {
				return err
			}
			row[i] = cell
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Close is a no-op for file-per-run writers.
func (w *CSVWriter) Close() error { return nil }
