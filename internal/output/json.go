// internal/output/json.go
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sampath2CSE/instagram-post-scraper/internal/pipeline"
)

// JSONWriter writes records as a pretty-printed JSON array.
type JSONWriter struct {
	path string
}

// NewJSONWriter creates a JSON file writer.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// Write replaces the destination file with the full record set. An empty
// run still produces a valid empty array.
func (w *JSONWriter) Write(ctx context.Context, records []pipeline.FinalRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []pipeline.FinalRecord{}
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

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return nil
}

// Close is a no-op for file-per-run writers.
func (w *JSONWriter) Close() error { return nil }
