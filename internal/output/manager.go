// internal/output/manager.go
package output

import (
	"context"
	"fmt"

	"github.com/Sampath2CSE/instagram-post-scraper/internal/config"
	"github.com/Sampath2CSE/instagram-post-scraper/internal/pipeline"
)

// Writer is the destination contract every backend implements.
type Writer interface {
	Write(ctx context.Context, records []pipeline.FinalRecord) error
	Close() error
}

// Manager selects and wraps the configured destination. It satisfies the
// engine's record sink.
type Manager struct {
	writer Writer
	format string
}

// NewManager builds the writer named by the output configuration.
func NewManager(cfg config.OutputConfig) (*Manager, error) {
	var (
		writer Writer
		err    error
	)

	switch cfg.Format {
	case "json":
		writer = NewJSONWriter(cfg.File)
	case "csv":
		writer = NewCSVWriter(cfg.File)
	case "excel":
		writer = NewExcelWriter(cfg.File, "")
	case "sqlite":
		writer, err = NewSQLiteWriter(cfg.File, cfg.Table)
	case "postgresql":
		writer, err = NewPostgreSQLWriter(cfg.DSN, cfg.Table)
	case "mysql":
		writer, err = NewMySQLWriter(cfg.DSN, cfg.Table)
	case "mongodb":
		writer, err = NewMongoWriter(cfg.DSN, cfg.Database, cfg.Table)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", cfg.Format)
	}
	if err != nil {
		return nil, err
	}

	return &Manager{writer: writer, format: cfg.Format}, nil
}

// Format reports the selected destination format.
func (m *Manager) Format() string { return m.format }

// Write forwards the batch to the configured writer.
func (m *Manager) Write(ctx context.Context, records []pipeline.FinalRecord) error {
	return m.writer.Write(ctx, records)
}

// Close releases writer resources.
func (m *Manager) Close() error {
	return m.writer.Close()
}
