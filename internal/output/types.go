// internal/output/types.go

// Package output persists finalized records. Seven destinations are
// supported: JSON and CSV files, Excel workbooks, SQLite, PostgreSQL,
// MySQL, and MongoDB. All writers consume the same map-shaped records, so
// fields suppressed upstream simply never appear in the output.
package output

import (
	"encoding/json"
	"fmt"

	"github.com/Sampath2CSE/instagram-post-scraper/internal/pipeline"
)

// columnOrder is the canonical field order for tabular destinations.
// Records only ever contain a subset of these keys.
var columnOrder = []string{
	"url",
	"shortcode",
	"type",
	"isReel",
	"caption",
	"ownerUsername",
	"timestamp",
	"likesCount",
	"commentsCount",
	"viewCount",
	"hashtags",
	"mentions",
	"locationName",
	"locationId",
	"images",
	"videos",
	"comments",
	"scrapedAt",
}

// collectColumns returns the canonical columns present in at least one
// record. Suppressed fields are absent from every record and produce no
// column at all.
func collectColumns(records []pipeline.FinalRecord) []string {
	present := make(map[string]bool)
	for _, rec := range records {
		for key := range rec {
			present[key] = true
		}
	}

	columns := make([]string, 0, len(present))
	for _, col := range columnOrder {
		if present[col] {
			columns = append(columns, col)
		}
	}
	return columns
}

// cellValue flattens a record value into a single cell. Composite values
// (media lists, token sets, comments) become JSON.
func cellValue(v interface{}) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		if val {
			return "true", nil
		}
		return "false", nil
	case int:
		return fmt.Sprintf("%d", val), nil
	case int64:
		return fmt.Sprintf("%d", val), nil
	case float64:
		return fmt.Sprintf("%g", val), nil
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return "", fmt.Errorf("failed to encode value: %w", err)
		}
		return string(data), nil
	}
}

// sqlValue converts a record value into a driver-friendly argument.
// Scalars pass through; composites are stored as JSON text.
func sqlValue(v interface{}) (interface{}, error) {
	switch v.(type) {
	case nil, string, bool, int, int64, float64:
		return v, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode value: %w", err)
		}
		return string(data), nil
	}
}
