// internal/output/excel.go
package output

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Sampath2CSE/instagram-post-scraper/internal/pipeline"
)

// ExcelWriter writes records into an xlsx workbook with one sheet, a bold
// header row, and frozen top row.
type ExcelWriter struct {
	path  string
	sheet string
}

// NewExcelWriter creates an Excel file writer.
func NewExcelWriter(path, sheet string) *ExcelWriter {
	if sheet == "" {
		sheet = "Posts"
	}
	return &ExcelWriter{path: path, sheet: sheet}
}

// Write replaces the destination workbook with the full record set.
func (w *ExcelWriter) Write(ctx context.Context, records []pipeline.FinalRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(w.sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	columns := collectColumns(records)
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(w.sheet, cell, col); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil && len(columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(columns), 1)
		f.SetCellStyle(w.sheet, "A1", last, headerStyle)
	}
	f.SetPanes(w.sheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	})

	for r, rec := range records {
		for c, col := range columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			value, err := cellValue(rec[col])
			if err != nil {
				return err
			}
			if err := f.SetCellValue(w.sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Close is a no-op for file-per-run writers.
func (w *ExcelWriter) Close() error { return nil }
