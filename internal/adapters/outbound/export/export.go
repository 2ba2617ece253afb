package export

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/texspell/texspell/internal/domain"
)

const (
	diagnosticsSheet = "Diagnostics"
	skippedSheet     = "Skipped"
)

var headers = []string{
	"Line",
	"Column",
	"Message",
	"Flagged Text",
	"Suggestions",
	"Rule",
	"Category",
	"Type",
	"Document Offset",
	"Document Length",
	"Approximate",
}

// Exporter writes check reports as XLSX workbooks.
type Exporter struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger}
}

// XLSX returns a workbook with one row per diagnostic, in report order. Records
// the service sent malformed go to a second sheet.
func (e *Exporter) XLSX(report *domain.Report) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"; rename it rather than leaving it empty.
	if err := f.SetSheetName(f.GetSheetName(0), diagnosticsSheet); err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(diagnosticsSheet, cell, h)
	}

	lines := domain.NewLineIndex(report.Source)
	row := 2
	for _, d := range report.Diagnostics {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(diagnosticsSheet, cell, v)
		}

		line, col := lines.Position(d.DocumentOffset)
		write(1, line)
		write(2, col)
		write(3, d.Message)
		write(4, d.FlaggedText)
		write(5, strings.Join(d.Replacements, ", "))
		write(6, d.RuleID)
		write(7, d.Category)
		write(8, d.IssueType)
		write(9, d.DocumentOffset)
		write(10, d.DocumentLength)
		write(11, d.Approximate)
		row++
	}

	_ = f.SetColWidth(diagnosticsSheet, "A", "B", 8)  // position
	_ = f.SetColWidth(diagnosticsSheet, "C", "C", 60) // message
	_ = f.SetColWidth(diagnosticsSheet, "D", "E", 24) // text, suggestions
	_ = f.SetColWidth(diagnosticsSheet, "F", "H", 22) // rule, category, type
	_ = f.SetColWidth(diagnosticsSheet, "I", "K", 16) // offsets

	if len(report.Skipped) > 0 {
		if _, err := f.NewSheet(skippedSheet); err != nil {
			return nil, err
		}
		_ = f.SetCellValue(skippedSheet, "A1", "Record")
		_ = f.SetCellValue(skippedSheet, "B1", "Reason")
		for i, s := range report.Skipped {
			_ = f.SetCellValue(skippedSheet, fmt.Sprintf("A%d", i+2), s.Index)
			_ = f.SetCellValue(skippedSheet, fmt.Sprintf("B%d", i+2), s.Reason)
		}
		_ = f.SetColWidth(skippedSheet, "B", "B", 60)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	e.logger.Info("export.xlsx.ok",
		"run_id", report.RunID,
		"rows", len(report.Diagnostics),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
