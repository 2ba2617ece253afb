package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/texspell/texspell/internal/adapters/outbound/export"
	"github.com/texspell/texspell/internal/domain"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		RunID:    "run-1",
		Document: "paper.tex",
		Language: "fr",
		Source:   "\\section{Intro}\nJe suis trè beau.\n",
		Diagnostics: []domain.ReconciledDiagnostic{{
			Diagnostic: domain.Diagnostic{
				Message:      "Faute de frappe",
				FlaggedText:  "trè",
				Offset:       8,
				Length:       3,
				Replacements: []string{"très", "trop"},
				RuleID:       "FR_SPELLING_RULE",
				Category:     "TYPOS",
				IssueType:    "misspelling",
			},
			DocumentOffset: 24,
			DocumentLength: 3,
		}},
	}
}

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestXLSX_OneRowPerDiagnostic(t *testing.T) {
	data, err := export.New(nil).XLSX(sampleReport())
	require.NoError(t, err)

	rows, err := open(t, data).GetRows("Diagnostics")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Line", rows[0][0])
	assert.Equal(t, []string{
		"2", "9", "Faute de frappe", "trè", "très, trop",
		"FR_SPELLING_RULE", "TYPOS", "misspelling", "24", "3", "FALSE",
	}, rows[1])
}

func TestXLSX_NoSkippedSheetWhenClean(t *testing.T) {
	data, err := export.New(nil).XLSX(sampleReport())
	require.NoError(t, err)
	assert.Equal(t, []string{"Diagnostics"}, open(t, data).GetSheetList())
}

func TestXLSX_SkippedRecords(t *testing.T) {
	r := sampleReport()
	r.Skipped = []domain.RecordError{{Index: 4, Reason: "offset is negative"}}

	data, err := export.New(nil).XLSX(r)
	require.NoError(t, err)

	rows, err := open(t, data).GetRows("Skipped")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"4", "offset is negative"}, rows[1])
}

func TestXLSX_EmptyReport(t *testing.T) {
	data, err := export.New(nil).XLSX(&domain.Report{Document: "empty.tex"})
	require.NoError(t, err)

	rows, err := open(t, data).GetRows("Diagnostics")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
