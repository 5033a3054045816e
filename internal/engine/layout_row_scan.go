package engine

import (
	"strings"

	"github.com/wrongbook/backend/internal/sheet"
)

const (
	// DefaultScanRows is how many rows the row-scan layout searches for its anchor.
	DefaultScanRows = 10
	// DefaultFirstQuestionColumn is the first question column of the positional layouts.
	DefaultFirstQuestionColumn = 2
)

// RowScan is the layout where the standard-answer row is the first row
// containing a marker such as "正确答案", and students follow it.
type RowScan struct {
	Markers             []string
	ScanRows            int
	FirstQuestionColumn int
	Normalizer          Normalizer
}

func (l *RowScan) Kind() LayoutKind {
	return LayoutRowScan
}

func (l *RowScan) Locate(table *sheet.Table) (*Plan, error) {
	scanRows := l.ScanRows
	if scanRows <= 0 {
		scanRows = DefaultScanRows
	}
	firstColumn := l.FirstQuestionColumn
	if firstColumn <= 0 {
		firstColumn = DefaultFirstQuestionColumn
	}

	anchor, ok := l.findAnchor(table, scanRows)
	if !ok {
		return nil, &AnchorNotFoundError{
			Markers:     l.Markers,
			ScannedRows: min(scanRows, table.NumRows()),
		}
	}

	questions, skipped := positionalQuestions(table, anchor, firstColumn, l.Normalizer)

	return &Plan{
		Layout:              LayoutRowScan,
		AnchorRow:           anchor,
		FirstQuestionColumn: firstColumn,
		ResponseRows:        RowRange{Start: anchor + 1, End: table.NumRows()},
		Questions:           questions,
		Skipped:             skipped,
	}, nil
}

// findAnchor returns the first row, top-down, with a cell containing a marker.
func (l *RowScan) findAnchor(table *sheet.Table, scanRows int) (int, bool) {
	for row := range min(scanRows, table.NumRows()) {
		for _, cell := range table.Row(row) {
			if !cell.Present {
				continue
			}
			for _, marker := range l.Markers {
				if marker != "" && strings.Contains(cell.Text, marker) {
					return row, true
				}
			}
		}
	}

	return 0, false
}

var _ Layout = (*RowScan)(nil)
