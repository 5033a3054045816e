package engine

import "github.com/wrongbook/backend/internal/sheet"

// DefaultFixedOffset is the first student row of the fixed-offset layout.
// Rows 1 to 14 are header and metadata rows whatever they contain.
const DefaultFixedOffset = 15

// FixedOffset is the legacy layout with standard answers in row 0 and
// students from FirstResponseRow on.
type FixedOffset struct {
	FirstResponseRow    int
	FirstQuestionColumn int
	Normalizer          Normalizer
}

func (l *FixedOffset) Kind() LayoutKind {
	return LayoutFixedOffset
}

func (l *FixedOffset) Locate(table *sheet.Table) (*Plan, error) {
	firstRow := l.FirstResponseRow
	if firstRow <= 0 {
		firstRow = DefaultFixedOffset
	}
	firstColumn := l.FirstQuestionColumn
	if firstColumn <= 0 {
		firstColumn = DefaultFirstQuestionColumn
	}

	questions, skipped := positionalQuestions(table, 0, firstColumn, l.Normalizer)

	return &Plan{
		Layout:              LayoutFixedOffset,
		AnchorRow:           0,
		FirstQuestionColumn: firstColumn,
		ResponseRows:        RowRange{Start: firstRow, End: max(firstRow, table.NumRows())},
		Questions:           questions,
		Skipped:             skipped,
	}, nil
}

var _ Layout = (*FixedOffset)(nil)
