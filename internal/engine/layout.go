package engine

import (
	"fmt"
	"strings"

	"github.com/wrongbook/backend/internal/sheet"
)

// LayoutKind names a spreadsheet layout convention.
type LayoutKind string

const (
	// LayoutAuto picks a layout with Detect.
	LayoutAuto LayoutKind = "auto"
	// LayoutColumnSuffix names columns "<prefix><index>" and reads standard answers from row 0.
	LayoutColumnSuffix LayoutKind = "column-suffix"
	// LayoutRowScan finds the standard-answer row by a marker within the first rows.
	LayoutRowScan LayoutKind = "row-scan"
	// LayoutFixedOffset has standard answers in row 0 and students from a fixed row on.
	LayoutFixedOffset LayoutKind = "fixed-offset"
)

// ParseLayoutKind parses a layout name. The empty string is LayoutAuto.
func ParseLayoutKind(s string) (LayoutKind, error) {
	switch kind := LayoutKind(strings.ToLower(strings.TrimSpace(s))); kind {
	case "":
		return LayoutAuto, nil
	case LayoutAuto, LayoutColumnSuffix, LayoutRowScan, LayoutFixedOffset:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLayout, s)
	}
}

// RowRange is the half-open row interval [Start, End).
type RowRange struct {
	Start int
	End   int
}

// Len returns the number of rows in the range.
func (r RowRange) Len() int {
	return max(r.End-r.Start, 0)
}

// Question is a question located in the table, with its columns resolved.
type Question struct {
	// Number is the 1-based question number.
	Number int
	// Label is the question text, or the response column name when the
	// layout carries no text.
	Label string
	// Column is the position of the response column.
	Column int
	// StandardAnswer is the normalized correct answer.
	StandardAnswer string
}

// SkippedQuestion is a question that could not be analyzed.
type SkippedQuestion struct {
	Number int
	Label  string
	Reason string
}

// Plan is where a layout found the structural landmarks of a table.
type Plan struct {
	Layout LayoutKind
	// AnchorRow is the standard-answer row, or -1 when the layout reads
	// standard answers from dedicated columns.
	AnchorRow int
	// FirstQuestionColumn is the first column holding question data, or -1
	// when questions are found by column name.
	FirstQuestionColumn int
	// ResponseRows are the student rows.
	ResponseRows RowRange

	Questions []Question
	Skipped   []SkippedQuestion
}

// Layout locates the standard answers and the student rows of a table.
type Layout interface {
	Kind() LayoutKind
	Locate(table *sheet.Table) (*Plan, error)
}

// Detect probes the table for a layout: column-suffix when the first response
// column exists, row-scan otherwise. The fixed-offset layout is never detected.
func Detect(table *sheet.Table, vocab Vocabulary) LayoutKind {
	if _, ok := firstPresent(vocab.ResponsePrefixes, func(prefix string) bool {
		return table.HasColumn(prefix + "1")
	}); ok {
		return LayoutColumnSuffix
	}

	return LayoutRowScan
}

// NewLayout builds the layout for kind. LayoutAuto is resolved against table.
func NewLayout(kind LayoutKind, table *sheet.Table, opts Options) (Layout, error) {
	if kind == LayoutAuto || kind == "" {
		kind = Detect(table, opts.Vocabulary)
	}

	switch kind {
	case LayoutColumnSuffix:
		return &ColumnSuffix{
			Vocabulary: opts.Vocabulary,
			Normalizer: opts.Normalizer,
		}, nil
	case LayoutRowScan:
		return &RowScan{
			Markers:             opts.Vocabulary.AnchorMarkers,
			ScanRows:            opts.ScanRows,
			FirstQuestionColumn: opts.FirstQuestionColumn,
			Normalizer:          opts.Normalizer,
		}, nil
	case LayoutFixedOffset:
		return &FixedOffset{
			FirstResponseRow:    opts.FixedOffset,
			FirstQuestionColumn: opts.FirstQuestionColumn,
			Normalizer:          opts.Normalizer,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, kind)
	}
}

// positionalQuestions builds the questions of layouts where every column from
// firstColumn on is a question and the standard answers sit in anchorRow.
func positionalQuestions(table *sheet.Table, anchorRow, firstColumn int, norm Normalizer) ([]Question, []SkippedQuestion) {
	var (
		questions []Question
		skipped   []SkippedQuestion
	)

	for col := firstColumn; col < table.NumColumns(); col++ {
		number := col - firstColumn + 1
		label := table.ColumnName(col)

		answer, ok := norm.StandardAnswer(table.Cell(anchorRow, col))
		if !ok {
			skipped = append(skipped, SkippedQuestion{
				Number: number,
				Label:  label,
				Reason: "standard answer cell is empty",
			})
			continue
		}

		questions = append(questions, Question{
			Number:         number,
			Label:          label,
			Column:         col,
			StandardAnswer: answer,
		})
	}

	return questions, skipped
}
