package engine

import (
	"fmt"

	"github.com/wrongbook/backend/internal/sheet"
)

// Options configures a run.
type Options struct {
	Layout     LayoutKind
	Vocabulary Vocabulary
	Normalizer Normalizer

	// ScanRows bounds the anchor search of the row-scan layout.
	ScanRows int
	// FixedOffset is the first student row of the fixed-offset layout.
	FixedOffset int
	// FirstQuestionColumn is the first question column of the positional layouts.
	FirstQuestionColumn int

	Filter Filter
	Sort   SortOrder
}

// DefaultOptions returns options with automatic layout detection and the
// default vocabulary.
func DefaultOptions() Options {
	return Options{
		Layout:              LayoutAuto,
		Vocabulary:          DefaultVocabulary(),
		ScanRows:            DefaultScanRows,
		FixedOffset:         DefaultFixedOffset,
		FirstQuestionColumn: DefaultFirstQuestionColumn,
		Sort:                SortOriginal,
	}
}

// Result is the outcome of a run.
type Result struct {
	Plan *Plan
	// Results are ranked by the requested sort order.
	Results []QuestionResult
	Skipped []SkippedQuestion
	// Rows is the number of table rows left after filtering.
	Rows int
	// FilterIgnored is set when a filter was requested for a layout whose rows
	// are positional and therefore cannot be filtered.
	FilterIgnored bool
}

// Partial reports whether some questions were skipped.
func (r *Result) Partial() bool {
	return len(r.Skipped) > 0
}

// Run analyzes every question of the table.
//
// It fails with *AnchorNotFoundError, *MissingNameColumnError or
// ErrUnknownLayout. When no question could be analyzed it returns
// ErrNoQuestions together with the result, so the skipped questions can still
// be reported.
func Run(table *sheet.Table, opts Options) (*Result, error) {
	layout, err := NewLayout(opts.Layout, table, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	if !opts.Filter.IsEmpty() {
		if layout.Kind() == LayoutColumnSuffix {
			table = ApplyFilter(table, opts.Filter, opts.Vocabulary)
		} else {
			result.FilterIgnored = true
		}
	}
	result.Rows = table.NumRows()

	plan, err := layout.Locate(table)
	if err != nil {
		return nil, err
	}
	result.Plan = plan
	result.Skipped = plan.Skipped

	names, err := NewNameResolver(table, opts.Vocabulary)
	if err != nil {
		return nil, err
	}

	results := make([]QuestionResult, 0, len(plan.Questions))
	for _, q := range plan.Questions {
		results = append(results, Aggregate(table, plan.ResponseRows, q, names, opts.Normalizer))
	}
	result.Results = Rank(results, opts.Sort)

	if len(result.Results) == 0 {
		return result, fmt.Errorf("%w (%d skipped)", ErrNoQuestions, len(result.Skipped))
	}

	return result, nil
}
