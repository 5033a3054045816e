package analysis

import (
	"time"

	"github.com/wrongbook/backend/internal/engine"
)

// Report is the outcome of an analysis run.
type Report struct {
	RunID       string
	FileName    string
	GeneratedAt time.Time

	Layout engine.LayoutKind
	Sort   engine.SortOrder
	Filter engine.Filter
	// FilterIgnored is set when the layout could not honor the filter.
	FilterIgnored bool

	// Rows is the number of table rows after filtering.
	Rows int
	// ResponseRows is the number of student rows of the located layout.
	ResponseRows int

	Results []engine.QuestionResult
	Skipped []engine.SkippedQuestion

	// Filters are the teacher and class values of the whole file.
	Filters engine.Filters
}

// Partial reports whether some questions could not be analyzed.
func (r *Report) Partial() bool {
	return len(r.Skipped) > 0
}

// Question returns the result of the question numbered n.
func (r *Report) Question(n int) (engine.QuestionResult, bool) {
	for _, q := range r.Results {
		if q.Number == n {
			return q, true
		}
	}

	return engine.QuestionResult{}, false
}
