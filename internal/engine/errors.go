package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoQuestions is returned when a run produced no question result at all.
// A run that produced some results and skipped others is a partial success,
// not an error.
var ErrNoQuestions = errors.New("no question could be analyzed")

// ErrUnknownLayout is returned for a layout name that is not supported.
var ErrUnknownLayout = errors.New("unknown layout")

// ErrUnknownSortOrder is returned for a sort order name that is not supported.
var ErrUnknownSortOrder = errors.New("unknown sort order")

// AnchorNotFoundError means the row-scan layout found no standard-answer row.
type AnchorNotFoundError struct {
	Markers     []string
	ScannedRows int
}

func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf(
		"no row containing %s found in the first %d rows; check that the file contains a standard-answer row",
		quoteAll(e.Markers), e.ScannedRows,
	)
}

// MissingNameColumnError means no column can provide the respondents' names.
type MissingNameColumnError struct {
	Candidates []string
}

func (e *MissingNameColumnError) Error() string {
	return fmt.Sprintf("no student name column found; expected one of %s", quoteAll(e.Candidates))
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}

	return strings.Join(quoted, ", ")
}
