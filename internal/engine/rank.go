package engine

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortOrder is how question results are ordered.
type SortOrder string

const (
	// SortOriginal keeps the question order of the spreadsheet.
	SortOriginal SortOrder = "original"
	// SortAccuracyAsc puts the hardest questions first.
	SortAccuracyAsc SortOrder = "accuracy_asc"
	// SortAccuracyDesc puts the easiest questions first.
	SortAccuracyDesc SortOrder = "accuracy_desc"
)

// ParseSortOrder parses a sort order name. The empty string is SortOriginal.
// The labels of the original selection box are accepted as well.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.TrimSpace(s) {
	case "", string(SortOriginal), "按照题目原本顺序":
		return SortOriginal, nil
	case string(SortAccuracyAsc), "asc", "按照正确率升序":
		return SortAccuracyAsc, nil
	case string(SortAccuracyDesc), "desc", "按照正确率降序":
		return SortAccuracyDesc, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSortOrder, s)
	}
}

// Rank returns the results in the requested order. The input slice is not
// modified and equal accuracies keep their relative order.
func Rank(results []QuestionResult, order SortOrder) []QuestionResult {
	ranked := slices.Clone(results)

	switch order {
	case SortAccuracyAsc:
		slices.SortStableFunc(ranked, func(a, b QuestionResult) int {
			return cmp.Compare(a.Accuracy, b.Accuracy)
		})
	case SortAccuracyDesc:
		slices.SortStableFunc(ranked, func(a, b QuestionResult) int {
			return cmp.Compare(b.Accuracy, a.Accuracy)
		})
	}

	return ranked
}
