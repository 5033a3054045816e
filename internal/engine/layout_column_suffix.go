package engine

import (
	"strconv"

	"github.com/wrongbook/backend/internal/sheet"
)

// ColumnSuffix is the layout where question i lives in the columns
// "<question prefix>i", "<response prefix>i" and "<standard answer prefix>i",
// with the question text and the standard answer repeated on every row.
type ColumnSuffix struct {
	Vocabulary Vocabulary
	Normalizer Normalizer
}

func (l *ColumnSuffix) Kind() LayoutKind {
	return LayoutColumnSuffix
}

// Locate discovers questions 1, 2, … and stops at the first index without a
// response column; a gap ends the discovery.
func (l *ColumnSuffix) Locate(table *sheet.Table) (*Plan, error) {
	plan := &Plan{
		Layout:              LayoutColumnSuffix,
		AnchorRow:           -1,
		FirstQuestionColumn: -1,
		ResponseRows:        RowRange{Start: 0, End: table.NumRows()},
	}

	for i := 1; ; i++ {
		suffix := strconv.Itoa(i)
		column := func(prefixes []string) (int, bool) {
			name, ok := firstPresent(prefixes, func(prefix string) bool {
				return table.HasColumn(prefix + suffix)
			})
			if !ok {
				return 0, false
			}
			return table.ColumnIndex(name + suffix)
		}

		responseCol, ok := column(l.Vocabulary.ResponsePrefixes)
		if !ok {
			break
		}

		// without question text the response header labels the question
		label := table.ColumnName(responseCol)
		if questionCol, ok := column(l.Vocabulary.QuestionPrefixes); ok {
			if cell := table.Cell(0, questionCol); !cell.IsBlank() {
				label = cell.Text
			}
		}

		standardCol, ok := column(l.Vocabulary.StandardAnswerPrefixes)
		if !ok {
			plan.Skipped = append(plan.Skipped, SkippedQuestion{
				Number: i,
				Label:  label,
				Reason: "standard answer column is missing",
			})
			continue
		}

		answer, ok := l.Normalizer.Normalize(table.Cell(0, standardCol))
		if !ok {
			plan.Skipped = append(plan.Skipped, SkippedQuestion{
				Number: i,
				Label:  label,
				Reason: "standard answer cell is empty",
			})
			continue
		}

		plan.Questions = append(plan.Questions, Question{
			Number:         i,
			Label:          label,
			Column:         responseCol,
			StandardAnswer: answer,
		})
	}

	return plan, nil
}

var _ Layout = (*ColumnSuffix)(nil)
