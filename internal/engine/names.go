package engine

import (
	"fmt"
	"strings"

	"github.com/wrongbook/backend/internal/sheet"
)

// headerRows is the number of spreadsheet rows above data row 0.
const headerRows = 1

// NameResolver builds respondent display names from the name columns of a table.
type NameResolver struct {
	table   *sheet.Table
	columns []int
}

// NewNameResolver picks the name columns: the first (surname, given name) pair
// present in the table, else the first single name column.
func NewNameResolver(table *sheet.Table, vocab Vocabulary) (*NameResolver, error) {
	for _, pair := range vocab.NamePairs {
		surname, ok1 := table.ColumnIndex(pair[0])
		given, ok2 := table.ColumnIndex(pair[1])
		if ok1 && ok2 {
			return &NameResolver{table: table, columns: []int{surname, given}}, nil
		}
	}

	for _, name := range vocab.NameColumns {
		if col, ok := table.ColumnIndex(name); ok {
			return &NameResolver{table: table, columns: []int{col}}, nil
		}
	}

	candidates := make([]string, 0, len(vocab.NamePairs)+len(vocab.NameColumns))
	for _, pair := range vocab.NamePairs {
		candidates = append(candidates, pair[0]+"+"+pair[1])
	}
	candidates = append(candidates, vocab.NameColumns...)

	return nil, &MissingNameColumnError{Candidates: candidates}
}

// Name returns the display name of the respondent in row. A row without any
// name text is shown by its spreadsheet row number, e.g. "#5".
func (r *NameResolver) Name(row int) string {
	var b strings.Builder
	for _, col := range r.columns {
		cell := r.table.Cell(row, col)
		if !cell.IsBlank() {
			b.WriteString(strings.TrimSpace(cell.Text))
		}
	}

	if b.Len() == 0 {
		return fmt.Sprintf("#%d", r.table.SourceRow(row)+headerRows+1)
	}

	return b.String()
}
