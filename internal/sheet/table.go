// Package sheet loads exam response spreadsheets into an in-memory table of raw text cells.
package sheet

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Cell is a single spreadsheet cell.
//
// A missing cell (never written in the workbook) has Present == false, which is
// different from a cell holding an empty string or a "-" placeholder.
type Cell struct {
	Text    string
	Present bool
}

// TextCell creates a present cell with the given text.
func TextCell(text string) Cell {
	return Cell{Text: text, Present: true}
}

// MissingCell is a cell that holds no value.
var MissingCell = Cell{}

// IsBlank reports whether the cell is missing or contains only whitespace.
func (c Cell) IsBlank() bool {
	return !c.Present || strings.TrimSpace(c.Text) == ""
}

// Column is a named column of the table.
type Column struct {
	Name  string
	Cells []Cell
}

// Table is a row-aligned table of named columns.
//
// The table is read-only once built; Filter returns a new table.
type Table struct {
	columns []Column
	index   map[string]int
	rows    int
	// origins maps rows to the rows of the table they were filtered from.
	origins []int
}

// NewTable creates a table from a header row and data rows.
//
// Empty header names become "Unnamed: <i>", duplicated names get a ".1", ".2", …
// suffix, and rows are padded with missing cells to the widest row.
func NewTable(header []string, rows [][]Cell) *Table {
	width := len(header)
	for _, row := range rows {
		width = max(width, len(row))
	}

	names := make([]string, width)
	seen := make(map[string]int, width)
	for i := range width {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}

		// a generated name may collide with a real header, so keep
		// suffixing until the name is unused
		for count := seen[name]; count > 0; count = seen[name] {
			seen[name] = count + 1
			name = fmt.Sprintf("%s.%d", name, count)
		}
		seen[name]++
		names[i] = name
	}

	columns := make([]Column, width)
	index := make(map[string]int, width)
	for i, name := range names {
		cells := make([]Cell, len(rows))
		for r, row := range rows {
			if i < len(row) {
				cells[r] = row[i]
			}
		}
		columns[i] = Column{Name: name, Cells: cells}
		index[name] = i
	}

	return &Table{
		columns: columns,
		index:   index,
		rows:    len(rows),
	}
}

// NumRows returns the number of data rows (the header row excluded).
func (t *Table) NumRows() int {
	return t.rows
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Header returns the column names in order.
func (t *Table) Header() []string {
	return lo.Map(t.columns, func(c Column, _ int) string { return c.Name })
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnName returns the name of the column at position col.
func (t *Table) ColumnName(col int) string {
	return t.columns[col].Name
}

// Cell returns the cell at (row, col). Out-of-range positions return MissingCell.
func (t *Table) Cell(row, col int) Cell {
	if col < 0 || col >= len(t.columns) || row < 0 || row >= t.rows {
		return MissingCell
	}

	return t.columns[col].Cells[row]
}

// CellByName returns the cell at row in the named column.
func (t *Table) CellByName(row int, name string) Cell {
	col, ok := t.index[name]
	if !ok {
		return MissingCell
	}

	return t.Cell(row, col)
}

// Row returns a copy of the cells in one row.
func (t *Table) Row(row int) []Cell {
	cells := make([]Cell, len(t.columns))
	for i := range t.columns {
		cells[i] = t.Cell(row, i)
	}

	return cells
}

// Filter returns a new table holding only the rows for which keep returns true.
func (t *Table) Filter(keep func(row int) bool) *Table {
	kept := make([]int, 0, t.rows)
	origins := make([]int, 0, t.rows)
	for r := range t.rows {
		if keep(r) {
			kept = append(kept, r)
			origins = append(origins, t.SourceRow(r))
		}
	}

	columns := make([]Column, len(t.columns))
	for i, c := range t.columns {
		cells := make([]Cell, len(kept))
		for j, r := range kept {
			cells[j] = c.Cells[r]
		}
		columns[i] = Column{Name: c.Name, Cells: cells}
	}

	return &Table{
		columns: columns,
		index:   t.index,
		rows:    len(kept),
		origins: origins,
	}
}

// SourceRow returns the data row index that row had in the loaded table,
// before any Filter.
func (t *Table) SourceRow(row int) int {
	if t.origins == nil || row < 0 || row >= len(t.origins) {
		return row
	}

	return t.origins[row]
}

// Distinct returns the distinct non-blank trimmed values of the named column
// in first-seen order.
func (t *Table) Distinct(name string) []string {
	col, ok := t.index[name]
	if !ok {
		return nil
	}

	values := lo.FilterMap(t.columns[col].Cells, func(c Cell, _ int) (string, bool) {
		return strings.TrimSpace(c.Text), !c.IsBlank()
	})

	return lo.Uniq(values)
}
