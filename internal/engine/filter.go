package engine

import (
	"strings"

	"github.com/samber/lo"
	"github.com/wrongbook/backend/internal/sheet"
)

// allValues are the selections meaning "no constraint".
var allValues = []string{"", "全部", "all", "ALL", "All"}

// Filter selects the rows to analyze by teacher and class.
type Filter struct {
	Teacher string
	Class   string
}

// IsEmpty reports whether the filter keeps every row.
func (f Filter) IsEmpty() bool {
	return isAll(f.Teacher) && isAll(f.Class)
}

func isAll(v string) bool {
	return lo.Contains(allValues, strings.TrimSpace(v))
}

// Filters are the values a caller can select from.
type Filters struct {
	Teachers []string
	Classes  []string
	// ClassesByTeacher lists the classes each teacher appears with.
	ClassesByTeacher map[string][]string
}

// FilterOptions collects the distinct teachers and classes of the table in
// first-seen order. Missing columns yield empty lists.
func FilterOptions(table *sheet.Table, vocab Vocabulary) Filters {
	filters := Filters{ClassesByTeacher: map[string][]string{}}

	teacherCol, hasTeacher := firstPresent(vocab.TeacherColumns, table.HasColumn)
	classCol, hasClass := firstPresent(vocab.ClassColumns, table.HasColumn)

	if hasTeacher {
		filters.Teachers = table.Distinct(teacherCol)
	}
	if hasClass {
		filters.Classes = table.Distinct(classCol)
	}

	if hasTeacher && hasClass {
		for _, teacher := range filters.Teachers {
			rows := table.Filter(func(row int) bool {
				return strings.TrimSpace(table.CellByName(row, teacherCol).Text) == teacher
			})
			filters.ClassesByTeacher[teacher] = rows.Distinct(classCol)
		}
	}

	return filters
}

// ApplyFilter keeps the rows matching f. A selection on a column the table
// does not have matches nothing.
func ApplyFilter(table *sheet.Table, f Filter, vocab Vocabulary) *sheet.Table {
	if f.IsEmpty() {
		return table
	}

	type constraint struct {
		column string
		value  string
	}
	var constraints []constraint

	for _, sel := range []struct {
		columns []string
		value   string
	}{
		{vocab.TeacherColumns, f.Teacher},
		{vocab.ClassColumns, f.Class},
	} {
		if isAll(sel.value) {
			continue
		}

		column, ok := firstPresent(sel.columns, table.HasColumn)
		if !ok {
			return table.Filter(func(int) bool { return false })
		}
		constraints = append(constraints, constraint{column: column, value: strings.TrimSpace(sel.value)})
	}

	return table.Filter(func(row int) bool {
		return lo.EveryBy(constraints, func(c constraint) bool {
			return strings.TrimSpace(table.CellByName(row, c.column).Text) == c.value
		})
	})
}
