package engine

import (
	"github.com/wrongbook/backend/internal/sheet"
)

// newTable builds a table where "" stands for a missing cell.
func newTable(header []string, rows ...[]string) *sheet.Table {
	cells := make([][]sheet.Cell, len(rows))
	for i, row := range rows {
		cells[i] = make([]sheet.Cell, len(row))
		for j, text := range row {
			if text != "" {
				cells[i][j] = sheet.TextCell(text)
			}
		}
	}

	return sheet.NewTable(header, cells)
}

// singleQuestion builds a column-suffix table with one question answered by
// one student per answer.
func singleQuestion(standard string, answers ...string) *sheet.Table {
	rows := make([][]string, len(answers))
	for i, a := range answers {
		rows[i] = []string{"S" + string(rune('A'+i)), "question", a, standard}
	}

	return newTable([]string{"姓名", "试题1", "回答1", "标准答案1"}, rows...)
}

func answersOf(groups []AnswerGroup) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Answer
	}
	return out
}

func numbersOf(results []QuestionResult) []int {
	out := make([]int, len(results))
	for i, r := range results {
		out[i] = r.Number
	}
	return out
}
