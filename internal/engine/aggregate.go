package engine

import (
	"slices"

	"github.com/wrongbook/backend/internal/sheet"
)

// AnswerGroup is one distinct answer given to a question.
type AnswerGroup struct {
	Answer      string
	Count       int
	Respondents []string
	// Rows are the table rows that gave the answer, in table order.
	Rows []int
}

// QuestionResult is the analysis of one question.
type QuestionResult struct {
	Number         int
	Label          string
	StandardAnswer string
	// Respondents is the number of answered responses, the accuracy denominator.
	Respondents int
	Correct     int
	// Accuracy is Correct / Respondents in percent, 0 when nobody answered.
	Accuracy float64
	// Tally holds every answer group by descending count, ties in first-seen order.
	Tally []AnswerGroup
	// WrongAnswers is the part of Tally whose answer differs from StandardAnswer.
	WrongAnswers []AnswerGroup
}

// Aggregate tallies the answers to q over rows.
//
// The rows are indexed by answer in a single pass; names are resolved from the
// row indices afterwards.
func Aggregate(table *sheet.Table, rows RowRange, q Question, names *NameResolver, norm Normalizer) QuestionResult {
	groups := make([]AnswerGroup, 0)
	byAnswer := make(map[string]int)

	respondents, correct := 0, 0
	for row := rows.Start; row < rows.End; row++ {
		answer, ok := norm.Normalize(table.Cell(row, q.Column))
		if !ok {
			continue
		}
		respondents++
		if answer == q.StandardAnswer {
			correct++
		}

		i, seen := byAnswer[answer]
		if !seen {
			i = len(groups)
			byAnswer[answer] = i
			groups = append(groups, AnswerGroup{Answer: answer})
		}
		groups[i].Count++
		groups[i].Rows = append(groups[i].Rows, row)
	}

	for i := range groups {
		groups[i].Respondents = make([]string, len(groups[i].Rows))
		for j, row := range groups[i].Rows {
			groups[i].Respondents[j] = names.Name(row)
		}
	}

	slices.SortStableFunc(groups, func(a, b AnswerGroup) int {
		return b.Count - a.Count
	})

	wrong := make([]AnswerGroup, 0, len(groups))
	for _, g := range groups {
		if g.Answer != q.StandardAnswer {
			wrong = append(wrong, g)
		}
	}

	return QuestionResult{
		Number:         q.Number,
		Label:          q.Label,
		StandardAnswer: q.StandardAnswer,
		Respondents:    respondents,
		Correct:        correct,
		Accuracy:       accuracy(correct, respondents),
		Tally:          groups,
		WrongAnswers:   wrong,
	}
}

func accuracy(correct, respondents int) float64 {
	if respondents == 0 {
		return 0
	}

	return float64(correct) / float64(respondents) * 100
}
