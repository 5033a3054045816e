package models

import "github.com/wrongbook/backend/internal/engine"

type QuestionResult struct {
	Number         int           `json:"number" yaml:"number"`                 // 题号
	Label          string        `json:"label" yaml:"label"`                   // 题目
	StandardAnswer string        `json:"standardAnswer" yaml:"standardAnswer"` // 标准答案
	Statistics     QuestionStats `json:"statistics" yaml:"statistics"`         // 答题统计
	Tally          []AnswerGroup `json:"tally" yaml:"tally"`                   // 全部答案分布
	WrongAnswers   []AnswerGroup `json:"wrongAnswers" yaml:"wrongAnswers"`     // 错误答案分布
}

type QuestionStats struct {
	Respondents int     `json:"respondents" yaml:"respondents"` // 答题人数
	Correct     int     `json:"correct" yaml:"correct"`         // 答对人数
	Accuracy    float64 `json:"accuracy" yaml:"accuracy"`       // 正确率，百分比
}

type AnswerGroup struct {
	Answer      string   `json:"answer" yaml:"answer"`
	Count       int      `json:"count" yaml:"count"`
	Respondents []string `json:"respondents" yaml:"respondents"` // 作答学生
}

type SkippedQuestion struct {
	Number int    `json:"number" yaml:"number"`
	Label  string `json:"label" yaml:"label"`
	Reason string `json:"reason" yaml:"reason"`
}

func NewQuestionResult(q engine.QuestionResult) QuestionResult {
	return QuestionResult{
		Number:         q.Number,
		Label:          q.Label,
		StandardAnswer: q.StandardAnswer,
		Statistics: QuestionStats{
			Respondents: q.Respondents,
			Correct:     q.Correct,
			Accuracy:    q.Accuracy,
		},
		Tally:        newAnswerGroups(q.Tally),
		WrongAnswers: newAnswerGroups(q.WrongAnswers),
	}
}

func newAnswerGroups(groups []engine.AnswerGroup) []AnswerGroup {
	out := make([]AnswerGroup, len(groups))
	for i, g := range groups {
		out[i] = AnswerGroup{
			Answer:      g.Answer,
			Count:       g.Count,
			Respondents: g.Respondents,
		}
	}

	return out
}
