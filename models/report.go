package models

import (
	"time"

	"github.com/samber/lo"
	"github.com/wrongbook/backend/internal/analysis"
	"github.com/wrongbook/backend/internal/engine"
)

type Report struct {
	RunID         string            `json:"runId" yaml:"runId"`
	FileName      string            `json:"fileName,omitempty" yaml:"fileName,omitempty"`
	GeneratedAt   time.Time         `json:"generatedAt" yaml:"generatedAt"`
	Layout        string            `json:"layout" yaml:"layout"`
	Sort          string            `json:"sort" yaml:"sort"`
	Filter        Filter            `json:"filter" yaml:"filter"`
	FilterIgnored bool              `json:"filterIgnored" yaml:"filterIgnored"` // 该格式不支持筛选
	Rows          int               `json:"rows" yaml:"rows"`
	ResponseRows  int               `json:"responseRows" yaml:"responseRows"` // 学生作答行数
	Partial       bool              `json:"partial" yaml:"partial"`
	Questions     []QuestionResult  `json:"questions" yaml:"questions"`
	Skipped       []SkippedQuestion `json:"skipped" yaml:"skipped"`
	Filters       Filters           `json:"filters" yaml:"filters"`
}

type Filter struct {
	Teacher string `json:"teacher,omitempty" yaml:"teacher,omitempty"`
	Class   string `json:"class,omitempty" yaml:"class,omitempty"`
}

type Filters struct {
	Teachers         []string            `json:"teachers" yaml:"teachers"`
	Classes          []string            `json:"classes" yaml:"classes"`
	ClassesByTeacher map[string][]string `json:"classesByTeacher" yaml:"classesByTeacher"`
}

func NewReport(r *analysis.Report) Report {
	return Report{
		RunID:         r.RunID,
		FileName:      r.FileName,
		GeneratedAt:   r.GeneratedAt,
		Layout:        string(r.Layout),
		Sort:          string(r.Sort),
		Filter:        Filter{Teacher: r.Filter.Teacher, Class: r.Filter.Class},
		FilterIgnored: r.FilterIgnored,
		Rows:          r.Rows,
		ResponseRows:  r.ResponseRows,
		Partial:       r.Partial(),
		Questions:     lo.Map(r.Results, func(q engine.QuestionResult, _ int) QuestionResult { return NewQuestionResult(q) }),
		Skipped: lo.Map(r.Skipped, func(s engine.SkippedQuestion, _ int) SkippedQuestion {
			return SkippedQuestion{Number: s.Number, Label: s.Label, Reason: s.Reason}
		}),
		Filters: NewFilters(r.Filters),
	}
}

func NewFilters(f engine.Filters) Filters {
	classesByTeacher := f.ClassesByTeacher
	if classesByTeacher == nil {
		classesByTeacher = map[string][]string{}
	}

	return Filters{
		Teachers:         lo.Ternary(f.Teachers == nil, []string{}, f.Teachers),
		Classes:          lo.Ternary(f.Classes == nil, []string{}, f.Classes),
		ClassesByTeacher: classesByTeacher,
	}
}
