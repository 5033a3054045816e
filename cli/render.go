package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wrongbook/backend/internal/analysis"
	"github.com/wrongbook/backend/internal/engine"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	sectionStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color("8")).
			PaddingLeft(1)
)

// accuracyStyle colors an accuracy rate like a traffic light.
func accuracyStyle(accuracy float64) lipgloss.Style {
	switch {
	case accuracy >= 80:
		return correctStyle
	case accuracy >= 60:
		return warnStyle
	default:
		return wrongStyle
	}
}

// RenderReport renders the report as terminal text.
func RenderReport(report *analysis.Report) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf("📊 %s", displayName(report))) + "\n")
	s.WriteString(labelStyle.Render(fmt.Sprintf("Layout: %s | Sort: %s | Rows: %d | Questions: %d",
		report.Layout, report.Sort, report.Rows, len(report.Results))) + "\n")
	if report.FilterIgnored {
		s.WriteString(warnStyle.Render("⚠ The teacher/class filter is not supported by this layout and was ignored.") + "\n")
	}
	s.WriteString("\n")

	for _, q := range report.Results {
		s.WriteString(sectionStyle.Render(RenderQuestion(q)) + "\n\n")
	}

	if len(report.Skipped) > 0 {
		s.WriteString(warnStyle.Render(fmt.Sprintf("Skipped %d question(s):", len(report.Skipped))) + "\n")
		for _, skipped := range report.Skipped {
			fmt.Fprintf(&s, "  - #%d %s: %s\n", skipped.Number, skipped.Label, skipped.Reason)
		}
	}

	return s.String()
}

// RenderQuestion renders one question result.
func RenderQuestion(q engine.QuestionResult) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf("Question %d: %s", q.Number, q.Label)) + "\n")
	s.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Standard answer:"), correctStyle.Render(q.StandardAnswer)))
	s.WriteString(fmt.Sprintf("%s %d/%d ", labelStyle.Render("Correct:"), q.Correct, q.Respondents))
	s.WriteString(accuracyStyle(q.Accuracy).Render(fmt.Sprintf("(%.2f%%)", q.Accuracy)) + "\n")

	if len(q.WrongAnswers) == 0 {
		s.WriteString(correctStyle.Render("No wrong answers."))
		return s.String()
	}

	s.WriteString(labelStyle.Render("Wrong answers:"))
	for _, g := range q.WrongAnswers {
		fmt.Fprintf(&s, "\n  %s ×%d  %s",
			wrongStyle.Render(g.Answer), g.Count, strings.Join(g.Respondents, "、"))
	}

	return s.String()
}

// RenderFilters renders the teacher and class values.
func RenderFilters(filters engine.Filters) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Teachers") + "\n")
	if len(filters.Teachers) == 0 {
		s.WriteString(labelStyle.Render("  (no teacher column)") + "\n")
	}
	for _, teacher := range filters.Teachers {
		fmt.Fprintf(&s, "  - %s", teacher)
		if classes := filters.ClassesByTeacher[teacher]; len(classes) > 0 {
			s.WriteString(labelStyle.Render(" ("+strings.Join(classes, ", ")+")"))
		}
		s.WriteString("\n")
	}

	s.WriteString(titleStyle.Render("Classes") + "\n")
	if len(filters.Classes) == 0 {
		s.WriteString(labelStyle.Render("  (no class column)") + "\n")
	}
	for _, class := range filters.Classes {
		fmt.Fprintf(&s, "  - %s\n", class)
	}

	return s.String()
}

func displayName(report *analysis.Report) string {
	if report.FileName != "" {
		return report.FileName
	}

	return "Analysis " + report.RunID
}
