package cli

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wrongbook/backend/internal/analysis"
	"github.com/wrongbook/backend/internal/engine"
)

// Browse analyzes the spreadsheet at path and opens the interactive question
// navigator.
func (c *Context) Browse(ctx context.Context, path string, req analysis.Request) error {
	report, err := c.Analyze(ctx, path, req)
	if err != nil {
		return err
	}

	program := tea.NewProgram(newBrowseModel(report), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}

	return nil
}

var sortCycle = []engine.SortOrder{engine.SortOriginal, engine.SortAccuracyAsc, engine.SortAccuracyDesc}

// browseModel is the Bubble Tea model of the question navigator: a table of
// questions with the selected question's wrong answers below it.
type browseModel struct {
	report *analysis.Report
	// original holds the results in question order.
	original []engine.QuestionResult
	results  []engine.QuestionResult
	sort     engine.SortOrder
	table    table.Model
}

func newBrowseModel(report *analysis.Report) *browseModel {
	original := slices.Clone(report.Results)
	slices.SortStableFunc(original, func(a, b engine.QuestionResult) int {
		return cmp.Compare(a.Number, b.Number)
	})

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Question", Width: 36},
			{Title: "Answer", Width: 10},
			{Title: "Accuracy", Width: 9},
			{Title: "Answered", Width: 9},
		}),
		table.WithFocused(true),
		table.WithHeight(min(max(len(original), 1), 12)),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	m := &browseModel{
		report:   report,
		original: original,
		table:    t,
	}
	m.applySort(report.Sort)

	return m
}

func (m *browseModel) applySort(order engine.SortOrder) {
	m.sort = order
	m.results = engine.Rank(m.original, order)

	rows := make([]table.Row, len(m.results))
	for i, q := range m.results {
		rows[i] = table.Row{
			strconv.Itoa(q.Number),
			q.Label,
			q.StandardAnswer,
			fmt.Sprintf("%.2f%%", q.Accuracy),
			strconv.Itoa(q.Respondents),
		}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// selected returns the question under the cursor.
func (m *browseModel) selected() (engine.QuestionResult, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.results) {
		return engine.QuestionResult{}, false
	}

	return m.results[cursor], true
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "s":
			next := (slices.Index(sortCycle, m.sort) + 1) % len(sortCycle)
			m.applySort(sortCycle[next])
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *browseModel) View() string {
	var s string
	s += "\n"
	s += titleStyle.Render(fmt.Sprintf("📊 %s", displayName(m.report))) + "\n"
	s += labelStyle.Render(fmt.Sprintf("Sort: %s | Questions: %d | Skipped: %d",
		m.sort, len(m.results), len(m.report.Skipped))) + "\n\n"

	s += m.table.View() + "\n\n"

	if q, ok := m.selected(); ok {
		s += sectionStyle.Render(RenderQuestion(q)) + "\n"
	} else {
		s += labelStyle.Render("No question to show.") + "\n"
	}

	s += "\n" + labelStyle.Render("↑/↓ select • s change sort • q quit") + "\n"
	return s
}
