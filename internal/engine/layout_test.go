package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLayoutKind(t *testing.T) {
	for input, want := range map[string]LayoutKind{
		"":              LayoutAuto,
		"auto":          LayoutAuto,
		"Column-Suffix": LayoutColumnSuffix,
		" row-scan ":    LayoutRowScan,
		"fixed-offset":  LayoutFixedOffset,
	} {
		got, err := ParseLayoutKind(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseLayoutKind("pivot")
	assert.ErrorIs(t, err, ErrUnknownLayout)
}

func TestDetect(t *testing.T) {
	vocab := DefaultVocabulary()

	assert.Equal(t, LayoutColumnSuffix, Detect(newTable([]string{"姓名", "回答1"}), vocab))
	assert.Equal(t, LayoutColumnSuffix, Detect(newTable([]string{"Name", "Response1"}), vocab))
	// discovery starts at 1, a lone second question is not the column-suffix layout
	assert.Equal(t, LayoutRowScan, Detect(newTable([]string{"姓名", "回答2"}), vocab))
	assert.Equal(t, LayoutRowScan, Detect(newTable([]string{"学号", "姓名", "Q1"}), vocab))
}

func TestColumnSuffix_Locate(t *testing.T) {
	layout := &ColumnSuffix{Vocabulary: DefaultVocabulary()}

	t.Run("stops at the first gap", func(t *testing.T) {
		table := newTable(
			[]string{"姓名", "试题1", "回答1", "标准答案1", "试题2", "回答2", "标准答案2", "试题4", "回答4", "标准答案4"},
			[]string{"a", "q1", "A", "A", "q2", "B", "C", "q4", "D", "D"},
		)

		plan, err := layout.Locate(table)
		require.NoError(t, err)

		assert.Equal(t, LayoutColumnSuffix, plan.Layout)
		assert.Equal(t, -1, plan.AnchorRow)
		assert.Equal(t, RowRange{Start: 0, End: 1}, plan.ResponseRows)
		require.Len(t, plan.Questions, 2)
		assert.Equal(t, Question{Number: 1, Label: "q1", Column: 2, StandardAnswer: "A"}, plan.Questions[0])
		assert.Equal(t, Question{Number: 2, Label: "q2", Column: 5, StandardAnswer: "C"}, plan.Questions[1])
		assert.Empty(t, plan.Skipped)
	})

	t.Run("missing cells skip the question", func(t *testing.T) {
		table := newTable(
			[]string{"姓名", "试题1", "回答1", "标准答案1", "回答2", "标准答案2", "试题3", "回答3", "标准答案3", "回答4"},
			[]string{"a", "q1", "A", "", "B", "B", "", "C", "C", "D"},
		)

		plan, err := layout.Locate(table)
		require.NoError(t, err)

		// questions 2 and 3 have no question text and fall back to the header
		require.Len(t, plan.Questions, 2)
		assert.Equal(t, Question{Number: 2, Label: "回答2", Column: 4, StandardAnswer: "B"}, plan.Questions[0])
		assert.Equal(t, Question{Number: 3, Label: "回答3", Column: 7, StandardAnswer: "C"}, plan.Questions[1])

		require.Len(t, plan.Skipped, 2)
		assert.Equal(t, SkippedQuestion{Number: 1, Label: "q1", Reason: "standard answer cell is empty"}, plan.Skipped[0])
		assert.Equal(t, SkippedQuestion{Number: 4, Label: "回答4", Reason: "standard answer column is missing"}, plan.Skipped[1])
	})

	t.Run("no rows skips everything", func(t *testing.T) {
		table := newTable([]string{"姓名", "试题1", "回答1", "标准答案1"})

		plan, err := layout.Locate(table)
		require.NoError(t, err)
		assert.Empty(t, plan.Questions)
		assert.Len(t, plan.Skipped, 1)
	})

	t.Run("english headers", func(t *testing.T) {
		table := newTable(
			[]string{"Name", "Question1", "Response1", "Standard Answer1"},
			[]string{"a", "Capital?", "Paris", "Paris"},
		)

		plan, err := layout.Locate(table)
		require.NoError(t, err)
		require.Len(t, plan.Questions, 1)
		assert.Equal(t, "Capital?", plan.Questions[0].Label)
		assert.Equal(t, "Paris", plan.Questions[0].StandardAnswer)
	})
}

func TestRowScan_Locate(t *testing.T) {
	layout := &RowScan{Markers: []string{"正确答案"}}

	t.Run("anchor after metadata rows", func(t *testing.T) {
		table := newTable(
			[]string{"学号", "姓名", "Q1", "Q2", "Q3", "总分"},
			[]string{"考试", "期中"},
			[]string{"", "正确答案", "正确答案:A", "正确答案：C", "B"},
			[]string{"1", "张三", "A", "C", "B", "3"},
			[]string{"2", "李四", "B", "C", "-", "1"},
		)

		plan, err := layout.Locate(table)
		require.NoError(t, err)

		assert.Equal(t, LayoutRowScan, plan.Layout)
		assert.Equal(t, 1, plan.AnchorRow)
		assert.Equal(t, 2, plan.FirstQuestionColumn)
		assert.Equal(t, RowRange{Start: 2, End: 4}, plan.ResponseRows)

		require.Len(t, plan.Questions, 3)
		assert.Equal(t, Question{Number: 1, Label: "Q1", Column: 2, StandardAnswer: "A"}, plan.Questions[0])
		assert.Equal(t, Question{Number: 2, Label: "Q2", Column: 3, StandardAnswer: "C"}, plan.Questions[1])
		assert.Equal(t, Question{Number: 3, Label: "Q3", Column: 4, StandardAnswer: "B"}, plan.Questions[2])

		// the totals column has no standard answer
		require.Len(t, plan.Skipped, 1)
		assert.Equal(t, 4, plan.Skipped[0].Number)
		assert.Equal(t, "总分", plan.Skipped[0].Label)
	})

	t.Run("first matching row wins", func(t *testing.T) {
		table := newTable(
			[]string{"学号", "姓名", "Q1"},
			[]string{"", "正确答案", "A"},
			[]string{"", "正确答案", "B"},
		)

		plan, err := layout.Locate(table)
		require.NoError(t, err)
		assert.Equal(t, 0, plan.AnchorRow)
		assert.Equal(t, "A", plan.Questions[0].StandardAnswer)
	})

	t.Run("marker beyond the scan depth", func(t *testing.T) {
		rows := make([][]string, 0, 12)
		for range 10 {
			rows = append(rows, []string{"x", "y", "z"})
		}
		rows = append(rows, []string{"", "正确答案", "A"})

		table := newTable([]string{"学号", "姓名", "Q1"}, rows...)

		_, err := layout.Locate(table)
		require.Error(t, err)

		var anchorErr *AnchorNotFoundError
		require.ErrorAs(t, err, &anchorErr)
		assert.Equal(t, 10, anchorErr.ScannedRows)
		assert.Equal(t, []string{"正确答案"}, anchorErr.Markers)
	})

	t.Run("marker on the tenth row", func(t *testing.T) {
		rows := make([][]string, 0, 11)
		for range 9 {
			rows = append(rows, []string{"x", "y", "z"})
		}
		rows = append(rows, []string{"", "正确答案", "A"}, []string{"1", "a", "A"})

		table := newTable([]string{"学号", "姓名", "Q1"}, rows...)

		plan, err := layout.Locate(table)
		require.NoError(t, err)
		assert.Equal(t, 9, plan.AnchorRow)
		assert.Equal(t, RowRange{Start: 10, End: 11}, plan.ResponseRows)
	})

	t.Run("custom scan depth and first column", func(t *testing.T) {
		custom := &RowScan{Markers: []string{"KEY"}, ScanRows: 1, FirstQuestionColumn: 1}
		table := newTable(
			[]string{"Name", "Q1", "Q2"},
			[]string{"KEY", "A", "B"},
		)

		plan, err := custom.Locate(table)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, []int{plan.Questions[0].Number, plan.Questions[1].Number})
		assert.Equal(t, 1, plan.Questions[0].Column)
	})
}

func TestFixedOffset_Locate(t *testing.T) {
	rows := [][]string{{"", "", "正确答案:D", "正确答案：B"}}
	for i := 1; i < 15; i++ {
		rows = append(rows, []string{"meta", "正确答案", "X", "X"})
	}
	rows = append(rows,
		[]string{"1", "张三", "D", "B"},
		[]string{"2", "李四", "A", "-"},
	)
	table := newTable([]string{"学号", "姓名", "第1题", "第2题"}, rows...)

	plan, err := (&FixedOffset{}).Locate(table)
	require.NoError(t, err)

	assert.Equal(t, LayoutFixedOffset, plan.Layout)
	assert.Equal(t, 0, plan.AnchorRow)
	assert.Equal(t, RowRange{Start: 15, End: 17}, plan.ResponseRows)
	require.Len(t, plan.Questions, 2)
	assert.Equal(t, "D", plan.Questions[0].StandardAnswer)
	assert.Equal(t, "B", plan.Questions[1].StandardAnswer)

	t.Run("short table has no students", func(t *testing.T) {
		short := newTable([]string{"学号", "姓名", "Q1"}, []string{"", "", "A"})

		plan, err := (&FixedOffset{}).Locate(short)
		require.NoError(t, err)
		assert.Equal(t, 0, plan.ResponseRows.Len())
	})
}
