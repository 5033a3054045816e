package sheet_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrongbook/backend/internal/sheet"
	"github.com/wrongbook/backend/internal/testhelper"
)

func TestLoad(t *testing.T) {
	t.Run("keeps literal text and cleans header", func(t *testing.T) {
		content := testhelper.NewWorkbook(t, [][]string{
			{"姓名", "试题 1", "回答1", "Question  2"},
			{"张三", "What?", "007", "- -"},
			{"李四", "", "-"},
		})

		table, err := sheet.LoadBytes(content)
		require.NoError(t, err)

		assert.Equal(t, []string{"姓名", "试题1", "回答1", "Question2"}, table.Header())
		assert.Equal(t, 2, table.NumRows())

		// no numeric coercion: the leading zeros survive
		assert.Equal(t, sheet.TextCell("007"), table.CellByName(0, "回答1"))
		assert.Equal(t, sheet.TextCell("- -"), table.CellByName(0, "Question2"))
		assert.Equal(t, sheet.TextCell("-"), table.CellByName(1, "回答1"))

		// unwritten cells are missing, not "-"
		assert.False(t, table.CellByName(1, "试题1").Present)
		assert.False(t, table.CellByName(1, "Question2").Present)
	})

	t.Run("invalid workbook", func(t *testing.T) {
		_, err := sheet.LoadBytes([]byte("this is not a spreadsheet"))
		require.Error(t, err)

		var loadErr *sheet.LoadError
		require.True(t, errors.As(err, &loadErr))
		assert.ErrorIs(t, err, sheet.ErrInvalidWorkbook)
	})

	t.Run("empty sheet has no columns", func(t *testing.T) {
		content := testhelper.NewWorkbook(t, nil)

		_, err := sheet.LoadBytes(content)
		require.Error(t, err)
		assert.ErrorIs(t, err, sheet.ErrNoColumns)
	})

	t.Run("custom header prefixes", func(t *testing.T) {
		content := testhelper.NewWorkbook(t, [][]string{
			{"Name", "Item 1", "试题 1"},
			{"Ann", "A", "B"},
		})

		table, err := sheet.LoadBytes(content, sheet.WithHeaderPrefixes("Item"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Name", "Item1", "试题 1"}, table.Header())
	})
}

func TestCleanHeader(t *testing.T) {
	testCases := []struct {
		name   string
		header []string
		want   []string
	}{
		{
			name:   "single space",
			header: []string{"Question 3"},
			want:   []string{"Question3"},
		},
		{
			name:   "prefix containing a space",
			header: []string{"Standard Answer 12"},
			want:   []string{"Standard Answer12"},
		},
		{
			name:   "full-width space",
			header: []string{"试题　4"},
			want:   []string{"试题4"},
		},
		{
			name:   "unknown prefix untouched",
			header: []string{"Total 3", "姓名"},
			want:   []string{"Total 3", "姓名"},
		},
		{
			name:   "no index untouched",
			header: []string{"试题 说明"},
			want:   []string{"试题 说明"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sheet.CleanHeader(tc.header, sheet.DefaultHeaderPrefixes))
		})
	}
}
