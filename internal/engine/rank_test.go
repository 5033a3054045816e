package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortOrder(t *testing.T) {
	testCases := []struct {
		input string
		want  SortOrder
	}{
		{"", SortOriginal},
		{"original", SortOriginal},
		{"按照题目原本顺序", SortOriginal},
		{"accuracy_asc", SortAccuracyAsc},
		{"asc", SortAccuracyAsc},
		{"按照正确率升序", SortAccuracyAsc},
		{"accuracy_desc", SortAccuracyDesc},
		{"按照正确率降序", SortAccuracyDesc},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseSortOrder(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ParseSortOrder("random")
	assert.ErrorIs(t, err, ErrUnknownSortOrder)
}

func TestRank(t *testing.T) {
	results := []QuestionResult{
		{Number: 1, Accuracy: 50},
		{Number: 2, Accuracy: 100},
		{Number: 3, Accuracy: 0},
		{Number: 4, Accuracy: 50},
		{Number: 5, Accuracy: 75},
	}

	t.Run("original order", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3, 4, 5}, numbersOf(Rank(results, SortOriginal)))
	})

	t.Run("ascending accuracy", func(t *testing.T) {
		// 1 and 4 tie and keep their input order
		assert.Equal(t, []int{3, 1, 4, 5, 2}, numbersOf(Rank(results, SortAccuracyAsc)))
	})

	t.Run("descending accuracy", func(t *testing.T) {
		assert.Equal(t, []int{2, 5, 1, 4, 3}, numbersOf(Rank(results, SortAccuracyDesc)))
	})

	t.Run("is a permutation and leaves the input alone", func(t *testing.T) {
		for _, order := range []SortOrder{SortOriginal, SortAccuracyAsc, SortAccuracyDesc} {
			ranked := Rank(results, order)
			assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, numbersOf(ranked))
		}
		assert.Equal(t, []int{1, 2, 3, 4, 5}, numbersOf(results))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Rank(nil, SortAccuracyAsc))
	})
}
