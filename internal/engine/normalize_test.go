package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wrongbook/backend/internal/sheet"
)

func TestNormalizer_Normalize(t *testing.T) {
	testCases := []struct {
		name   string
		norm   Normalizer
		cell   sheet.Cell
		want   string
		wantOK bool
	}{
		{name: "missing", cell: sheet.MissingCell},
		{name: "empty", cell: sheet.TextCell("")},
		{name: "whitespace", cell: sheet.TextCell("  \t ")},
		{name: "dash", cell: sheet.TextCell("-")},
		{name: "dash space dash", cell: sheet.TextCell("- -")},
		{name: "double dash", cell: sheet.TextCell("--")},
		{name: "padded dash", cell: sheet.TextCell(" - ")},
		{name: "answer", cell: sheet.TextCell("B"), want: "B", wantOK: true},
		{name: "trimmed", cell: sheet.TextCell("  Paris "), want: "Paris", wantOK: true},
		{name: "negative number is an answer", cell: sheet.TextCell("-1"), want: "-1", wantOK: true},
		{name: "triple dash is an answer", cell: sheet.TextCell("---"), want: "---", wantOK: true},
		{name: "case kept", cell: sheet.TextCell("paris"), want: "paris", wantOK: true},
		{name: "internal space kept", cell: sheet.TextCell("New  York"), want: "New  York", wantOK: true},
		{
			name:   "fold case",
			norm:   Normalizer{FoldCase: true},
			cell:   sheet.TextCell("PaRis"),
			want:   "paris",
			wantOK: true,
		},
		{
			name:   "collapse space",
			norm:   Normalizer{CollapseSpace: true},
			cell:   sheet.TextCell("New \t York"),
			want:   "New York",
			wantOK: true,
		},
		{
			name: "custom sentinels",
			norm: Normalizer{Sentinels: []string{"N/A"}},
			cell: sheet.TextCell("N/A"),
		},
		{
			name:   "custom sentinels replace defaults",
			norm:   Normalizer{Sentinels: []string{"N/A"}},
			cell:   sheet.TextCell("-"),
			want:   "-",
			wantOK: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.norm.Normalize(tc.cell)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizer_StandardAnswer(t *testing.T) {
	testCases := []struct {
		name   string
		cell   sheet.Cell
		want   string
		wantOK bool
	}{
		{name: "half-width colon", cell: sheet.TextCell("正确答案:D"), want: "D", wantOK: true},
		{name: "full-width colon", cell: sheet.TextCell("正确答案：D"), want: "D", wantOK: true},
		{name: "last colon wins", cell: sheet.TextCell("答案:第1题:C"), want: "C", wantOK: true},
		{name: "mixed colons", cell: sheet.TextCell("a：b:c"), want: "c", wantOK: true},
		{name: "spaces after colon", cell: sheet.TextCell("正确答案:  B "), want: "B", wantOK: true},
		{name: "no colon", cell: sheet.TextCell("  A "), want: "A", wantOK: true},
		{name: "label only", cell: sheet.TextCell("正确答案:")},
		{name: "missing", cell: sheet.MissingCell},
		{name: "sentinel", cell: sheet.TextCell("-")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Normalizer{}.StandardAnswer(tc.cell)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
