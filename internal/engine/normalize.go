package engine

import (
	"slices"
	"strings"

	"github.com/wrongbook/backend/internal/sheet"
)

// DefaultSentinels are the placeholder tokens exporters write for "not answered".
// "--" is not among the documented tokens but some exporters emit it too.
var DefaultSentinels = []string{"-", "- -", "--"}

// Normalizer turns raw cells into comparable answers.
//
// With the zero flags two answers are equal only when their trimmed text is
// byte-for-byte identical.
type Normalizer struct {
	// Sentinels are compared against the trimmed cell as literal strings.
	// A nil slice means DefaultSentinels.
	Sentinels []string
	// FoldCase compares answers case-insensitively.
	FoldCase bool
	// CollapseSpace squeezes internal whitespace runs into one space.
	CollapseSpace bool
}

// Normalize returns the comparison value of a response cell, or false when the
// cell counts as "not answered".
func (n Normalizer) Normalize(cell sheet.Cell) (string, bool) {
	if cell.IsBlank() {
		return "", false
	}

	return n.normalizeText(cell.Text)
}

// StandardAnswer returns the comparison value of a standard-answer cell.
//
// Cells like "正确答案:D" or "正确答案：D" carry a label; only the text after the
// last half-width or full-width colon is kept.
func (n Normalizer) StandardAnswer(cell sheet.Cell) (string, bool) {
	if cell.IsBlank() {
		return "", false
	}

	return n.normalizeText(StripLabel(cell.Text))
}

// IsSentinel reports whether the trimmed text is a "not answered" token.
func (n Normalizer) IsSentinel(text string) bool {
	sentinels := n.Sentinels
	if sentinels == nil {
		sentinels = DefaultSentinels
	}

	return slices.Contains(sentinels, strings.TrimSpace(text))
}

func (n Normalizer) normalizeText(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" || n.IsSentinel(text) {
		return "", false
	}

	if n.CollapseSpace {
		text = strings.Join(strings.Fields(text), " ")
	}
	if n.FoldCase {
		text = strings.ToLower(text)
	}

	return text, true
}

// StripLabel drops everything up to the last ':' or '：'.
// Text without a colon is returned trimmed.
func StripLabel(text string) string {
	cut := max(strings.LastIndex(text, ":"), strings.LastIndex(text, "："))
	if cut < 0 {
		return strings.TrimSpace(text)
	}

	if text[cut] == ':' {
		return strings.TrimSpace(text[cut+1:])
	}

	return strings.TrimSpace(text[cut+len("："):])
}
