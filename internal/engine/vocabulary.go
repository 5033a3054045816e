// Package engine locates the questions of an exam response table and computes
// per-question answer statistics.
//
// The engine is synchronous and holds no state between runs: every call works on
// the table it is given and returns freshly built results.
package engine

// Vocabulary is the set of header names and markers the engine looks for.
//
// Exporters name the same thing differently, so every entry is a list of
// synonyms tried in order.
type Vocabulary struct {
	// QuestionPrefixes name the "question text" columns of the column-suffix layout.
	QuestionPrefixes []string
	// ResponsePrefixes name the response columns of the column-suffix layout.
	ResponsePrefixes []string
	// StandardAnswerPrefixes name the standard-answer columns of the column-suffix layout.
	StandardAnswerPrefixes []string

	// AnchorMarkers are substrings identifying the standard-answer row in the row-scan layout.
	AnchorMarkers []string

	// NamePairs are (surname, given name) column pairs, concatenated into a display name.
	NamePairs [][2]string
	// NameColumns are single full-name columns, used when no pair is present.
	NameColumns []string

	// TeacherColumns and ClassColumns drive the optional pre-filter.
	TeacherColumns []string
	ClassColumns   []string
}

// DefaultVocabulary returns the synonyms seen in the supported exporters.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		QuestionPrefixes:       []string{"试题", "Question"},
		ResponsePrefixes:       []string{"回答", "Response"},
		StandardAnswerPrefixes: []string{"标准答案", "Standard Answer"},
		AnchorMarkers:          []string{"正确答案"},
		NamePairs: [][2]string{
			{"姓氏", "名"},
			{"Last Name", "First Name"},
			{"Surname", "Given Name"},
		},
		NameColumns:    []string{"姓名", "学生姓名", "学生", "Name", "Student Name"},
		TeacherColumns: []string{"教师", "Teacher"},
		ClassColumns:   []string{"班级", "Class"},
	}
}

// firstPresent returns the first candidate accepted by has.
func firstPresent(candidates []string, has func(string) bool) (string, bool) {
	for _, c := range candidates {
		if has(c) {
			return c, true
		}
	}

	return "", false
}
