package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrInvalidWorkbook means the bytes are not a readable xlsx workbook.
	ErrInvalidWorkbook = errors.New("not a valid spreadsheet")
	// ErrNoSheets means the workbook contains no worksheet.
	ErrNoSheets = errors.New("workbook has no sheets")
	// ErrNoColumns means the first sheet has no header cells.
	ErrNoColumns = errors.New("sheet has no columns")
)

// LoadError is returned when a spreadsheet cannot be turned into a Table.
type LoadError struct {
	// Reason is one of ErrInvalidWorkbook, ErrNoSheets or ErrNoColumns.
	Reason error
	// Cause is the underlying error from the reader, if any.
	Cause error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load spreadsheet: %s: %s", e.Reason, e.Cause)
	}

	return fmt.Sprintf("load spreadsheet: %s", e.Reason)
}

func (e *LoadError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Reason, e.Cause}
	}

	return []error{e.Reason}
}

// DefaultHeaderPrefixes are the header prefixes whose trailing index is re-joined
// when an exporter writes "试题 3" instead of "试题3".
var DefaultHeaderPrefixes = []string{
	"试题", "回答", "标准答案",
	"Question", "Response", "Standard Answer",
}

type options struct {
	headerPrefixes []string
}

// Option configures Load.
type Option func(*options)

// WithHeaderPrefixes replaces the prefixes used by the header cleanup.
func WithHeaderPrefixes(prefixes ...string) Option {
	return func(o *options) { o.headerPrefixes = prefixes }
}

// Load reads the first sheet of an xlsx workbook.
//
// Every cell is kept as its literal text: the workbook is read with raw cell
// values, so number formats and dates are never applied.
func Load(r io.Reader, opts ...Option) (*Table, error) {
	o := options{headerPrefixes: DefaultHeaderPrefixes}
	for _, opt := range opts {
		opt(&o)
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &LoadError{Reason: ErrInvalidWorkbook, Cause: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("failed to close workbook", "error", err)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &LoadError{Reason: ErrNoSheets}
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &LoadError{Reason: ErrInvalidWorkbook, Cause: err}
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, &LoadError{Reason: ErrNoColumns}
	}

	header := CleanHeader(rows[0], o.headerPrefixes)

	data := make([][]Cell, len(rows)-1)
	for i, row := range rows[1:] {
		cells := make([]Cell, len(row))
		for j, text := range row {
			if text != "" {
				cells[j] = TextCell(text)
			}
		}
		data[i] = cells
	}

	table := NewTable(header, data)
	slog.Debug("spreadsheet loaded",
		"sheet", sheets[0],
		"columns", table.NumColumns(),
		"rows", table.NumRows())

	return table, nil
}

// LoadBytes is Load over an in-memory file.
func LoadBytes(content []byte, opts ...Option) (*Table, error) {
	return Load(bytes.NewReader(content), opts...)
}

// LoadFile is Load over a file on disk.
func LoadFile(path string, opts ...Option) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("failed to close file", "path", path, "error", err)
		}
	}()

	return Load(f, opts...)
}

// CleanHeader removes the whitespace between a known prefix and its numeric
// index, so "试题 3" and "Question  3" become "试题3" and "Question3".
func CleanHeader(header []string, prefixes []string) []string {
	patterns := make([]*regexp.Regexp, 0, len(prefixes))
	for _, prefix := range prefixes {
		if prefix == "" {
			continue
		}
		patterns = append(patterns, regexp.MustCompile(`^(`+regexp.QuoteMeta(prefix)+`)[\s\p{Zs}]+(\d+)$`))
	}

	cleaned := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		for _, p := range patterns {
			if p.MatchString(name) {
				name = p.ReplaceAllString(name, "${1}${2}")
				break
			}
		}
		cleaned[i] = name
	}

	return cleaned
}
