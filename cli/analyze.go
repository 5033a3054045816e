package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wrongbook/backend/internal/analysis"
	"github.com/wrongbook/backend/internal/engine"
	"github.com/wrongbook/backend/models"
	"gopkg.in/yaml.v3"
)

// Format is the output format of a report.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for an output format that is not supported.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat parses an output format name. The empty string is FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Analyze analyzes the spreadsheet at path.
//
// When no question could be analyzed the report is returned together with
// engine.ErrNoQuestions.
func (c *Context) Analyze(ctx context.Context, path string, req analysis.Request) (*analysis.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	if req.FileName == "" {
		req.FileName = filepath.Base(path)
	}

	return c.analysis.Analyze(ctx, f, req)
}

// Filters lists the teachers and classes of the spreadsheet at path.
func (c *Context) Filters(ctx context.Context, path string) (engine.Filters, error) {
	f, err := os.Open(path)
	if err != nil {
		return engine.Filters{}, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	return c.analysis.Filters(ctx, f, analysis.Request{FileName: filepath.Base(path), Caller: "wrongbook-cli"})
}

// WriteReport writes the report to the context output.
func (c *Context) WriteReport(report *analysis.Report, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(c.out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(models.NewReport(report))
	case FormatYAML:
		encoder := yaml.NewEncoder(c.out)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(models.NewReport(report))
	default:
		_, err := fmt.Fprint(c.out, RenderReport(report))
		return err
	}
}

// WriteFilters writes the filter values to the context output.
func (c *Context) WriteFilters(filters engine.Filters, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(c.out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(models.NewFilters(filters))
	case FormatYAML:
		encoder := yaml.NewEncoder(c.out)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(models.NewFilters(filters))
	default:
		_, err := fmt.Fprint(c.out, RenderFilters(filters))
		return err
	}
}
