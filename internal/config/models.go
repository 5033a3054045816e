package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"
)

type Config struct {
	Port           int      `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`
	TrustProxies   []string `env:"TRUST_PROXIES"`
	// MaxUploadBytes bounds the size of an uploaded spreadsheet.
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	Analysis  AnalysisConfig  `envPrefix:"ANALYSIS_"`
	PostHog   PostHogConfig   `envPrefix:"POSTHOG_"`
	Telemetry TelemetryConfig `envPrefix:"OTEL_"`
}

func (c Config) Validate() error {
	var result error

	if c.Port <= 0 || c.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if c.MaxUploadBytes <= 0 {
		result = multierror.Append(result, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}

	if err := c.Analysis.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	return result
}

// AnalysisConfig holds the defaults of an analysis run. Requests may override
// the layout, the sort order and the normalization flags.
type AnalysisConfig struct {
	DefaultLayout string   `env:"DEFAULT_LAYOUT" envDefault:"auto"`
	DefaultSort   string   `env:"DEFAULT_SORT" envDefault:"original"`
	FoldCase      bool     `env:"FOLD_CASE"`
	CollapseSpace bool     `env:"COLLAPSE_SPACE"`
	AnchorMarkers []string `env:"ANCHOR_MARKERS" envDefault:"正确答案"`
	ScanRows      int      `env:"SCAN_ROWS" envDefault:"10"`
	FixedOffset   int      `env:"FIXED_OFFSET" envDefault:"15"`
}

var (
	validLayouts = []string{"auto", "column-suffix", "row-scan", "fixed-offset"}
	validSorts   = []string{"original", "accuracy_asc", "accuracy_desc"}
)

func (c AnalysisConfig) Validate() error {
	var result error

	if !slices.Contains(validLayouts, c.DefaultLayout) {
		result = multierror.Append(result, fmt.Errorf("ANALYSIS_DEFAULT_LAYOUT must be one of %v, got %q", validLayouts, c.DefaultLayout))
	}
	if !slices.Contains(validSorts, c.DefaultSort) {
		result = multierror.Append(result, fmt.Errorf("ANALYSIS_DEFAULT_SORT must be one of %v, got %q", validSorts, c.DefaultSort))
	}
	if len(c.AnchorMarkers) == 0 || slices.Contains(c.AnchorMarkers, "") {
		result = multierror.Append(result, errors.New("ANALYSIS_ANCHOR_MARKERS must not be empty"))
	}
	if c.ScanRows <= 0 {
		result = multierror.Append(result, errors.New("ANALYSIS_SCAN_ROWS must be positive"))
	}
	if c.FixedOffset <= 0 {
		result = multierror.Append(result, errors.New("ANALYSIS_FIXED_OFFSET must be positive"))
	}

	return result
}

// PostHogConfig enables product analytics when Key is set.
type PostHogConfig struct {
	Key  string `env:"KEY"`
	Host string `env:"HOST" envDefault:"https://us.i.posthog.com"`
}

func (c PostHogConfig) Enabled() bool {
	return c.Key != ""
}

type TelemetryConfig struct {
	// Exporter is one of "none", "stdout" or "otlp".
	Exporter string `env:"EXPORTER" envDefault:"none"`
}

func (c TelemetryConfig) Validate() error {
	switch c.Exporter {
	case "none", "stdout", "otlp":
		return nil
	default:
		return fmt.Errorf("OTEL_EXPORTER must be one of none, stdout or otlp, got %q", c.Exporter)
	}
}
