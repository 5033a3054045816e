// Package analysis runs the wrong-answer analysis of an uploaded spreadsheet.
package analysis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wrongbook/backend/internal/config"
	"github.com/wrongbook/backend/internal/engine"
	"github.com/wrongbook/backend/internal/events"
	"github.com/wrongbook/backend/internal/metrics"
	"github.com/wrongbook/backend/internal/sheet"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrInvalidRequest is returned when a request names an unknown layout or sort order.
var ErrInvalidRequest = errors.New("invalid analysis request")

// Service analyzes spreadsheets. It keeps no state between runs.
type Service struct {
	defaults     config.AnalysisConfig
	eventService *events.EventService
	now          func() time.Time
}

// NewService creates a Service. eventService may be nil.
func NewService(defaults config.AnalysisConfig, eventService *events.EventService) *Service {
	return &Service{
		defaults:     defaults,
		eventService: eventService,
		now:          time.Now,
	}
}

// Analyze loads the spreadsheet from r and analyzes every question.
//
// Errors are *sheet.LoadError, *engine.AnchorNotFoundError,
// *engine.MissingNameColumnError or ErrInvalidRequest. A run without any
// result returns engine.ErrNoQuestions together with the report.
func (s *Service) Analyze(ctx context.Context, r io.Reader, req Request) (*Report, error) {
	runID := uuid.NewString()
	logger := slog.With("run_id", runID, "file", req.FileName)

	ctx, span := metrics.Tracer.Start(ctx, "analysis.Analyze",
		trace.WithAttributes(
			attribute.String("analysis.run_id", runID),
			attribute.String("analysis.file", req.FileName),
		))
	defer span.End()

	defer metrics.TrackInFlight()()
	started := s.now()

	report, err := s.analyze(ctx, r, req, runID)

	layout := ""
	if report != nil {
		layout = string(report.Layout)
	}

	switch {
	case err != nil:
		span.SetStatus(otelcodes.Error, "Analysis failed")
		span.RecordError(err)
		metrics.RecordAnalysis(metrics.OutcomeFailed, layout, s.now().Sub(started))
		if report != nil {
			metrics.RecordQuestions(0, len(report.Skipped))
		}
		logger.Warn("analysis failed", "error", err)
		s.trigger(ctx, events.Event{
			Type:       events.EventTypeAnalysisFailed,
			DistinctID: distinctID(req, runID),
			Err:        err,
		})

		return report, err
	case report.Partial():
		span.SetStatus(otelcodes.Ok, "Analysis completed with skipped questions")
		metrics.RecordAnalysis(metrics.OutcomePartial, layout, s.now().Sub(started))
	default:
		span.SetStatus(otelcodes.Ok, "Analysis completed successfully")
		metrics.RecordAnalysis(metrics.OutcomeSuccess, layout, s.now().Sub(started))
	}

	metrics.RecordQuestions(len(report.Results), len(report.Skipped))
	logger.Info("analysis completed",
		"layout", report.Layout,
		"rows", report.Rows,
		"questions", len(report.Results),
		"skipped", len(report.Skipped),
		"filter_ignored", report.FilterIgnored,
	)
	s.trigger(ctx, events.Event{
		Type:       events.EventTypeAnalysisCompleted,
		DistinctID: distinctID(req, runID),
		Payload: map[string]any{
			"run_id":    runID,
			"layout":    string(report.Layout),
			"sort":      string(report.Sort),
			"rows":      report.Rows,
			"questions": len(report.Results),
			"skipped":   len(report.Skipped),
		},
	})

	return report, nil
}

func (s *Service) analyze(ctx context.Context, r io.Reader, req Request, runID string) (*Report, error) {
	opts, err := options(s.defaults, req)
	if err != nil {
		return nil, err
	}

	table, err := s.load(ctx, r)
	if err != nil {
		return nil, err
	}

	_, span := metrics.Tracer.Start(ctx, "analysis.run",
		trace.WithAttributes(
			attribute.String("analysis.layout", string(opts.Layout)),
			attribute.String("analysis.sort", string(opts.Sort)),
			attribute.Int("sheet.rows", table.NumRows()),
		))
	defer span.End()

	result, err := engine.Run(table, opts)
	if result == nil {
		span.SetStatus(otelcodes.Error, "Failed to locate questions")
		span.RecordError(err)
		return nil, err
	}

	if result.FilterIgnored {
		slog.Warn("filter ignored by positional layout",
			"run_id", runID, "layout", result.Plan.Layout, "teacher", opts.Filter.Teacher, "class", opts.Filter.Class)
	}

	report := &Report{
		RunID:         runID,
		FileName:      req.FileName,
		GeneratedAt:   s.now(),
		Layout:        result.Plan.Layout,
		Sort:          opts.Sort,
		Filter:        opts.Filter,
		FilterIgnored: result.FilterIgnored,
		Rows:          result.Rows,
		ResponseRows:  result.Plan.ResponseRows.Len(),
		Results:       result.Results,
		Skipped:       result.Skipped,
		Filters:       engine.FilterOptions(table, opts.Vocabulary),
	}

	span.SetAttributes(
		attribute.String("analysis.detected_layout", string(report.Layout)),
		attribute.Int("analysis.questions", len(report.Results)),
		attribute.Int("analysis.skipped", len(report.Skipped)),
	)
	if err != nil {
		span.SetStatus(otelcodes.Error, "No question could be analyzed")
		return report, err
	}

	span.SetStatus(otelcodes.Ok, "Questions aggregated")
	return report, nil
}

func (s *Service) load(ctx context.Context, r io.Reader) (*sheet.Table, error) {
	_, span := metrics.Tracer.Start(ctx, "analysis.load")
	defer span.End()

	table, err := sheet.Load(r)
	if err != nil {
		span.SetStatus(otelcodes.Error, "Failed to load spreadsheet")
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("sheet.rows", table.NumRows()),
		attribute.Int("sheet.columns", table.NumColumns()),
	)
	span.SetStatus(otelcodes.Ok, "Spreadsheet loaded")
	return table, nil
}

// Filters lists the teachers and classes of the spreadsheet in r.
func (s *Service) Filters(ctx context.Context, r io.Reader, req Request) (engine.Filters, error) {
	ctx, span := metrics.Tracer.Start(ctx, "analysis.Filters")
	defer span.End()

	opts, err := options(s.defaults, req)
	if err != nil {
		span.SetStatus(otelcodes.Error, "Invalid request")
		return engine.Filters{}, err
	}

	table, err := s.load(ctx, r)
	if err != nil {
		span.SetStatus(otelcodes.Error, "Failed to load spreadsheet")
		return engine.Filters{}, err
	}

	filters := engine.FilterOptions(table, opts.Vocabulary)
	span.SetStatus(otelcodes.Ok, "Filters listed")

	s.trigger(ctx, events.Event{
		Type:       events.EventTypeFiltersListed,
		DistinctID: distinctID(req, uuid.NewString()),
		Payload: map[string]any{
			"teachers": len(filters.Teachers),
			"classes":  len(filters.Classes),
		},
	})

	return filters, nil
}

func (s *Service) trigger(ctx context.Context, event events.Event) {
	if s.eventService == nil {
		return
	}

	s.eventService.TriggerEvent(ctx, event)
}

func distinctID(req Request, runID string) string {
	if req.Caller != "" {
		return req.Caller
	}

	return runID
}
