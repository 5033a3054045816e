package deps

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wrongbook/backend/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ServiceName is the OpenTelemetry service name.
const ServiceName = "wrongbook"

// Tracing owns the global tracer provider. A nil *Tracing is a no-op.
type Tracing struct {
	provider *sdktrace.TracerProvider
}

func (t *Tracing) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}

	return t.provider.Shutdown(ctx)
}

// TracerProvider installs the global tracer provider selected by OTEL_EXPORTER.
//
// The otlp exporter reads its endpoint from the standard OTEL_EXPORTER_OTLP_*
// variables.
func TracerProvider(cfg config.Config) (*Tracing, error) {
	ctx := context.Background()

	var exporter sdktrace.SpanExporter
	switch cfg.Telemetry.Exporter {
	case "none", "":
		return &Tracing{}, nil
	case "stdout":
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		exporter = exp
	case "otlp":
		exp, err := otlptracehttp.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
		exporter = exp
	default:
		return nil, fmt.Errorf("unknown exporter %q", cfg.Telemetry.Exporter)
	}

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		attribute.String("service.name", ServiceName),
	))
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	slog.Info("tracing enabled", "exporter", cfg.Telemetry.Exporter)

	return &Tracing{provider: provider}, nil
}
