package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the tracer of the analysis pipeline.
var Tracer trace.Tracer = otel.Tracer("wrongbook.analysis")
