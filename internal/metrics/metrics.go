package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysisTotal tracks the total number of analysis runs with outcome label (success, partial, or failed)
	AnalysisTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wrongbook_analysis_total",
			Help: "Total number of analysis runs by outcome (success, partial, or failed)",
		},
		[]string{"outcome"},
	)

	// QuestionTotal tracks the total number of questions seen by status label (analyzed or skipped)
	QuestionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wrongbook_questions_total",
			Help: "Total number of questions by status (analyzed or skipped)",
		},
		[]string{"status"},
	)

	// AnalysisDuration tracks how long an analysis run takes
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wrongbook_analysis_duration_seconds",
			Help:    "Duration of analysis runs by layout",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"layout"},
	)

	// AnalysisInFlight tracks the number of analysis runs in progress
	AnalysisInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wrongbook_analysis_in_flight",
			Help: "Number of analysis runs in progress",
		},
	)

	// EventTotal tracks the total number of analytics events by event type
	EventTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wrongbook_event_total",
			Help: "Total number of analytics events by event type",
		},
		[]string{"event_type"},
	)
)

const (
	OutcomeSuccess = "success"
	OutcomePartial = "partial"
	OutcomeFailed  = "failed"

	QuestionAnalyzed = "analyzed"
	QuestionSkipped  = "skipped"
)

// RecordAnalysis records a finished analysis run.
func RecordAnalysis(outcome, layout string, elapsed time.Duration) {
	AnalysisTotal.WithLabelValues(outcome).Inc()
	if layout == "" {
		layout = "unknown"
	}
	AnalysisDuration.WithLabelValues(layout).Observe(elapsed.Seconds())
}

// RecordQuestions records the analyzed and skipped question counts of a run
func RecordQuestions(analyzed, skipped int) {
	QuestionTotal.WithLabelValues(QuestionAnalyzed).Add(float64(analyzed))
	QuestionTotal.WithLabelValues(QuestionSkipped).Add(float64(skipped))
}

// TrackInFlight marks a run as started and returns the function ending it.
func TrackInFlight() func() {
	AnalysisInFlight.Inc()
	return AnalysisInFlight.Dec
}

// RecordEvent records an event with the given event type
func RecordEvent(eventType string) {
	EventTotal.WithLabelValues(eventType).Inc()
}
