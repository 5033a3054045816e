package events

type EventType string

const (
	EventTypeAnalysisCompleted EventType = "analysis_completed"
	EventTypeAnalysisFailed    EventType = "analysis_failed"

	EventTypeFiltersListed EventType = "filters_listed"
)
