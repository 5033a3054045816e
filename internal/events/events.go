package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/posthog/posthog-go"
	"github.com/wrongbook/backend/internal/metrics"
	"github.com/wrongbook/backend/internal/workers"
)

// EventService is the service for triggering events.
type EventService struct {
	handlers []EventHandler
}

// NewEventService creates a new EventService.
//
// Events are always counted in metrics; they are sent to PostHog only when
// posthogClient is not nil.
func NewEventService(posthogClient posthog.Client, handlers ...EventHandler) *EventService {
	all := []EventHandler{metricsRecorder{}}
	if posthogClient != nil {
		all = append(all, NewPostHogForwarder(posthogClient))
	}

	return &EventService{
		handlers: append(all, handlers...),
	}
}

// Event is the event to be triggered.
type Event struct {
	Type EventType
	// DistinctID identifies the caller, usually the run ID or the client machine.
	DistinctID string
	Payload    map[string]any
	// Err is set for failure events.
	Err error
}

// EventHandler is the handler for the event.
//
// You can think it as the callback of the event.
type EventHandler interface {
	HandleEvent(ctx context.Context, event Event) error
}

// TriggerEvent triggers an event.
func (s *EventService) TriggerEvent(ctx context.Context, event Event) {
	ctx = context.WithoutCancel(ctx)

	workers.Global.Go(func() {
		err := s.triggerEvent(ctx, event)
		if err != nil {
			slog.Error("failed to trigger event", "event_type", event.Type, "error", err)
		}
	})
}

// triggerEvent triggers an event synchronously.
func (s *EventService) triggerEvent(ctx context.Context, event Event) error {
	for _, handler := range s.handlers {
		err := handler.HandleEvent(ctx, event)
		if err != nil {
			return err
		}
	}

	return nil
}

type metricsRecorder struct{}

func (metricsRecorder) HandleEvent(_ context.Context, event Event) error {
	metrics.RecordEvent(string(event.Type))
	return nil
}

// PostHogForwarder sends events to PostHog.
type PostHogForwarder struct {
	client posthog.Client
}

func NewPostHogForwarder(client posthog.Client) *PostHogForwarder {
	return &PostHogForwarder{client: client}
}

func (f *PostHogForwarder) HandleEvent(_ context.Context, event Event) error {
	if event.Err != nil {
		return f.client.Enqueue(posthog.NewDefaultException(
			time.Now(), event.DistinctID,
			string(event.Type), event.Err.Error(),
		))
	}

	properties := posthog.NewProperties()
	for key, value := range event.Payload {
		properties.Set(key, value)
	}

	slog.Debug("sending event to PostHog", "event_type", event.Type, "distinct_id", event.DistinctID)

	return f.client.Enqueue(posthog.Capture{
		DistinctId: event.DistinctID,
		Event:      string(event.Type),
		Timestamp:  time.Now(),
		Properties: properties,
	})
}
