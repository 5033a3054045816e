// Package deps contains the dependencies for the backend and the wrongbook CLI.
package deps

import (
	"context"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/posthog/posthog-go"
	"github.com/wrongbook/backend/internal/analysis"
	"github.com/wrongbook/backend/internal/config"
	"github.com/wrongbook/backend/internal/events"
	"github.com/wrongbook/backend/internal/workers"
	"go.uber.org/fx"
)

// Config loads the environment variables from the .env file and returns a config.Config.
func Config() (config.Config, error) {
	err := godotenv.Load()
	if err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("error creating config", "error", err)
		return config.Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("error validating config", "error", err)
		return config.Config{}, err
	}

	return cfg, nil
}

// PostHogClient creates a posthog.Client, or nil when no key is configured.
func PostHogClient(cfg config.Config) (posthog.Client, error) {
	if !cfg.PostHog.Enabled() {
		return nil, nil
	}

	client, err := posthog.NewWithConfig(cfg.PostHog.Key, posthog.Config{
		Endpoint: cfg.PostHog.Host,
	})
	if err != nil {
		slog.Error("error creating posthog client", "error", err)
		return nil, err
	}

	return client, nil
}

// EventService creates an events.EventService.
func EventService(posthogClient posthog.Client) *events.EventService {
	return events.NewEventService(posthogClient)
}

// AnalysisService creates an analysis.Service.
func AnalysisService(cfg config.Config, eventService *events.EventService) *analysis.Service {
	return analysis.NewService(cfg.Analysis, eventService)
}

// Shutdown waits for the background workers, then flushes the analytics
// client and the tracer provider.
func Shutdown(ctx context.Context, posthogClient posthog.Client, tracing *Tracing) {
	if err := workers.Global.WaitContext(ctx); err != nil {
		slog.Warn("background workers did not finish", "error", err)
	}

	if posthogClient != nil {
		if err := posthogClient.Close(); err != nil {
			slog.Error("error closing posthog client", "error", err)
		}
	}

	if err := tracing.Shutdown(ctx); err != nil {
		slog.Error("error shutting down tracer provider", "error", err)
	}
}

func shutdownLifecycle(lifecycle fx.Lifecycle, posthogClient posthog.Client, tracing *Tracing) {
	lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			Shutdown(ctx, posthogClient, tracing)
			return nil
		},
	})
}

var FxCommonModule = fx.Module("common",
	fx.Provide(Config),
	fx.Provide(TracerProvider),
	fx.Provide(PostHogClient),
	fx.Provide(EventService),
	fx.Provide(AnalysisService),
	fx.Invoke(shutdownLifecycle),
)
