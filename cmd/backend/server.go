package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/wrongbook/backend/internal/deps"
	"go.uber.org/fx"

	_ "github.com/wrongbook/backend/internal/deps/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := fx.New(
		deps.FxCommonModule,
		fx.Provide(
			AnnotateMiddleware(TracingMiddleware),
			AnnotateMiddleware(LoggingMiddleware),
			AnnotateMiddleware(MachineMiddleware),
			AnnotateMiddleware(CorsMiddleware),
			AnnotateService(AnalysisService),
			fx.Annotate(
				GinEngine,
				fx.ParamTags(`group:"services"`, `group:"middlewares"`),
			),
		),
		fx.Invoke(GinLifecycle),
	)

	if err := app.Start(ctx); err != nil {
		slog.Error("error starting server", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	slog.Info("Gracefully shutting down server (Ctrl+C again to force stop)...")
	cancel()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("error stopping server", "error", err)
	}

	slog.Info("Server stopped")
}
