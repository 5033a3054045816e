package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"github.com/wrongbook/backend/httpapi"
	analysisservice "github.com/wrongbook/backend/httpapi/analysis"
	"github.com/wrongbook/backend/internal/analysis"
	"github.com/wrongbook/backend/internal/config"
	"github.com/wrongbook/backend/internal/deps"
	"github.com/wrongbook/backend/internal/httputils"
	"github.com/wrongbook/backend/internal/workers"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/fx"
)

// MachineMiddleware creates a machine middleware that can be injected into gin.
func MachineMiddleware() Middleware {
	return Middleware{
		Handler: httputils.MachineMiddleware(),
	}
}

// CorsMiddleware creates a cors middleware that can be injected into gin.
func CorsMiddleware(cfg config.Config) Middleware {
	corsConfig := cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "User-Agent", "Referer"},
		MaxAge:       12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}

	return Middleware{
		Handler: cors.New(corsConfig),
	}
}

// LoggingMiddleware creates a request logging middleware that can be injected into gin.
func LoggingMiddleware() Middleware {
	return Middleware{
		Handler: sloggin.NewWithConfig(slog.Default(), sloggin.Config{
			WithRequestID: true,
			WithTraceID:   true,
			WithSpanID:    true,
			Filters: []sloggin.Filter{
				sloggin.IgnorePath("/healthz", "/metrics"),
			},
		}),
	}
}

// TracingMiddleware creates an OpenTelemetry middleware that can be injected into gin.
func TracingMiddleware() Middleware {
	return Middleware{
		Handler: otelgin.Middleware(deps.ServiceName),
	}
}

// AnalysisService creates the analysis HTTP service.
func AnalysisService(service *analysis.Service, cfg config.Config) httpapi.Service {
	return analysisservice.NewAnalysisService(service, cfg)
}

// GinEngine creates a gin engine.
func GinEngine(services []httpapi.Service, middlewares []Middleware, cfg config.Config) *gin.Engine {
	engine := gin.New()

	if err := engine.SetTrustedProxies(cfg.TrustProxies); err != nil {
		slog.Error("error setting trusted proxies", "error", err)
	}

	prom := ginprom.New(
		ginprom.Engine(engine),
		ginprom.Namespace("wrongbook"),
		ginprom.Subsystem("gin"),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/healthz"),
	)
	engine.Use(prom.Instrument())

	for _, middleware := range middlewares {
		engine.Use(middleware.Handler)
	}

	engine.Use(gin.Recovery())

	engine.GET("/healthz", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "OK")
	})

	api := engine.Group("/api")
	httpapi.Register(api, services...)

	return engine
}

// GinLifecycle starts the gin engine.
func GinLifecycle(lifecycle fx.Lifecycle, engine *gin.Engine, cfg config.Config) {
	httpCtx, cancel := context.WithCancel(context.Background())

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.Port),
				Handler:           engine,
				ReadHeaderTimeout: 10 * time.Second,
			}

			workers.Global.Go(func() {
				slog.Info("gin engine starting", "address", srv.Addr)

				if err := srv.ListenAndServe(); err != nil {
					if errors.Is(err, http.ErrServerClosed) {
						return
					}

					slog.Error("error running gin engine", "error", err)
				}
			})

			workers.Global.Go(func() {
				<-httpCtx.Done()
				if err := srv.Shutdown(context.Background()); err != nil {
					slog.Error("error shutting down gin engine", "error", err)
				}
			})

			return nil
		},
		OnStop: func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				return nil
			default:
				cancel()
			}

			return nil
		},
	})
}

// Middleware is a middleware that can be injected into gin.
type Middleware struct {
	Handler gin.HandlerFunc
}

// AnnotateMiddleware annotates a middleware function to be injected into gin.
func AnnotateMiddleware(f any) any {
	return fx.Annotate(
		f,
		fx.ResultTags(`group:"middlewares"`),
	)
}

// AnnotateService annotates a service function to be injected into gin.
func AnnotateService(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(httpapi.Service)),
		fx.ResultTags(`group:"services"`),
	)
}
