package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	wbcli "github.com/wrongbook/backend/cli"
	"github.com/wrongbook/backend/internal/deps"

	_ "github.com/wrongbook/backend/internal/deps/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := deps.Config()
	if err != nil {
		log.Fatal(err)
	}

	tracing, err := deps.TracerProvider(cfg)
	if err != nil {
		log.Fatal(err)
	}

	posthogClient, err := deps.PostHogClient(cfg)
	if err != nil {
		log.Fatal(err)
	}

	c := wbcli.NewContext(deps.AnalysisService(cfg, deps.EventService(posthogClient)), os.Stdout)

	rootCommand := newRootCommand(
		newAnalyzeCommand(c),
		newFiltersCommand(c),
		newBrowseCommand(c),
	)

	runErr := rootCommand.Run(ctx, os.Args)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	deps.Shutdown(shutdownCtx, posthogClient, tracing)

	if runErr != nil {
		log.Fatal(runErr)
	}
}
