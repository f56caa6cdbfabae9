package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/ytsummarizer/internal/buildinfo"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/cli"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/config"
	"github.com/dmitrijs2005/ytsummarizer/internal/client/telemetry"
	"github.com/dmitrijs2005/ytsummarizer/internal/logging"
)

const serviceName = "ytsummarizer-cli"

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	shutdown, err := telemetry.SetupTracing(ctx, cfg.OTLPEndpoint, serviceName, buildinfo.Version)
	if err != nil {
		logger.Warn(ctx, "tracing disabled", "err", err)
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn(context.Background(), "tracing shutdown", "err", err)
			}
		}()
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
