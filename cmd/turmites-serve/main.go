package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"turmites/internal/config"
	"turmites/internal/sim"
	"turmites/internal/stream"
	"turmites/internal/telemetry"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctrl, err := sim.New(cfg, nil, logger)
	if err != nil {
		return err
	}
	collector, err := telemetry.Attach(ctrl, cfg.Telemetry, nil, logger)
	if err != nil {
		return err
	}
	if collector != nil {
		defer collector.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	frame := time.Second / time.Duration(max(cfg.View.FPS, 1))
	return stream.NewServer(ctrl, cfg.Server, frame, logger).ListenAndServe(ctx)
}
