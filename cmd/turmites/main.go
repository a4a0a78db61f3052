//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"turmites/internal/app"
	"turmites/internal/config"
	"turmites/internal/sim"
	"turmites/internal/telemetry"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctrl, err := sim.New(cfg, nil, logger)
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}
	collector, err := telemetry.Attach(ctrl, cfg.Telemetry, nil, logger)
	if err != nil {
		slog.Error("failed to open telemetry", "error", err)
		os.Exit(1)
	}
	if collector != nil {
		defer collector.Close()
	}

	game := app.New(ctrl, cfg)
	ebiten.SetWindowTitle("turmites")
	ebiten.SetTPS(cfg.View.FPS)
	ebiten.SetWindowSize(game.WindowSize())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("viewer failed", "error", err)
		os.Exit(1)
	}
}
