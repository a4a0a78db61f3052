package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"turmites/internal/config"
	"turmites/internal/core"
	"turmites/internal/sim"
	"turmites/internal/telemetry"
	"turmites/internal/tui"
)

func main() {
	fs := flag.NewFlagSet("turmites-tui", flag.ExitOnError)
	logPath := fs.String("log", "", "write JSON logs to this file (default: discard)")
	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(cfg, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logPath string) error {
	var w io.Writer = io.Discard
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger := slog.New(slog.NewJSONHandler(w, nil))
	slog.SetDefault(logger)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	cols, rows := screen.Size()
	cfg.View.Cols, cfg.View.Rows = cols, max(rows-1, 1)

	ctrl, err := sim.New(cfg, core.SystemClock{}, logger)
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

	viewer := tui.New(screen, ctrl, time.Second/time.Duration(max(cfg.View.FPS, 1)), logger)
	return viewer.Run(ctx)
}
