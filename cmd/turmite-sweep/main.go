package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"turmites/internal/config"
	"turmites/internal/telemetry"
)

func main() {
	fs := flag.NewFlagSet("turmite-sweep", flag.ExitOnError)
	tables := fs.Int("tables", 64, "number of random rule tables to evaluate")
	ticks := fs.Int("ticks", 20000, "ticks to simulate per table")
	workers := fs.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	outPath := fs.String("out", "sweep.csv", "CSV output path")
	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(cfg, *tables, *ticks, *workers, *outPath, logger); err != nil {
		slog.Error("sweep failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, tables, ticks, workers int, outPath string, logger *slog.Logger) error {
	if tables < 1 || ticks < 1 {
		return fmt.Errorf("tables and ticks must be positive, got %d and %d", tables, ticks)
	}
	out, err := telemetry.CreateFile[result](outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := cfg.WriteYAML(snapshotPath(outPath)); err != nil {
		return err
	}

	logger.Info("sweep started", "tables", tables, "ticks", ticks, "workers", workers, "seed", cfg.Simulation.Seed)
	start := time.Now()
	results := sweep(cfg, makeJobs(cfg, tables), ticks, workers)
	if err := out.Write(results...); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	logger.Info("sweep finished", "elapsed", time.Since(start).Round(time.Millisecond), "out", outPath)

	for i, r := range top(results, 5) {
		logger.Info("top result",
			"rank", i+1,
			"index", r.Index,
			"states", r.States,
			"colors", r.Colors,
			"bbox_area", r.BBoxArea,
			"cells", r.Cells,
			"halted", r.Halted,
		)
	}
	return nil
}

// snapshotPath names the config file saved next to the CSV so a sweep can be
// rerun with the same settings.
func snapshotPath(outPath string) string {
	return strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".config.yaml"
}
