package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"turmites/internal/config"
	"turmites/internal/rules"
	"turmites/internal/telemetry"
)

func TestMakeJobsDeterministic(t *testing.T) {
	cfg := config.Default()
	a := makeJobs(cfg, 8)
	b := makeJobs(cfg, 8)
	for i := range a {
		if a[i].seed != b[i].seed || !rules.Equal(a[i].table, b[i].table) {
			t.Fatalf("job %d differs between runs", i)
		}
		if n := a[i].table.NumStates(); n < cfg.Random.MinStates || n > cfg.Random.MaxStates {
			t.Fatalf("job %d has %d states", i, n)
		}
	}
}

func TestRunTableLangton(t *testing.T) {
	cfg := config.Default()
	r := runTable(cfg, job{index: 3, seed: 1, table: rules.Langton()}, 11000)
	if r.Ticks != 11000 || r.Halted != 0 {
		t.Fatalf("ticks=%d halted=%d", r.Ticks, r.Halted)
	}
	if r.BBoxArea != r.SpanW*r.SpanH || r.BBoxArea == 0 {
		t.Fatalf("bbox %dx%d area %d", r.SpanW, r.SpanH, r.BBoxArea)
	}
	if r.Cells == 0 || r.Index != 3 {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestRunTableStopsWhenHalted(t *testing.T) {
	halting := rules.Table{0: {{WriteColor: 1, Move: rules.Right, NextState: rules.HaltState}}}
	r := runTable(config.Default(), job{table: halting}, 500)
	if r.Ticks != 1 || r.Halted != 1 || r.Cells != 1 {
		t.Fatalf("halting table result %+v", r)
	}
}

func TestSweepOrdersResultsAndWritesCSV(t *testing.T) {
	cfg := config.Default()
	results := sweep(cfg, makeJobs(cfg, 6), 200, 3)
	if len(results) != 6 {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Fatalf("result %d has index %d", i, r.Index)
		}
	}
	best := top(results, 2)
	if len(best) != 2 || best[0].BBoxArea < best[1].BBoxArea {
		t.Fatalf("top not ranked: %+v", best)
	}

	var buf bytes.Buffer
	out := telemetry.NewOutput[result](&buf)
	if err := out.Write(results...); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.HasPrefix(lines[0], "index,seed,states,colors") {
		t.Fatalf("header = %q", lines[0])
	}
	if len(lines) != 7 {
		t.Fatalf("csv has %d lines, want 7", len(lines))
	}
}

func TestRunWritesCSVAndConfigSnapshot(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Simulation.Seed = 99
	outPath := filepath.Join(dir, "sweep.csv")
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	if err := run(cfg, 4, 100, 2, outPath, logger); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 5 {
		t.Fatalf("csv has %d lines, want 5", len(lines))
	}

	snap := filepath.Join(dir, "sweep.config.yaml")
	if got := snapshotPath(outPath); got != snap {
		t.Fatalf("snapshotPath = %q, want %q", got, snap)
	}
	loaded, err := config.Load(snap)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if loaded.Simulation.Seed != 99 {
		t.Fatalf("snapshot seed = %d, want 99", loaded.Simulation.Seed)
	}
}

func TestRunRejectsEmptySweep(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	if err := run(config.Default(), 0, 10, 1, filepath.Join(t.TempDir(), "x.csv"), logger); err == nil {
		t.Fatalf("zero tables accepted")
	}
}
