package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if cfg.Simulation.Preset != "langtons" || cfg.Simulation.Speed != 50 {
		t.Fatalf("unexpected defaults: %+v", cfg.Simulation)
	}
	if cfg.Server.WriteTimeout != 10*time.Second {
		t.Fatalf("write timeout = %v", cfg.Server.WriteTimeout)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := "simulation:\n  ants: 12\n  placement: grid\nrandom:\n  max_colors: 6\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.Ants != 12 || cfg.Simulation.Placement != "grid" || cfg.Random.MaxColors != 6 {
		t.Fatalf("file values not applied: %+v %+v", cfg.Simulation, cfg.Random)
	}
	if cfg.Simulation.Preset != "langtons" || cfg.Random.MinColors != 2 {
		t.Fatalf("defaults lost for unset keys")
	}
}

func TestParseFlagsBeatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("simulation:\n  ants: 12\n  speed: 80\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	extra := fs.Int("extra", 0, "caller-owned flag")
	cfg, err := Parse(fs, []string{"-config", path, "-ants", "3", "-extra", "7"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Simulation.Ants != 3 {
		t.Fatalf("ants = %d, want flag value 3", cfg.Simulation.Ants)
	}
	if cfg.Simulation.Speed != 80 {
		t.Fatalf("speed = %d, want file value 80", cfg.Simulation.Speed)
	}
	if *extra != 7 {
		t.Fatalf("caller flag = %d", *extra)
	}
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := Default()
	cfg.Simulation.Ants = 0
	cfg.Simulation.Placement = "spiral"
	cfg.Simulation.Speed = 101
	cfg.Simulation.Preset = "missing"
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected errors")
	}
	for _, want := range []string{"ants", "placement", "speed", "preset"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.Simulation.Ants = 77
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Simulation.Ants != 77 || back.Server.WriteTimeout != cfg.Server.WriteTimeout {
		t.Fatalf("round trip lost values: %+v", back)
	}
}
