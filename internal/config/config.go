// Package config loads simulation settings from embedded defaults, an
// optional YAML file and command-line flags, in that order of precedence.
package config

import (
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"turmites/internal/presets"
	"turmites/internal/rules"
	"turmites/internal/sched"
	"turmites/internal/turmite"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Population bounds accepted by the controller.
const (
	MinAnts = 1
	MaxAnts = 1024
)

// Config holds every tunable of a run.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Random     RandomConfig     `yaml:"random"`
	View       ViewConfig       `yaml:"view"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Server     ServerConfig     `yaml:"server"`
}

// SimulationConfig describes the initial population and rules.
type SimulationConfig struct {
	Ants            int    `yaml:"ants"`
	Placement       string `yaml:"placement"`
	Heading         string `yaml:"heading"`
	IndividualRules bool   `yaml:"individual_rules"` // per-ant random tables when ants > 1
	Preset          string `yaml:"preset"`
	RulesFile       string `yaml:"rules_file"` // overrides preset when set
	Speed           int    `yaml:"speed"`      // control input, 1..100
	Seed            int64  `yaml:"seed"`
}

// RandomConfig bounds random rule generation.
type RandomConfig struct {
	MinStates int               `yaml:"min_states"`
	MaxStates int               `yaml:"max_states"`
	MinColors int               `yaml:"min_colors"`
	MaxColors int               `yaml:"max_colors"`
	Moves     rules.MoveOptions `yaml:"moves"`
}

// ViewConfig sizes the placement area and the viewers.
type ViewConfig struct {
	Cols     int     `yaml:"cols"`
	Rows     int     `yaml:"rows"`
	Scale    float64 `yaml:"scale"`
	FPS      int     `yaml:"fps"`
	HUDWidth int     `yaml:"hud_width"`
}

// TelemetryConfig controls CSV statistics output.
type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Every   int    `yaml:"every"` // ticks between samples
}

// ServerConfig configures the frame streaming server.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load reads the embedded defaults and overlays the file at path, if any.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// WriteYAML saves the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Bind attaches the most common settings to fs.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Simulation.Ants, "ants", c.Simulation.Ants, "number of ants (1-1024)")
	fs.StringVar(&c.Simulation.Placement, "placement", c.Simulation.Placement, "start placement: center, random, grid, row")
	fs.StringVar(&c.Simulation.Heading, "heading", c.Simulation.Heading, "start heading: 0-3 (N,E,S,W) or random")
	fs.BoolVar(&c.Simulation.IndividualRules, "individual", c.Simulation.IndividualRules, "give each ant its own random rules")
	fs.StringVar(&c.Simulation.Preset, "preset", c.Simulation.Preset, "preset rule table")
	fs.StringVar(&c.Simulation.RulesFile, "rules", c.Simulation.RulesFile, "rule table JSON file (overrides -preset)")
	fs.IntVar(&c.Simulation.Speed, "speed", c.Simulation.Speed, "speed control (1-100)")
	fs.Int64Var(&c.Simulation.Seed, "seed", c.Simulation.Seed, "random seed")
	fs.Float64Var(&c.View.Scale, "scale", c.View.Scale, "initial cell size in pixels")
	fs.BoolVar(&c.Telemetry.Enabled, "telemetry", c.Telemetry.Enabled, "write telemetry CSV")
	fs.StringVar(&c.Telemetry.Path, "telemetry-path", c.Telemetry.Path, "telemetry CSV path")
	fs.StringVar(&c.Server.Addr, "addr", c.Server.Addr, "listen address for the stream server")
}

// Parse registers -config plus the Bind flags on fs and parses args. Flags
// given explicitly win over the config file, which wins over the defaults.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := Default()
	var path string
	fs.StringVar(&path, "config", "", "YAML config file")
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if path != "" {
		fileCfg, err := Load(path)
		if err != nil {
			return nil, err
		}
		replay := flag.NewFlagSet(fs.Name(), flag.ContinueOnError)
		replay.SetOutput(io.Discard)
		fileCfg.Bind(replay)
		var explicit []string
		fs.Visit(func(f *flag.Flag) {
			if replay.Lookup(f.Name) != nil {
				explicit = append(explicit, "-"+f.Name+"="+f.Value.String())
			}
		})
		if err := replay.Parse(explicit); err != nil {
			return nil, fmt.Errorf("applying flags over config file: %w", err)
		}
		cfg = fileCfg
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every out-of-range setting.
func (c *Config) Validate() error {
	var errs []error
	s := c.Simulation
	if s.Ants < MinAnts || s.Ants > MaxAnts {
		errs = append(errs, fmt.Errorf("ants must be in [%d,%d], got %d", MinAnts, MaxAnts, s.Ants))
	}
	if _, err := turmite.ParsePlacement(s.Placement); err != nil {
		errs = append(errs, err)
	}
	if _, err := turmite.ParseHeadingMode(s.Heading); err != nil {
		errs = append(errs, err)
	}
	if s.Speed < sched.InputMin || s.Speed > sched.InputMax {
		errs = append(errs, fmt.Errorf("speed must be in [%d,%d], got %d", sched.InputMin, sched.InputMax, s.Speed))
	}
	if s.RulesFile == "" {
		if _, err := presets.Lookup(s.Preset); err != nil {
			errs = append(errs, err)
		}
	}
	r := c.Random
	if r.MinStates < 1 || r.MaxStates < r.MinStates {
		errs = append(errs, fmt.Errorf("random states range [%d,%d] invalid", r.MinStates, r.MaxStates))
	}
	if r.MinColors < 1 || r.MaxColors < r.MinColors {
		errs = append(errs, fmt.Errorf("random colors range [%d,%d] invalid", r.MinColors, r.MaxColors))
	}
	if c.View.Cols < 1 || c.View.Rows < 1 {
		errs = append(errs, fmt.Errorf("view must be at least 1x1, got %dx%d", c.View.Cols, c.View.Rows))
	}
	if c.View.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %g", c.View.Scale))
	}
	if c.Telemetry.Enabled && c.Telemetry.Every < 1 {
		errs = append(errs, fmt.Errorf("telemetry.every must be positive, got %d", c.Telemetry.Every))
	}
	return errors.Join(errs...)
}
