// Package sim ties the simulation state, engine and scheduler together and
// exposes the operations viewers trigger.
package sim

import (
	"fmt"
	"log/slog"

	"turmites/internal/config"
	"turmites/internal/core"
	"turmites/internal/presets"
	"turmites/internal/rules"
	"turmites/internal/sched"
	"turmites/internal/turmite"
	pcore "turmites/pkg/core"
)

// Controller owns one simulation. Its methods must be called from the
// goroutine driving the scheduler.
type Controller struct {
	cfg    config.SimulationConfig
	random config.RandomConfig
	view   core.Size
	log    *slog.Logger

	rng    *pcore.RNG
	engine *turmite.Engine
	state  *turmite.SimulationState
	sched  *sched.Scheduler

	placement  turmite.Placement
	heading    turmite.HeadingMode
	speedInput int
	presetName string
	observers  []func(*turmite.SimulationState)
	onReset    []func()
}

// New builds a controller from cfg and starts its scheduler. clock may be
// nil for wall time.
func New(cfg *config.Config, clock core.Clock, logger *slog.Logger) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	placement, _ := turmite.ParsePlacement(cfg.Simulation.Placement)
	heading, _ := turmite.ParseHeadingMode(cfg.Simulation.Heading)

	c := &Controller{
		cfg:        cfg.Simulation,
		random:     cfg.Random,
		view:       core.Size{W: cfg.View.Cols, H: cfg.View.Rows},
		log:        logger,
		rng:        pcore.NewRNG(cfg.Simulation.Seed),
		placement:  placement,
		heading:    heading,
		speedInput: cfg.Simulation.Speed,
	}
	c.engine = turmite.NewEngine(c.rng)

	table, name, err := c.initialRules()
	if err != nil {
		return nil, err
	}
	c.state = turmite.NewState(table)
	c.presetName = name
	c.sched = sched.New(clock, c.tick, sched.SpeedForInput(c.speedInput), logger)
	c.populate(nil)
	if err := c.sched.Start(); err != nil {
		return nil, err
	}
	c.log.Info("simulation initialized",
		"rules", c.presetName,
		"ants", len(c.state.Ants),
		"placement", string(c.placement),
		"speed", c.sched.Speed(),
	)
	return c, nil
}

func (c *Controller) initialRules() (rules.Table, string, error) {
	if c.cfg.RulesFile != "" {
		t, err := rules.LoadFile(c.cfg.RulesFile)
		if err != nil {
			return nil, "", err
		}
		return t, "", nil
	}
	p, err := presets.Lookup(c.cfg.Preset)
	if err != nil {
		return nil, "", err
	}
	return p.Rules(), p.Name, nil
}

func (c *Controller) tick() int {
	n := c.engine.Tick(c.state)
	for _, fn := range c.observers {
		fn(c.state)
	}
	return n
}

// Observe registers fn to run after every tick.
func (c *Controller) Observe(fn func(*turmite.SimulationState)) {
	c.observers = append(c.observers, fn)
}

// OnReset registers fn to run after the world is rebuilt.
func (c *Controller) OnReset(fn func()) {
	c.onReset = append(c.onReset, fn)
}

// populate rebuilds the ant list. preserved supplies per-ant tables kept
// from the previous population.
func (c *Controller) populate(preserved []rules.Table) {
	n := c.cfg.Ants
	individual := c.cfg.IndividualRules && n > 1
	positions := turmite.Place(c.rng, c.placement, n, c.view)
	ants := make([]turmite.Ant, n)
	for i, p := range positions {
		ants[i] = turmite.Ant{Pos: p, Heading: c.heading.Pick(c.rng)}
		if !individual {
			continue
		}
		if i < len(preserved) && preserved[i] != nil {
			ants[i].Rules = preserved[i]
			continue
		}
		ants[i].Rules = c.randomTable()
	}
	c.state.Reset(ants)
	for _, fn := range c.onReset {
		fn()
	}
}

func (c *Controller) randomTable() rules.Table {
	states := c.rng.Between(c.random.MinStates, c.random.MaxStates)
	colors := c.rng.Between(c.random.MinColors, c.random.MaxColors)
	return rules.Generate(c.rng, states, colors, c.random.Moves.Moves())
}

func (c *Controller) preservedRules() []rules.Table {
	var out []rules.Table
	for i := range c.state.Ants {
		if t := c.state.Ants[i].Rules; t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Reset clears the grid and re-places the ants, keeping per-ant tables.
func (c *Controller) Reset() {
	c.populate(c.preservedRules())
	c.sched.Restart()
	c.log.Info("simulation reset", "ants", len(c.state.Ants))
}

// Randomize installs a fresh random shared table and new per-ant tables.
func (c *Controller) Randomize() {
	c.state.Rules = c.randomTable()
	c.presetName = ""
	c.populate(nil)
	c.sched.Restart()
	c.log.Info("rules randomized",
		"states", c.state.Rules.NumStates(),
		"colors", c.state.Rules.NumColors(),
	)
}

// ApplyRulesText parses text and, when valid, installs it and resets. On
// failure the current rules stay in place.
func (c *Controller) ApplyRulesText(text string) error {
	t, err := rules.ParseText(text)
	if err != nil {
		c.log.Warn("rules rejected", "error", err)
		return fmt.Errorf("apply rules: %w", err)
	}
	c.installRules(t, "")
	return nil
}

// LoadPreset installs a catalog table.
func (c *Controller) LoadPreset(key string) error {
	p, err := presets.Lookup(key)
	if err != nil {
		return err
	}
	c.installRules(p.Rules(), p.Name)
	return nil
}

// LoadRulesFile installs a table read from a JSON file.
func (c *Controller) LoadRulesFile(path string) error {
	t, err := rules.LoadFile(path)
	if err != nil {
		return err
	}
	c.installRules(t, "")
	return nil
}

// SaveRulesFile exports the shared table.
func (c *Controller) SaveRulesFile(path string) error {
	return rules.SaveFile(path, c.state.Rules)
}

func (c *Controller) installRules(t rules.Table, name string) {
	c.state.Rules = t
	c.presetName = name
	c.Reset()
}

// RulesText returns the shared table in its editable text form.
func (c *Controller) RulesText() string {
	return rules.Format(c.state.Rules, c.presetName)
}

// SetAntCount changes the population size and resets.
func (c *Controller) SetAntCount(n int) error {
	if n < config.MinAnts || n > config.MaxAnts {
		return fmt.Errorf("ant count %d outside [%d,%d]", n, config.MinAnts, config.MaxAnts)
	}
	c.cfg.Ants = n
	c.Reset()
	return nil
}

// AddAnt admits a single validated ant without resetting the world.
func (c *Controller) AddAnt(a turmite.Ant) error {
	if err := turmite.ValidateAnt(a); err != nil {
		return err
	}
	if len(c.state.Ants) >= config.MaxAnts {
		return fmt.Errorf("%w: population full", turmite.ErrInvalidAnt)
	}
	c.state.Ants = append(c.state.Ants, a)
	c.cfg.Ants = len(c.state.Ants)
	c.state.Dirty.Mark(a.Pos)
	return nil
}

// SetSpeedInput maps v (1..100) to a tick rate.
func (c *Controller) SetSpeedInput(v int) {
	c.speedInput = min(max(v, sched.InputMin), sched.InputMax)
	c.sched.SetSpeed(sched.SpeedForInput(c.speedInput))
}

// SpeedInput returns the current control value.
func (c *Controller) SpeedInput() int { return c.speedInput }

// SetViewSize changes the area new populations are placed in.
func (c *Controller) SetViewSize(s core.Size) {
	if s.W > 0 && s.H > 0 {
		c.view = s
	}
}

// Toggle pauses or resumes.
func (c *Controller) Toggle() error {
	if err := c.sched.Toggle(); err != nil {
		return err
	}
	c.log.Info("run state changed", "state", c.sched.State().String())
	return nil
}

// Scheduler exposes the run-state machine.
func (c *Controller) Scheduler() *sched.Scheduler { return c.sched }

// State exposes the world for rendering. Callers must not retain it across
// goroutines.
func (c *Controller) State() *turmite.SimulationState { return c.state }

// PresetName returns the name of the installed preset, or "" for custom rules.
func (c *Controller) PresetName() string { return c.presetName }
