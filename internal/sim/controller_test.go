package sim

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"turmites/internal/config"
	"turmites/internal/core"
	"turmites/internal/rules"
	"turmites/internal/sched"
	"turmites/internal/turmite"
)

func newTestController(t *testing.T, mutate func(*config.Config)) (*Controller, *core.ManualClock) {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	clock := core.NewManualClock(time.Unix(0, 0))
	c, err := New(cfg, clock, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, clock
}

func TestNewStartsRunningLangton(t *testing.T) {
	c, _ := newTestController(t, nil)
	if c.Scheduler().State() != sched.Running {
		t.Fatalf("state = %s, want running", c.Scheduler().State())
	}
	s := c.State()
	if len(s.Ants) != 1 || s.Ants[0].Pos != (core.Point{}) || s.Ants[0].Heading != turmite.North {
		t.Fatalf("ants = %+v", s.Ants)
	}
	if !rules.Equal(s.Rules, rules.Langton()) || c.PresetName() != "Langton's Ant" {
		t.Fatalf("unexpected initial rules %q", c.PresetName())
	}
}

func TestAdvanceStepsWorld(t *testing.T) {
	c, clock := newTestController(t, nil)
	c.Scheduler().Advance()
	clock.Advance(time.Second)
	c.Scheduler().Advance()
	if got := c.State().Ticks; got != 61 {
		t.Fatalf("ticks = %d, want 61 at 60 ticks/s", got)
	}
}

func TestApplyRulesTextRejectKeepsPrior(t *testing.T) {
	c, _ := newTestController(t, nil)
	before := c.State().Rules
	if err := c.ApplyRulesText(`{"0": [{"writeColor": 1, "move": "Z", "nextState": 0}]}`); err == nil {
		t.Fatalf("invalid rules accepted")
	}
	if !rules.Equal(c.State().Rules, before) {
		t.Fatalf("rules changed after a rejected apply")
	}

	text := rules.Format(rules.Table{0: {{WriteColor: 1, Move: rules.Stay, NextState: rules.HaltState}}}, "")
	if err := c.ApplyRulesText(text); err != nil {
		t.Fatalf("ApplyRulesText: %v", err)
	}
	if c.State().Rules.Lookup(0, 0).Move != rules.Stay || c.PresetName() != "" {
		t.Fatalf("new rules not installed")
	}
}

func TestResetClearsGridAndRequestsFullRedraw(t *testing.T) {
	c, clock := newTestController(t, nil)
	c.Scheduler().Advance()
	clock.Advance(time.Second)
	c.Scheduler().Advance()
	c.State().Dirty.Reset()
	c.Reset()
	s := c.State()
	if s.Grid.Len() != 0 || s.Ticks != 0 || !s.Dirty.Full() {
		t.Fatalf("after reset: cells=%d ticks=%d full=%v", s.Grid.Len(), s.Ticks, s.Dirty.Full())
	}
}

func TestIndividualRulesPreservedAcrossReset(t *testing.T) {
	c, _ := newTestController(t, func(cfg *config.Config) {
		cfg.Simulation.Ants = 4
		cfg.Simulation.IndividualRules = true
	})
	first := make([]rules.Table, 0, 4)
	for _, a := range c.State().Ants {
		if a.Rules == nil {
			t.Fatalf("ant without private rules")
		}
		first = append(first, a.Rules)
	}
	c.Reset()
	for i, a := range c.State().Ants {
		if !rules.Equal(a.Rules, first[i]) {
			t.Fatalf("ant %d rules changed across reset", i)
		}
	}
	c.Randomize()
	same := 0
	for i, a := range c.State().Ants {
		if rules.Equal(a.Rules, first[i]) {
			same++
		}
	}
	if same == len(first) {
		t.Fatalf("randomize kept every private table")
	}
}

func TestSingleAntIgnoresIndividualRules(t *testing.T) {
	c, _ := newTestController(t, func(cfg *config.Config) { cfg.Simulation.IndividualRules = true })
	if c.State().Ants[0].Rules != nil {
		t.Fatalf("single ant received private rules")
	}
}

func TestRandomizeWithinBounds(t *testing.T) {
	c, _ := newTestController(t, nil)
	for i := 0; i < 20; i++ {
		c.Randomize()
		tbl := c.State().Rules
		if n := tbl.NumStates(); n < 1 || n > 5 {
			t.Fatalf("states = %d", n)
		}
		if n := tbl.NumColors(); n < 2 || n > 11 {
			t.Fatalf("colors = %d", n)
		}
	}
}

func TestAddAntRejectsInvalid(t *testing.T) {
	c, _ := newTestController(t, nil)
	if err := c.AddAnt(turmite.Ant{Heading: turmite.Heading(9)}); !errors.Is(err, turmite.ErrInvalidAnt) {
		t.Fatalf("err = %v", err)
	}
	if len(c.State().Ants) != 1 {
		t.Fatalf("invalid ant admitted")
	}
	if err := c.AddAnt(turmite.Ant{Pos: core.Point{X: 5, Y: 5}, Heading: turmite.East}); err != nil {
		t.Fatalf("AddAnt: %v", err)
	}
	if len(c.State().Ants) != 2 {
		t.Fatalf("ant not added")
	}
}

func TestSetIntParameter(t *testing.T) {
	c, _ := newTestController(t, nil)
	if !c.SetIntParameter(ParamSpeed, 100) || c.Scheduler().Speed() != sched.MaxSpeed {
		t.Fatalf("speed not applied: %v", c.Scheduler().Speed())
	}
	if !c.SetIntParameter(ParamAnts, 9) || len(c.State().Ants) != 9 {
		t.Fatalf("ant count not applied")
	}
	if c.SetIntParameter(ParamAnts, 0) {
		t.Fatalf("ant count 0 accepted")
	}
	if c.SetIntParameter("nope", 1) {
		t.Fatalf("unknown key accepted")
	}
	p, ok := c.Parameters().Lookup(ParamAnts)
	if !ok || p.Value != "9" {
		t.Fatalf("snapshot ants = %+v", p)
	}
}

func TestPresetAndFileRoundTrip(t *testing.T) {
	c, _ := newTestController(t, nil)
	if err := c.LoadPreset("busyBeaver3"); err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}
	path := filepath.Join(t.TempDir(), "bb3.json")
	if err := c.SaveRulesFile(path); err != nil {
		t.Fatalf("SaveRulesFile: %v", err)
	}
	if err := c.LoadPreset("langtons"); err != nil {
		t.Fatal(err)
	}
	if err := c.LoadRulesFile(path); err != nil {
		t.Fatalf("LoadRulesFile: %v", err)
	}
	if c.State().Rules.NumStates() != 7 {
		t.Fatalf("loaded table has %d states", c.State().Rules.NumStates())
	}
}

func TestPausedResetStaysPaused(t *testing.T) {
	c, _ := newTestController(t, nil)
	if err := c.Toggle(); err != nil {
		t.Fatal(err)
	}
	c.Reset()
	if c.Scheduler().State() != sched.Paused {
		t.Fatalf("state = %s, want paused", c.Scheduler().State())
	}
}
