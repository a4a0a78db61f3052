// Package stream serves a running simulation to browser viewers over
// websockets.
package stream

import (
	"encoding/json"
	"errors"
	"fmt"

	"turmites/internal/core"
	"turmites/internal/sim"
	"turmites/internal/turmite"
)

// Cell is one changed grid cell.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
	C int `json:"c"`
}

// AntView is the visible part of an ant.
type AntView struct {
	X       int `json:"x"`
	Y       int `json:"y"`
	Heading int `json:"h"`
	State   int `json:"s"`
}

// Frame carries the cells changed since the previous frame. When Full is
// set, Cells holds every non-default cell and the viewer must clear first.
type Frame struct {
	Type  string    `json:"type"`
	Full  bool      `json:"full"`
	Cells []Cell    `json:"cells"`
	Ants  []AntView `json:"ants"`
	Tick  uint64    `json:"tick"`
	Speed int       `json:"speed"`
	State string    `json:"state"`
}

// Empty reports whether the frame carries no cell changes.
func (f *Frame) Empty() bool { return !f.Full && len(f.Cells) == 0 }

// BuildFrame consumes the pending invalidations of s.
func BuildFrame(s *turmite.SimulationState) Frame {
	f := Frame{Type: "frame", Tick: s.Ticks, Cells: []Cell{}}
	if s.Dirty.Full() {
		f.Full = true
		for p, c := range s.Grid.All() {
			f.Cells = append(f.Cells, Cell{X: p.X, Y: p.Y, C: c})
		}
		s.Dirty.Reset()
	} else {
		s.Dirty.Drain(func(p core.Point) {
			f.Cells = append(f.Cells, Cell{X: p.X, Y: p.Y, C: s.Grid.Get(p.X, p.Y)})
		})
	}
	f.Ants = make([]AntView, len(s.Ants))
	for i := range s.Ants {
		a := &s.Ants[i]
		f.Ants[i] = AntView{X: a.Pos.X, Y: a.Pos.Y, Heading: int(a.Heading), State: a.State}
	}
	return f
}

// ErrUnknownControl is returned for control messages with an unknown type.
var ErrUnknownControl = errors.New("unknown control")

// Control is a message from a viewer.
type Control struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Apply runs a control message against ctrl. It must be called on the loop
// goroutine.
func Apply(ctrl *sim.Controller, msg Control) error {
	switch msg.Type {
	case "toggle":
		return ctrl.Toggle()
	case "reset":
		ctrl.Reset()
	case "randomize":
		ctrl.Randomize()
	case "speed":
		var v int
		if err := json.Unmarshal(msg.Value, &v); err != nil {
			return fmt.Errorf("speed value: %w", err)
		}
		ctrl.SetSpeedInput(v)
	case "preset":
		var key string
		if err := json.Unmarshal(msg.Value, &key); err != nil {
			return fmt.Errorf("preset value: %w", err)
		}
		return ctrl.LoadPreset(key)
	case "rules":
		var text string
		if err := json.Unmarshal(msg.Value, &text); err != nil {
			return fmt.Errorf("rules value: %w", err)
		}
		return ctrl.ApplyRulesText(text)
	default:
		return fmt.Errorf("%w %q", ErrUnknownControl, msg.Type)
	}
	return nil
}

// errorMessage reports a rejected control to the sending viewer.
type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
