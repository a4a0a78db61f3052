package sim

import (
	"strconv"

	"turmites/internal/config"
	"turmites/internal/core"
	"turmites/internal/sched"
)

// Parameter keys shared with the HUD.
const (
	ParamSpeed     = "speed"
	ParamAnts      = "ants"
	ParamMaxStates = "max_states"
	ParamMaxColors = "max_colors"
)

// Parameters returns the values shown on the HUD.
func (c *Controller) Parameters() core.ParameterSnapshot {
	s := c.state
	name := c.presetName
	if name == "" {
		name = "custom"
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Run",
			Params: []core.Parameter{
				{Key: "state", Label: "State", Type: core.ParamTypeText, Value: c.sched.State().String()},
				{Key: ParamSpeed, Label: "Speed", Type: core.ParamTypeInt, Value: strconv.Itoa(c.speedInput)},
				{Key: "steps_per_sec", Label: "Steps/s", Type: core.ParamTypeText, Value: strconv.Itoa(int(c.sched.Speed()))},
				{Key: "tick", Label: "Tick", Type: core.ParamTypeText, Value: strconv.FormatUint(s.Ticks, 10)},
			},
		},
		{
			Name: "World",
			Params: []core.Parameter{
				{Key: ParamAnts, Label: "Ants", Type: core.ParamTypeInt, Value: strconv.Itoa(len(s.Ants))},
				{Key: "halted", Label: "Halted", Type: core.ParamTypeText, Value: strconv.Itoa(s.HaltedCount())},
				{Key: "cells", Label: "Cells", Type: core.ParamTypeText, Value: strconv.Itoa(s.Grid.Len())},
				{Key: "individual", Label: "Own rules", Type: core.ParamTypeBool, Value: strconv.FormatBool(c.cfg.IndividualRules && len(s.Ants) > 1)},
			},
		},
		{
			Name: "Rules",
			Params: []core.Parameter{
				{Key: "rules", Label: "Rules", Type: core.ParamTypeText, Value: name},
				{Key: "states", Label: "States", Type: core.ParamTypeText, Value: strconv.Itoa(s.Rules.NumStates())},
				{Key: "colors", Label: "Colors", Type: core.ParamTypeText, Value: strconv.Itoa(s.Rules.NumColors())},
				{Key: ParamMaxStates, Label: "Max states", Type: core.ParamTypeInt, Value: strconv.Itoa(c.random.MaxStates)},
				{Key: ParamMaxColors, Label: "Max colors", Type: core.ParamTypeInt, Value: strconv.Itoa(c.random.MaxColors)},
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable values.
func (c *Controller) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: ParamSpeed, Label: "Speed", Step: 1, Min: sched.InputMin, Max: sched.InputMax},
		{Key: ParamAnts, Label: "Ants", Step: 1, Min: config.MinAnts, Max: config.MaxAnts},
		{Key: ParamMaxStates, Label: "Max states", Step: 1, Min: 1, Max: 16},
		{Key: ParamMaxColors, Label: "Max colors", Step: 1, Min: 2, Max: 12},
	}
}

// SetIntParameter applies a HUD adjustment. It reports whether the value was
// accepted.
func (c *Controller) SetIntParameter(key string, value int) bool {
	switch key {
	case ParamSpeed:
		c.SetSpeedInput(value)
		return true
	case ParamAnts:
		return c.SetAntCount(value) == nil
	case ParamMaxStates:
		if value < c.random.MinStates {
			return false
		}
		c.random.MaxStates = value
		return true
	case ParamMaxColors:
		if value < c.random.MinColors {
			return false
		}
		c.random.MaxColors = value
		return true
	}
	return false
}
