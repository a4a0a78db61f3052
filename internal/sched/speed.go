package sched

import "math"

// Speed bounds in simulation ticks per second.
const (
	MinSpeed = 1.0
	MidSpeed = 60.0
	MaxSpeed = 100000.0
)

// Speed control input range.
const (
	InputMin = 1
	InputMid = 50
	InputMax = 100
)

// SpeedForInput maps a control value in [InputMin, InputMax] to ticks per
// second. The lower half is linear up to MidSpeed, the upper half follows a
// cubic curve up to MaxSpeed. Out-of-range input is clamped.
func SpeedForInput(v int) float64 {
	v = min(max(v, InputMin), InputMax)
	switch {
	case v == InputMid:
		return MidSpeed
	case v < InputMid:
		speed := MinSpeed + float64(v-InputMin)*(MidSpeed-MinSpeed)/float64(InputMid-InputMin)
		return math.Max(MinSpeed, speed)
	default:
		n := float64(v-InputMid) / float64(InputMax-InputMid)
		speed := MidSpeed + math.Pow(n, 3)*(MaxSpeed-MidSpeed)
		return math.Min(MaxSpeed, speed)
	}
}
