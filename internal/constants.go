package internal

import "time"

// BaseSpeed is the fraction of a link a marker travels per tick before any multiplier.
const BaseSpeed = 0.02

const TickInterval = 50 * time.Millisecond

// MarkerStagger spreads markers of the same link so they do not move in lockstep.
const MarkerStagger = 0.1

const CanvasWidth = 600
const CanvasHeight = 250

const (
	MinVfCount     = 1
	MaxVfCount     = 8
	MinPacketCount = 1
	MaxPacketCount = 10
	MinTrafficLoad = 0
	MaxTrafficLoad = 100
)

// Bounds for a single manual step request.
const (
	MinStepTicks = 1
	MaxStepTicks = 1000
)

const SubscriberQueueSize = 1

func Clamp(value int, min int, max int) int {
	if value < min {
		return min
	} else if value > max {
		return max
	}
	return value
}
