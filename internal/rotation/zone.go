package rotation

import (
	"fmt"
	"math"
)

// Zone is the behaviour class of a released drag.
type Zone int

const (
	ZoneNoOp Zone = iota
	ZonePaginate
	ZoneSnapBack
	ZoneRegenerateForward
	ZoneRegenerateBackward
)

func (z Zone) String() string {
	switch z {
	case ZoneNoOp:
		return "noop"
	case ZonePaginate:
		return "paginate"
	case ZoneSnapBack:
		return "snapback"
	case ZoneRegenerateForward:
		return "regenerate-forward"
	case ZoneRegenerateBackward:
		return "regenerate-backward"
	default:
		return "unknown"
	}
}

// MarshalText lets zones appear by name in JSON and YAML.
func (z Zone) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

func (z *Zone) UnmarshalText(text []byte) error {
	for c := ZoneNoOp; c <= ZoneRegenerateBackward; c++ {
		if c.String() == string(text) {
			*z = c
			return nil
		}
	}
	return fmt.Errorf("unknown zone %q", text)
}

// Direction is the paging direction reported to [Handlers.OnAdvance].
type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
)

// DirectionOf maps a clockwise (positive) rotation to next.
func DirectionOf(cumulative float64) Direction {
	if cumulative < 0 {
		return DirectionPrevious
	}
	return DirectionNext
}

// Thresholds are the zone boundaries in degrees.
type Thresholds struct {
	Paginate   float64
	ZoneEntry  float64
	Regenerate float64
}

// DefaultThresholds returns 45°, one turn and three turns.
func DefaultThresholds() Thresholds {
	return Thresholds{Paginate: 45, ZoneEntry: 360, Regenerate: 1080}
}

// Classify maps a cumulative rotation onto its [Zone].
func (t Thresholds) Classify(cumulative float64) Zone {
	mag := math.Abs(cumulative)
	switch {
	case cumulative >= t.Regenerate:
		return ZoneRegenerateForward
	case cumulative <= -t.Regenerate:
		return ZoneRegenerateBackward
	case mag > t.ZoneEntry:
		return ZoneSnapBack
	case mag >= t.Paginate:
		return ZonePaginate
	default:
		return ZoneNoOp
	}
}
