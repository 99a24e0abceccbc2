package rotation

import (
	"fmt"
	"strings"
)

// EaseFunc maps animation progress in [0, 1] to eased progress in [0, 1].
// Implementations must be non-decreasing with f(0) = 0 and f(1) = 1.
type EaseFunc func(t float64) float64

func Linear(t float64) float64 { return clamp01(t) }

// EaseIn accelerates from rest.
func EaseIn(t float64) float64 {
	t = clamp01(t)
	return t * t
}

func EaseInCubic(t float64) float64 {
	t = clamp01(t)
	return t * t * t
}

var easings = map[string]EaseFunc{
	"linear":        Linear,
	"ease-in":       EaseIn,
	"ease-in-quad":  EaseIn,
	"ease-in-cubic": EaseInCubic,
}

// EasingByName resolves a config name; empty selects [EaseIn].
func EasingByName(name string) (EaseFunc, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return EaseIn, nil
	}
	if f, ok := easings[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: unknown easing %q", ErrInvalidConfig, name)
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
