package rotation

import (
	"math"
	"time"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

const radius = 100.0

func pointAt(deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{X: radius * math.Cos(rad), Y: radius * math.Sin(rad)}
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// calls counts the callbacks fired by a machine.
type calls struct {
	advance      []Direction
	regenCurrent int
	regenAll     int
}

func (c *calls) handlers(withCurrent, withAll bool) Handlers {
	h := Handlers{OnAdvance: func(d Direction) { c.advance = append(c.advance, d) }}
	if withCurrent {
		h.OnRegenerateCurrent = func() { c.regenCurrent++ }
	}
	if withAll {
		h.OnRegenerateAll = func() { c.regenAll++ }
	}
	return h
}

// drag grabs at angle from, moves in steps of step degrees through total
// degrees and leaves the pointer down.
func drag(m *Machine, from, total, step float64) {
	m.PointerDown(pointAt(from))
	n := int(math.Round(math.Abs(total) / step))
	dir := math.Copysign(step, total)
	for i := 1; i <= n; i++ {
		m.PointerMove(pointAt(from + dir*float64(i)))
	}
}

// frames runs count frames spaced interval apart starting at start and
// returns the rendered rotation after each one.
func frames(m *Machine, start time.Time, interval time.Duration, count int) ([]float64, time.Time) {
	out := make([]float64, 0, count)
	now := start
	for range count {
		out = append(out, m.Frame(now))
		now = now.Add(interval)
	}
	return out, now
}

func newTestMachine(h Handlers, opts ...Option) *Machine {
	return NewMachine(DefaultConfig(), FixedCenter{}, h, opts...)
}
