package rotation

import "math"

// Point is a screen-space position.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Geometry reports the centre of the control. ok is false while the control
// has not been laid out yet.
type Geometry interface {
	Center() (center Point, ok bool)
}

// GeometryFunc adapts a function to [Geometry].
type GeometryFunc func() (Point, bool)

func (f GeometryFunc) Center() (Point, bool) { return f() }

// FixedCenter is a [Geometry] that never moves.
type FixedCenter Point

func (c FixedCenter) Center() (Point, bool) { return Point(c), true }

// TrackedCenter is a [Geometry] updated by the host whenever the control is
// measured. The zero value is unmeasured.
type TrackedCenter struct {
	center Point
	ok     bool
}

// Set records a new measurement.
func (t *TrackedCenter) Set(p Point) {
	t.center, t.ok = p, true
}

// Reset marks the control as unmeasured.
func (t *TrackedCenter) Reset() {
	t.center, t.ok = Point{}, false
}

func (t *TrackedCenter) Center() (Point, bool) { return t.center, t.ok }

// AngleFromCenter returns the angle of p around center in degrees, in (-180, 180].
func AngleFromCenter(p, center Point) float64 {
	deg := math.Atan2(p.Y-center.Y, p.X-center.X) * 180 / math.Pi
	if deg == -180 {
		return 180
	}
	return deg
}

// ShortestDelta returns the signed short arc from one angle to another.
//
// An exact half turn keeps the sign of to - from, so the result is
// antisymmetric for every pair of inputs.
func ShortestDelta(from, to float64) float64 {
	d := to - from
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return d
}

// Session is the state of one drag. It exists from pointer-down until the
// release is classified.
type Session struct {
	StartPointer  Point
	StartRotation float64
	LastAngle     float64
	Cumulative    float64
	Samples       int
}

// NewSession opens a session at the given pointer and rendered rotation.
func NewSession(start Point, rotation, angle float64) *Session {
	return &Session{StartPointer: start, StartRotation: rotation, LastAngle: angle}
}

// Accumulate adds the short arc to angle and returns the delta applied.
func (s *Session) Accumulate(angle float64) float64 {
	d := ShortestDelta(s.LastAngle, angle)
	s.Cumulative += d
	s.LastAngle = angle
	s.Samples++
	return d
}

// Rotation is the rendered rotation implied by the session.
func (s *Session) Rotation() float64 {
	return s.StartRotation + s.Cumulative
}
