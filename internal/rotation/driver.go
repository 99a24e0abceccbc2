package rotation

import (
	"math"
	"time"
)

// IdleDriver spins at a constant angular velocity.
//
// The accumulator is never wrapped into [0, 360). Suspending only forgets the
// previous frame timestamp, so the first frame after a resume advances by
// zero and time spent suspended is not counted.
type IdleDriver struct {
	degPerMs float64
	angle    float64
	last     time.Time
	hasLast  bool
}

// NewIdleDriver returns a driver completing one turn per revolution.
func NewIdleDriver(revolution time.Duration) IdleDriver {
	return IdleDriver{degPerMs: 360 / (float64(revolution) / float64(time.Millisecond))}
}

// Advance moves the accumulator by the time elapsed since the previous frame and returns it.
func (d *IdleDriver) Advance(now time.Time) float64 {
	if d.hasLast {
		if dt := now.Sub(d.last); dt > 0 {
			d.angle += d.degPerMs * float64(dt) / float64(time.Millisecond)
		}
	}
	d.last, d.hasLast = now, true
	return d.angle
}

// Suspend clears the frame reference while another writer owns the rotation.
func (d *IdleDriver) Suspend() {
	d.last, d.hasLast = time.Time{}, false
}

// Sync moves the accumulator to the angle the idle spin should resume from.
func (d *IdleDriver) Sync(angle float64) {
	d.angle = angle
}

func (d *IdleDriver) Angle() float64 { return d.angle }

// SnapBackDuration is perRevolution per 360° of |from|, floored at minimum.
func SnapBackDuration(from float64, perRevolution, minimum time.Duration) time.Duration {
	d := time.Duration(float64(perRevolution) * math.Abs(from) / 360)
	return max(d, minimum)
}

// SnapBack unwinds the rotation from From to exactly 0.
//
// The clock starts on the first [SnapBack.Step], which is the first frame
// after the release.
type SnapBack struct {
	From     float64
	Duration time.Duration
	ease     EaseFunc
	start    time.Time
	started  bool
}

// NewSnapBack prepares an unwind from the given angle.
func NewSnapBack(from float64, duration time.Duration, ease EaseFunc) *SnapBack {
	if ease == nil {
		ease = EaseIn
	}
	return &SnapBack{From: from, Duration: duration, ease: ease}
}

// Step returns the rotation at now and whether the animation has finished.
func (s *SnapBack) Step(now time.Time) (float64, bool) {
	if !s.started {
		s.start, s.started = now, true
	}

	elapsed := now.Sub(s.start)
	if elapsed >= s.Duration {
		return 0, true
	}
	if elapsed < 0 {
		elapsed = 0
	}

	progress := s.ease(float64(elapsed) / float64(s.Duration))
	return s.From * (1 - clamp01(progress)), false
}

// Progress is the fraction of From already unwound when the rotation reads rotation.
func (s *SnapBack) Progress(rotation float64) float64 {
	if s.From == 0 {
		return 1
	}
	return 1 - rotation/s.From
}
