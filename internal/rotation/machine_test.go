package rotation

import (
	"testing"
	"time"
)

func TestMachineScenarios(t *testing.T) {
	t.Run("a 50 degree drag pages to next once and resets", func(t *testing.T) {
		var c calls
		m := newTestMachine(c.handlers(true, true))

		drag(m, 0, 50, 10)
		r := m.PointerUp()

		if r.Zone != ZonePaginate || r.Direction != DirectionNext {
			t.Fatalf("expected paginate next, got %+v", r)
		}
		if len(c.advance) != 1 || c.advance[0] != DirectionNext {
			t.Errorf("expected exactly one advance(next), got %v", c.advance)
		}
		if m.Rotation() != 0 || m.Mode() != ModeIdle {
			t.Errorf("expected idle at 0, got %v in %v", m.Rotation(), m.Mode())
		}
	})

	t.Run("an anticlockwise drag pages to previous", func(t *testing.T) {
		var c calls
		m := newTestMachine(c.handlers(false, false))

		drag(m, 90, -60, 10)
		m.PointerUp()

		if len(c.advance) != 1 || c.advance[0] != DirectionPrevious {
			t.Errorf("expected exactly one advance(previous), got %v", c.advance)
		}
	})

	t.Run("a 400 degree drag snaps back without paging", func(t *testing.T) {
		var c calls
		m := newTestMachine(c.handlers(true, true))

		drag(m, 0, 400, 10)
		if !approx(m.Rotation(), 400, 1e-6) {
			t.Fatalf("expected rotation to track the drag, got %v", m.Rotation())
		}

		r := m.PointerUp()
		if r.Effective != ZoneSnapBack || m.Mode() != ModeSnappingBack {
			t.Fatalf("expected a snap-back, got %+v in %v", r, m.Mode())
		}

		want := SnapBackDuration(400, 240*time.Millisecond, 200*time.Millisecond)
		if want <= 200*time.Millisecond {
			t.Fatalf("expected duration above the minimum, got %v", want)
		}

		now := epoch
		prev := m.Rotation()
		var elapsed time.Duration
		for m.Mode() == ModeSnappingBack {
			got := m.Frame(now)
			if got > prev || got < 0 {
				t.Fatalf("snap-back went from %v to %v", prev, got)
			}
			prev = got
			now = now.Add(10 * time.Millisecond)
			elapsed += 10 * time.Millisecond
			if elapsed > time.Second {
				t.Fatal("snap-back never finished")
			}
		}

		if m.Rotation() != 0 {
			t.Errorf("expected to land on 0, got %v", m.Rotation())
		}
		if elapsed < want {
			t.Errorf("expected the unwind to take at least %v, took %v", want, elapsed)
		}
		if len(c.advance) != 0 {
			t.Errorf("advance should never fire, got %v", c.advance)
		}
	})

	t.Run("an 1100 degree drag regenerates the current item immediately", func(t *testing.T) {
		var c calls
		var writes []Write
		m := newTestMachine(c.handlers(true, true), WithTrace(func(w Write) { writes = append(writes, w) }))

		drag(m, 0, 1100, 10)
		r := m.PointerUp()

		if r.Effective != ZoneRegenerateForward {
			t.Fatalf("expected regenerate forward, got %+v", r)
		}
		if c.regenCurrent != 1 || c.regenAll != 0 {
			t.Errorf("expected one regenerate-current call, got %d/%d", c.regenCurrent, c.regenAll)
		}
		if m.Rotation() != 0 || m.Mode() != ModeIdle {
			t.Errorf("expected idle at 0 right away, got %v in %v", m.Rotation(), m.Mode())
		}

		frames(m, epoch, 16*time.Millisecond, 10)
		for _, w := range writes {
			if w.Writer == WriterSnapBack {
				t.Fatal("no snap-back frame should be emitted")
			}
		}
	})

	t.Run("a -1200 degree drag without regenerate-all snaps back", func(t *testing.T) {
		var c calls
		m := newTestMachine(c.handlers(true, false))

		drag(m, 0, -1200, 10)
		r := m.PointerUp()

		if r.Zone != ZoneRegenerateBackward || r.Effective != ZoneSnapBack {
			t.Fatalf("expected backward regenerate to fall back to snap-back, got %+v", r)
		}
		if m.Mode() != ModeSnappingBack {
			t.Fatalf("expected snapping back, got %v", m.Mode())
		}

		frames(m, epoch, 16*time.Millisecond, 100)
		if m.Rotation() != 0 || m.Mode() != ModeIdle {
			t.Errorf("expected idle at 0, got %v in %v", m.Rotation(), m.Mode())
		}
		if c.regenCurrent != 0 || len(c.advance) != 0 {
			t.Error("no callback should fire")
		}
	})

	t.Run("a -1200 degree drag with regenerate-all fires it", func(t *testing.T) {
		var c calls
		m := newTestMachine(c.handlers(false, true))

		drag(m, 0, -1200, 10)
		m.PointerUp()

		if c.regenAll != 1 || m.Rotation() != 0 {
			t.Errorf("expected one regenerate-all and rotation 0, got %d and %v", c.regenAll, m.Rotation())
		}
	})

	t.Run("an 1100 degree drag without regenerate-current snaps back", func(t *testing.T) {
		var c calls
		m := newTestMachine(c.handlers(false, true))

		drag(m, 0, 1100, 10)
		r := m.PointerUp()

		if r.Effective != ZoneSnapBack || c.regenAll != 0 {
			t.Errorf("expected snap-back and no regenerate-all, got %+v", r)
		}
	})

	t.Run("grabbing mid snap-back starts from the rotation on screen", func(t *testing.T) {
		var c calls
		var writes []Write
		m := newTestMachine(c.handlers(true, true), WithTrace(func(w Write) { writes = append(writes, w) }))

		drag(m, 0, 500, 10)
		m.PointerUp()

		now := epoch
		for m.Rotation() > 250 {
			m.Frame(now)
			now = now.Add(8 * time.Millisecond)
		}
		interrupted := m.Rotation()
		if interrupted < 200 || interrupted > 250 {
			t.Fatalf("expected to stop near 250, got %v", interrupted)
		}

		m.PointerDown(pointAt(0))
		writes = writes[:0]

		if m.Mode() != ModeDragging {
			t.Fatalf("expected dragging, got %v", m.Mode())
		}
		if s := m.Session(); s == nil || s.StartRotation != interrupted || s.Cumulative != 0 {
			t.Fatalf("expected a fresh session at %v, got %+v", interrupted, s)
		}

		frames(m, now, 16*time.Millisecond, 30)
		if m.Rotation() != interrupted {
			t.Errorf("frames during a drag must not move the rotation, got %v", m.Rotation())
		}

		m.PointerMove(pointAt(10))
		if !approx(m.Rotation(), interrupted+10, 1e-6) {
			t.Errorf("expected %v, got %v", interrupted+10, m.Rotation())
		}

		for _, w := range writes {
			if w.Writer != WriterGesture {
				t.Fatalf("only the drag may write after the grab, got %v", w.Writer)
			}
		}
	})
}

func TestMachineIdle(t *testing.T) {
	t.Run("idle resumes from the released angle after a nudge", func(t *testing.T) {
		var c calls
		m := newTestMachine(c.handlers(true, true))

		_, now := frames(m, epoch, 100*time.Millisecond, 11)
		phi := m.Rotation()
		if !approx(phi, 30, 1e-9) {
			t.Fatalf("expected 30 after one second of idle, got %v", phi)
		}

		drag(m, 0, 20, 10)
		r := m.PointerUp()
		if r.Effective != ZoneNoOp {
			t.Fatalf("expected noop, got %+v", r)
		}
		released := m.Rotation()
		if !approx(released, phi+20, 1e-6) {
			t.Fatalf("expected release at %v, got %v", phi+20, released)
		}

		later := now.Add(5 * time.Second)
		if got := m.Frame(later); got != released {
			t.Errorf("expected first idle frame at %v, got %v", released, got)
		}
		if got := m.Frame(later.Add(100 * time.Millisecond)); !approx(got, released+3, 1e-9) {
			t.Errorf("expected %v, got %v", released+3, got)
		}
	})

	t.Run("paging with no items behaves like a nudge", func(t *testing.T) {
		var c calls
		h := c.handlers(true, true)
		h.CanPaginate = func() bool { return false }
		m := newTestMachine(h)

		drag(m, 0, 90, 10)
		r := m.PointerUp()

		if r.Zone != ZonePaginate || r.Effective != ZoneNoOp {
			t.Fatalf("expected paginate to be blocked, got %+v", r)
		}
		if len(c.advance) != 0 {
			t.Errorf("advance should not fire, got %v", c.advance)
		}
		if m.Mode() != ModeIdle {
			t.Errorf("expected idle, got %v", m.Mode())
		}
		if got := m.Rotation(); !approx(got, 90, 1e-9) {
			t.Errorf("expected the released angle 90 to be kept, got %v", got)
		}
	})

	t.Run("snap-back completion restarts idle from zero", func(t *testing.T) {
		var c calls
		m := newTestMachine(c.handlers(true, true))

		frames(m, epoch, 100*time.Millisecond, 11)
		drag(m, 0, 400, 10)
		m.PointerUp()

		now := epoch
		for i := 0; m.Mode() == ModeSnappingBack; i++ {
			if i > 100 {
				t.Fatal("snap-back never finished")
			}
			m.Frame(now)
			now = now.Add(16 * time.Millisecond)
		}
		if got := m.Frame(now); got != 0 {
			t.Errorf("expected the first idle frame at 0, got %v", got)
		}
	})
}

func TestMachineEdges(t *testing.T) {
	t.Run("cancel forces a noop", func(t *testing.T) {
		var c calls
		m := newTestMachine(c.handlers(true, true))

		drag(m, 0, 1100, 10)
		r := m.PointerCancel()

		if !r.Cancelled || r.Zone != ZoneNoOp || r.Effective != ZoneNoOp {
			t.Fatalf("expected a cancelled noop, got %+v", r)
		}
		if c.regenCurrent != 0 {
			t.Error("cancel must not regenerate")
		}
		if m.Mode() != ModeIdle {
			t.Errorf("expected idle, got %v", m.Mode())
		}
	})

	t.Run("release without a drag is ignored", func(t *testing.T) {
		var c calls
		m := newTestMachine(c.handlers(true, true))

		if r := m.PointerUp(); !r.Ignored {
			t.Errorf("expected ignored release, got %+v", r)
		}
		if r := m.PointerCancel(); !r.Ignored {
			t.Errorf("expected ignored cancel, got %+v", r)
		}
		if got := m.PointerMove(pointAt(90)); got != 0 {
			t.Errorf("move without a drag should not write, got %v", got)
		}
	})

	t.Run("a second pointer-down keeps the running session", func(t *testing.T) {
		var c calls
		m := newTestMachine(c.handlers(true, true))

		drag(m, 0, 30, 10)
		before := m.Session()
		m.PointerDown(pointAt(90))

		if m.Session() != before {
			t.Error("expected the original session to survive")
		}
	})

	t.Run("unmeasured geometry reads as zero samples", func(t *testing.T) {
		var c calls
		center := &TrackedCenter{}
		m := NewMachine(DefaultConfig(), center, c.handlers(true, true))

		m.PointerDown(pointAt(0))
		for i := 1; i <= 10; i++ {
			m.PointerMove(pointAt(float64(i * 10)))
		}
		if s := m.Session(); s.Cumulative != 0 {
			t.Fatalf("expected no rotation without geometry, got %v", s.Cumulative)
		}

		center.Set(Point{})
		m.PointerMove(pointAt(170))
		m.PointerMove(pointAt(180))
		if s := m.Session(); !approx(s.Cumulative, 180, 1e-6) {
			t.Errorf("expected tracking to pick up once measured, got %v", s.Cumulative)
		}
	})

	t.Run("nil geometry is tolerated", func(t *testing.T) {
		m := NewMachine(DefaultConfig(), nil, Handlers{})
		m.PointerDown(pointAt(0))
		m.PointerMove(pointAt(90))
		if r := m.PointerUp(); r.Effective != ZoneNoOp {
			t.Errorf("expected noop, got %+v", r)
		}
	})

	t.Run("snapshot previews the zone while dragging", func(t *testing.T) {
		m := newTestMachine(Handlers{})
		drag(m, 0, 400, 10)

		s := m.Snapshot()
		if s.Mode != ModeDragging || s.Preview != ZoneSnapBack || !approx(s.Cumulative, 400, 1e-6) {
			t.Errorf("unexpected snapshot %+v", s)
		}
	})
}

func TestMachineMutualExclusion(t *testing.T) {
	var c calls
	var step []Write
	m := newTestMachine(c.handlers(true, false), WithTrace(func(w Write) { step = append(step, w) }))

	owner := map[Writer]Mode{
		WriterIdle:     ModeIdle,
		WriterGesture:  ModeDragging,
		WriterSnapBack: ModeSnappingBack,
	}

	check := func(label string) {
		t.Helper()
		seen := map[Writer]bool{}
		for _, w := range step {
			seen[w.Writer] = true
			if owner[w.Writer] != w.Mode {
				t.Fatalf("%s: %v wrote while %v held control", label, w.Writer, w.Mode)
			}
		}
		if len(seen) > 1 {
			t.Fatalf("%s: %d writers in one step: %v", label, len(seen), step)
		}
		step = step[:0]
	}

	now := epoch
	tick := func() {
		m.Frame(now)
		check("frame")
		now = now.Add(16 * time.Millisecond)
	}
	do := func(label string, fn func()) {
		fn()
		check(label)
	}

	for range 5 {
		tick()
	}

	// pages, snaps back, gets interrupted, regenerates, falls back, cancels
	spins := []float64{60, 500, -200, 1100, -1200, 700}
	for i, total := range spins {
		do("down", func() { m.PointerDown(pointAt(0)) })
		n := int(abs(total) / 10)
		for k := 1; k <= n; k++ {
			deg := float64(k) * 10
			if total < 0 {
				deg = -deg
			}
			do("move", func() { m.PointerMove(pointAt(deg)) })
			if k%7 == 0 {
				tick()
			}
		}
		if i == len(spins)-1 {
			do("cancel", func() { m.PointerCancel() })
		} else {
			do("up", func() { m.PointerUp() })
		}
		for range 8 {
			tick()
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
