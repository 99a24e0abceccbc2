package rotation

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Mode says which writer owns the rendered rotation.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
	ModeSnappingBack
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDragging:
		return "dragging"
	case ModeSnappingBack:
		return "snapping-back"
	default:
		return "unknown"
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	for c := ModeIdle; c <= ModeSnappingBack; c++ {
		if c.String() == string(text) {
			*m = c
			return nil
		}
	}
	return fmt.Errorf("unknown mode %q", text)
}

// Writer identifies who changed the rendered rotation.
type Writer int

const (
	WriterIdle Writer = iota
	// WriterGesture covers pointer moves and the reset performed on release.
	WriterGesture
	WriterSnapBack
)

func (w Writer) String() string {
	switch w {
	case WriterIdle:
		return "idle"
	case WriterGesture:
		return "gesture"
	case WriterSnapBack:
		return "snapback"
	default:
		return "unknown"
	}
}

// Write is one change of the rendered rotation.
type Write struct {
	Writer  Writer
	Mode    Mode
	Degrees float64
}

// Handlers are the callbacks fired on release.
//
// OnRegenerateCurrent and OnRegenerateAll are optional; a nil handler turns
// its zone into a snap-back. CanPaginate reports whether there is anything to
// page through; nil means yes. A blocked page is a no-op that keeps the
// released angle and resumes the idle spin from it.
type Handlers struct {
	OnAdvance           func(Direction)
	OnRegenerateCurrent func()
	OnRegenerateAll     func()
	CanPaginate         func() bool
}

// Release describes how a drag ended.
type Release struct {
	// Zone is the classification of the cumulative rotation.
	Zone Zone `json:"zone"`
	// Effective is what was carried out after capability fallbacks.
	Effective  Zone      `json:"effective"`
	Direction  Direction `json:"direction,omitempty"`
	Cumulative float64   `json:"cumulative"`
	// Rotation is the rendered rotation at the moment of release.
	Rotation  float64 `json:"rotation"`
	Cancelled bool    `json:"cancelled,omitempty"`
	// Ignored is set when no drag was in progress.
	Ignored bool `json:"ignored,omitempty"`
}

// Snapshot is the observable state of a [Machine].
type Snapshot struct {
	Rotation   float64 `json:"rotation"`
	Mode       Mode    `json:"mode"`
	Cumulative float64 `json:"cumulative"`
	// Preview is the zone the drag would release into.
	Preview Zone `json:"preview"`
}

// Option configures a [Machine].
type Option func(*Machine)

// WithLogger logs transitions at debug level.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// WithTrace registers fn to observe every rotation write.
func WithTrace(fn func(Write)) Option {
	return func(m *Machine) { m.trace = fn }
}

// Machine arbitrates the rendered rotation between the idle spin, the drag
// and the snap-back. It is not safe for concurrent use; hosts call it from a
// single goroutine.
type Machine struct {
	cfg      Config
	geometry Geometry
	handlers Handlers
	ease     EaseFunc
	logger   *log.Logger
	trace    func(Write)

	mode     Mode
	rotation float64
	session  *Session
	idle     IdleDriver
	snap     *SnapBack
}

// NewMachine builds an idle machine at rotation 0. An unknown easing name
// falls back to [EaseIn]; call [Config.Validate] first to reject it instead.
func NewMachine(cfg Config, geometry Geometry, handlers Handlers, opts ...Option) *Machine {
	ease, err := EasingByName(cfg.Easing)
	if err != nil {
		ease = EaseIn
	}

	m := &Machine{
		cfg:      cfg,
		geometry: geometry,
		handlers: handlers,
		ease:     ease,
		idle:     NewIdleDriver(cfg.IdleRevolution),
		mode:     ModeIdle,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	return m
}

func (m *Machine) Mode() Mode        { return m.mode }
func (m *Machine) Rotation() float64 { return m.rotation }

// Session returns the live drag, nil when not dragging.
func (m *Machine) Session() *Session { return m.session }

func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{Rotation: m.rotation, Mode: m.mode}
	if m.session != nil {
		s.Cumulative = m.session.Cumulative
		s.Preview = m.cfg.Thresholds.Classify(m.session.Cumulative)
	}
	return s
}

// PointerDown starts a drag at the rotation currently on screen. A running
// snap-back is dropped without another frame. A second pointer-down while
// dragging is ignored.
func (m *Machine) PointerDown(p Point) {
	switch m.mode {
	case ModeDragging:
		return
	case ModeSnappingBack:
		m.logger.Debug("snap-back interrupted", "rotation", m.rotation, "progress", m.snap.Progress(m.rotation))
		m.snap = nil
	}

	m.idle.Suspend()
	m.session = NewSession(p, m.rotation, m.measure(p))
	m.mode = ModeDragging
	m.logger.Debug("grab", "rotation", m.rotation, "angle", m.session.LastAngle)
}

// PointerMove folds a sample into the drag and returns the rendered rotation.
func (m *Machine) PointerMove(p Point) float64 {
	if m.mode != ModeDragging {
		return m.rotation
	}

	m.session.Accumulate(m.measure(p))
	m.write(WriterGesture, m.session.Rotation())
	return m.rotation
}

// PointerUp classifies the drag and carries out its zone.
func (m *Machine) PointerUp() Release {
	if m.mode != ModeDragging {
		return Release{Ignored: true, Rotation: m.rotation}
	}
	return m.release(m.cfg.Thresholds.Classify(m.session.Cumulative), false)
}

// PointerCancel ends the drag as a [ZoneNoOp] whatever was spun.
func (m *Machine) PointerCancel() Release {
	if m.mode != ModeDragging {
		return Release{Ignored: true, Rotation: m.rotation}
	}
	return m.release(ZoneNoOp, true)
}

// Frame is the animation-frame callback. It returns the rotation to render.
func (m *Machine) Frame(now time.Time) float64 {
	switch m.mode {
	case ModeIdle:
		m.write(WriterIdle, m.idle.Advance(now))
	case ModeSnappingBack:
		angle, done := m.snap.Step(now)
		m.write(WriterSnapBack, angle)
		if done {
			m.snap = nil
			m.idle.Sync(0)
			m.mode = ModeIdle
			m.logger.Debug("snap-back complete")
		}
	}
	return m.rotation
}

func (m *Machine) release(zone Zone, cancelled bool) Release {
	s := m.session
	m.session = nil

	r := Release{
		Zone:       zone,
		Effective:  zone,
		Cumulative: s.Cumulative,
		Rotation:   m.rotation,
		Cancelled:  cancelled,
	}

	switch zone {
	case ZoneRegenerateForward:
		if m.handlers.OnRegenerateCurrent == nil {
			r.Effective = ZoneSnapBack
			m.startSnapBack()
			break
		}
		m.handlers.OnRegenerateCurrent()
		m.resetToZero()
	case ZoneRegenerateBackward:
		if m.handlers.OnRegenerateAll == nil {
			r.Effective = ZoneSnapBack
			m.startSnapBack()
			break
		}
		m.handlers.OnRegenerateAll()
		m.resetToZero()
	case ZoneSnapBack:
		m.startSnapBack()
	case ZonePaginate:
		if !m.canPaginate() {
			r.Effective = ZoneNoOp
			m.resumeInPlace()
			break
		}
		r.Direction = DirectionOf(s.Cumulative)
		m.handlers.OnAdvance(r.Direction)
		m.resetToZero()
	default:
		m.resumeInPlace()
	}

	m.logger.Debug("release", "zone", zone, "effective", r.Effective, "cumulative", s.Cumulative, "samples", s.Samples)
	return r
}

func (m *Machine) canPaginate() bool {
	if m.handlers.OnAdvance == nil {
		return false
	}
	return m.handlers.CanPaginate == nil || m.handlers.CanPaginate()
}

// resetToZero consumes the gesture: the rotation jumps to 0 and idle resumes from there.
func (m *Machine) resetToZero() {
	m.write(WriterGesture, 0)
	m.idle.Sync(0)
	m.mode = ModeIdle
}

// resumeInPlace hands the released angle to the idle spin.
func (m *Machine) resumeInPlace() {
	m.idle.Sync(m.rotation)
	m.mode = ModeIdle
}

func (m *Machine) startSnapBack() {
	d := SnapBackDuration(m.rotation, m.cfg.SnapBackPerRevolution, m.cfg.SnapBackMinimum)
	m.snap = NewSnapBack(m.rotation, d, m.ease)
	m.mode = ModeSnappingBack
	m.logger.Debug("snap-back", "from", m.rotation, "duration", d)
}

// measure returns 0 while the control has no geometry.
func (m *Machine) measure(p Point) float64 {
	if m.geometry == nil {
		return 0
	}
	c, ok := m.geometry.Center()
	if !ok {
		return 0
	}
	return AngleFromCenter(p, c)
}

func (m *Machine) write(w Writer, deg float64) {
	m.rotation = deg
	if m.trace != nil {
		m.trace(Write{Writer: w, Mode: m.mode, Degrees: deg})
	}
}
