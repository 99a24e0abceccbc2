package rotation

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// PointerKind enumerates pointer stream events.
type PointerKind string

const (
	PointerStart  PointerKind = "start"
	PointerMoved  PointerKind = "move"
	PointerEnd    PointerKind = "end"
	PointerCancel PointerKind = "cancel"
)

// PointerEvent is one input sample. Center, when set, is the control centre
// measured by the client at the time of the sample.
type PointerEvent struct {
	Kind   PointerKind `json:"kind"`
	At     Point       `json:"at"`
	Center *Point      `json:"center,omitempty"`
}

// LoopOptions configures a [Loop].
type LoopOptions struct {
	Config    Config
	Handlers  Handlers
	Scheduler Scheduler
	Logger    *log.Logger
	// Publish receives a snapshot after every change of rotation or mode.
	Publish func(Snapshot)
	// OnRelease receives every non-ignored release.
	OnRelease func(Release)
	// Buffer is the pointer event queue length.
	Buffer int
}

// Loop owns a [Machine] on a single goroutine, feeding it pointer events and
// scheduler frames.
type Loop struct {
	machine   *Machine
	center    *TrackedCenter
	scheduler Scheduler
	events    chan PointerEvent
	publish   func(Snapshot)
	onRelease func(Release)
	logger    *log.Logger

	mu   sync.RWMutex
	last Snapshot
}

func NewLoop(opts LoopOptions) *Loop {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Buffer <= 0 {
		opts.Buffer = 64
	}
	if opts.Scheduler == nil {
		opts.Scheduler = TickerScheduler{Interval: opts.Config.FrameInterval}
	}

	center := &TrackedCenter{}
	return &Loop{
		machine:   NewMachine(opts.Config, center, opts.Handlers, WithLogger(opts.Logger)),
		center:    center,
		scheduler: opts.Scheduler,
		events:    make(chan PointerEvent, opts.Buffer),
		publish:   opts.Publish,
		onRelease: opts.OnRelease,
		logger:    opts.Logger,
	}
}

// Send queues an event without blocking; it reports false when the queue is full.
func (l *Loop) Send(ev PointerEvent) bool {
	select {
	case l.events <- ev:
		return true
	default:
		l.logger.Warn("pointer event dropped", "kind", ev.Kind)
		return false
	}
}

// Snapshot returns the state published last.
func (l *Loop) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.last
}

// Run processes events and frames until ctx is done or the scheduler stops.
func (l *Loop) Run(ctx context.Context) error {
	frames := l.scheduler.Frames(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-l.events:
			l.apply(ev)
		case now, ok := <-frames:
			if !ok {
				return nil
			}
			l.machine.Frame(now)
		}
		l.emit()
	}
}

func (l *Loop) apply(ev PointerEvent) {
	if ev.Center != nil {
		l.center.Set(*ev.Center)
	}

	var r Release
	switch ev.Kind {
	case PointerStart:
		l.machine.PointerDown(ev.At)
		return
	case PointerMoved:
		l.machine.PointerMove(ev.At)
		return
	case PointerEnd:
		r = l.machine.PointerUp()
	case PointerCancel:
		r = l.machine.PointerCancel()
	default:
		l.logger.Warn("unknown pointer event", "kind", ev.Kind)
		return
	}

	if !r.Ignored && l.onRelease != nil {
		l.onRelease(r)
	}
}

func (l *Loop) emit() {
	s := l.machine.Snapshot()

	l.mu.Lock()
	changed := s != l.last
	l.last = s
	l.mu.Unlock()

	if changed && l.publish != nil {
		l.publish(s)
	}
}
