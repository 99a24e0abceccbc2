package replay

import (
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/turntable/internal/rotation"
)

// Epoch is the clock reading a replay starts at.
var Epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Event is the machine state after one step.
type Event struct {
	Step     int               `json:"step"`
	Action   string            `json:"action"`
	At       time.Duration     `json:"at"`
	Snapshot rotation.Snapshot `json:"snapshot"`
	Release  *rotation.Release `json:"release,omitempty"`
	Card     int               `json:"card"`
}

// Result is the outcome of a replay.
type Result struct {
	Name              string               `json:"name"`
	Events            []Event              `json:"events"`
	Releases          []rotation.Release   `json:"releases"`
	Advances          []rotation.Direction `json:"advances"`
	RegenerateCurrent int                  `json:"regenerate_current"`
	RegenerateAll     int                  `json:"regenerate_all"`
	Final             rotation.Snapshot    `json:"final"`
	Card              int                  `json:"card"`
	Elapsed           time.Duration        `json:"elapsed"`
	// Writes is every rotation write, in order.
	Writes []rotation.Write `json:"-"`
}

type player struct {
	script  *Script
	cfg     rotation.Config
	center  rotation.TrackedCenter
	machine *rotation.Machine
	now     time.Time
	pointer float64
	cards   int
	result  Result
}

// Run replays s on a fresh machine. logger may be nil.
func Run(s *Script, logger *log.Logger) Result {
	p := &player{
		script: s,
		cfg:    s.Config(rotation.DefaultConfig()),
		now:    Epoch,
		cards:  s.cards(),
		result: Result{Name: s.Name},
	}
	p.center.Set(s.Center)

	handlers := rotation.Handlers{
		OnAdvance:   p.advance,
		CanPaginate: func() bool { return p.cards > 0 },
	}
	if enabled(s.Handlers.RegenerateCurrent) {
		handlers.OnRegenerateCurrent = func() { p.result.RegenerateCurrent++ }
	}
	if enabled(s.Handlers.RegenerateAll) {
		handlers.OnRegenerateAll = func() { p.result.RegenerateAll++ }
	}

	opts := []rotation.Option{rotation.WithTrace(func(w rotation.Write) {
		p.result.Writes = append(p.result.Writes, w)
	})}
	if logger != nil {
		opts = append(opts, rotation.WithLogger(logger))
	}
	p.machine = rotation.NewMachine(p.cfg, &p.center, handlers, opts...)
	p.machine.Frame(p.now)

	for i, step := range s.Steps {
		ev := Event{Step: i + 1, Action: step.Action()}
		ev.Release = p.apply(step)
		ev.At = p.now.Sub(Epoch)
		ev.Snapshot = p.machine.Snapshot()
		ev.Card = p.result.Card
		p.result.Events = append(p.result.Events, ev)
	}

	p.result.Final = p.machine.Snapshot()
	p.result.Elapsed = p.now.Sub(Epoch)
	return p.result
}

func (p *player) apply(step Step) *rotation.Release {
	m := p.machine
	switch {
	case step.Down != nil:
		p.pointer = *step.Down
		m.PointerDown(p.onRim(p.pointer))
	case step.Move != nil:
		c := p.script.Center
		p.pointer = rotation.AngleFromCenter(*step.Move, c)
		m.PointerMove(*step.Move)
	case step.Spin != nil:
		p.spin(*step.Spin, step.By)
	case step.Up:
		r := m.PointerUp()
		return p.record(r)
	case step.Cancel:
		r := m.PointerCancel()
		return p.record(r)
	case step.Wait > 0:
		p.wait(time.Duration(step.Wait) * time.Millisecond)
	case step.Geometry != nil:
		if *step.Geometry {
			p.center.Set(p.script.Center)
		} else {
			p.center.Reset()
		}
	}
	return nil
}

func (p *player) record(r rotation.Release) *rotation.Release {
	if r.Ignored {
		return &r
	}
	p.result.Releases = append(p.result.Releases, r)
	return &r
}

// spin moves the pointer around the rim through total degrees.
func (p *player) spin(total, by float64) {
	if by <= 0 {
		by = 10
	}
	n := int(math.Ceil(math.Abs(total) / by))
	start := p.pointer
	for i := 1; i <= n; i++ {
		d := math.Copysign(math.Min(by*float64(i), math.Abs(total)), total)
		p.pointer = start + d
		p.machine.PointerMove(p.onRim(p.pointer))
	}
}

// wait runs frames until d has passed.
func (p *player) wait(d time.Duration) {
	interval := p.cfg.FrameInterval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	end := p.now.Add(d)
	for p.now.Before(end) {
		p.now = p.now.Add(min(interval, end.Sub(p.now)))
		p.machine.Frame(p.now)
	}
}

func (p *player) advance(dir rotation.Direction) {
	p.result.Advances = append(p.result.Advances, dir)
	if p.cards == 0 {
		return
	}
	switch dir {
	case rotation.DirectionPrevious:
		p.result.Card = (p.result.Card - 1 + p.cards) % p.cards
	default:
		p.result.Card = (p.result.Card + 1) % p.cards
	}
}

func (p *player) onRim(deg float64) rotation.Point {
	rad := deg * math.Pi / 180
	r := p.script.radius()
	return rotation.Point{
		X: p.script.Center.X + r*math.Cos(rad),
		Y: p.script.Center.Y + r*math.Sin(rad),
	}
}
