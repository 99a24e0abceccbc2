package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/desertthunder/turntable/internal/rotation"
	"github.com/desertthunder/turntable/internal/shared"
	"gopkg.in/yaml.v3"
)

// Script is a recorded gesture sequence.
type Script struct {
	Name   string         `yaml:"name"`
	Center rotation.Point `yaml:"center"`
	// Radius is where down and spin place the pointer (default: 100).
	Radius float64 `yaml:"radius"`
	// FrameMs spaces the frames of a wait (default: 16).
	FrameMs int `yaml:"frame_ms"`
	// Cards is the deck size behind the vinyl; 0 cannot paginate (default: 5).
	Cards    *int     `yaml:"cards"`
	Handlers Handlers `yaml:"handlers"`
	Vinyl    Vinyl    `yaml:"vinyl"`
	Steps    []Step   `yaml:"steps"`
}

// Handlers switches the optional regenerate callbacks (default: both on).
type Handlers struct {
	RegenerateCurrent *bool `yaml:"regenerate_current"`
	RegenerateAll     *bool `yaml:"regenerate_all"`
}

// Vinyl overrides the stock rotation settings.
type Vinyl struct {
	PaginateDeg       float64 `yaml:"paginate_deg"`
	ZoneEntryDeg      float64 `yaml:"zone_entry_deg"`
	RegenerateDeg     float64 `yaml:"regenerate_deg"`
	IdleRevolutionMs  int     `yaml:"idle_revolution_ms"`
	SnapBackPerTurnMs int     `yaml:"snapback_per_turn_ms"`
	SnapBackMinMs     int     `yaml:"snapback_min_ms"`
	Easing            string  `yaml:"easing"`
}

// Step is one action. Exactly one field may be set.
type Step struct {
	Down *float64       `yaml:"down"`
	Move *rotation.Point `yaml:"move"`
	Spin *float64       `yaml:"spin"`
	// By is the increment of a spin in degrees (default: 10).
	By       float64 `yaml:"by"`
	Up       bool    `yaml:"up"`
	Cancel   bool    `yaml:"cancel"`
	Wait     int     `yaml:"wait"`
	Geometry *bool   `yaml:"geometry"`
}

// Action names the step's single action.
func (s Step) Action() string {
	switch {
	case s.Down != nil:
		return "down"
	case s.Move != nil:
		return "move"
	case s.Spin != nil:
		return "spin"
	case s.Up:
		return "up"
	case s.Cancel:
		return "cancel"
	case s.Wait > 0:
		return "wait"
	case s.Geometry != nil:
		return "geometry"
	}
	return ""
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{s.Down != nil, s.Move != nil, s.Spin != nil, s.Up, s.Cancel, s.Wait > 0, s.Geometry != nil} {
		if set {
			n++
		}
	}
	return n
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	return Load(bytes.NewReader(data))
}

// Load decodes and validates a script from r. Unknown keys are rejected.
func Load(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty script", shared.ErrInvalidScript)
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads a script from disk.
func LoadFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks the steps and the resulting rotation settings.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", shared.ErrInvalidScript)
	}
	for i, step := range s.Steps {
		switch n := step.actions(); {
		case n == 0:
			return fmt.Errorf("%w: step %d has no action", shared.ErrInvalidScript, i+1)
		case n > 1:
			return fmt.Errorf("%w: step %d has %d actions", shared.ErrInvalidScript, i+1, n)
		}
		if step.Wait < 0 || step.By < 0 {
			return fmt.Errorf("%w: step %d has a negative value", shared.ErrInvalidScript, i+1)
		}
		// Samples further apart than half a turn alias to the short way round.
		if step.By >= 180 {
			return fmt.Errorf("%w: step %d spins by %.0f degrees per sample", shared.ErrInvalidScript, i+1, step.By)
		}
	}
	if s.Radius < 0 || s.FrameMs < 0 || (s.Cards != nil && *s.Cards < 0) {
		return fmt.Errorf("%w: negative radius, frame or cards", shared.ErrInvalidScript)
	}
	if err := s.Config(rotation.DefaultConfig()).Validate(); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidScript, err)
	}
	return nil
}

// Config applies the script's vinyl overrides to base.
func (s *Script) Config(base rotation.Config) rotation.Config {
	v := s.Vinyl
	if v.PaginateDeg != 0 {
		base.Thresholds.Paginate = v.PaginateDeg
	}
	if v.ZoneEntryDeg != 0 {
		base.Thresholds.ZoneEntry = v.ZoneEntryDeg
	}
	if v.RegenerateDeg != 0 {
		base.Thresholds.Regenerate = v.RegenerateDeg
	}
	if v.IdleRevolutionMs != 0 {
		base.IdleRevolution = time.Duration(v.IdleRevolutionMs) * time.Millisecond
	}
	if v.SnapBackPerTurnMs != 0 {
		base.SnapBackPerRevolution = time.Duration(v.SnapBackPerTurnMs) * time.Millisecond
	}
	if v.SnapBackMinMs != 0 {
		base.SnapBackMinimum = time.Duration(v.SnapBackMinMs) * time.Millisecond
	}
	if v.Easing != "" {
		base.Easing = v.Easing
	}
	if s.FrameMs > 0 {
		base.FrameInterval = time.Duration(s.FrameMs) * time.Millisecond
	}
	return base
}

func (s *Script) radius() float64 {
	if s.Radius > 0 {
		return s.Radius
	}
	return 100
}

func (s *Script) cards() int {
	if s.Cards != nil {
		return *s.Cards
	}
	return 5
}

func enabled(b *bool) bool { return b == nil || *b }
