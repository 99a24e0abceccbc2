package rotation

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidConfig = errors.New("invalid vinyl configuration")

// Config holds the thresholds and timings of a [Machine].
type Config struct {
	Thresholds Thresholds
	// IdleRevolution is the time for one idle turn.
	IdleRevolution time.Duration
	// SnapBackPerRevolution is the snap-back time per 360° unwound.
	SnapBackPerRevolution time.Duration
	// SnapBackMinimum floors short snap-backs.
	SnapBackMinimum time.Duration
	// FrameInterval is used by tickers that drive [Machine.Frame].
	FrameInterval time.Duration
	Easing        string
}

// DefaultConfig returns the stock vinyl timings.
func DefaultConfig() Config {
	return Config{
		Thresholds:            DefaultThresholds(),
		IdleRevolution:        12 * time.Second,
		SnapBackPerRevolution: 240 * time.Millisecond,
		SnapBackMinimum:       200 * time.Millisecond,
		FrameInterval:         16 * time.Millisecond,
		Easing:                "ease-in",
	}
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	t := c.Thresholds
	switch {
	case t.Paginate <= 0:
		return fmt.Errorf("%w: paginate threshold must be positive", ErrInvalidConfig)
	case t.ZoneEntry < t.Paginate:
		return fmt.Errorf("%w: zone entry %.1f is below paginate %.1f", ErrInvalidConfig, t.ZoneEntry, t.Paginate)
	case t.Regenerate <= t.ZoneEntry:
		return fmt.Errorf("%w: regenerate %.1f must exceed zone entry %.1f", ErrInvalidConfig, t.Regenerate, t.ZoneEntry)
	case c.IdleRevolution <= 0:
		return fmt.Errorf("%w: idle revolution must be positive", ErrInvalidConfig)
	case c.SnapBackPerRevolution < 0 || c.SnapBackMinimum <= 0:
		return fmt.Errorf("%w: snap-back durations must be positive", ErrInvalidConfig)
	case c.FrameInterval < 0:
		return fmt.Errorf("%w: frame interval is negative", ErrInvalidConfig)
	}
	_, err := EasingByName(c.Easing)
	return err
}
