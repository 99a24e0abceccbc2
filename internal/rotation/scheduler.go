package rotation

import (
	"context"
	"time"
)

// Scheduler delivers animation-frame timestamps. The channel closes when ctx
// is done.
type Scheduler interface {
	Frames(ctx context.Context) <-chan time.Time
}

// TickerScheduler emits frames from a [time.Ticker]. Frames the consumer is
// not ready for are dropped rather than queued.
type TickerScheduler struct {
	Interval time.Duration
}

func (s TickerScheduler) Frames(ctx context.Context) <-chan time.Time {
	interval := s.Interval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}

	frames := make(chan time.Time, 1)
	go func() {
		defer close(frames)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				select {
				case frames <- now:
				default:
				}
			}
		}
	}()
	return frames
}

// ManualScheduler hands out frames only when [ManualScheduler.Fire] is called.
type ManualScheduler struct {
	frames chan time.Time
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{frames: make(chan time.Time)}
}

func (s *ManualScheduler) Frames(ctx context.Context) <-chan time.Time {
	out := make(chan time.Time)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-s.frames:
				select {
				case out <- now:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Fire blocks until the frame has been handed to the consumer's channel.
func (s *ManualScheduler) Fire(now time.Time) {
	s.frames <- now
}
