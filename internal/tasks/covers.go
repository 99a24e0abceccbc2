package tasks

import (
	"context"
	"sync"

	"github.com/desertthunder/turntable/internal/services"
	"github.com/desertthunder/turntable/internal/shared"
	"golang.org/x/time/rate"
)

type coverJob struct {
	index int
	idea  services.Idea
}

// resolveCovers looks up a cover per idea with a rate-limited worker pool.
// The returned slice is aligned with ideas; misses hold placeholder urls.
func (e *PlaylistEngine) resolveCovers(ctx context.Context, progress chan<- ProgressUpdate, ideas []services.Idea) ([]string, int, error) {
	covers := make([]string, len(ideas))
	if e.covers == nil {
		for i, idea := range ideas {
			covers[i] = services.MockImageURL(idea.Genre)
		}
		return covers, len(ideas), nil
	}

	limiter := rate.NewLimiter(rate.Limit(e.rateLimit), 1)
	jobs := make(chan coverJob)

	var (
		mu     sync.Mutex
		done   int
		misses int
		wg     sync.WaitGroup
	)

	for range min(e.workers, len(ideas)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				url, err := e.cover(ctx, limiter, job.idea)

				mu.Lock()
				covers[job.index] = url
				done++
				if err != nil {
					misses++
				}
				update := coverUpdate(done, len(ideas), job.idea.Genre, err)
				mu.Unlock()

				e.sendProgress(progress, update)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, idea := range ideas {
			select {
			case jobs <- coverJob{index: i, idea: idea}:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	return covers, misses, nil
}

func (e *PlaylistEngine) cover(ctx context.Context, limiter *rate.Limiter, idea services.Idea) (string, error) {
	placeholder := services.MockImageURL(idea.Genre)
	if err := limiter.Wait(ctx); err != nil {
		return placeholder, err
	}

	url, err := e.covers.Cover(ctx, idea.Query)
	if err == nil && url == "" {
		err = shared.ErrCoverNotFound
	}
	if err != nil {
		e.logger.Debug("cover lookup missed", "genre", idea.Genre, "error", err)
		return placeholder, err
	}
	return url, nil
}
