package deck

import (
	"context"

	"github.com/desertthunder/turntable/internal/models"
	"github.com/desertthunder/turntable/internal/shared"
	"github.com/desertthunder/turntable/internal/tasks"
)

// pickFunc chooses the genres a rebuild asks the builder for.
type pickFunc func(selection []models.Genre, current models.Playlist) []models.Genre

// start claims the busy flag and runs a rebuild on its own goroutine.
func (d *Deck) start(ctx context.Context, mode models.LoadingMode, pick pickFunc) error {
	d.mu.Lock()
	if d.loading != models.LoadingNone {
		d.mu.Unlock()
		return shared.ErrDeckBusy
	}
	d.loading = mode
	current := d.currentLocked()
	genres := pick(d.genres, current)
	mood := d.mood
	d.mu.Unlock()

	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		d.rebuild(ctx, mode, mood, genres, current.ID)
	}()
	return nil
}

func (d *Deck) rebuild(ctx context.Context, mode models.LoadingMode, mood models.Mood, genres []models.Genre, targetID string) {
	progress := make(chan tasks.ProgressUpdate, 8)
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		for p := range progress {
			d.notify(Update{Mode: mode, Progress: &p})
		}
	}()

	d.logger.Debug("deck rebuild started", "mode", mode, "genres", len(genres), "mood", mood)
	result, err := d.builder.Build(ctx, progress, mood, genres)
	close(progress)
	<-forwarded

	if err == nil {
		d.apply(mode, result.Playlists, targetID)
		d.save(ctx)
	} else {
		d.logger.Error("deck rebuild failed", "mode", mode, "error", err)
	}

	d.mu.Lock()
	d.loading = models.LoadingNone
	d.mu.Unlock()

	done := Update{Mode: mode, Err: err, Done: true}
	select {
	case d.updates <- done:
	case <-ctx.Done():
	}
}

// apply merges built cards into the deck and keeps the index in bounds.
func (d *Deck) apply(mode models.LoadingMode, built []models.Playlist, targetID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch mode {
	case models.LoadingSingle:
		if len(built) == 0 {
			return
		}
		for i := range d.items {
			if d.items[i].ID == targetID {
				d.items[i] = built[0]
				return
			}
		}
	case models.LoadingAdded:
		current := d.currentLocked()
		d.items = ordered(append(d.items, built...), d.genres)
		d.index = indexOf(d.items, current.ID)
	case models.LoadingAuto:
		d.items = ordered(built, d.genres)
		if d.index >= len(d.items) {
			d.index = 0
		}
	default:
		d.items = ordered(built, d.genres)
		d.index = 0
	}
}

func (d *Deck) save(ctx context.Context) {
	if d.store == nil {
		return
	}
	if err := d.store.SaveDeck(ctx, d.Items()); err != nil {
		d.logger.Error("failed to save deck", "error", err)
	}
}

// notify sends a progress update without blocking.
func (d *Deck) notify(u Update) {
	select {
	case d.updates <- u:
	default:
	}
}
