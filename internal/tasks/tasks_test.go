package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/turntable/internal/models"
	"github.com/desertthunder/turntable/internal/services"
	"github.com/desertthunder/turntable/internal/shared"
	tu "github.com/desertthunder/turntable/internal/testing"
)

var rainyNight = models.Mood{Weather: models.WeatherRain, TimeOfDay: models.Night}

func TestNewPlaylistEngine(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		e := NewPlaylistEngine(EngineOpts{})
		if e.workers != 3 {
			t.Errorf("expected 3 workers, got %d", e.workers)
		}
		if e.rateLimit != 5 {
			t.Errorf("expected rate limit 5, got %v", e.rateLimit)
		}
		if e.timeout != 10*time.Second {
			t.Errorf("expected 10s timeout, got %v", e.timeout)
		}
		if e.logger == nil || e.now == nil {
			t.Error("expected logger and clock to be set")
		}
	})

	t.Run("caps workers at 8", func(t *testing.T) {
		e := NewPlaylistEngine(EngineOpts{Workers: 32})
		if e.workers != 8 {
			t.Errorf("expected 8 workers, got %d", e.workers)
		}
	})
}

func TestPlaylistEngineBuild(t *testing.T) {
	genres := []models.Genre{"Jazz", "City Pop", "Piano"}
	created := time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC)

	t.Run("rejects an empty selection", func(t *testing.T) {
		e := NewPlaylistEngine(EngineOpts{})
		_, err := e.Build(context.Background(), nil, rainyNight, nil)
		if !errors.Is(err, shared.ErrNoGenres) {
			t.Errorf("expected ErrNoGenres, got %v", err)
		}
	})

	t.Run("uses generator ideas in selection order", func(t *testing.T) {
		gen := &tu.MockGenerator{Ideas: []services.Idea{
			{Genre: "Piano", Title: "Quiet keys", Query: "piano rain"},
			{Genre: "Jazz", Title: "Late set", Query: "jazz night"},
			{Genre: "City Pop", Title: "Neon", Query: "city pop"},
		}}
		covers := &tu.MockCovers{URLs: map[string]string{
			"piano rain": "https://img/piano",
			"jazz night": "https://img/jazz",
			"city pop":   "https://img/city",
		}}
		e := NewPlaylistEngine(EngineOpts{
			Generator: gen,
			Covers:    covers,
			RateLimit: 1000,
			Now:       func() time.Time { return created },
		})

		result, err := e.Build(context.Background(), nil, rainyNight, genres)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(result.Playlists) != len(genres) {
			t.Fatalf("expected %d playlists, got %d", len(genres), len(result.Playlists))
		}
		for i, p := range result.Playlists {
			if p.Genre != genres[i] {
				t.Errorf("expected genre %s at %d, got %s", genres[i], i, p.Genre)
			}
			if p.BatchID != result.BatchID {
				t.Errorf("expected batch %s, got %s", result.BatchID, p.BatchID)
			}
			if p.ID == "" || p.ID == result.BatchID {
				t.Errorf("expected a fresh id, got %q", p.ID)
			}
			if !p.CreatedAt.Equal(created) {
				t.Errorf("expected created at %v, got %v", created, p.CreatedAt)
			}
			if p.Mood != rainyNight {
				t.Errorf("expected mood %v, got %v", rainyNight, p.Mood)
			}
		}
		if result.Playlists[0].ImageURL != "https://img/jazz" {
			t.Errorf("expected jazz cover, got %s", result.Playlists[0].ImageURL)
		}
		if result.Fallbacks != 0 || result.CoverMisses != 0 {
			t.Errorf("expected no fallbacks or misses, got %d and %d", result.Fallbacks, result.CoverMisses)
		}
		if calls := gen.Calls(); len(calls) != 1 {
			t.Errorf("expected one generator call, got %d", len(calls))
		}
		if q := covers.Queries(); len(q) != 3 {
			t.Errorf("expected 3 cover queries, got %d", len(q))
		}
	})

	t.Run("falls back when the generator fails", func(t *testing.T) {
		gen := &tu.MockGenerator{Err: shared.ErrServiceUnavailable}
		e := NewPlaylistEngine(EngineOpts{Generator: gen})

		progress := make(chan ProgressUpdate, 16)
		result, err := e.Build(context.Background(), progress, rainyNight, genres)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Fallbacks != 3 {
			t.Errorf("expected 3 fallbacks, got %d", result.Fallbacks)
		}
		if result.Playlists[0].Title != "Rainy night Jazz" {
			t.Errorf("expected fallback title, got %q", result.Playlists[0].Title)
		}
		close(progress)

		var sawFallback, sawDone bool
		for u := range progress {
			switch u.Phase {
			case PhaseFallback:
				sawFallback = errors.Is(u.Err, shared.ErrServiceUnavailable)
			case PhaseDone:
				sawDone = true
			}
		}
		if !sawFallback {
			t.Error("expected a fallback update carrying the generator error")
		}
		if !sawDone {
			t.Error("expected a done update")
		}
	})

	t.Run("fills genres the generator skipped", func(t *testing.T) {
		gen := &tu.MockGenerator{Ideas: []services.Idea{
			{Genre: "City Pop", Title: "Neon", Query: "city pop"},
			{Genre: "City Pop", Title: "Duplicate", Query: "dup"},
		}}
		e := NewPlaylistEngine(EngineOpts{Generator: gen})

		result, err := e.Build(context.Background(), nil, rainyNight, genres)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Fallbacks != 2 {
			t.Errorf("expected 2 fallbacks, got %d", result.Fallbacks)
		}
		if result.Playlists[1].Title != "Neon" {
			t.Errorf("expected first City Pop idea to win, got %q", result.Playlists[1].Title)
		}
		if !strings.Contains(result.Playlists[2].Title, "Piano") {
			t.Errorf("expected fallback Piano title, got %q", result.Playlists[2].Title)
		}
	})

	t.Run("uses placeholder covers without a cover finder", func(t *testing.T) {
		e := NewPlaylistEngine(EngineOpts{})
		result, err := e.Build(context.Background(), nil, rainyNight, genres)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.CoverMisses != len(genres) {
			t.Errorf("expected %d misses, got %d", len(genres), result.CoverMisses)
		}
		for _, p := range result.Playlists {
			if p.ImageURL != services.MockImageURL(p.Genre) {
				t.Errorf("expected placeholder for %s, got %s", p.Genre, p.ImageURL)
			}
		}
	})

	t.Run("counts cover misses", func(t *testing.T) {
		covers := &tu.MockCovers{URLs: map[string]string{"Jazz Rainy night": "https://img/jazz"}}
		e := NewPlaylistEngine(EngineOpts{Covers: covers, RateLimit: 1000})

		result, err := e.Build(context.Background(), nil, rainyNight, genres)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.CoverMisses != 2 {
			t.Errorf("expected 2 misses, got %d", result.CoverMisses)
		}
		if result.Playlists[0].ImageURL != "https://img/jazz" {
			t.Errorf("expected jazz cover, got %s", result.Playlists[0].ImageURL)
		}
		if result.Playlists[1].ImageURL != services.MockImageURL("City Pop") {
			t.Errorf("expected placeholder, got %s", result.Playlists[1].ImageURL)
		}
	})

	t.Run("replaces failing cover lookups", func(t *testing.T) {
		covers := &tu.MockCovers{Err: shared.ErrAPIRequest}
		e := NewPlaylistEngine(EngineOpts{Covers: covers, RateLimit: 1000})

		result, err := e.Build(context.Background(), nil, rainyNight, genres)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.CoverMisses != 3 {
			t.Errorf("expected 3 misses, got %d", result.CoverMisses)
		}
	})

	t.Run("stops when cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		e := NewPlaylistEngine(EngineOpts{})
		_, err := e.Build(ctx, nil, rainyNight, genres)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("does not block on a full progress channel", func(t *testing.T) {
		e := NewPlaylistEngine(EngineOpts{Covers: &tu.MockCovers{}, RateLimit: 1000})
		progress := make(chan ProgressUpdate)

		done := make(chan error, 1)
		go func() {
			_, err := e.Build(context.Background(), progress, rainyNight, genres)
			done <- err
		}()

		select {
		case err := <-done:
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("expected Build to finish without a reader")
		}
	})
}
