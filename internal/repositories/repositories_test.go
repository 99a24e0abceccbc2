package repositories

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/desertthunder/turntable/internal/models"
	"github.com/desertthunder/turntable/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func testPlaylist(id string, genre models.Genre) models.Playlist {
	return models.Playlist{
		ID:        id,
		BatchID:   "batch-1",
		Genre:     genre,
		Title:     "Rainy night " + string(genre),
		Query:     string(genre) + " Rainy night",
		ImageURL:  "https://picsum.photos/seed/1/400/400",
		Mood:      models.Mood{Weather: models.WeatherRain, TimeOfDay: models.Night},
		CreatedAt: time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC),
	}
}

func TestPlaylistRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))
		p := testPlaylist("", "Jazz")

		if err := repo.Create(ctx, &p); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}
		if p.ID == "" {
			t.Error("playlist ID should be set after creation")
		}
	})

	t.Run("Create rejects invalid playlists", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))
		p := models.Playlist{ID: "x", Genre: "Jazz"}

		if err := repo.Create(ctx, &p); err == nil {
			t.Error("expected a validation error")
		}
	})

	t.Run("Get", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))
		p := testPlaylist("p1", "City Pop")
		if err := repo.Create(ctx, &p); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		got, err := repo.Get(ctx, "p1")
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}
		if got.Title != p.Title {
			t.Errorf("expected title %s, got %s", p.Title, got.Title)
		}
		if got.Mood != p.Mood {
			t.Errorf("expected mood %v, got %v", p.Mood, got.Mood)
		}
		if got.Genre != "City Pop" {
			t.Errorf("expected City Pop, got %s", got.Genre)
		}
	})

	t.Run("Get missing playlist", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))
		if _, err := repo.Get(ctx, "nope"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))
		p := testPlaylist("p1", "Jazz")
		if err := repo.Create(ctx, &p); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		if err := repo.Delete(ctx, "p1"); err != nil {
			t.Fatalf("failed to delete playlist: %v", err)
		}
		if err := repo.Delete(ctx, "p1"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("List keeps creation order", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))
		for _, g := range []models.Genre{"Piano", "Jazz", "EDM"} {
			p := testPlaylist("", g)
			if err := repo.Create(ctx, &p); err != nil {
				t.Fatalf("failed to create playlist: %v", err)
			}
		}

		list, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("expected 3 playlists, got %d", len(list))
		}
		if list[0].Genre != "Piano" || list[2].Genre != "EDM" {
			t.Errorf("expected Piano first and EDM last, got %s and %s", list[0].Genre, list[2].Genre)
		}
	})

	t.Run("SaveDeck replaces the stored deck", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))

		first := []models.Playlist{testPlaylist("a", "Jazz"), testPlaylist("b", "Piano")}
		if err := repo.SaveDeck(ctx, first); err != nil {
			t.Fatalf("failed to save deck: %v", err)
		}

		second := []models.Playlist{testPlaylist("c", "House"), testPlaylist("d", "Techno"), testPlaylist("e", "EDM")}
		if err := repo.SaveDeck(ctx, second); err != nil {
			t.Fatalf("failed to save deck: %v", err)
		}

		deck, err := repo.LoadDeck(ctx)
		if err != nil {
			t.Fatalf("failed to load deck: %v", err)
		}
		var ids []string
		for _, p := range deck {
			ids = append(ids, p.ID)
		}
		if !slices.Equal(ids, []string{"c", "d", "e"}) {
			t.Errorf("expected [c d e], got %v", ids)
		}
	})

	t.Run("ReplaceAll leaves the deck untouched on invalid input", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))
		if err := repo.ReplaceAll(ctx, []models.Playlist{testPlaylist("a", "Jazz")}); err != nil {
			t.Fatalf("failed to save deck: %v", err)
		}

		bad := []models.Playlist{testPlaylist("b", "Piano"), {ID: "c"}}
		if err := repo.ReplaceAll(ctx, bad); err == nil {
			t.Fatal("expected a validation error")
		}

		deck, _ := repo.LoadDeck(ctx)
		if len(deck) != 1 || deck[0].ID != "a" {
			t.Errorf("expected the previous deck, got %+v", deck)
		}
	})

	t.Run("ReplaceAll rolls back on duplicate ids", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t))
		if err := repo.ReplaceAll(ctx, []models.Playlist{testPlaylist("a", "Jazz")}); err != nil {
			t.Fatalf("failed to save deck: %v", err)
		}

		dup := []models.Playlist{testPlaylist("b", "Piano"), testPlaylist("b", "House")}
		if err := repo.ReplaceAll(ctx, dup); err == nil {
			t.Fatal("expected an insert error")
		}

		deck, _ := repo.LoadDeck(ctx)
		if len(deck) != 1 || deck[0].ID != "a" {
			t.Errorf("expected the previous deck, got %+v", deck)
		}
	})
}

func TestGenreRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Selected defaults when nothing is stored", func(t *testing.T) {
		repo := NewGenreRepository(setupTestDB(t))

		got, err := repo.Selected(ctx)
		if err != nil {
			t.Fatalf("failed to get genres: %v", err)
		}
		if !slices.Equal(got, models.DefaultGenres) {
			t.Errorf("expected defaults, got %v", got)
		}
	})

	t.Run("SaveGenres keeps order", func(t *testing.T) {
		repo := NewGenreRepository(setupTestDB(t))
		want := []models.Genre{"Piano", "Jazz", "City Jazz"}

		if err := repo.SaveGenres(ctx, want); err != nil {
			t.Fatalf("failed to save genres: %v", err)
		}
		got, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list genres: %v", err)
		}
		if !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("SaveGenres rejects unknown genres", func(t *testing.T) {
		repo := NewGenreRepository(setupTestDB(t))
		err := repo.SaveGenres(ctx, []models.Genre{"Polka"})
		if !errors.Is(err, models.ErrUnknownGenre) {
			t.Errorf("expected ErrUnknownGenre, got %v", err)
		}
	})

	t.Run("Reset restores defaults", func(t *testing.T) {
		repo := NewGenreRepository(setupTestDB(t))
		if err := repo.SaveGenres(ctx, []models.Genre{"EDM"}); err != nil {
			t.Fatalf("failed to save genres: %v", err)
		}
		if err := repo.Reset(ctx); err != nil {
			t.Fatalf("failed to reset genres: %v", err)
		}

		got, _ := repo.Selected(ctx)
		if !slices.Equal(got, models.DefaultGenres) {
			t.Errorf("expected defaults, got %v", got)
		}
	})
}
