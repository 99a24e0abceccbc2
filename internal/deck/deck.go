package deck

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/turntable/internal/models"
	"github.com/desertthunder/turntable/internal/rotation"
	"github.com/desertthunder/turntable/internal/shared"
	"github.com/desertthunder/turntable/internal/tasks"
)

// Store persists the last generated cards.
type Store interface {
	LoadDeck(ctx context.Context) ([]models.Playlist, error)
	SaveDeck(ctx context.Context, playlists []models.Playlist) error
}

// GenreStore persists the genre selection.
type GenreStore interface {
	SaveGenres(ctx context.Context, genres []models.Genre) error
}

// Update reports rebuild progress. Done marks the last update of a rebuild.
type Update struct {
	Mode     models.LoadingMode
	Progress *tasks.ProgressUpdate
	Err      error
	Done     bool
}

// Options configures a [Deck].
type Options struct {
	Builder tasks.Builder
	Store   Store      // optional
	Genres  GenreStore // optional
	Logger  *log.Logger
	Mood    models.Mood
	// Selection is the initial genre selection; empty uses models.DefaultGenres.
	Selection []models.Genre
	// Buffer is the capacity of the update channel (default: 32).
	Buffer int
}

// Deck is an ordered set of playlist cards with a current index.
type Deck struct {
	mu       sync.Mutex
	items    []models.Playlist
	index    int
	genres   []models.Genre
	mood     models.Mood
	loading  models.LoadingMode
	builder  tasks.Builder
	store    Store
	genreDB  GenreStore
	logger   *log.Logger
	updates  chan Update
	inflight sync.WaitGroup
}

func New(opts Options) *Deck {
	d := &Deck{
		genres:  slices.Clone(opts.Selection),
		mood:    opts.Mood,
		builder: opts.Builder,
		store:   opts.Store,
		genreDB: opts.Genres,
		logger:  opts.Logger,
	}
	if len(d.genres) == 0 {
		d.genres = slices.Clone(models.DefaultGenres)
	}
	if d.builder == nil {
		d.builder = tasks.NewPlaylistEngine(tasks.EngineOpts{Logger: opts.Logger})
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard)
	}
	buffer := opts.Buffer
	if buffer <= 0 {
		buffer = 32
	}
	d.updates = make(chan Update, buffer)
	return d
}

// Updates delivers rebuild progress and completion.
func (d *Deck) Updates() <-chan Update { return d.updates }

// Wait blocks until every started rebuild has finished.
func (d *Deck) Wait() { d.inflight.Wait() }

// Current returns the card under the needle or the placeholder when empty.
func (d *Deck) Current() models.Playlist {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.items) == 0 {
		return models.EmptyPlaylist
	}
	return d.items[d.index]
}

// Index returns the position of the current card.
func (d *Deck) Index() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.index
}

func (d *Deck) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}

// Items returns a copy of the cards in order.
func (d *Deck) Items() []models.Playlist {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.items)
}

// Genres returns the current selection.
func (d *Deck) Genres() []models.Genre {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.genres)
}

func (d *Deck) Mood() models.Mood {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mood
}

// Loading returns the mode of the running rebuild, or models.LoadingNone.
func (d *Deck) Loading() models.LoadingMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

// CanPaginate reports whether there is a card to page to.
func (d *Deck) CanPaginate() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items) > 0
}

// Advance moves the current index one card in dir, wrapping around.
func (d *Deck) Advance(dir rotation.Direction) models.Playlist {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := len(d.items)
	if n == 0 {
		return models.EmptyPlaylist
	}
	switch dir {
	case rotation.DirectionPrevious:
		d.index = (d.index - 1 + n) % n
	default:
		d.index = (d.index + 1) % n
	}
	return d.items[d.index]
}

// Select makes the card at i current. Out of range indexes are ignored.
func (d *Deck) Select(i int) models.Playlist {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.items) == 0 {
		return models.EmptyPlaylist
	}
	if i >= 0 && i < len(d.items) {
		d.index = i
	}
	return d.items[d.index]
}

// Restore replaces the cards with previously stored ones without rebuilding.
func (d *Deck) Restore(ctx context.Context) (bool, error) {
	if d.store == nil {
		return false, nil
	}
	items, err := d.store.LoadDeck(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to restore deck: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	items = ordered(items, d.genres)
	if len(items) == 0 {
		return false, nil
	}
	d.items = items
	d.index = 0
	return true, nil
}

// Load builds every card for the selection. It is the first rebuild of a session.
func (d *Deck) Load(ctx context.Context) error {
	return d.start(ctx, models.LoadingInitial, func(genres []models.Genre, _ models.Playlist) []models.Genre {
		return genres
	})
}

// RegenerateAll replaces every card.
func (d *Deck) RegenerateAll(ctx context.Context) error {
	return d.start(ctx, models.LoadingAll, func(genres []models.Genre, _ models.Playlist) []models.Genre {
		return genres
	})
}

// RegenerateCurrent replaces the current card. An empty deck is loaded instead.
func (d *Deck) RegenerateCurrent(ctx context.Context) error {
	if d.Len() == 0 {
		return d.Load(ctx)
	}
	return d.start(ctx, models.LoadingSingle, func(_ []models.Genre, current models.Playlist) []models.Genre {
		return []models.Genre{current.Genre}
	})
}

// SetMood records a new mood and rebuilds every card when it changed.
func (d *Deck) SetMood(ctx context.Context, mood models.Mood) (bool, error) {
	d.mu.Lock()
	if d.mood == mood {
		d.mu.Unlock()
		return false, nil
	}
	busy := d.loading != models.LoadingNone
	if !busy {
		d.mood = mood
	}
	d.mu.Unlock()

	if busy {
		return false, shared.ErrDeckBusy
	}
	return true, d.start(ctx, models.LoadingAuto, func(genres []models.Genre, _ models.Playlist) []models.Genre {
		return genres
	})
}

// SetGenres changes the selection. Cards of removed genres are dropped at once
// and cards for added genres are built in the background.
func (d *Deck) SetGenres(ctx context.Context, genres []models.Genre) (models.GenreDiff, error) {
	if err := models.ValidateGenres(genres); err != nil {
		return models.GenreDiff{}, err
	}
	if len(genres) == 0 {
		return models.GenreDiff{}, shared.ErrNoGenres
	}

	d.mu.Lock()
	if d.loading != models.LoadingNone {
		d.mu.Unlock()
		return models.GenreDiff{}, shared.ErrDeckBusy
	}
	diff := models.DiffGenres(d.genres, genres)
	current := d.currentLocked()
	d.genres = slices.Clone(genres)
	d.items = ordered(d.items, d.genres)
	d.index = indexOf(d.items, current.ID)
	d.mu.Unlock()

	if d.genreDB != nil {
		if err := d.genreDB.SaveGenres(ctx, genres); err != nil {
			d.logger.Error("failed to save genres", "error", err)
		}
	}

	if d.Len() == 0 {
		return diff, d.Load(ctx)
	}
	if len(diff.Added) == 0 {
		return diff, nil
	}
	added := diff.Added
	return diff, d.start(ctx, models.LoadingAdded, func([]models.Genre, models.Playlist) []models.Genre {
		return added
	})
}

// Handlers adapts the deck to a gesture machine. Rebuild requests run in the
// background; a busy deck logs and ignores them. Disabled rebuilds are left
// nil so the machine snaps back instead.
func (d *Deck) Handlers(ctx context.Context, regenerateCurrent, regenerateAll bool) rotation.Handlers {
	h := rotation.Handlers{
		OnAdvance:   func(dir rotation.Direction) { d.Advance(dir) },
		CanPaginate: d.CanPaginate,
	}
	if regenerateCurrent {
		h.OnRegenerateCurrent = func() {
			if err := d.RegenerateCurrent(ctx); err != nil {
				d.logger.Warn("regenerate current ignored", "error", err)
			}
		}
	}
	if regenerateAll {
		h.OnRegenerateAll = func() {
			if err := d.RegenerateAll(ctx); err != nil {
				d.logger.Warn("regenerate all ignored", "error", err)
			}
		}
	}
	return h
}

func (d *Deck) currentLocked() models.Playlist {
	if len(d.items) == 0 {
		return models.EmptyPlaylist
	}
	return d.items[d.index]
}

// ordered keeps one card per selected genre, in selection order.
func ordered(items []models.Playlist, genres []models.Genre) []models.Playlist {
	out := make([]models.Playlist, 0, len(genres))
	for _, g := range genres {
		for _, p := range items {
			if p.Genre == g {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func indexOf(items []models.Playlist, id string) int {
	for i, p := range items {
		if p.ID == id {
			return i
		}
	}
	return 0
}
