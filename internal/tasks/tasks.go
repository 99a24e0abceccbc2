package tasks

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/turntable/internal/models"
	"github.com/desertthunder/turntable/internal/services"
	"github.com/desertthunder/turntable/internal/shared"
)

// BuildResult is the output of [PlaylistEngine.Build].
type BuildResult struct {
	BatchID     string
	Playlists   []models.Playlist
	Fallbacks   int // playlists titled by the fallback generator
	CoverMisses int // playlists showing a placeholder cover
}

// Builder is what the deck needs from an engine.
type Builder interface {
	Build(ctx context.Context, progress chan<- ProgressUpdate, mood models.Mood, genres []models.Genre) (*BuildResult, error)
}

// EngineOpts configures a [PlaylistEngine].
type EngineOpts struct {
	Generator services.Generator   // nil uses the fallback generator only
	Covers    services.CoverFinder // nil uses placeholder covers only
	Workers   int                  // cover lookups in flight (default: 3, max: 8)
	RateLimit float64              // cover lookups per second (default: 5)
	Timeout   time.Duration        // idea generation timeout (default: 10s)
	Logger    *log.Logger
	Now       func() time.Time
}

// PlaylistEngine builds playlists for a mood.
type PlaylistEngine struct {
	generator services.Generator
	fallback  services.Generator
	covers    services.CoverFinder
	workers   int
	rateLimit float64
	timeout   time.Duration
	logger    *log.Logger
	now       func() time.Time
}

func NewPlaylistEngine(opts EngineOpts) *PlaylistEngine {
	e := &PlaylistEngine{
		generator: opts.Generator,
		fallback:  services.FallbackGenerator{},
		covers:    opts.Covers,
		workers:   opts.Workers,
		rateLimit: opts.RateLimit,
		timeout:   opts.Timeout,
		logger:    opts.Logger,
		now:       opts.Now,
	}

	if e.workers <= 0 {
		e.workers = 3
	}
	if e.workers > 8 {
		e.workers = 8
	}
	if e.rateLimit <= 0 {
		e.rateLimit = 5
	}
	if e.timeout <= 0 {
		e.timeout = 10 * time.Second
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// sendProgress sends a progress update through the channel without blocking.
func (e *PlaylistEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Build generates one playlist per genre.
func (e *PlaylistEngine) Build(ctx context.Context, progress chan<- ProgressUpdate, mood models.Mood, genres []models.Genre) (*BuildResult, error) {
	if len(genres) == 0 {
		return nil, shared.ErrNoGenres
	}

	ideas, fallbacks := e.ideas(ctx, progress, mood, genres)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &BuildResult{BatchID: shared.GenerateID(), Fallbacks: fallbacks}
	covers, misses, err := e.resolveCovers(ctx, progress, ideas)
	if err != nil {
		return nil, err
	}
	result.CoverMisses = misses

	created := e.now()
	result.Playlists = make([]models.Playlist, len(ideas))
	for i, idea := range ideas {
		result.Playlists[i] = models.Playlist{
			ID:        shared.GenerateID(),
			BatchID:   result.BatchID,
			Genre:     idea.Genre,
			Title:     idea.Title,
			Query:     idea.Query,
			ImageURL:  covers[i],
			Mood:      mood,
			CreatedAt: created,
		}
	}

	e.sendProgress(progress, doneUpdate(len(ideas), mood))
	return result, nil
}

// ideas returns one idea per genre in selection order and how many came from the fallback.
func (e *PlaylistEngine) ideas(ctx context.Context, progress chan<- ProgressUpdate, mood models.Mood, genres []models.Genre) ([]services.Idea, int) {
	byGenre := make(map[models.Genre]services.Idea, len(genres))

	if e.generator != nil {
		e.sendProgress(progress, ideasUpdate(len(genres), e.generator.Name()))

		genCtx, cancel := context.WithTimeout(ctx, e.timeout)
		generated, err := e.generator.Generate(genCtx, mood, genres)
		cancel()

		if err != nil {
			e.logger.Warn("generator failed, using fallback", "generator", e.generator.Name(), "error", err)
			e.sendProgress(progress, fallbackUpdate(len(genres), err))
		}
		for _, idea := range generated {
			if _, dup := byGenre[idea.Genre]; !dup {
				byGenre[idea.Genre] = idea
			}
		}
	}

	var missing []models.Genre
	for _, g := range genres {
		if _, ok := byGenre[g]; !ok {
			missing = append(missing, g)
		}
	}
	if len(missing) > 0 {
		fallback, _ := e.fallback.Generate(ctx, mood, missing)
		for _, idea := range fallback {
			byGenre[idea.Genre] = idea
		}
	}

	ideas := make([]services.Idea, len(genres))
	for i, g := range genres {
		ideas[i] = byGenre[g]
	}
	return ideas, len(missing)
}
