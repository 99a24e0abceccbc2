package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/turntable/internal/deck"
	"github.com/desertthunder/turntable/internal/models"
	"github.com/desertthunder/turntable/internal/repositories"
	"github.com/desertthunder/turntable/internal/rotation"
	"github.com/desertthunder/turntable/internal/services"
	"github.com/desertthunder/turntable/internal/shared"
	"github.com/desertthunder/turntable/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	now        func() time.Time

	db        *sql.DB
	playlists *repositories.PlaylistRepository
	genres    *repositories.GenreRepository
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	// DB is opened from the config on first use when nil.
	DB  *sql.DB
	Now func() time.Time
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		now:        opts.Now,
	}
	if opts.DB != nil {
		r.useDB(opts.DB)
	}
	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, tuiCommand, serveCommand, simulateCommand, deckCommand, genresCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// configure loads the config file named by --config and applies the log level.
//
// A missing file keeps the embedded defaults.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	r.configPath = cmd.String("config")
	if _, err := os.Stat(r.configPath); err == nil {
		config, err := shared.LoadConfig(r.configPath)
		if err != nil {
			return ctx, err
		}
		r.config = config
	} else {
		r.logger.Debug("config file not found, using defaults", "path", r.configPath)
	}

	level, err := shared.ParseLogLevel(r.config.Logging.Level)
	if err != nil {
		r.logger.Warn("ignoring log level", "error", err)
	}
	if cmd.Bool("debug") {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)
	return ctx, nil
}

func (r *Runner) close(context.Context, *cli.Command) error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// SetLogger replaces the logger, e.g. with a file logger while the TUI owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	l.SetLevel(r.logger.GetLevel())
	r.logger = l
}

func (r *Runner) useDB(db *sql.DB) {
	r.db = db
	r.playlists = repositories.NewPlaylistRepository(db)
	r.genres = repositories.NewGenreRepository(db)
}

// openStore opens and migrates the configured database once.
func (r *Runner) openStore() error {
	if r.db != nil {
		return nil
	}
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return err
	}
	r.useDB(db)
	return nil
}

// vinylConfig maps the [vinyl] section onto the rotation machine's config.
func (r *Runner) vinylConfig() (rotation.Config, error) {
	v := r.config.Vinyl
	cfg := rotation.Config{
		Thresholds: rotation.Thresholds{
			Paginate:   v.PaginateDeg,
			ZoneEntry:  v.ZoneEntryDeg,
			Regenerate: v.RegenerateDeg,
		},
		IdleRevolution:        time.Duration(v.IdleRevolutionMs) * time.Millisecond,
		SnapBackPerRevolution: time.Duration(v.SnapBackPerTurnMs) * time.Millisecond,
		SnapBackMinimum:       time.Duration(v.SnapBackMinMs) * time.Millisecond,
		FrameInterval:         time.Duration(v.FrameMs) * time.Millisecond,
		Easing:                v.Easing,
	}
	if err := cfg.Validate(); err != nil {
		return rotation.Config{}, fmt.Errorf("%w: %w", shared.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// engine wires the configured generator and cover finder.
func (r *Runner) engine(ctx context.Context) *tasks.PlaylistEngine {
	gen := r.config.Generator
	opts := tasks.EngineOpts{
		Workers:   gen.Workers,
		RateLimit: gen.RequestsPerSecond,
		Timeout:   time.Duration(gen.TimeoutSeconds) * time.Second,
		Logger:    shared.WithLogger(r.logger, "component", "engine"),
		Now:       r.now,
	}

	if gen.ProxyURL != "" {
		opts.Generator = services.NewAPIService(gen.ProxyURL, r.httpClient)
	}

	if creds := r.config.Credentials.Spotify; creds.Enabled() {
		spotify, err := services.NewSpotifyService(ctx, creds, r.httpClient)
		if err != nil {
			r.logger.Warn("cover lookup disabled", "error", err)
		} else {
			opts.Covers = spotify
		}
	}

	return tasks.NewPlaylistEngine(opts)
}

// mood reads the live weather when configured, else the [mood] default.
func (r *Runner) mood(ctx context.Context) models.Mood {
	fallback, ok := models.ParseWeather(r.config.Mood.Weather)
	if !ok && r.config.Mood.Weather != "" {
		r.logger.Warn("unknown weather in config, using Clear", "weather", r.config.Mood.Weather)
	}

	var source services.WeatherSource = services.StaticWeather(fallback)
	if r.config.Credentials.Weather.APIKey != "" {
		live, err := services.NewOpenWeatherService(r.config.Credentials.Weather, r.httpClient)
		if err != nil {
			r.logger.Warn("weather lookup disabled", "error", err)
		} else {
			source = live
		}
	}

	weather, err := source.Current(ctx)
	if err != nil {
		r.logger.Warn("weather lookup failed, using default", "error", err)
		weather = fallback
	}
	return models.MoodAt(weather, r.now())
}

// selectedGenres returns the stored selection, then the config's, then the defaults.
func (r *Runner) selectedGenres(ctx context.Context) ([]models.Genre, error) {
	stored, err := r.genres.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(stored) > 0 {
		return stored, nil
	}

	configured := models.GenresFromStrings(r.config.Mood.Genres)
	if err := models.ValidateGenres(configured); err != nil || len(configured) == 0 {
		if err != nil {
			r.logger.Warn("ignoring configured genres", "error", err)
		}
		return r.genres.Selected(ctx)
	}
	return configured, nil
}

// newDeck builds a deck backed by the database and restores the last stored cards.
func (r *Runner) newDeck(ctx context.Context) (*deck.Deck, error) {
	if err := r.openStore(); err != nil {
		return nil, err
	}

	selection, err := r.selectedGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load genres: %w", err)
	}

	d := deck.New(deck.Options{
		Builder:   r.engine(ctx),
		Store:     r.playlists,
		Genres:    r.genres,
		Logger:    shared.WithLogger(r.logger, "component", "deck"),
		Mood:      r.mood(ctx),
		Selection: selection,
	})

	restored, err := d.Restore(ctx)
	if err != nil {
		r.logger.Warn("failed to restore deck", "error", err)
	}
	r.logger.Debug("deck ready", "restored", restored, "cards", d.Len(), "mood", d.Mood())
	return d, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
