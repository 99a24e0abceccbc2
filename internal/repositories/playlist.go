package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/turntable/internal/models"
	"github.com/desertthunder/turntable/internal/shared"
)

const playlistColumns = `id, batch_id, position, genre, title, query, image_url, weather, time_of_day, created_at`

// PlaylistRepository implements models.Repository[*models.Playlist] for the stored deck.
//
// Rows keep their deck position; List returns them in that order.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create appends a playlist to the end of the stored deck, generating an ID when unset
func (r *PlaylistRepository) Create(ctx context.Context, p *models.Playlist) error {
	if p.ID == "" {
		p.ID = shared.GenerateID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var position int
	row := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM deck_playlists`)
	if err := row.Scan(&position); err != nil {
		return fmt.Errorf("failed to get next position: %w", err)
	}

	if err := insertPlaylist(ctx, r.db, p, position); err != nil {
		return err
	}
	return nil
}

// Get retrieves a playlist by ID
func (r *PlaylistRepository) Get(ctx context.Context, id string) (*models.Playlist, error) {
	query := `SELECT ` + playlistColumns + ` FROM deck_playlists WHERE id = ?`

	p, err := scanPlaylist(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("playlist %s: %w", id, shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}
	return p, nil
}

// Delete removes a playlist by ID
func (r *PlaylistRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM deck_playlists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	return checkAffected(result, "playlist "+id)
}

// List retrieves the stored deck in position order
func (r *PlaylistRepository) List(ctx context.Context) ([]*models.Playlist, error) {
	query := `SELECT ` + playlistColumns + ` FROM deck_playlists ORDER BY position ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.Playlist
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return playlists, nil
}

// ReplaceAll swaps the stored deck for playlists in one transaction
func (r *PlaylistRepository) ReplaceAll(ctx context.Context, playlists []models.Playlist) error {
	for i := range playlists {
		if err := playlists[i].Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM deck_playlists`); err != nil {
			return fmt.Errorf("failed to clear deck: %w", err)
		}
		for i := range playlists {
			if err := insertPlaylist(ctx, tx, &playlists[i], i); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadDeck returns the stored deck by value for deck.Store.
func (r *PlaylistRepository) LoadDeck(ctx context.Context) ([]models.Playlist, error) {
	stored, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Playlist, len(stored))
	for i, p := range stored {
		out[i] = *p
	}
	return out, nil
}

// SaveDeck is [PlaylistRepository.ReplaceAll] for deck.Store.
func (r *PlaylistRepository) SaveDeck(ctx context.Context, playlists []models.Playlist) error {
	return r.ReplaceAll(ctx, playlists)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type scanner interface {
	Scan(dest ...any) error
}

func insertPlaylist(ctx context.Context, db execer, p *models.Playlist, position int) error {
	query := `INSERT INTO deck_playlists (` + playlistColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, query,
		p.ID,
		p.BatchID,
		position,
		string(p.Genre),
		p.Title,
		p.Query,
		p.ImageURL,
		string(p.Mood.Weather),
		string(p.Mood.TimeOfDay),
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}
	return nil
}

// scanPlaylist scans a row from [sql.Row] or [sql.Rows] into a [models.Playlist]
func scanPlaylist(row scanner) (*models.Playlist, error) {
	var (
		p         models.Playlist
		position  int
		genre     string
		weather   string
		timeOfDay string
		createdAt sql.NullTime
	)

	err := row.Scan(&p.ID, &p.BatchID, &position, &genre, &p.Title, &p.Query, &p.ImageURL, &weather, &timeOfDay, &createdAt)
	if err != nil {
		return nil, err
	}

	p.Genre = models.Genre(genre)
	p.Mood.Weather, _ = models.ParseWeather(weather)
	p.Mood.TimeOfDay, _ = models.ParseTimeOfDay(timeOfDay)
	if createdAt.Valid {
		p.CreatedAt = createdAt.Time
	}
	return &p, nil
}

var _ models.Repository[*models.Playlist] = (*PlaylistRepository)(nil)
