package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/desertthunder/turntable/internal/models"
)

// GenreRepository stores the listener's genre selection in display order.
type GenreRepository struct {
	db *sql.DB
}

// NewGenreRepository creates a new GenreRepository with the given database connection
func NewGenreRepository(db *sql.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// List returns the stored selection, or nil when nothing was saved yet
func (r *GenreRepository) List(ctx context.Context) ([]models.Genre, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT genre FROM selected_genres ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	var genres []models.Genre
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, models.Genre(g))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return genres, nil
}

// Selected returns the stored selection or models.DefaultGenres when empty
func (r *GenreRepository) Selected(ctx context.Context) ([]models.Genre, error) {
	genres, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(genres) == 0 {
		return slices.Clone(models.DefaultGenres), nil
	}
	return genres, nil
}

// SaveGenres validates and replaces the stored selection
func (r *GenreRepository) SaveGenres(ctx context.Context, genres []models.Genre) error {
	if err := models.ValidateGenres(genres); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM selected_genres`); err != nil {
			return fmt.Errorf("failed to clear genres: %w", err)
		}
		for i, g := range genres {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO selected_genres (position, genre, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
				i, string(g),
			)
			if err != nil {
				return fmt.Errorf("failed to insert genre: %w", err)
			}
		}
		return nil
	})
}

// Reset clears the stored selection so [GenreRepository.Selected] returns the defaults
func (r *GenreRepository) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM selected_genres`); err != nil {
		return fmt.Errorf("failed to reset genres: %w", err)
	}
	return nil
}
