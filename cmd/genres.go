package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/turntable/internal/models"
	"github.com/desertthunder/turntable/internal/shared"
	"github.com/urfave/cli/v3"
)

// GenresList prints every known genre and marks the selected ones.
func (r *Runner) GenresList(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStore(); err != nil {
		return err
	}

	selected, err := r.selectedGenres(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"selected": selected,
			"all":      models.AllGenres,
		}, true)
	}

	rows := make([][]string, 0, len(models.AllGenres))
	for _, g := range models.AllGenres {
		marker := ""
		if i := slices.Index(selected, g); i >= 0 {
			marker = fmt.Sprintf("%d", i+1)
		}
		rows = append(rows, []string{string(g), marker})
	}
	r.writePlain("%s\n", renderTable([]string{"Genre", "Selected"}, rows, []columnAlignment{alignLeft, alignRight}))
	return r.writePlain("%d of %d selected (max %d)\n", len(selected), len(models.AllGenres), models.MaxSelectedGenres)
}

// GenresSet replaces the selection, then builds cards for any added genres.
func (r *Runner) GenresSet(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("%w: at least one genre", shared.ErrMissingArgument)
	}

	genres := models.GenresFromStrings(args)
	if err := models.ValidateGenres(genres); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidArgument, err)
	}

	d, err := r.newDeck(ctx)
	if err != nil {
		return err
	}

	wasEmpty := d.Len() == 0
	diff, err := d.SetGenres(ctx, genres)
	if err != nil {
		return err
	}
	r.logger.Info("genres updated", "added", diff.Added, "removed", diff.Removed)

	if wasEmpty || len(diff.Added) > 0 {
		if err := r.drain(ctx, d); err != nil {
			return err
		}
	}

	return r.writePlain("✓ Selected %s (%d cards)\n", joinGenres(genres), d.Len())
}

// GenresReset clears the stored selection so the defaults apply again.
func (r *Runner) GenresReset(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStore(); err != nil {
		return err
	}
	if err := r.genres.Reset(ctx); err != nil {
		return err
	}

	selected, err := r.selectedGenres(ctx)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Reset genres to %s\n", joinGenres(selected))
}

func joinGenres(genres []models.Genre) string {
	parts := make([]string, len(genres))
	for i, g := range genres {
		parts[i] = string(g)
	}
	return strings.Join(parts, ", ")
}
