package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/desertthunder/turntable/internal/deck"
	"github.com/desertthunder/turntable/internal/formatter"
	"github.com/desertthunder/turntable/internal/models"
	"github.com/desertthunder/turntable/internal/shared"
	"github.com/urfave/cli/v3"
)

// Deck prints the stored deck.
func (r *Runner) Deck(ctx context.Context, cmd *cli.Command) error {
	d, err := r.newDeck(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"mood":   d.Mood(),
			"genres": d.Genres(),
			"index":  d.Index(),
			"items":  d.Items(),
		}, true)
	}

	r.printDeck(d)
	return nil
}

// DeckRegenerate rebuilds every card and waits for the rebuild to finish.
func (r *Runner) DeckRegenerate(ctx context.Context, cmd *cli.Command) error {
	d, err := r.newDeck(ctx)
	if err != nil {
		return err
	}

	start := d.RegenerateAll
	if d.Len() == 0 {
		start = d.Load
	}
	if err := start(ctx); err != nil {
		return err
	}

	if err := r.drain(ctx, d); err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(d.Items(), true)
	}
	r.printDeck(d)
	return nil
}

// drain logs rebuild progress until the final update.
func (r *Runner) drain(ctx context.Context, d *deck.Deck) error {
	defer d.Wait()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case u := <-d.Updates():
			if u.Progress != nil {
				p := u.Progress
				r.logger.Info(p.Message, "phase", p.Phase, "step", p.Step, "total", p.Total)
			}
			if !u.Done {
				continue
			}
			if u.Err != nil {
				return fmt.Errorf("rebuild failed: %w", u.Err)
			}
			return nil
		}
	}
}

// DeckExport writes the stored deck in the requested format.
func (r *Runner) DeckExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidArgument, err)
	}

	d, err := r.newDeck(ctx)
	if err != nil {
		return err
	}
	if d.Len() == 0 {
		return fmt.Errorf("%w: run `turntable deck regenerate` first", shared.ErrEmptyDeck)
	}

	export := &formatter.Export{
		Mood:       d.Mood(),
		Genres:     d.Genres(),
		Playlists:  d.Items(),
		ExportedAt: r.now(),
	}
	output := cmd.String("output")

	if format == formatter.FormatMarkdown && (output != "" || cmd.Bool("covers")) {
		if output == "" {
			output = "deck"
		}
		result, err := formatter.WriteMarkdownExport(ctx, export, output, cmd.Bool("covers"), r.httpClient)
		if err != nil {
			return err
		}
		if result.Failed > 0 {
			r.logger.Warn("some covers could not be downloaded", "failed", result.Failed)
		}
		return r.writePlain("✓ Exported %d cards to %s (%d covers)\n",
			len(export.Playlists), filepath.Join(result.Directory, "README.md"), result.Covers)
	}

	if output != "" {
		if err := formatter.WriteExport(export, format, output); err != nil {
			return err
		}
		return r.writePlain("✓ Exported %d cards to %s\n", len(export.Playlists), output)
	}

	data, err := formatter.Render(export, format)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) printDeck(d *deck.Deck) {
	r.writePlainHeader(d.Mood().String())

	items := d.Items()
	if len(items) == 0 {
		r.writePlain("%s\n", models.EmptyPlaylist.Title)
		return
	}

	rows := make([][]string, 0, len(items))
	for i, p := range items {
		marker := ""
		if i == d.Index() {
			marker = "▶"
		}
		rows = append(rows, []string{marker, strconv.Itoa(i + 1), string(p.Genre), p.Title, p.Query})
	}
	r.writePlain("%s\n", renderTable(
		[]string{"", "#", "Genre", "Title", "Search"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	))
}
