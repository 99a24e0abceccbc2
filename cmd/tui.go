package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/turntable/internal/shared"
	"github.com/desertthunder/turntable/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive vinyl.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	cfg, err := r.vinylConfig()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	path := r.config.Logging.File
	if path == "" {
		path = "./tmp/turntable-tui.log"
	}
	fileLogger, f, err := shared.NewFileLogger(path)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer f.Close()
	r.SetLogger(fileLogger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d, err := r.newDeck(ctx)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, ui.Options{
		Deck:              d,
		Config:            cfg,
		RegenerateCurrent: r.config.Vinyl.EnableRegenerate,
		RegenerateAll:     r.config.Vinyl.EnableRegenerateAll,
		Logger:            shared.WithLogger(r.logger, "component", "ui"),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	// Let a running rebuild save before the database closes.
	cancel()
	d.Wait()
	return nil
}
