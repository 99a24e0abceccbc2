package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/desertthunder/turntable/internal/server"
	"github.com/desertthunder/turntable/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve hosts the vinyl until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := r.vinylConfig()
	if err != nil {
		return err
	}

	addr := r.config.Server
	if host := cmd.String("host"); host != "" {
		addr.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		addr.Port = int(port)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d, err := r.newDeck(ctx)
	if err != nil {
		return err
	}
	if d.Len() == 0 {
		if err := d.Load(ctx); err != nil {
			return fmt.Errorf("failed to start initial load: %w", err)
		}
	}

	srv := server.NewVinylServer(server.Options{
		Addr:              addr.Addr(),
		Config:            cfg,
		Deck:              d,
		Logger:            shared.WithLogger(r.logger, "component", "server"),
		RegenerateCurrent: r.config.Vinyl.EnableRegenerate,
		RegenerateAll:     r.config.Vinyl.EnableRegenerateAll,
	})

	err = srv.ListenAndServe(ctx)
	d.Wait()
	if err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	r.logger.Info("server stopped")
	return nil
}
