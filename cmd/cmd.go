// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
	}
}

// setupCommand handles setup operations for configuration and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write the example configuration to --config",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for the interactive vinyl.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive vinyl (drag with the mouse to spin)",
		Action:  r.TUI,
	}
}

// serveCommand hosts the vinyl over HTTP and websockets.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the vinyl over HTTP and websockets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (default from config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to bind (default from config)",
			},
		},
		Action: r.Serve,
	}
}

// simulateCommand replays gesture scripts.
func simulateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "Replay a YAML gesture script against the vinyl",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "script",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "steps",
				Usage: "Print every step, not only releases",
			},
		},
		Action: r.Simulate,
	}
}

// deckCommand inspects and rebuilds the card deck.
func deckCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "deck",
		Usage: "Show the current card deck",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Deck,
		Commands: []*cli.Command{
			{
				Name:  "regenerate",
				Usage: "Rebuild every card for the current mood",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.DeckRegenerate,
			},
			{
				Name:  "export",
				Usage: "Export the deck as csv, md, txt or json",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "csv, md, txt or json",
						Value:   "md",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file, or directory for md (default: stdout, or ./deck for md)",
					},
					&cli.BoolFlag{
						Name:  "covers",
						Usage: "Download cover images next to a Markdown export",
					},
				},
				Action: r.DeckExport,
			},
		},
	}
}

// genresCommand manages the genre selection.
func genresCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "genres",
		Usage: "Manage the selected genres",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List known genres and mark the selected ones",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.GenresList,
			},
			{
				Name:      "set",
				Usage:     "Replace the selection and rebuild the affected cards",
				ArgsUsage: "<genre>...",
				Action:    r.GenresSet,
			},
			{
				Name:   "reset",
				Usage:  "Restore the default selection",
				Action: r.GenresReset,
			},
		},
	}
}
