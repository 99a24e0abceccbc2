package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/turntable/internal/replay"
	"github.com/desertthunder/turntable/internal/rotation"
	"github.com/desertthunder/turntable/internal/shared"
	"github.com/urfave/cli/v3"
)

// Simulate replays a gesture script on a fresh machine and prints what it did.
func (r *Runner) Simulate(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("script")
	if path == "" {
		return fmt.Errorf("%w: script path", shared.ErrMissingArgument)
	}

	script, err := replay.LoadFile(path)
	if err != nil {
		return err
	}

	r.logger.Debug("replaying script", "path", path, "steps", len(script.Steps))
	result := replay.Run(script, shared.WithLogger(r.logger, "component", "replay"))

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}
	return r.printReplay(result, cmd.Bool("steps"))
}

func (r *Runner) printReplay(result replay.Result, steps bool) error {
	name := result.Name
	if name == "" {
		name = "replay"
	}
	r.writePlainHeader(name)

	if steps {
		rows := make([][]string, 0, len(result.Events))
		for _, e := range result.Events {
			release := ""
			if e.Release != nil {
				release = releaseLabel(*e.Release)
			}
			rows = append(rows, []string{
				strconv.Itoa(e.Step),
				e.Action,
				e.At.String(),
				e.Snapshot.Mode.String(),
				formatDegrees(e.Snapshot.Rotation),
				formatDegrees(e.Snapshot.Cumulative),
				release,
				strconv.Itoa(e.Card),
			})
		}
		headers := []string{"#", "Action", "At", "Mode", "Rotation", "Cumulative", "Release", "Card"}
		aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignLeft, alignRight}
		r.writePlain("%s\n", renderTable(headers, rows, aligns))
	}

	if len(result.Releases) == 0 {
		r.writePlain("No releases\n")
	} else {
		rows := make([][]string, 0, len(result.Releases))
		for i, rel := range result.Releases {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				rel.Zone.String(),
				releaseLabel(rel),
				formatDegrees(rel.Cumulative),
				formatDegrees(rel.Rotation),
			})
		}
		headers := []string{"#", "Zone", "Outcome", "Cumulative", "Rotation"}
		aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight}
		r.writePlain("%s\n", renderTable(headers, rows, aligns))
	}

	r.writePlainln("Callbacks")
	r.writePlain("  Advances:           %d %v\n", len(result.Advances), result.Advances)
	r.writePlain("  Regenerate current: %d\n", result.RegenerateCurrent)
	r.writePlain("  Regenerate all:     %d\n", result.RegenerateAll)
	r.writePlain("\nFinal: %s at %s (card %d) after %s\n",
		result.Final.Mode, formatDegrees(result.Final.Rotation), result.Card, result.Elapsed)
	return nil
}

func releaseLabel(rel rotation.Release) string {
	switch {
	case rel.Ignored:
		return "ignored"
	case rel.Cancelled:
		return "cancelled"
	case rel.Effective == rotation.ZonePaginate:
		return fmt.Sprintf("%s %s", rel.Effective, rel.Direction)
	case rel.Effective != rel.Zone:
		return fmt.Sprintf("%s (fallback)", rel.Effective)
	default:
		return rel.Effective.String()
	}
}

func formatDegrees(deg float64) string {
	return strconv.FormatFloat(deg, 'f', 1, 64) + "°"
}
