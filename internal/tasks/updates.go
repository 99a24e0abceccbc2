package tasks

import (
	"fmt"

	"github.com/desertthunder/turntable/internal/models"
)

// ProgressUpdate is one step of a build.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase        // Build phase
	Step    int          // Current step number within phase
	Total   int          // Total steps in this phase
	Message string       // Human-readable message for display
	Genre   models.Genre // Genre the step worked on, if any
	Err     error        // Non-fatal error of the step
}

// Phase names a stage of a build.
type Phase string

const (
	PhaseIdeas    Phase = "ideas"
	PhaseFallback Phase = "fallback"
	PhaseCovers   Phase = "covers"
	PhaseDone     Phase = "done"
)

func (p Phase) String() string { return string(p) }

func ideasUpdate(total int, generator string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseIdeas,
		Total:   total,
		Message: fmt.Sprintf("Asking %s...", generator),
	}
}

func fallbackUpdate(total int, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseFallback,
		Total:   total,
		Message: "Generator unavailable, using fallback titles",
		Err:     err,
	}
}

func coverUpdate(step, total int, genre models.Genre, err error) ProgressUpdate {
	msg := fmt.Sprintf("[%d/%d] Cover for %s", step, total, genre)
	if err != nil {
		msg = fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, genre, err)
	}
	return ProgressUpdate{
		Phase:   PhaseCovers,
		Step:    step,
		Total:   total,
		Message: msg,
		Genre:   genre,
		Err:     err,
	}
}

func doneUpdate(total int, mood models.Mood) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseDone,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Built %d playlists for a %s", total, mood),
	}
}
