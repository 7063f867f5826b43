package filter

import (
	"fmt"

	"github.com/desertthunder/cleanify/internal/models"
)

// ProgressUpdate represents a progress event during a batch run.
//
// Used to send real-time updates to the CLI or server layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Tracks completed so far
	Total   int    // Total tracks in the run
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	StartBatch Phase = iota
	CheckTrack
	FinishRun
)

func (p Phase) String() string {
	switch p {
	case StartBatch:
		return "start_batch"
	case CheckTrack:
		return "check_track"
	case FinishRun:
		return "finish_run"
	default:
		return ""
	}
}

func startBatchUpdate(step, total, batch, size int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   StartBatch,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Checking batch %d (%d tracks)...", batch, size),
	}
}

func checkTrackUpdate(step, total int, track models.Track, v Verdict) ProgressUpdate {
	mark := "✓"
	if v.ShouldBlock {
		mark = "✗"
	}
	return ProgressUpdate{
		Phase:   CheckTrack,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s", step, total, mark, track.Label()),
		Data:    v,
	}
}

func finishRunUpdate(total, blocked int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FinishRun,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Checked %d tracks, %d blocked", total, blocked),
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
