package termselect

import (
	"context"

	"github.com/google/uuid"
)

// ReplayHost serves a fixed selection over captured output. It stands in for a live
// terminal when the output to inspect was recorded, rendered or produced by a command.
type ReplayHost struct {
	capture   *Capture
	selection Selection
	sessionID string
}

// NewReplayHost creates a host over capture. An empty sessionID is replaced by a random one.
func NewReplayHost(capture *Capture, selection Selection, sessionID string) *ReplayHost {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return &ReplayHost{
		capture:   capture,
		selection: selection,
		sessionID: sessionID,
	}
}

// ActiveSelection returns the fixed selection.
func (h *ReplayHost) ActiveSelection(ctx context.Context) (Selection, error) {
	return h.selection, nil
}

// Lines returns captured lines.
func (h *ReplayHost) Lines(ctx context.Context, firstRow, count int) ([]Line, error) {
	return h.capture.Lines(ctx, firstRow, count)
}

// SessionID returns the session identifier given at construction.
func (h *ReplayHost) SessionID(ctx context.Context) (string, error) {
	return h.sessionID, nil
}
