package driving

import (
	"context"

	"github.com/tablewise/tablewise-cli/internal/core/domain"
)

// SessionSnapshot is a point-in-time copy of the transient session state.
// It is created on demand for display; mutating it has no effect.
type SessionSnapshot struct {
	// Transcript is the current query text (typed, transcribed, or the
	// capture sentinel while the microphone is live).
	Transcript string

	// Response is the current response line (provisional, summary, or error).
	Response string

	// Result is the current chart payload, nil before the first success.
	Result *domain.ResultModel

	// TypedInput is the pending typed-input buffer. Cleared by the
	// orchestrator after a successful submission.
	TypedInput string

	// Loading reports whether a submission is in flight.
	Loading bool

	// CapturePhase is the microphone lifecycle phase.
	CapturePhase domain.CapturePhase
}

// AssistantService is the single authoritative path for turning a query into
// a displayed result and a history entry.
type AssistantService interface {
	// Submit runs one query through the backend. Rejections (empty text,
	// capture sentinel, submission already in flight) return the matching
	// domain error without entering the loading state; backend failures are
	// absorbed into the session's response line and return nil.
	Submit(ctx context.Context, text string, source domain.QuerySource) error

	// Replay restores a past entry into the session. Pure and synchronous:
	// no network call, no history mutation.
	Replay(entry domain.HistoryEntry)

	// History returns the identity's retained entries, most recent first.
	History(ctx context.Context) ([]domain.HistoryEntry, error)

	// Session returns a snapshot of the transient session state.
	Session() SessionSnapshot
}

// CaptureService manages the microphone capture lifecycle.
type CaptureService interface {
	// Start begins a capture session. A no-op while recording or finalizing.
	Start(ctx context.Context) error

	// Stop releases the device, transcribes the buffered audio, and
	// auto-submits a clean transcript through the assistant.
	Stop(ctx context.Context) error

	// Phase returns the current capture phase.
	Phase() domain.CapturePhase
}

// ExportService runs the two best-effort side-flows over a completed
// result's artifact. Neither affects the assistant's state.
type ExportService interface {
	// Download decodes the artifact and saves it under dir.
	// Returns the written path.
	Download(result *domain.ResultModel, dir string) (string, error)

	// Forward sends the artifact to the notification channel. A second
	// forward while one is in flight returns domain.ErrForwardInFlight.
	Forward(ctx context.Context, result *domain.ResultModel) error

	// Status returns the transient forward status message. It self-clears
	// a few seconds after each forward completes.
	Status() string
}
