// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/tablewise/tablewise-cli/internal/core/domain"
	"github.com/tablewise/tablewise-cli/internal/core/ports/driven"
)

// SubmitCompleted signals that a query submission finished. The session
// holds the outcome; Err carries only submission rejections.
type SubmitCompleted struct {
	Err error
}

// CaptureToggled signals that a capture start or stop finished.
type CaptureToggled struct {
	Phase domain.CapturePhase
	Err   error
}

// HistoryLoaded carries the retained history entries, most recent first.
type HistoryLoaded struct {
	Entries []domain.HistoryEntry
	Err     error
}

// ReportDownloaded signals a report download finished.
type ReportDownloaded struct {
	Path string
	Err  error
}

// ReportForwarded signals a Slack forward finished.
type ReportForwarded struct {
	Err error
}

// ForwardStatusTick asks the view to re-read the self-clearing forward
// status line.
type ForwardStatusTick struct{}

// BackendChecked carries the liveness probe outcome for the banner.
type BackendChecked struct {
	Summary *driven.DashboardSummary
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
