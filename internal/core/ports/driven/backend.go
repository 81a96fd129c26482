package driven

import (
	"context"

	"github.com/tablewise/tablewise-cli/internal/core/domain"
)

// DashboardSummary is the analytics backend's high-level dataset overview,
// returned by the liveness endpoint.
type DashboardSummary struct {
	// TotalRevenue is the dataset-wide revenue total.
	TotalRevenue float64

	// Branches lists the known branch names.
	Branches []string

	// Categories lists the known item categories.
	Categories []string

	// Rows is the number of records in the dataset.
	Rows int
}

// ReportInfo describes the most recent report held by the backend.
type ReportInfo struct {
	Available bool
	Title     string
	Filename  string
	SizeBytes int
}

// AnalyticsClient is the remote analytics backend.
// Every method is a single request/response call; failures are returned as
// errors and recovered by the caller, never retried here.
type AnalyticsClient interface {
	// CheckHealth probes the backend. A non-success response returns
	// domain.ErrBackendUnavailable; non-fatal, surfaced as a banner.
	CheckHealth(ctx context.Context) error

	// DashboardData returns the dataset overview from the liveness endpoint.
	DashboardData(ctx context.Context) (*DashboardSummary, error)

	// Transcribe submits buffered audio and returns the transcript text.
	Transcribe(ctx context.Context, audio []byte) (string, error)

	// Query submits a natural-language query and returns the parsed result.
	Query(ctx context.Context, query string) (*domain.ResultModel, error)

	// ForwardReport sends a report artifact to the notification channel.
	ForwardReport(ctx context.Context, artifact domain.ExportArtifact, title, insights string) error

	// Synthesize converts reply text to spoken audio bytes.
	Synthesize(ctx context.Context, text, language string) ([]byte, error)

	// LastReportInfo describes the most recent report held by the backend.
	LastReportInfo(ctx context.Context) (*ReportInfo, error)
}
