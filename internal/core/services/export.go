package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tablewise/tablewise-cli/internal/core/domain"
	"github.com/tablewise/tablewise-cli/internal/core/ports/driven"
	"github.com/tablewise/tablewise-cli/internal/core/ports/driving"
	"github.com/tablewise/tablewise-cli/internal/logger"
)

// defaultReportFilename is used when the backend did not name the artifact.
const defaultReportFilename = "report.pdf"

// statusTTL is how long a forward status message stays visible.
const statusTTL = 3 * time.Second

// Ensure ExportDispatcher implements the interface.
var _ driving.ExportService = (*ExportDispatcher)(nil)

// ExportDispatcher runs the two best-effort side-flows over a completed
// result's artifact. Both report their own success or failure and neither
// touches the orchestrator's state.
type ExportDispatcher struct {
	client driven.AnalyticsClient

	mu      sync.Mutex
	sending bool
	status  string
	ttl     time.Duration
}

// NewExportDispatcher creates an export dispatcher.
func NewExportDispatcher(client driven.AnalyticsClient) *ExportDispatcher {
	return &ExportDispatcher{client: client, ttl: statusTTL}
}

// Download decodes the result's artifact and writes it under dir,
// using the artifact's filename. Returns the written path.
// Fails closed: a missing artifact or a corrupt payload is an error the
// caller must show, never a silent no-op.
func (d *ExportDispatcher) Download(result *domain.ResultModel, dir string) (string, error) {
	if !result.HasArtifact() {
		return "", domain.ErrNoArtifact
	}

	data, err := base64.StdEncoding.DecodeString(result.Artifact.Base64Content)
	if err != nil {
		return "", fmt.Errorf("decode report artifact: %w", err)
	}

	filename := result.Artifact.Filename
	if filename == "" {
		filename = defaultReportFilename
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create download directory: %w", err)
		}
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	logger.Info("report saved to %s (%d bytes)", path, len(data))
	return path, nil
}

// Forward sends the result's artifact to the notification channel.
//
// Forwarding keeps its own single-in-flight discipline: a second call
// while one is pending returns domain.ErrForwardInFlight without any
// network traffic. The status message self-clears after a few seconds
// regardless of outcome.
func (d *ExportDispatcher) Forward(ctx context.Context, result *domain.ResultModel) error {
	if !result.HasArtifact() {
		return domain.ErrNoArtifact
	}

	d.mu.Lock()
	if d.sending {
		d.mu.Unlock()
		return domain.ErrForwardInFlight
	}
	d.sending = true
	d.status = "Sending report..."
	d.mu.Unlock()

	title := result.Title
	if title == "" {
		title = "Business Report"
	}
	insights := result.Insights
	if insights == "" {
		insights = "Analysis completed"
	}
	artifact := *result.Artifact
	if artifact.Filename == "" {
		artifact.Filename = defaultReportFilename
	}

	err := d.client.ForwardReport(ctx, artifact, title, insights)

	d.mu.Lock()
	d.sending = false
	if err != nil {
		d.status = fmt.Sprintf("Failed to send report: %s", err)
	} else {
		d.status = "Report sent"
	}
	d.mu.Unlock()
	d.scheduleStatusClear()

	if err != nil {
		return fmt.Errorf("forward report: %w", err)
	}
	return nil
}

// Status returns the transient forward status message.
func (d *ExportDispatcher) Status() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Sending reports whether a forward is in flight.
func (d *ExportDispatcher) Sending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sending
}

func (d *ExportDispatcher) scheduleStatusClear() {
	time.AfterFunc(d.ttl, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if !d.sending {
			d.status = ""
		}
	})
}
