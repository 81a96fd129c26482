package cli

import (
	"context"

	"github.com/tablewise/tablewise-cli/internal/core/domain"
	"github.com/tablewise/tablewise-cli/internal/core/ports/driving"
)

// fakeAssistant is a controllable assistant double for command tests.
type fakeAssistant struct {
	snap      driving.SessionSnapshot
	entries   []domain.HistoryEntry
	submitErr error
	submitted []string
	replayed  []domain.HistoryEntry
}

func (f *fakeAssistant) Submit(_ context.Context, text string, _ domain.QuerySource) error {
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submitted = append(f.submitted, text)
	return nil
}

func (f *fakeAssistant) Replay(entry domain.HistoryEntry) {
	f.replayed = append(f.replayed, entry)
	f.snap.Transcript = entry.Query
	f.snap.Response = entry.ResponseSummary
	result := entry.Result
	f.snap.Result = &result
}

func (f *fakeAssistant) History(context.Context) ([]domain.HistoryEntry, error) {
	return f.entries, nil
}

func (f *fakeAssistant) Session() driving.SessionSnapshot {
	return f.snap
}

// fakeExport records export calls.
type fakeExport struct {
	downloadPath string
	downloadErr  error
	forwardErr   error
	status       string
	forwarded    int
}

func (f *fakeExport) Download(*domain.ResultModel, string) (string, error) {
	return f.downloadPath, f.downloadErr
}

func (f *fakeExport) Forward(context.Context, *domain.ResultModel) error {
	f.forwarded++
	return f.forwardErr
}

func (f *fakeExport) Status() string {
	return f.status
}

// setupTestServices swaps the injected services for fakes and returns a
// cleanup that restores the previous wiring.
func setupTestServices(assistant *fakeAssistant, export *fakeExport) func() {
	oldAssistant := assistantService
	oldExport := exportService
	assistantService = assistant
	if export != nil {
		exportService = export
	}
	return func() {
		assistantService = oldAssistant
		exportService = oldExport
	}
}

// answeredSnapshot builds a snapshot holding a completed bar answer.
func answeredSnapshot() driving.SessionSnapshot {
	result := &domain.ResultModel{
		Title:      "Revenue",
		ChartType:  domain.ChartBar,
		DataPoints: []domain.DataPoint{{Name: "Jan", Value: 1000}},
		Insights:   "Strong month",
	}
	return driving.SessionSnapshot{
		Transcript: "total revenue",
		Response:   result.Summary(),
		Result:     result,
	}
}
