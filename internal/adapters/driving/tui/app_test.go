package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablewise/tablewise-cli/internal/adapters/driving/tui/messages"
	"github.com/tablewise/tablewise-cli/internal/core/domain"
	"github.com/tablewise/tablewise-cli/internal/core/ports/driving"
)

// fakeAssistant is a minimal assistant double backed by a snapshot.
type fakeAssistant struct {
	snap      driving.SessionSnapshot
	submitted []string
	replayed  []domain.HistoryEntry
	entries   []domain.HistoryEntry
}

func (f *fakeAssistant) Submit(_ context.Context, text string, _ domain.QuerySource) error {
	f.submitted = append(f.submitted, text)
	return nil
}

func (f *fakeAssistant) Replay(entry domain.HistoryEntry) {
	f.replayed = append(f.replayed, entry)
	f.snap.Transcript = entry.Query
	f.snap.Response = entry.ResponseSummary
}

func (f *fakeAssistant) History(context.Context) ([]domain.HistoryEntry, error) {
	return f.entries, nil
}

func (f *fakeAssistant) Session() driving.SessionSnapshot {
	return f.snap
}

func newTestApp(t *testing.T, assistant *fakeAssistant) *App {
	t.Helper()
	app, err := NewApp(&Ports{Assistant: assistant})
	require.NoError(t, err)
	return app
}

func TestNewAppRequiresAssistant(t *testing.T) {
	_, err := NewApp(nil)
	require.Error(t, err)

	_, err = NewApp(&Ports{})
	require.Error(t, err)
}

func TestEnterSubmitsTypedInput(t *testing.T) {
	assistant := &fakeAssistant{}
	app := newTestApp(t, assistant)
	app.input.SetValue("total revenue")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	// Drain the batch: one of the produced messages is the submission.
	drainCmd(t, cmd)
	assert.Equal(t, []string{"total revenue"}, assistant.submitted)
}

func TestEnterWithEmptyInputIsNoOp(t *testing.T) {
	assistant := &fakeAssistant{}
	app := newTestApp(t, assistant)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, assistant.submitted)
}

func TestHistoryToggleAndReplay(t *testing.T) {
	assistant := &fakeAssistant{
		entries: []domain.HistoryEntry{
			{ID: "a", Query: "newest", ResponseSummary: "Newest (bar chart with 1 data points)"},
			{ID: "b", Query: "older", ResponseSummary: "Older (pie chart with 2 data points)"},
		},
	}
	app := newTestApp(t, assistant)

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	app = model.(*App)
	require.NotNil(t, cmd)
	assert.True(t, app.historyOpen)

	model, _ = app.Update(cmd())
	app = model.(*App)
	require.Len(t, app.historyEntries, 2)

	// Navigate to the second entry and replay it.
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app = model.(*App)
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)

	require.Len(t, assistant.replayed, 1)
	assert.Equal(t, "older", assistant.replayed[0].Query)
	assert.False(t, app.historyOpen, "replay closes the panel")
}

func TestEscClosesHistoryBeforeQuitting(t *testing.T) {
	app := newTestApp(t, &fakeAssistant{})
	app.historyOpen = true

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)
	assert.False(t, app.historyOpen)
	assert.Nil(t, cmd)

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewShowsConversation(t *testing.T) {
	assistant := &fakeAssistant{
		snap: driving.SessionSnapshot{
			Transcript: "total revenue",
			Response:   "Revenue (bar chart with 1 data points)",
			Result: &domain.ResultModel{
				Title:      "Revenue",
				ChartType:  domain.ChartBar,
				DataPoints: []domain.DataPoint{{Name: "Jan", Value: 1000}},
				Insights:   "Strong month",
			},
		},
	}
	app := newTestApp(t, assistant)

	view := app.View()
	assert.Contains(t, view, "total revenue")
	assert.Contains(t, view, "bar chart with 1 data points")
	assert.Contains(t, view, "Jan")
	assert.Contains(t, view, "Strong month")
}

func TestViewShowsRecordingIndicator(t *testing.T) {
	assistant := &fakeAssistant{
		snap: driving.SessionSnapshot{
			Transcript:   domain.ListeningSentinel,
			CapturePhase: domain.CaptureRecording,
		},
	}
	app := newTestApp(t, assistant)

	view := app.View()
	assert.Contains(t, view, domain.ListeningSentinel)
	assert.Contains(t, view, "recording")
}

func TestBackendCheckedUpdatesBanner(t *testing.T) {
	app := newTestApp(t, &fakeAssistant{})

	model, _ := app.Update(messages.BackendChecked{Err: assertErr("down")})
	app = model.(*App)
	assert.Contains(t, app.View(), "backend unreachable")
}

// drainCmd executes a command tree until all messages are produced.
func drainCmd(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			drainCmd(t, c)
		}
	}
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
