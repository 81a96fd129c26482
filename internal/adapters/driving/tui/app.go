// Package tui implements the interactive terminal interface: one assistant
// view with a query input, a microphone toggle, the current answer, and a
// slide-in history panel.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tablewise/tablewise-cli/internal/adapters/driving/tui/messages"
	"github.com/tablewise/tablewise-cli/internal/adapters/driving/tui/styles"
	"github.com/tablewise/tablewise-cli/internal/core/domain"
	"github.com/tablewise/tablewise-cli/internal/core/ports/driven"
	"github.com/tablewise/tablewise-cli/internal/core/ports/driving"
)

// Ports holds the driving-side services the TUI talks to.
type Ports struct {
	Assistant driving.AssistantService
	Capture   driving.CaptureService
	Export    driving.ExportService
	Backend   driven.AnalyticsClient
}

// App is the root Bubbletea model.
type App struct {
	styles *styles.Styles
	ports  *Ports
	ctx    context.Context

	input   textinput.Model
	spinner spinner.Model

	width  int
	height int

	backendLine string
	backendOK   bool

	historyOpen    bool
	historyEntries []domain.HistoryEntry
	historySel     int

	notice string
	err    error
}

// NewApp creates the root model.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil || ports.Assistant == nil {
		return nil, errors.New("assistant service is required")
	}

	s := styles.DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Ask about sales, revenue, menu performance..."
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(s.Theme().Primary)

	return &App{
		styles:      s,
		ports:       ports,
		ctx:         context.Background(),
		input:       ti,
		spinner:     sp,
		width:       80,
		height:      24,
		backendLine: "checking backend...",
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init starts the input cursor and the backend probe.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.spinner.Tick, a.checkBackendCmd())
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = msg.Width - 8
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case messages.SubmitCompleted:
		return a.handleSubmitCompleted(msg)

	case messages.CaptureToggled:
		if msg.Err != nil {
			a.err = msg.Err
		}
		return a, nil

	case messages.HistoryLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.historyEntries = msg.Entries
		a.historySel = 0
		return a, nil

	case messages.ReportDownloaded:
		if msg.Err != nil {
			a.notice = fmt.Sprintf("Download failed: %v", msg.Err)
		} else {
			a.notice = fmt.Sprintf("Report saved to %s", msg.Path)
		}
		return a, a.clearNoticeCmd()

	case messages.ReportForwarded:
		a.notice = a.ports.Export.Status()
		return a, a.forwardStatusTickCmd()

	case messages.ForwardStatusTick:
		a.notice = a.ports.Export.Status()
		if a.notice != "" {
			return a, a.forwardStatusTickCmd()
		}
		return a, nil

	case messages.BackendChecked:
		if msg.Err != nil {
			a.backendOK = false
			a.backendLine = "backend unreachable"
		} else {
			a.backendOK = true
			a.backendLine = fmt.Sprintf("connected · %d records · %d branches",
				msg.Summary.Rows, len(msg.Summary.Branches))
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "esc":
		if a.historyOpen {
			a.historyOpen = false
			return a, nil
		}
		return a, tea.Quit

	case "enter":
		if a.historyOpen {
			return a.replaySelected()
		}
		return a.submitTyped()

	case "ctrl+r":
		return a.toggleCapture()

	case "ctrl+h":
		a.historyOpen = !a.historyOpen
		if a.historyOpen {
			return a, a.loadHistoryCmd()
		}
		return a, nil

	case "ctrl+d":
		return a, a.downloadCmd()

	case "ctrl+s":
		return a, a.forwardCmd()

	case "up":
		if a.historyOpen && a.historySel > 0 {
			a.historySel--
			return a, nil
		}

	case "down":
		if a.historyOpen && a.historySel < len(a.historyEntries)-1 {
			a.historySel++
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) submitTyped() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(a.input.Value())
	if text == "" {
		return a, nil
	}
	a.err = nil
	return a, tea.Batch(a.spinner.Tick, a.submitCmd(text))
}

func (a *App) handleSubmitCompleted(msg messages.SubmitCompleted) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		// A rejection, not a backend failure: the session was not touched.
		a.err = msg.Err
		return a, nil
	}
	snap := a.ports.Assistant.Session()
	if !strings.HasPrefix(snap.Response, "Error:") {
		a.input.Reset()
	}
	if a.historyOpen {
		return a, a.loadHistoryCmd()
	}
	return a, nil
}

func (a *App) replaySelected() (tea.Model, tea.Cmd) {
	if len(a.historyEntries) == 0 {
		return a, nil
	}
	a.ports.Assistant.Replay(a.historyEntries[a.historySel])
	a.historyOpen = false
	return a, nil
}

func (a *App) toggleCapture() (tea.Model, tea.Cmd) {
	if a.ports.Capture == nil {
		return a, nil
	}
	a.err = nil
	if a.ports.Capture.Phase() == domain.CaptureRecording {
		return a, a.stopCaptureCmd()
	}
	return a, a.startCaptureCmd()
}

// Commands.

func (a *App) submitCmd(text string) tea.Cmd {
	return func() tea.Msg {
		err := a.ports.Assistant.Submit(a.ctx, text, domain.SourceTyped)
		return messages.SubmitCompleted{Err: err}
	}
}

func (a *App) startCaptureCmd() tea.Cmd {
	return func() tea.Msg {
		err := a.ports.Capture.Start(a.ctx)
		return messages.CaptureToggled{Phase: a.ports.Capture.Phase(), Err: err}
	}
}

func (a *App) stopCaptureCmd() tea.Cmd {
	return func() tea.Msg {
		err := a.ports.Capture.Stop(a.ctx)
		return messages.CaptureToggled{Phase: a.ports.Capture.Phase(), Err: err}
	}
}

func (a *App) loadHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		entries, err := a.ports.Assistant.History(a.ctx)
		return messages.HistoryLoaded{Entries: entries, Err: err}
	}
}

func (a *App) downloadCmd() tea.Cmd {
	return func() tea.Msg {
		snap := a.ports.Assistant.Session()
		if snap.Result == nil {
			return messages.ReportDownloaded{Err: errors.New("no answer yet")}
		}
		path, err := a.ports.Export.Download(snap.Result, ".")
		return messages.ReportDownloaded{Path: path, Err: err}
	}
}

func (a *App) forwardCmd() tea.Cmd {
	return func() tea.Msg {
		snap := a.ports.Assistant.Session()
		if snap.Result == nil {
			return messages.ReportForwarded{Err: errors.New("no answer yet")}
		}
		err := a.ports.Export.Forward(a.ctx, snap.Result)
		return messages.ReportForwarded{Err: err}
	}
}

func (a *App) checkBackendCmd() tea.Cmd {
	return func() tea.Msg {
		if a.ports.Backend == nil {
			return messages.BackendChecked{Err: errors.New("no backend configured")}
		}
		summary, err := a.ports.Backend.DashboardData(a.ctx)
		return messages.BackendChecked{Summary: summary, Err: err}
	}
}

func (a *App) clearNoticeCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return messages.ForwardStatusTick{}
	})
}

func (a *App) forwardStatusTickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg {
		return messages.ForwardStatusTick{}
	})
}

// View renders the assistant screen.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Tablewise Assistant"))
	b.WriteString("  ")
	if a.backendOK {
		b.WriteString(a.styles.Success.Render(a.backendLine))
	} else {
		b.WriteString(a.styles.Error.Render(a.backendLine))
	}
	b.WriteString("\n\n")

	snap := a.ports.Assistant.Session()
	main := a.renderConversation(snap)

	if a.historyOpen {
		panel := a.renderHistoryPanel()
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, main, "  ", panel))
	} else {
		b.WriteString(main)
	}
	b.WriteString("\n")

	b.WriteString(a.styles.InputField.Render(a.input.View()))
	b.WriteString("\n")

	if a.err != nil {
		b.WriteString(a.styles.Error.Render(a.err.Error()))
		b.WriteString("\n")
	}
	if a.notice != "" {
		b.WriteString(a.styles.Success.Render(a.notice))
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Help.Render(
		"enter ask · ctrl+r mic · ctrl+h history · ctrl+d save pdf · ctrl+s slack · esc quit"))
	return b.String()
}

func (a *App) renderConversation(snap driving.SessionSnapshot) string {
	var b strings.Builder

	if snap.Transcript != "" {
		b.WriteString(a.styles.Muted.Render("You: "))
		b.WriteString(a.styles.Normal.Render(snap.Transcript))
		b.WriteString("\n")
	}
	if snap.CapturePhase == domain.CaptureRecording {
		b.WriteString(a.styles.Error.Render("● recording"))
		b.WriteString("\n")
	}

	if snap.Loading {
		b.WriteString(a.spinner.View())
		b.WriteString(a.styles.Muted.Render(" " + snap.Response))
		b.WriteString("\n")
	} else if snap.Response != "" {
		style := a.styles.Normal
		if strings.HasPrefix(snap.Response, "Error:") {
			style = a.styles.Error
		}
		b.WriteString(a.styles.Muted.Render("Assistant: "))
		b.WriteString(style.Render(snap.Response))
		b.WriteString("\n")
	}

	if snap.Result != nil && !snap.Loading {
		b.WriteString("\n")
		b.WriteString(a.renderResultTable(snap.Result))
	}

	return b.String()
}

func (a *App) renderResultTable(result *domain.ResultModel) string {
	var b strings.Builder

	if result.ChartType == domain.ChartDual {
		b.WriteString(a.styles.Muted.Render(fmt.Sprintf("  %-20s %12s %8s", "Name", "Revenue", "Count")))
		b.WriteString("\n")
		for _, p := range result.DataPoints {
			b.WriteString(fmt.Sprintf("  %-20s %12.2f %8.0f\n", truncate(p.Name, 20), p.Revenue, p.Count))
		}
	} else {
		b.WriteString(a.styles.Muted.Render(fmt.Sprintf("  %-20s %12s", "Name", "Value")))
		b.WriteString("\n")
		for _, p := range result.DataPoints {
			b.WriteString(fmt.Sprintf("  %-20s %12.2f\n", truncate(p.Name, 20), p.Value))
		}
	}

	if result.Insights != "" {
		b.WriteString("\n")
		b.WriteString(a.styles.Normal.Render("Insights: " + result.Insights))
		b.WriteString("\n")
	}
	if result.HasArtifact() {
		b.WriteString(a.styles.Muted.Render("PDF ready: " + result.Artifact.Filename))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) renderHistoryPanel() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("History (7 days)"))
	b.WriteString("\n")

	if len(a.historyEntries) == 0 {
		b.WriteString(a.styles.Muted.Render("no recent queries"))
	}
	for i, e := range a.historyEntries {
		line := truncate(e.Query, 32)
		if i == a.historySel {
			b.WriteString(a.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(a.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	return a.styles.Panel.Render(b.String())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
