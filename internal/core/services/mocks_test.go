package services

import (
	"context"

	"github.com/tablewise/tablewise-cli/internal/core/domain"
	"github.com/tablewise/tablewise-cli/internal/core/ports/driven"
)

// mockAnalyticsClient is a hand-rolled backend double. Each method
// delegates to its function field when set and succeeds trivially
// otherwise.
type mockAnalyticsClient struct {
	checkHealthFunc    func(ctx context.Context) error
	dashboardFunc      func(ctx context.Context) (*driven.DashboardSummary, error)
	transcribeFunc     func(ctx context.Context, audio []byte) (string, error)
	queryFunc          func(ctx context.Context, query string) (*domain.ResultModel, error)
	forwardReportFunc  func(ctx context.Context, artifact domain.ExportArtifact, title, insights string) error
	synthesizeFunc     func(ctx context.Context, text, language string) ([]byte, error)
	lastReportInfoFunc func(ctx context.Context) (*driven.ReportInfo, error)
}

var _ driven.AnalyticsClient = (*mockAnalyticsClient)(nil)

func (m *mockAnalyticsClient) CheckHealth(ctx context.Context) error {
	if m.checkHealthFunc != nil {
		return m.checkHealthFunc(ctx)
	}
	return nil
}

func (m *mockAnalyticsClient) DashboardData(ctx context.Context) (*driven.DashboardSummary, error) {
	if m.dashboardFunc != nil {
		return m.dashboardFunc(ctx)
	}
	return &driven.DashboardSummary{}, nil
}

func (m *mockAnalyticsClient) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if m.transcribeFunc != nil {
		return m.transcribeFunc(ctx, audio)
	}
	return "transcript", nil
}

func (m *mockAnalyticsClient) Query(ctx context.Context, query string) (*domain.ResultModel, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, query)
	}
	return barResult("Revenue"), nil
}

func (m *mockAnalyticsClient) ForwardReport(ctx context.Context, artifact domain.ExportArtifact, title, insights string) error {
	if m.forwardReportFunc != nil {
		return m.forwardReportFunc(ctx, artifact, title, insights)
	}
	return nil
}

func (m *mockAnalyticsClient) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if m.synthesizeFunc != nil {
		return m.synthesizeFunc(ctx, text, language)
	}
	return []byte("audio"), nil
}

func (m *mockAnalyticsClient) LastReportInfo(ctx context.Context) (*driven.ReportInfo, error) {
	if m.lastReportInfoFunc != nil {
		return m.lastReportInfoFunc(ctx)
	}
	return &driven.ReportInfo{}, nil
}

// mockRecorder is a controllable audio device double.
type mockRecorder struct {
	startFunc func(ctx context.Context) error
	stopFunc  func() ([]byte, error)

	startCalls int
	stopCalls  int
}

var _ driven.Recorder = (*mockRecorder)(nil)

func (m *mockRecorder) Start(ctx context.Context) error {
	m.startCalls++
	if m.startFunc != nil {
		return m.startFunc(ctx)
	}
	return nil
}

func (m *mockRecorder) Stop() ([]byte, error) {
	m.stopCalls++
	if m.stopFunc != nil {
		return m.stopFunc()
	}
	return []byte("wav"), nil
}

// barResult builds a minimal valid bar result for tests.
func barResult(title string) *domain.ResultModel {
	return &domain.ResultModel{
		Title:     title,
		ChartType: domain.ChartBar,
		DataPoints: []domain.DataPoint{
			{Name: "Jan", Value: 100},
		},
	}
}
