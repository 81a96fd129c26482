// Package backend provides the HTTP client for the restaurant analytics
// service. The exact field names in the request and response bodies are
// the wire contract; do not rename them.
package backend

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tablewise/tablewise-cli/internal/core/domain"
	"github.com/tablewise/tablewise-cli/internal/core/ports/driven"
	"github.com/tablewise/tablewise-cli/internal/logger"
)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:5000/api"
	DefaultTimeout = 120 * time.Second
)

// Ensure Client implements the interface.
var _ driven.AnalyticsClient = (*Client)(nil)

// Config holds configuration for the analytics backend client.
type Config struct {
	// BaseURL is the API base URL including the /api prefix
	// (default: http://localhost:5000/api).
	BaseURL string

	// Timeout is the per-request timeout (default: 120s). A request either
	// resolves or fails within this bound; nothing hangs indefinitely.
	Timeout time.Duration
}

// Client is the analytics backend HTTP client.
type Client struct {
	http *resty.Client
}

// New creates a backend client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout),
	}
}

// dashboardResponse is the /dashboard-data response format.
type dashboardResponse struct {
	Error        string   `json:"error,omitempty"`
	TotalRecords int      `json:"total_records"`
	Branches     []string `json:"branches"`
	Categories   []string `json:"categories"`
	RevenueStats struct {
		Total float64 `json:"total"`
	} `json:"revenue_stats"`
}

// transcribeResponse is the /transcribe response format.
type transcribeResponse struct {
	Error      string `json:"error,omitempty"`
	Transcript string `json:"transcript"`
}

// wirePoint is one record of the /query data series. Pointer fields
// distinguish absent from zero so per-variant required fields can be
// checked before a domain value exists.
type wirePoint struct {
	Name    *string  `json:"name"`
	Value   *float64 `json:"value"`
	Revenue *float64 `json:"revenue"`
	Count   *float64 `json:"count"`
}

// queryResponse is the /query response format.
type queryResponse struct {
	Error         string      `json:"error,omitempty"`
	OriginalQuery string      `json:"original_query"`
	EnglishQuery  string      `json:"english_query"`
	Title         string      `json:"title"`
	ChartType     string      `json:"chart_type"`
	Data          []wirePoint `json:"data"`
	XAxis         string      `json:"x_axis"`
	YAxis         string      `json:"y_axis"`
	Insights      string      `json:"insights"`
	DualMetrics   bool        `json:"dual_metrics"`
	PDFBase64     string      `json:"pdf_base64"`
	PDFFilename   string      `json:"pdf_filename"`
}

// slackResponse is the /send-to-slack response format.
type slackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ttsResponse is the /tts response format.
type ttsResponse struct {
	Error string `json:"error,omitempty"`
	Audio string `json:"audio"`
}

// reportInfoResponse is the /last-pdf-info response format.
type reportInfoResponse struct {
	Available bool   `json:"available"`
	Title     string `json:"title"`
	Filename  string `json:"filename"`
	Size      int    `json:"size"`
}

// CheckHealth probes the backend's liveness endpoint.
func (c *Client) CheckHealth(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/dashboard-data")
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status %d", domain.ErrBackendUnavailable, resp.StatusCode())
	}
	return nil
}

// DashboardData returns the dataset overview from the liveness endpoint.
func (c *Client) DashboardData(ctx context.Context) (*driven.DashboardSummary, error) {
	var body dashboardResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/dashboard-data")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", domain.ErrBackendUnavailable, resp.StatusCode())
	}
	if body.Error != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrBackendUnavailable, body.Error)
	}

	return &driven.DashboardSummary{
		TotalRevenue: body.RevenueStats.Total,
		Branches:     body.Branches,
		Categories:   body.Categories,
		Rows:         body.TotalRecords,
	}, nil
}

// Transcribe submits buffered audio as a single multipart payload and
// returns the transcript text.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	var body transcribeResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("audio", "audio.wav", bytes.NewReader(audio)).
		SetResult(&body).
		Post("/transcribe")
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("transcribe: status %d: %s", resp.StatusCode(), resp.String())
	}
	if body.Error != "" {
		return "", fmt.Errorf("transcribe: %s", body.Error)
	}
	if body.Transcript == "" {
		return "", fmt.Errorf("transcribe: %w: no transcript field", domain.ErrMalformedResponse)
	}
	return body.Transcript, nil
}

// Query submits a natural-language query and parses the response into a
// ResultModel.
func (c *Client) Query(ctx context.Context, query string) (*domain.ResultModel, error) {
	var body queryResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"query": query}).
		SetResult(&body).
		Post("/query")
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("query: status %d: %s", resp.StatusCode(), resp.String())
	}
	if body.Error != "" {
		return nil, fmt.Errorf("query: %s", body.Error)
	}

	result, err := parseResult(&body)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	logger.Debug("query %q -> %s with %d points", query, result.ChartType, len(result.DataPoints))
	return result, nil
}

// ForwardReport sends a report artifact to the notification channel.
func (c *Client) ForwardReport(ctx context.Context, artifact domain.ExportArtifact, title, insights string) error {
	var body slackResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"pdf_base64": artifact.Base64Content,
			"filename":   artifact.Filename,
			"title":      title,
			"insights":   insights,
		}).
		SetResult(&body).
		SetError(&body).
		Post("/send-to-slack")
	if err != nil {
		return fmt.Errorf("forward report: %w", err)
	}
	if !body.Success {
		if body.Message != "" {
			return fmt.Errorf("forward report: %s", body.Message)
		}
		return fmt.Errorf("forward report: status %d", resp.StatusCode())
	}
	return nil
}

// Synthesize converts reply text to spoken audio bytes.
func (c *Client) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	payload := map[string]string{"text": text}
	if language != "" {
		payload["language"] = language
	}

	var body ttsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&body).
		Post("/tts")
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("synthesize: status %d: %s", resp.StatusCode(), resp.String())
	}
	if body.Error != "" {
		return nil, fmt.Errorf("synthesize: %s", body.Error)
	}

	audio, err := base64.StdEncoding.DecodeString(body.Audio)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w: bad audio payload: %w", domain.ErrMalformedResponse, err)
	}
	return audio, nil
}

// LastReportInfo describes the most recent report held by the backend.
func (c *Client) LastReportInfo(ctx context.Context) (*driven.ReportInfo, error) {
	var body reportInfoResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/last-pdf-info")
	if err != nil {
		return nil, fmt.Errorf("report info: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("report info: status %d", resp.StatusCode())
	}
	return &driven.ReportInfo{
		Available: body.Available,
		Title:     body.Title,
		Filename:  body.Filename,
		SizeBytes: body.Size,
	}, nil
}

// parseResult converts a query response into a validated ResultModel.
func parseResult(body *queryResponse) (*domain.ResultModel, error) {
	if len(body.Data) == 0 {
		return nil, fmt.Errorf("%w: empty data series", domain.ErrMalformedResponse)
	}

	chartType := resolveChartType(body)

	points := make([]domain.DataPoint, 0, len(body.Data))
	for i, p := range body.Data {
		if p.Name == nil {
			return nil, fmt.Errorf("%w: record %d missing name", domain.ErrMalformedResponse, i)
		}
		point := domain.DataPoint{Name: *p.Name}
		if chartType == domain.ChartDual {
			if p.Revenue == nil || p.Count == nil {
				return nil, fmt.Errorf("%w: dual record %d missing revenue or count", domain.ErrMalformedResponse, i)
			}
			point.Revenue = *p.Revenue
			point.Count = *p.Count
		} else {
			if p.Value == nil {
				return nil, fmt.Errorf("%w: record %d missing value", domain.ErrMalformedResponse, i)
			}
			point.Value = *p.Value
		}
		points = append(points, point)
	}

	result := &domain.ResultModel{
		Title:         body.Title,
		ChartType:     chartType,
		DataPoints:    points,
		OriginalQuery: body.OriginalQuery,
		EnglishQuery:  body.EnglishQuery,
		XAxis:         body.XAxis,
		YAxis:         body.YAxis,
		Insights:      body.Insights,
	}
	if body.PDFBase64 != "" {
		result.Artifact = &domain.ExportArtifact{
			Base64Content: body.PDFBase64,
			Filename:      body.PDFFilename,
		}
	}

	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

// resolveChartType maps the wire chart type to a domain variant.
// The explicit dual_metrics tag wins; structural detection (a first record
// carrying both revenue and count) is only a fallback, so a record that
// coincidentally overlaps field names cannot silently reclassify a tagged
// chart.
func resolveChartType(body *queryResponse) domain.ChartType {
	if body.DualMetrics || body.ChartType == "dual_bar" || body.ChartType == "dual" {
		return domain.ChartDual
	}

	switch domain.ChartType(body.ChartType) {
	case domain.ChartBar, domain.ChartPie, domain.ChartLine:
		return domain.ChartType(body.ChartType)
	}

	// Structural fallback.
	if len(body.Data) > 0 && body.Data[0].Revenue != nil && body.Data[0].Count != nil {
		return domain.ChartDual
	}
	return domain.ChartBar
}
