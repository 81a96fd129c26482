package domain

import "fmt"

// ChartType identifies the shape of a result's data points.
// Rendering code must dispatch on this, never assume a fixed shape.
type ChartType string

const (
	// ChartBar is a single-metric bar chart (name + value records).
	ChartBar ChartType = "bar"

	// ChartPie is a share/distribution chart (name + value records).
	ChartPie ChartType = "pie"

	// ChartLine is a trend chart (name + value records).
	ChartLine ChartType = "line"

	// ChartDual is a dual-metric chart (name + revenue + count records).
	ChartDual ChartType = "dual"
)

// Valid reports whether the chart type is one of the known variants.
func (c ChartType) Valid() bool {
	switch c {
	case ChartBar, ChartPie, ChartLine, ChartDual:
		return true
	}
	return false
}

// DataPoint is one record in a result's data series.
// For bar/pie/line charts Value carries the metric; for dual charts
// Revenue and Count carry the two metrics.
type DataPoint struct {
	// Name is the category label (branch, month, item, ...).
	Name string `json:"name"`

	// Value is the single metric for bar/pie/line charts.
	Value float64 `json:"value,omitempty"`

	// Revenue is the first metric for dual charts.
	Revenue float64 `json:"revenue,omitempty"`

	// Count is the second metric for dual charts.
	Count float64 `json:"count,omitempty"`
}

// ExportArtifact is the binary report attached to a result.
// It is opaque to the client: the base64 payload is decoded only at the
// point of use (a local save) or passed through unchanged (forwarding).
type ExportArtifact struct {
	// Base64Content is the base64-encoded report bytes.
	Base64Content string `json:"pdf_base64"`

	// Filename is the suggested filename for a local save.
	Filename string `json:"filename"`
}

// ResultModel is the parsed analytics backend response for one query.
type ResultModel struct {
	// Title is the human-readable title of the analysis.
	Title string `json:"title"`

	// ChartType selects the data point shape.
	ChartType ChartType `json:"chart_type"`

	// DataPoints is the ordered data series. Non-empty when present.
	DataPoints []DataPoint `json:"data"`

	// OriginalQuery echoes the query as submitted.
	OriginalQuery string `json:"original_query,omitempty"`

	// EnglishQuery is the query after translation, when it differs.
	EnglishQuery string `json:"english_query,omitempty"`

	// XAxis and YAxis label the chart axes.
	XAxis string `json:"x_axis,omitempty"`
	YAxis string `json:"y_axis,omitempty"`

	// Insights is the backend's narrative summary of the analysis.
	Insights string `json:"insights,omitempty"`

	// Artifact is the attached report, if the backend generated one.
	Artifact *ExportArtifact `json:"artifact,omitempty"`
}

// Summary composes the response line shown to the user and stored in history.
func (r *ResultModel) Summary() string {
	return fmt.Sprintf("%s (%s chart with %d data points)", r.Title, r.ChartType, len(r.DataPoints))
}

// HasArtifact reports whether the result carries a non-empty export artifact.
func (r *ResultModel) HasArtifact() bool {
	return r != nil && r.Artifact != nil && r.Artifact.Base64Content != ""
}

// Validate checks the result invariants: a known chart type and a non-empty
// data series. Per-record field presence is enforced when the wire response
// is parsed, before a ResultModel exists.
func (r *ResultModel) Validate() error {
	if !r.ChartType.Valid() {
		return fmt.Errorf("%w: unknown chart type %q", ErrMalformedResponse, r.ChartType)
	}
	if len(r.DataPoints) == 0 {
		return fmt.Errorf("%w: empty data series", ErrMalformedResponse)
	}
	return nil
}
