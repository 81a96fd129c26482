package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultModelSummary(t *testing.T) {
	r := &ResultModel{
		Title:     "Revenue",
		ChartType: ChartBar,
		DataPoints: []DataPoint{
			{Name: "Jan", Value: 1000},
		},
	}
	assert.Equal(t, "Revenue (bar chart with 1 data points)", r.Summary())
}

func TestResultModelValidate(t *testing.T) {
	tests := []struct {
		name    string
		result  ResultModel
		wantErr bool
	}{
		{
			name: "valid bar result",
			result: ResultModel{
				Title:      "Revenue",
				ChartType:  ChartBar,
				DataPoints: []DataPoint{{Name: "Jan", Value: 1}},
			},
		},
		{
			name: "valid dual result",
			result: ResultModel{
				Title:      "Revenue and Count",
				ChartType:  ChartDual,
				DataPoints: []DataPoint{{Name: "Jan", Revenue: 1, Count: 2}},
			},
		},
		{
			name: "unknown chart type",
			result: ResultModel{
				ChartType:  ChartType("scatter"),
				DataPoints: []DataPoint{{Name: "Jan", Value: 1}},
			},
			wantErr: true,
		},
		{
			name:    "empty data series",
			result:  ResultModel{ChartType: ChartPie},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestResultModelHasArtifact(t *testing.T) {
	var nilResult *ResultModel
	assert.False(t, nilResult.HasArtifact())

	r := &ResultModel{}
	assert.False(t, r.HasArtifact())

	r.Artifact = &ExportArtifact{Filename: "report.pdf"}
	assert.False(t, r.HasArtifact(), "artifact without content does not count")

	r.Artifact.Base64Content = "JVBERi0xLjQ="
	assert.True(t, r.HasArtifact())
}

func TestChartTypeValid(t *testing.T) {
	for _, c := range []ChartType{ChartBar, ChartPie, ChartLine, ChartDual} {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, ChartType("").Valid())
	assert.False(t, ChartType("histogram").Valid())
}
