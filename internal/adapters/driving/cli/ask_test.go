package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablewise/tablewise-cli/internal/core/domain"
)

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [query]", askCmd.Use)
}

func TestAskCmd_RequiresArgs(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	assert.Error(t, err)
}

func TestAskCmd_PrintsAnswer(t *testing.T) {
	assistant := &fakeAssistant{snap: answeredSnapshot()}
	cleanup := setupTestServices(assistant, &fakeExport{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "total", "revenue"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Equal(t, []string{"total revenue"}, assistant.submitted, "args are joined into one query")
	assert.Contains(t, buf.String(), "bar chart with 1 data points")
	assert.Contains(t, buf.String(), "Jan")
	assert.Contains(t, buf.String(), "Strong month")
}

func TestAskCmd_JSONOutput(t *testing.T) {
	assistant := &fakeAssistant{snap: answeredSnapshot()}
	cleanup := setupTestServices(assistant, &fakeExport{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "--json", "total revenue"})
	defer func() {
		rootCmd.SetArgs(nil)
		askJSON = false
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\"chart_type\": \"bar\"")
	assert.Contains(t, buf.String(), "\"name\": \"Jan\"")
}

func TestAskCmd_BackendFailureSurfaced(t *testing.T) {
	assistant := &fakeAssistant{
		snap: answeredSnapshot(),
	}
	assistant.snap.Result = nil
	assistant.snap.Response = "Error: backend exploded"
	cleanup := setupTestServices(assistant, &fakeExport{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "total revenue"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend exploded")
}

func TestAskCmd_SubmitRejection(t *testing.T) {
	assistant := &fakeAssistant{submitErr: domain.ErrSubmissionInFlight}
	cleanup := setupTestServices(assistant, &fakeExport{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "total revenue"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.ErrorIs(t, err, domain.ErrSubmissionInFlight)
}

func TestAskCmd_SlackFlag(t *testing.T) {
	assistant := &fakeAssistant{snap: answeredSnapshot()}
	export := &fakeExport{status: "Report sent"}
	cleanup := setupTestServices(assistant, export)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "--slack", "total revenue"})
	defer func() {
		rootCmd.SetArgs(nil)
		askSlack = false
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Equal(t, 1, export.forwarded)
	assert.Contains(t, buf.String(), "Report sent")
}

func TestAskCmd_ServiceNotConfigured(t *testing.T) {
	oldService := assistantService
	assistantService = nil
	defer func() {
		assistantService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "test"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "assistant service not configured")
}
