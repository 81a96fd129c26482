// Package cli implements the cobra command surface. Commands hold no
// business logic; they call the driving ports and print what comes back.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/tablewise/tablewise-cli/internal/core/ports/driven"
	"github.com/tablewise/tablewise-cli/internal/core/ports/driving"
	"github.com/tablewise/tablewise-cli/internal/logger"
)

// Injected services. The composition root wires these before Execute.
var (
	assistantService driving.AssistantService
	captureService   driving.CaptureService
	exportService    driving.ExportService
	analyticsClient  driven.AnalyticsClient
	configStore      driven.ConfigStore
	version          = "dev"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "tablewise",
	Short: "Voice and text analytics assistant for restaurant operations",
	Long: `Tablewise is a terminal client for the restaurant analytics service.

Ask questions about sales, revenue and menu performance by typing or by
voice. Results come back as chart data with insights, can be saved as PDF
reports, and can be forwarded to the team Slack channel.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetAssistantService injects the assistant service.
func SetAssistantService(s driving.AssistantService) {
	assistantService = s
}

// SetCaptureService injects the capture service.
func SetCaptureService(s driving.CaptureService) {
	captureService = s
}

// SetExportService injects the export service.
func SetExportService(s driving.ExportService) {
	exportService = s
}

// SetAnalyticsClient injects the backend client.
func SetAnalyticsClient(c driven.AnalyticsClient) {
	analyticsClient = c
}

// SetConfigStore injects the configuration store.
func SetConfigStore(s driven.ConfigStore) {
	configStore = s
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
