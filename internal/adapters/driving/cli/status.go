package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the analytics service and show the dataset overview",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if analyticsClient == nil {
		return errors.New("analytics client not configured")
	}

	summary, err := analyticsClient.DashboardData(cmd.Context())
	if err != nil {
		cmd.Println("Backend: unreachable")
		return err
	}

	cmd.Println("Backend: connected")
	cmd.Printf("  Records:       %d\n", summary.Rows)
	cmd.Printf("  Branches:      %d\n", len(summary.Branches))
	cmd.Printf("  Categories:    %d\n", len(summary.Categories))
	cmd.Printf("  Total revenue: %.2f\n", summary.TotalRevenue)

	if configStore != nil && configStore.GetBool(keyAuthLoggedIn) {
		cmd.Printf("  Logged in as:  %s\n", configStore.GetString(keyAuthEmail))
	}
	return nil
}
