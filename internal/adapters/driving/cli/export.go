package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download or forward the current PDF report",
	Long: `Works on the report attached to the most recent answer in this session.

Examples:
  tablewise export download --dir ./reports
  tablewise export slack
  tablewise export info`,
}

var exportDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Save the current report as a PDF file",
	RunE:  runExportDownload,
}

var exportSlackCmd = &cobra.Command{
	Use:   "slack",
	Short: "Forward the current report to the team Slack channel",
	RunE:  runExportSlack,
}

var exportInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show which report the analytics service is holding",
	RunE:  runExportInfo,
}

func init() {
	exportDownloadCmd.Flags().StringVar(&exportDir, "dir", ".", "directory for the downloaded report")
	exportCmd.AddCommand(exportDownloadCmd)
	exportCmd.AddCommand(exportSlackCmd)
	exportCmd.AddCommand(exportInfoCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExportDownload(cmd *cobra.Command, _ []string) error {
	if assistantService == nil || exportService == nil {
		return errors.New("export service not configured")
	}

	snap := assistantService.Session()
	if snap.Result == nil {
		return errors.New("no answer in this session; run a query first")
	}

	path, err := exportService.Download(snap.Result, exportDir)
	if err != nil {
		return err
	}
	cmd.Printf("Report saved to %s\n", path)
	return nil
}

func runExportSlack(cmd *cobra.Command, _ []string) error {
	if assistantService == nil || exportService == nil {
		return errors.New("export service not configured")
	}

	snap := assistantService.Session()
	if snap.Result == nil {
		return errors.New("no answer in this session; run a query first")
	}

	if err := exportService.Forward(cmd.Context(), snap.Result); err != nil {
		return err
	}
	cmd.Println(exportService.Status())
	return nil
}

func runExportInfo(cmd *cobra.Command, _ []string) error {
	if analyticsClient == nil {
		return errors.New("analytics client not configured")
	}

	info, err := analyticsClient.LastReportInfo(cmd.Context())
	if err != nil {
		return err
	}
	if !info.Available {
		cmd.Println("No report available on the analytics service.")
		return nil
	}

	cmd.Printf("Report: %s\n", info.Title)
	cmd.Printf("File:   %s\n", info.Filename)
	if info.SizeBytes > 0 {
		cmd.Printf("Size:   %d bytes\n", info.SizeBytes)
	}
	return nil
}
