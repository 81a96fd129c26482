package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tablewise/tablewise-cli/internal/core/domain"
)

var (
	askJSON     bool
	askDownload bool
	askSlack    bool
	askSpeak    bool
	askDir      string
)

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Ask the analytics assistant a question",
	Long: `Submits a natural-language question to the analytics service and prints
the chart data and insights that come back.

Examples:
  tablewise ask "total revenue this month"
  tablewise ask --json "top 5 dishes by revenue"
  tablewise ask --download --dir ./reports "weekly sales report"
  tablewise ask --slack "branch comparison"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the result as JSON")
	askCmd.Flags().BoolVar(&askDownload, "download", false, "save the PDF report after a successful query")
	askCmd.Flags().BoolVar(&askSlack, "slack", false, "forward the PDF report to Slack after a successful query")
	askCmd.Flags().BoolVar(&askSpeak, "speak", false, "speak the reply through the analytics service's TTS")
	askCmd.Flags().StringVar(&askDir, "dir", ".", "directory for downloaded reports")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	query := strings.Join(args, " ")
	if err := assistantService.Submit(cmd.Context(), query, domain.SourceTyped); err != nil {
		return fmt.Errorf("submit failed: %w", err)
	}

	snap := assistantService.Session()
	if snap.Result == nil {
		// The backend failure was absorbed into the response line.
		return errors.New(snap.Response)
	}

	if askJSON {
		if err := outputResultJSON(cmd, snap.Result); err != nil {
			return err
		}
	} else {
		outputResultTable(cmd, snap.Response, snap.Result)
	}

	return runAskSideFlows(cmd, snap.Result)
}

// runAskSideFlows executes the requested export and speech flows. Each is
// best-effort and reports its own failure without undoing the answer.
func runAskSideFlows(cmd *cobra.Command, result *domain.ResultModel) error {
	if askDownload {
		path, err := exportService.Download(result, askDir)
		if err != nil {
			cmd.PrintErrf("Download failed: %v\n", err)
		} else {
			cmd.Printf("Report saved to %s\n", path)
		}
	}

	if askSlack {
		if err := exportService.Forward(cmd.Context(), result); err != nil {
			cmd.PrintErrf("Slack forward failed: %v\n", err)
		} else {
			cmd.Println(exportService.Status())
		}
	}

	if askSpeak {
		if err := speakText(cmd.Context(), speechLine(result)); err != nil {
			cmd.PrintErrf("Speech failed: %v\n", err)
		}
	}

	return nil
}

// speechLine picks what the assistant says aloud: insights when present,
// the summary line otherwise.
func speechLine(result *domain.ResultModel) string {
	if result.Insights != "" {
		return result.Insights
	}
	return result.Summary()
}

func outputResultJSON(cmd *cobra.Command, result *domain.ResultModel) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputResultTable(cmd *cobra.Command, response string, result *domain.ResultModel) {
	cmd.Println(response)
	cmd.Println()

	if result.ChartType == domain.ChartDual {
		cmd.Printf("  %-24s %14s %10s\n", "Name", "Revenue", "Count")
		for _, p := range result.DataPoints {
			cmd.Printf("  %-24s %14.2f %10.0f\n", p.Name, p.Revenue, p.Count)
		}
	} else {
		cmd.Printf("  %-24s %14s\n", "Name", "Value")
		for _, p := range result.DataPoints {
			cmd.Printf("  %-24s %14.2f\n", p.Name, p.Value)
		}
	}

	if result.Insights != "" {
		cmd.Println()
		cmd.Printf("Insights: %s\n", result.Insights)
	}
	if result.HasArtifact() {
		cmd.Println()
		cmd.Printf("PDF report available: %s (use --download or --slack)\n", result.Artifact.Filename)
	}
}
