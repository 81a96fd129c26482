package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past questions and answers",
	Long: `Lists the questions asked in the last seven days, most recent first.
Entries older than the retention window are not shown.`,
	RunE: runHistoryList,
}

var historyReplayCmd = &cobra.Command{
	Use:   "replay [n]",
	Short: "Replay a past answer without re-querying",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryReplay,
}

func init() {
	historyCmd.AddCommand(historyReplayCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	entries, err := assistantService.History(cmd.Context())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		cmd.Println("No recent queries.")
		return nil
	}

	for i, e := range entries {
		cmd.Printf("  [%d] %s\n", i+1, e.Query)
		cmd.Printf("      %s  (%s)\n", e.ResponseSummary, e.Timestamp.Format("Jan 2 15:04"))
	}
	return nil
}

func runHistoryReplay(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("invalid entry number: %s", args[0])
	}

	entries, err := assistantService.History(cmd.Context())
	if err != nil {
		return err
	}
	if n > len(entries) {
		return fmt.Errorf("entry %d not found (history has %d entries)", n, len(entries))
	}

	entry := entries[n-1]
	assistantService.Replay(entry)

	snap := assistantService.Session()
	cmd.Printf("Query: %s\n", snap.Transcript)
	if snap.Result != nil {
		outputResultTable(cmd, snap.Response, snap.Result)
	} else {
		cmd.Println(snap.Response)
	}
	return nil
}
