package cli

import (
	"bufio"
	"errors"
	"os"

	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Ask a question by voice",
	Long: `Records from the microphone until you press Enter, transcribes the
audio, and submits the transcript as a query.

A transcript the service flags as failed is shown for review instead of
being submitted.`,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
}

func runRecord(cmd *cobra.Command, _ []string) error {
	if captureService == nil || assistantService == nil {
		return errors.New("capture service not configured")
	}

	if err := captureService.Start(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Recording... press Enter to stop.")

	reader := bufio.NewReader(os.Stdin)
	if _, err := reader.ReadString('\n'); err != nil {
		// Stdin closed; stop the capture anyway so the device is released.
		cmd.PrintErrln("input closed, stopping capture")
	}

	cmd.Println("Transcribing...")
	if err := captureService.Stop(cmd.Context()); err != nil {
		return err
	}

	snap := assistantService.Session()
	cmd.Printf("You said: %s\n", snap.Transcript)

	if snap.Result == nil {
		if snap.Response != "" {
			cmd.Println(snap.Response)
		}
		return nil
	}

	outputResultTable(cmd, snap.Response, snap.Result)
	return nil
}
