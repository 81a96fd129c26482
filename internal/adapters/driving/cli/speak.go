package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/tablewise/tablewise-cli/internal/logger"
)

// speakText fetches synthesized speech for the text and plays it through
// the platform's command-line audio player.
func speakText(ctx context.Context, text string) error {
	if analyticsClient == nil {
		return errors.New("analytics client not configured")
	}

	audio, err := analyticsClient.Synthesize(ctx, text, "")
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}

	path := filepath.Join(os.TempDir(), "tablewise-reply.mp3")
	if err := os.WriteFile(path, audio, 0600); err != nil {
		return fmt.Errorf("write audio: %w", err)
	}
	defer os.Remove(path)

	return playAudio(ctx, path)
}

// playAudio plays an audio file using OS-specific commands.
func playAudio(ctx context.Context, path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "afplay", path)
	case "linux":
		// Try mpg123 first, fall back to ffplay
		if _, err := exec.LookPath("mpg123"); err == nil {
			cmd = exec.CommandContext(ctx, "mpg123", "-q", path)
		} else if _, err := exec.LookPath("ffplay"); err == nil {
			cmd = exec.CommandContext(ctx, "ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", path)
		} else {
			return fmt.Errorf("no audio player found (install mpg123 or ffmpeg)")
		}
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	logger.Debug("playing reply audio via %s", cmd.Path)
	return cmd.Run()
}
