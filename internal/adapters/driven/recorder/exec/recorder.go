// Package exec captures microphone audio by running the platform's
// command-line recording utility as a child process. The child streams
// WAV data to a buffer for the whole session; stopping the process is
// what releases the audio device.
package exec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/tablewise/tablewise-cli/internal/core/domain"
	"github.com/tablewise/tablewise-cli/internal/core/ports/driven"
	"github.com/tablewise/tablewise-cli/internal/logger"
)

// waitTimeout bounds how long Stop waits for the child to flush and exit.
const waitTimeout = 2 * time.Second

// Ensure Recorder implements the interface.
var _ driven.Recorder = (*Recorder)(nil)

// Recorder records 16kHz mono WAV audio through arecord, sox or ffmpeg,
// whichever is installed.
type Recorder struct {
	mu  sync.Mutex
	cmd *exec.Cmd
	buf *bytes.Buffer
}

// New creates a subprocess recorder.
func New() *Recorder {
	return &Recorder{}
}

// recordCommand picks the recording utility for the current platform.
func recordCommand(ctx context.Context) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "linux":
		// Try arecord first, fall back to sox then ffmpeg
		if _, err := exec.LookPath("arecord"); err == nil {
			return exec.CommandContext(ctx, "arecord", "-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-t", "wav", "-"), nil
		}
		if _, err := exec.LookPath("rec"); err == nil {
			return exec.CommandContext(ctx, "rec", "-q", "-r", "16000", "-c", "1", "-t", "wav", "-"), nil
		}
		if _, err := exec.LookPath("ffmpeg"); err == nil {
			return exec.CommandContext(ctx, "ffmpeg", "-loglevel", "quiet", "-f", "alsa", "-i", "default",
				"-ar", "16000", "-ac", "1", "-f", "wav", "-"), nil
		}
		return nil, fmt.Errorf("no recording utility found (install alsa-utils, sox or ffmpeg)")
	case "darwin":
		if _, err := exec.LookPath("rec"); err == nil {
			return exec.CommandContext(ctx, "rec", "-q", "-r", "16000", "-c", "1", "-t", "wav", "-"), nil
		}
		if _, err := exec.LookPath("ffmpeg"); err == nil {
			return exec.CommandContext(ctx, "ffmpeg", "-loglevel", "quiet", "-f", "avfoundation", "-i", ":0",
				"-ar", "16000", "-ac", "1", "-f", "wav", "-"), nil
		}
		return nil, fmt.Errorf("no recording utility found (install sox or ffmpeg)")
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// Start opens the audio device by spawning the recording child process.
// Returns an error when the device cannot be acquired or a session is
// already running.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd != nil {
		return fmt.Errorf("recording already in progress")
	}

	cmd, err := recordCommand(ctx)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	cmd.Stdout = buf
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start recorder: %w", err)
	}
	logger.Debug("recording started: %s", cmd.Path)

	r.cmd = cmd
	r.buf = buf
	return nil
}

// Stop terminates the child process, releasing the audio device, and
// returns the buffered WAV payload. The device is released even when the
// returned error is non-nil.
func (r *Recorder) Stop() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd == nil {
		return nil, fmt.Errorf("no recording in progress")
	}
	cmd, buf := r.cmd, r.buf
	r.cmd, r.buf = nil, nil

	// Interrupt lets the utility flush its output before exiting.
	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		_ = cmd.Process.Kill()
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case <-done:
	case <-time.After(waitTimeout):
		_ = cmd.Process.Kill()
		<-done
	}
	// Wait errors are expected here: the child was signalled mid-stream.

	if buf.Len() == 0 {
		return nil, domain.ErrNoAudio
	}
	logger.Debug("recording stopped, %d bytes captured", buf.Len())
	return buf.Bytes(), nil
}
