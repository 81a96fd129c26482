package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tablewise/tablewise-cli/internal/core/domain"
	"github.com/tablewise/tablewise-cli/internal/core/ports/driven"
	"github.com/tablewise/tablewise-cli/internal/core/ports/driving"
	"github.com/tablewise/tablewise-cli/internal/logger"
)

// deniedMessage is surfaced when the audio device cannot be acquired.
const deniedMessage = "Microphone access denied"

// Ensure CaptureController implements the interface.
var _ driving.CaptureService = (*CaptureController)(nil)

// CaptureController manages the microphone capture lifecycle:
//
//	Idle -> Requesting -> Recording -> Finalizing -> (Idle | Errored)
//
// Stop releases the audio device before the transcription request is
// issued, unconditionally. A clean transcript is handed straight to the
// assistant as a voice submission; an error-flagged one is surfaced as
// the transcript and never auto-submitted.
type CaptureController struct {
	recorder  driven.Recorder
	client    driven.AnalyticsClient
	assistant driving.AssistantService
	session   *Session

	mu    sync.Mutex
	phase domain.CapturePhase
}

// NewCaptureController creates a capture controller.
func NewCaptureController(
	recorder driven.Recorder,
	client driven.AnalyticsClient,
	assistant driving.AssistantService,
	session *Session,
) *CaptureController {
	return &CaptureController{
		recorder:  recorder,
		client:    client,
		assistant: assistant,
		session:   session,
		phase:     domain.CaptureIdle,
	}
}

// Phase returns the current capture phase.
func (c *CaptureController) Phase() domain.CapturePhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *CaptureController) setPhase(p domain.CapturePhase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
	c.session.SetCapturePhase(p)
}

// Start begins a capture session.
//
// Calling Start while already recording or finalizing is a no-op, not an
// error, so duplicate capture sessions cannot exist. Device denial is
// terminal for the attempt: the denial message becomes the transcript and
// the controller returns to Idle.
func (c *CaptureController) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.phase == domain.CaptureRecording || c.phase == domain.CaptureFinalizing {
		c.mu.Unlock()
		logger.Debug("capture start ignored in phase %s", c.phase)
		return nil
	}
	c.phase = domain.CaptureRequesting
	c.mu.Unlock()
	c.session.SetCapturePhase(domain.CaptureRequesting)

	if err := c.recorder.Start(ctx); err != nil {
		c.setPhase(domain.CaptureErrored)
		c.session.SetTranscript(deniedMessage)
		c.setPhase(domain.CaptureIdle)
		return fmt.Errorf("%w: %w", domain.ErrMicrophoneDenied, err)
	}

	c.setPhase(domain.CaptureRecording)
	c.session.SetTranscript(domain.ListeningSentinel)
	return nil
}

// Stop finalizes the capture session.
//
// The recorder is stopped first, which releases the physical device
// regardless of how transcription goes. The buffered audio is then
// submitted as a single payload; a clean transcript continues directly
// into the assistant's submission path.
func (c *CaptureController) Stop(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != domain.CaptureRecording {
		c.mu.Unlock()
		return fmt.Errorf("%w: stop from %s", domain.ErrInvalidCaptureState, c.phase)
	}
	c.phase = domain.CaptureFinalizing
	c.mu.Unlock()
	c.session.SetCapturePhase(domain.CaptureFinalizing)

	// Device release happens here, before any network traffic.
	audio, err := c.recorder.Stop()
	if err != nil {
		c.setPhase(domain.CaptureErrored)
		c.session.SetTranscript(fmt.Sprintf("Recording error: %s", err))
		c.setPhase(domain.CaptureIdle)
		return nil
	}

	transcript, err := c.client.Transcribe(ctx, audio)
	if err != nil {
		c.setPhase(domain.CaptureErrored)
		c.session.SetTranscript(fmt.Sprintf("Transcription error: %s", err))
		c.setPhase(domain.CaptureIdle)
		return nil
	}

	c.session.SetTranscript(transcript)

	if isErrorTranscript(transcript) {
		logger.Info("transcript flagged as error, not auto-submitting: %s", transcript)
		c.setPhase(domain.CaptureIdle)
		return nil
	}

	// Explicit continuation: the transcript goes straight into the
	// submission path. A submission already in flight drops it.
	if err := c.assistant.Submit(ctx, transcript, domain.SourceVoice); err != nil {
		if errors.Is(err, domain.ErrSubmissionInFlight) || errors.Is(err, domain.ErrEmptyQuery) {
			logger.Debug("auto-submit dropped: %v", err)
		} else {
			logger.Warn("auto-submit failed: %v", err)
		}
	}

	c.setPhase(domain.CaptureIdle)
	return nil
}

// isErrorTranscript reports whether the backend flagged the transcript as
// failed rather than returning real speech.
func isErrorTranscript(transcript string) bool {
	if strings.TrimSpace(transcript) == "" {
		return true
	}
	lower := strings.ToLower(transcript)
	return strings.Contains(lower, "error") || strings.Contains(lower, "failed")
}
