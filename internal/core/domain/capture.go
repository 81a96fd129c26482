package domain

// CapturePhase models the microphone-recording lifecycle.
type CapturePhase string

const (
	// CaptureIdle means no capture session exists.
	CaptureIdle CapturePhase = "idle"

	// CaptureRequesting means device acquisition is in progress.
	CaptureRequesting CapturePhase = "requesting"

	// CaptureRecording means audio is being buffered.
	CaptureRecording CapturePhase = "recording"

	// CaptureFinalizing means the device is released and the buffered audio
	// is being transcribed.
	CaptureFinalizing CapturePhase = "finalizing"

	// CaptureErrored means the last capture attempt failed. Terminal for
	// that attempt; the next Start begins from Idle semantics.
	CaptureErrored CapturePhase = "errored"
)
