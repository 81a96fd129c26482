package driven

import "context"

// Recorder acquires the microphone and buffers captured audio.
//
// Implementations buffer in fixed one-second slices to bound memory and
// provide steady chunks. Acquisition failure (device busy, permission
// denied) is reported from Start as domain.ErrMicrophoneDenied.
type Recorder interface {
	// Start acquires the audio device and begins buffering.
	Start(ctx context.Context) error

	// Stop releases the audio device and returns everything buffered since
	// Start. The device is released even when the returned error is non-nil.
	Stop() ([]byte, error)
}
