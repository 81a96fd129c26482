package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyQuery indicates a query with no text, or text equal to the
	// capture placeholder. Such queries are dropped, never submitted.
	ErrEmptyQuery = errors.New("empty query")

	// ErrSubmissionInFlight indicates a query submission is already running.
	// A concurrent submission is dropped, not queued.
	ErrSubmissionInFlight = errors.New("submission already in flight")

	// ErrForwardInFlight indicates a report forward is already running.
	ErrForwardInFlight = errors.New("forward already in flight")

	// ErrNoArtifact indicates the current result carries no export artifact.
	ErrNoArtifact = errors.New("no report artifact available")

	// ErrBackendUnavailable indicates the analytics backend did not respond
	// with a success status. Non-fatal; surfaced as a banner.
	ErrBackendUnavailable = errors.New("analytics backend unavailable")

	// ErrMalformedResponse indicates the backend response is missing expected
	// fields. Treated the same as a transport failure.
	ErrMalformedResponse = errors.New("malformed backend response")

	// Capture Errors.

	// ErrMicrophoneDenied indicates the audio device could not be acquired.
	// Terminal for the capture attempt; the user must retry manually.
	ErrMicrophoneDenied = errors.New("microphone access denied")

	// ErrInvalidCaptureState indicates a capture transition was requested
	// from a state that does not permit it.
	ErrInvalidCaptureState = errors.New("invalid capture state")

	// ErrNoAudio indicates recording finished without buffering any audio.
	ErrNoAudio = errors.New("no audio captured")
)
