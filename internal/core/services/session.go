package services

import (
	"sync"

	"github.com/tablewise/tablewise-cli/internal/core/domain"
	"github.com/tablewise/tablewise-cli/internal/core/ports/driving"
)

// Session holds the transient per-process state shared by the services.
// It is created when the process starts and discarded when it exits;
// nothing in it survives a restart. The loading flag doubles as the
// single-slot mutual exclusion for query submission.
type Session struct {
	mu         sync.RWMutex
	transcript string
	response   string
	typedInput string
	result     *domain.ResultModel
	loading    bool
	phase      domain.CapturePhase
}

// NewSession creates a session with idle defaults.
func NewSession() *Session {
	return &Session{phase: domain.CaptureIdle}
}

// BeginLoading atomically claims the submission slot.
// Returns false when a submission is already in flight.
func (s *Session) BeginLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return false
	}
	s.loading = true
	return true
}

// EndLoading releases the submission slot. This is the sole point that
// unblocks the next submission.
func (s *Session) EndLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

// Loading reports whether a submission is in flight.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetTranscript records the current query text.
func (s *Session) SetTranscript(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = text
}

// Transcript returns the current query text.
func (s *Session) Transcript() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transcript
}

// SetResponse records the current response line.
func (s *Session) SetResponse(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.response = text
}

// SetResult records the current chart payload.
func (s *Session) SetResult(r *domain.ResultModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = r
}

// Result returns the current chart payload, nil before the first success.
func (s *Session) Result() *domain.ResultModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// SetTypedInput records the pending typed-input buffer.
func (s *Session) SetTypedInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typedInput = text
}

// ClearTypedInput discards the pending typed-input buffer.
func (s *Session) ClearTypedInput() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typedInput = ""
}

// SetCapturePhase records the microphone lifecycle phase.
func (s *Session) SetCapturePhase(p domain.CapturePhase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = p
}

// CapturePhase returns the microphone lifecycle phase.
func (s *Session) CapturePhase() domain.CapturePhase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Snapshot returns a point-in-time copy for display.
func (s *Session) Snapshot() driving.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return driving.SessionSnapshot{
		Transcript:   s.transcript,
		Response:     s.response,
		TypedInput:   s.typedInput,
		Result:       s.result,
		Loading:      s.loading,
		CapturePhase: s.phase,
	}
}
