package domain

import (
	"fmt"
	"strings"
	"time"
)

// ListeningSentinel is the placeholder transcript shown while the microphone
// is live. It must never reach the backend as a query.
const ListeningSentinel = "Listening..."

// QuerySource identifies how a query was produced.
type QuerySource string

const (
	// SourceTyped means the query was entered as text.
	SourceTyped QuerySource = "typed"

	// SourceVoice means the query was transcribed from captured audio.
	SourceVoice QuerySource = "voice"
)

// Query is a submitted business question. Immutable once created.
type Query struct {
	// Text is the raw query text sent to the backend.
	Text string

	// Source records whether the query was typed or voice-transcribed.
	Source QuerySource

	// SubmittedAt is when the query was created.
	SubmittedAt time.Time
}

// NewQuery creates a Query, rejecting empty text and the capture sentinel.
func NewQuery(text string, source QuerySource) (Query, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == ListeningSentinel {
		return Query{}, fmt.Errorf("%w: %q", ErrEmptyQuery, text)
	}
	return Query{
		Text:        text,
		Source:      source,
		SubmittedAt: time.Now(),
	}, nil
}
