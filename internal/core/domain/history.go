package domain

import "time"

// HistoryWindow is how far back loaded history reaches. Entries older than
// this are silently dropped at load time and never resurrected.
const HistoryWindow = 7 * 24 * time.Hour

// HistoryEntry is one logged query/response pair. Append-only once written;
// never mutated, only pruned by age.
type HistoryEntry struct {
	// ID uniquely identifies the entry.
	ID string `json:"id"`

	// Query is the query text as submitted.
	Query string `json:"query"`

	// ResponseSummary is the composed response line shown to the user.
	ResponseSummary string `json:"response"`

	// ChartType mirrors the result's chart type for compact display.
	ChartType ChartType `json:"chart_type"`

	// Result is the full result payload, so a replay restores the chart.
	Result ResultModel `json:"result"`

	// Timestamp is when the entry was written.
	Timestamp time.Time `json:"timestamp"`
}

// Expired reports whether the entry falls outside the history window
// relative to now.
func (e HistoryEntry) Expired(now time.Time) bool {
	return e.Timestamp.Before(now.Add(-HistoryWindow))
}
