package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tablewise/tablewise-cli/internal/core/domain"
	"github.com/tablewise/tablewise-cli/internal/core/ports/driven"
	"github.com/tablewise/tablewise-cli/internal/core/ports/driving"
	"github.com/tablewise/tablewise-cli/internal/logger"
)

// processingMessage is shown while a submission is in flight.
const processingMessage = "Processing your request..."

// Ensure QueryOrchestrator implements the interface.
var _ driving.AssistantService = (*QueryOrchestrator)(nil)

// QueryOrchestrator is the single authoritative path for turning a query
// into a displayed result and a history entry. At most one submission is
// in flight at a time; a concurrent Submit is dropped, not queued.
type QueryOrchestrator struct {
	client   driven.AnalyticsClient
	history  driven.HistoryStore
	identity domain.Identity
	session  *Session
}

// NewQueryOrchestrator creates an orchestrator for the given identity.
func NewQueryOrchestrator(
	client driven.AnalyticsClient,
	history driven.HistoryStore,
	identity domain.Identity,
	session *Session,
) *QueryOrchestrator {
	return &QueryOrchestrator{
		client:   client,
		history:  history,
		identity: identity,
		session:  session,
	}
}

// Submit runs one query through the backend.
//
// Rejections (empty text, capture sentinel, submission in flight) return
// the matching domain error without touching the session. Backend failures
// are absorbed into the session's response line: the previous result stays
// on display, no history entry is written, and nil is returned.
func (o *QueryOrchestrator) Submit(ctx context.Context, text string, source domain.QuerySource) error {
	query, err := domain.NewQuery(text, source)
	if err != nil {
		return err
	}
	if !o.session.BeginLoading() {
		return domain.ErrSubmissionInFlight
	}
	defer o.session.EndLoading()

	o.session.SetTranscript(query.Text)
	o.session.SetResponse(processingMessage)
	logger.Debug("submitting %s query: %s", query.Source, query.Text)

	result, err := o.client.Query(ctx, query.Text)
	if err != nil {
		o.session.SetResponse(fmt.Sprintf("Error: %s", err))
		logger.Info("query failed: %v", err)
		return nil
	}

	summary := result.Summary()
	o.session.SetResponse(summary)
	o.session.SetResult(result)
	o.session.ClearTypedInput()

	entry := domain.HistoryEntry{
		ID:              uuid.NewString(),
		Query:           query.Text,
		ResponseSummary: summary,
		ChartType:       result.ChartType,
		Result:          *result,
		Timestamp:       time.Now(),
	}
	// The history store is advisory: a failed append is logged, never
	// surfaced, never retried.
	if err := o.history.Append(ctx, o.identity, entry); err != nil {
		logger.Warn("history append failed: %v", err)
	}

	return nil
}

// Replay restores a past entry into the session. Pure and synchronous:
// no network call, no history mutation, no loading state.
func (o *QueryOrchestrator) Replay(entry domain.HistoryEntry) {
	result := entry.Result
	o.session.SetTranscript(entry.Query)
	o.session.SetResponse(entry.ResponseSummary)
	o.session.SetResult(&result)
}

// History returns the identity's retained entries, most recent first.
// Storage order is insertion order; the reversal here is display order.
func (o *QueryOrchestrator) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	entries, err := o.history.Load(ctx, o.identity)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Session returns a snapshot of the transient session state.
func (o *QueryOrchestrator) Session() driving.SessionSnapshot {
	return o.session.Snapshot()
}
