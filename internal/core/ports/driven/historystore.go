package driven

import (
	"context"

	"github.com/tablewise/tablewise-cli/internal/core/domain"
)

// HistoryStore persists the per-identity query/response log.
//
// The store is advisory, never a system of record: callers log write
// failures and continue. Entries for one identity are never visible to
// another; isolation runs on the identity's derived storage key.
type HistoryStore interface {
	// Load returns the identity's entries in insertion order, excluding any
	// entry older than domain.HistoryWindow. The window is applied on every
	// load, not swept proactively, so dropped entries never resurface.
	Load(ctx context.Context, identity domain.Identity) ([]domain.HistoryEntry, error)

	// Append adds an entry to the end of the identity's log.
	Append(ctx context.Context, identity domain.Identity, entry domain.HistoryEntry) error
}
