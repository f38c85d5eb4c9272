package repositories

import (
	"context"

	"github.com/oakpos/cashdesk/internal/core/domain"
)

// JournalReader defines read access to the audit journal. There is no
// standalone journal writer port: entries are appended only inside the same
// database transaction as the mutation they record, by the session,
// adjustment and transfer repositories.
type JournalReader interface {
	// ListEntriesBySession retrieves a session's journal entries ordered by
	// sequence.
	ListEntriesBySession(ctx context.Context, sessionID string) ([]domain.JournalEntry, error)
}
