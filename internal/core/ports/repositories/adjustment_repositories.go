package repositories

import (
	"context"

	"github.com/oakpos/cashdesk/internal/core/domain"
)

// AdjustmentWriter persists money movements. Both methods are atomic units
// that also append the journal entries with their commit-ordered sequences.
type AdjustmentWriter interface {
	// SaveAdjustment persists one signed adjustment (bank move, petty cash,
	// correction) and its journal entry.
	SaveAdjustment(ctx context.Context, adj domain.Adjustment, entry domain.JournalEntry) error

	// SaveTransferPair persists the debit and credit legs of a
	// drawer-to-drawer transfer and both journal entries in one transaction.
	// Either both adjustment rows are written, or neither is.
	SaveTransferPair(ctx context.Context, debit, credit domain.Adjustment, debitEntry, creditEntry domain.JournalEntry) error
}

// AdjustmentRepositoryFacade combines adjustment repository interfaces.
type AdjustmentRepositoryFacade interface {
	AdjustmentWriter
}
