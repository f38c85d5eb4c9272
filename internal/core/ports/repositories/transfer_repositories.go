package repositories

import (
	"context"

	"github.com/oakpos/cashdesk/internal/core/domain"
)

// InterStoreTransferReader defines read operations for inter-store transfers.
type InterStoreTransferReader interface {
	// FindInterStoreTransferByID retrieves a transfer record by ID.
	FindInterStoreTransferByID(ctx context.Context, transferID string) (*domain.InterStoreTransfer, error)

	// ListPendingInterStoreTransfers retrieves transfers awaiting receipt at
	// the given destination store.
	ListPendingInterStoreTransfers(ctx context.Context, toStoreID string) ([]domain.InterStoreTransfer, error)
}

// InterStoreTransferWriter defines the two-phase inter-store mutations.
// Each method commits the transfer record, its adjustment leg and the journal
// entry in one transaction.
type InterStoreTransferWriter interface {
	// CreateInterStoreTransfer persists a pending transfer together with the
	// debit adjustment on the sending session.
	CreateInterStoreTransfer(ctx context.Context, transfer domain.InterStoreTransfer, debit domain.Adjustment, entry domain.JournalEntry) error

	// CompleteInterStoreTransfer marks a pending transfer completed and
	// credits the receiving session.
	CompleteInterStoreTransfer(ctx context.Context, transfer domain.InterStoreTransfer, credit domain.Adjustment, entry domain.JournalEntry) error

	// VoidInterStoreTransfer marks a pending transfer voided and restores the
	// cash to the sending session via a reversal adjustment.
	VoidInterStoreTransfer(ctx context.Context, transfer domain.InterStoreTransfer, reversal domain.Adjustment, entry domain.JournalEntry) error
}

// InterStoreTransferRepositoryFacade combines the inter-store interfaces.
type InterStoreTransferRepositoryFacade interface {
	InterStoreTransferReader
	InterStoreTransferWriter
}
