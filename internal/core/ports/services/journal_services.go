package services

import (
	"context"

	"github.com/oakpos/cashdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalSvcFacade reads the append-only audit journal.
type JournalSvcFacade interface {
	// ListEntries retrieves a session's journal entries in sequence order.
	ListEntries(ctx context.Context, sessionID string) ([]domain.JournalEntry, error)

	// ReplayBalance reconstructs the session's running balance purely from
	// journal entries.
	ReplayBalance(ctx context.Context, sessionID string) (decimal.Decimal, error)
}

// BalanceSvcFacade recomputes expected balances on demand.
type BalanceSvcFacade interface {
	// ExpectedBalance derives the session's expected cash balance from its
	// opening balance, adjustments and cash postings. Lock-free.
	ExpectedBalance(ctx context.Context, sessionID string) (decimal.Decimal, error)

	// TenderExpectations derives the per-payment-method expected totals from
	// ledger postings.
	TenderExpectations(ctx context.Context, sessionID string) ([]domain.TenderExpectation, error)
}
