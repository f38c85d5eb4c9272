package repositories

import (
	"context"

	"github.com/oakpos/cashdesk/internal/core/domain"
)

// LedgerReader supplies, per session, the transaction postings recorded by
// the point-of-sale ledger. The engine folds cash postings into the expected
// balance and per-method postings into tender expectations.
type LedgerReader interface {
	// ListPostingsBySession retrieves all postings linked to a session.
	ListPostingsBySession(ctx context.Context, sessionID string) ([]domain.LedgerPosting, error)
}

// PaymentMethodReader supplies the enumerable payment-method catalog.
type PaymentMethodReader interface {
	// ListPaymentMethods retrieves all configured payment methods.
	ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
}

// StoreSessionReader gates drawer operations on the enclosing retail store
// session being open.
type StoreSessionReader interface {
	// IsStoreOpen reports whether the store currently has an open store
	// session.
	IsStoreOpen(ctx context.Context, storeID string) (bool, error)
}
