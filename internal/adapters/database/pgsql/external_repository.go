package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oakpos/cashdesk/internal/core/domain"
	portsrepo "github.com/oakpos/cashdesk/internal/core/ports/repositories"
)

// PgxLedgerRepository reads the point-of-sale transaction postings that feed
// the expected-balance computation. The engine never writes this table.
type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

// NewPgxLedgerRepository creates a new read-only repository over the POS
// ledger postings.
func NewPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerReader {
	return &PgxLedgerRepository{pool: pool}
}

// ListPostingsBySession retrieves all postings linked to a session.
func (r *PgxLedgerRepository) ListPostingsBySession(ctx context.Context, sessionID string) ([]domain.LedgerPosting, error) {
	query := `
		SELECT session_id, amount, payment_method_id, created_at
		FROM ledger_postings
		WHERE session_id = $1
		ORDER BY created_at;
	`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger postings for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	postings := []domain.LedgerPosting{}
	for rows.Next() {
		var p domain.LedgerPosting
		if err := rows.Scan(&p.SessionID, &p.Amount, &p.PaymentMethodID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger posting row for session %s: %w", sessionID, err)
		}
		postings = append(postings, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger posting rows for session %s: %w", sessionID, err)
	}

	return postings, nil
}

// PgxPaymentMethodRepository reads the payment-method catalog.
type PgxPaymentMethodRepository struct {
	pool *pgxpool.Pool
}

// NewPgxPaymentMethodRepository creates a new read-only repository over the
// payment-method catalog.
func NewPgxPaymentMethodRepository(pool *pgxpool.Pool) portsrepo.PaymentMethodReader {
	return &PgxPaymentMethodRepository{pool: pool}
}

// ListPaymentMethods retrieves all configured payment methods.
func (r *PgxPaymentMethodRepository) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	query := `
		SELECT payment_method_id, name, kind, is_cash
		FROM payment_methods
		ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment methods: %w", err)
	}
	defer rows.Close()

	methods := []domain.PaymentMethod{}
	for rows.Next() {
		var m domain.PaymentMethod
		if err := rows.Scan(&m.PaymentMethodID, &m.Name, &m.Kind, &m.IsCash); err != nil {
			return nil, fmt.Errorf("failed to scan payment method row: %w", err)
		}
		methods = append(methods, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment method rows: %w", err)
	}

	return methods, nil
}

// PgxStoreSessionRepository reads the retail store's open/closed state.
type PgxStoreSessionRepository struct {
	pool *pgxpool.Pool
}

// NewPgxStoreSessionRepository creates a new read-only repository over store
// sessions.
func NewPgxStoreSessionRepository(pool *pgxpool.Pool) portsrepo.StoreSessionReader {
	return &PgxStoreSessionRepository{pool: pool}
}

// IsStoreOpen reports whether the store currently has an open store session.
func (r *PgxStoreSessionRepository) IsStoreOpen(ctx context.Context, storeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM store_sessions
			WHERE store_id = $1 AND closed_at IS NULL
		);
	`
	var open bool
	if err := r.pool.QueryRow(ctx, query, storeID).Scan(&open); err != nil {
		return false, fmt.Errorf("failed to check store session for store %s: %w", storeID, err)
	}
	return open, nil
}
