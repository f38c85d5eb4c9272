package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oakpos/cashdesk/internal/core/domain"
	portsrepo "github.com/oakpos/cashdesk/internal/core/ports/repositories"
)

type PgxAdjustmentRepository struct {
	pool *pgxpool.Pool
}

// NewPgxAdjustmentRepository creates a new repository for money movements.
func NewPgxAdjustmentRepository(pool *pgxpool.Pool) portsrepo.AdjustmentRepositoryFacade {
	return &PgxAdjustmentRepository{pool: pool}
}

// SaveAdjustment persists one signed adjustment and its journal entry in a
// single transaction.
func (r *PgxAdjustmentRepository) SaveAdjustment(ctx context.Context, adj domain.Adjustment, entry domain.JournalEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := insertAdjustmentTx(ctx, tx, adj); err != nil {
		return err
	}
	if err := appendJournalEntryTx(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit adjustment %s: %w", adj.AdjustmentID, err)
	}
	return nil
}

// SaveTransferPair persists the debit and credit legs of a transfer and both
// journal entries in one transaction. Either both adjustment rows exist
// afterwards, or neither does.
func (r *PgxAdjustmentRepository) SaveTransferPair(ctx context.Context, debit, credit domain.Adjustment, debitEntry, creditEntry domain.JournalEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := insertAdjustmentTx(ctx, tx, debit); err != nil {
		return err
	}
	if err := insertAdjustmentTx(ctx, tx, credit); err != nil {
		return err
	}
	if err := appendJournalEntryTx(ctx, tx, debitEntry); err != nil {
		return err
	}
	if err := appendJournalEntryTx(ctx, tx, creditEntry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transfer pair %s/%s: %w", debit.AdjustmentID, credit.AdjustmentID, err)
	}
	return nil
}

func insertAdjustmentTx(ctx context.Context, tx pgx.Tx, adj domain.Adjustment) error {
	query := `
		INSERT INTO adjustments (adjustment_id, session_id, type, amount, reason, performed_by, denominations, counter_session_id, external_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		adj.AdjustmentID,
		adj.SessionID,
		adj.Type,
		adj.Amount,
		adj.Reason,
		adj.PerformedBy,
		adj.Denominations,
		adj.CounterSessionID,
		adj.ExternalRef,
		adj.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert adjustment %s: %w", adj.AdjustmentID, err)
	}
	return nil
}
