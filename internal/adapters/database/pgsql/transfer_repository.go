package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oakpos/cashdesk/internal/apperrors"
	"github.com/oakpos/cashdesk/internal/core/domain"
	portsrepo "github.com/oakpos/cashdesk/internal/core/ports/repositories"
)

type PgxInterStoreTransferRepository struct {
	pool *pgxpool.Pool
}

// NewPgxInterStoreTransferRepository creates a new repository for the
// two-phase inter-store transfer flow.
func NewPgxInterStoreTransferRepository(pool *pgxpool.Pool) portsrepo.InterStoreTransferRepositoryFacade {
	return &PgxInterStoreTransferRepository{pool: pool}
}

const transferColumns = `transfer_id, reference, from_store_id, to_store_id, from_session_id, to_session_id, amount, status, sent_by, received_by, sent_at, received_at`

func scanTransfer(row pgx.Row) (*domain.InterStoreTransfer, error) {
	var t domain.InterStoreTransfer
	err := row.Scan(
		&t.TransferID,
		&t.Reference,
		&t.FromStoreID,
		&t.ToStoreID,
		&t.FromSessionID,
		&t.ToSessionID,
		&t.Amount,
		&t.Status,
		&t.SentBy,
		&t.ReceivedBy,
		&t.SentAt,
		&t.ReceivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan inter-store transfer row: %w", err)
	}
	return &t, nil
}

// FindInterStoreTransferByID retrieves a transfer record by ID.
func (r *PgxInterStoreTransferRepository) FindInterStoreTransferByID(ctx context.Context, transferID string) (*domain.InterStoreTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM inter_store_transfers WHERE transfer_id = $1;`
	return scanTransfer(r.pool.QueryRow(ctx, query, transferID))
}

// ListPendingInterStoreTransfers retrieves transfers awaiting receipt at the
// given destination store.
func (r *PgxInterStoreTransferRepository) ListPendingInterStoreTransfers(ctx context.Context, toStoreID string) ([]domain.InterStoreTransfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM inter_store_transfers
		WHERE to_store_id = $1 AND status = 'PENDING'
		ORDER BY sent_at;
	`
	rows, err := r.pool.Query(ctx, query, toStoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending transfers for store %s: %w", toStoreID, err)
	}
	defer rows.Close()

	transfers := []domain.InterStoreTransfer{}
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfer rows for store %s: %w", toStoreID, err)
	}

	return transfers, nil
}

// CreateInterStoreTransfer persists a pending transfer together with the
// debit adjustment on the sending session.
func (r *PgxInterStoreTransferRepository) CreateInterStoreTransfer(ctx context.Context, transfer domain.InterStoreTransfer, debit domain.Adjustment, entry domain.JournalEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		INSERT INTO inter_store_transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		transfer.TransferID,
		transfer.Reference,
		transfer.FromStoreID,
		transfer.ToStoreID,
		transfer.FromSessionID,
		transfer.ToSessionID,
		transfer.Amount,
		transfer.Status,
		transfer.SentBy,
		transfer.ReceivedBy,
		transfer.SentAt,
		transfer.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert inter-store transfer %s: %w", transfer.TransferID, err)
	}

	if err := insertAdjustmentTx(ctx, tx, debit); err != nil {
		return err
	}
	if err := appendJournalEntryTx(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit inter-store transfer %s: %w", transfer.TransferID, err)
	}
	return nil
}

// CompleteInterStoreTransfer marks a pending transfer completed and credits
// the receiving session. The status predicate in the UPDATE keeps a
// double receive out even across processes.
func (r *PgxInterStoreTransferRepository) CompleteInterStoreTransfer(ctx context.Context, transfer domain.InterStoreTransfer, credit domain.Adjustment, entry domain.JournalEntry) error {
	return r.settle(ctx, transfer, credit, entry)
}

// VoidInterStoreTransfer marks a pending transfer voided and restores the
// cash to the sending session.
func (r *PgxInterStoreTransferRepository) VoidInterStoreTransfer(ctx context.Context, transfer domain.InterStoreTransfer, reversal domain.Adjustment, entry domain.JournalEntry) error {
	return r.settle(ctx, transfer, reversal, entry)
}

func (r *PgxInterStoreTransferRepository) settle(ctx context.Context, transfer domain.InterStoreTransfer, adj domain.Adjustment, entry domain.JournalEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		UPDATE inter_store_transfers
		SET status = $2, to_session_id = $3, received_by = $4, received_at = $5
		WHERE transfer_id = $1 AND status = 'PENDING';
	`
	tag, err := tx.Exec(ctx, query,
		transfer.TransferID,
		transfer.Status,
		transfer.ToSessionID,
		transfer.ReceivedBy,
		transfer.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update inter-store transfer %s: %w", transfer.TransferID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transfer %s is not pending", apperrors.ErrConflict, transfer.TransferID)
	}

	if err := insertAdjustmentTx(ctx, tx, adj); err != nil {
		return err
	}
	if err := appendJournalEntryTx(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit settlement of inter-store transfer %s: %w", transfer.TransferID, err)
	}
	return nil
}
