package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oakpos/cashdesk/internal/core/domain"
	portsrepo "github.com/oakpos/cashdesk/internal/core/ports/repositories"
)

type PgxJournalRepository struct {
	pool *pgxpool.Pool
}

// NewPgxJournalRepository creates a new repository for audit journal reads.
func NewPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalReader {
	return &PgxJournalRepository{pool: pool}
}

// appendJournalEntryTx inserts one journal entry inside an already-open
// transaction. The per-session sequence is assigned here, inside the commit,
// so it reflects commit order rather than request arrival order. Every
// mutating repository method calls this; there is no other write path into
// journal_entries.
func appendJournalEntryTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (entry_id, session_id, sequence, entry_type, amount, description, performed_by, adjustment_id, approved_by, created_at)
		VALUES ($1, $2, (SELECT COALESCE(MAX(sequence), 0) + 1 FROM journal_entries WHERE session_id = $2), $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		entry.EntryID,
		entry.SessionID,
		entry.EntryType,
		entry.Amount,
		entry.Description,
		entry.PerformedBy,
		entry.AdjustmentID,
		entry.ApprovedBy,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append journal entry for session %s: %w", entry.SessionID, err)
	}
	return nil
}

// ListEntriesBySession retrieves a session's journal entries ordered by
// sequence.
func (r *PgxJournalRepository) ListEntriesBySession(ctx context.Context, sessionID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT entry_id, session_id, sequence, entry_type, amount, description, performed_by, adjustment_id, approved_by, created_at
		FROM journal_entries
		WHERE session_id = $1
		ORDER BY sequence;
	`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		var entry domain.JournalEntry
		if err := rows.Scan(
			&entry.EntryID,
			&entry.SessionID,
			&entry.Sequence,
			&entry.EntryType,
			&entry.Amount,
			&entry.Description,
			&entry.PerformedBy,
			&entry.AdjustmentID,
			&entry.ApprovedBy,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row for session %s: %w", sessionID, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows for session %s: %w", sessionID, err)
	}

	return entries, nil
}
