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

type PgxSessionRepository struct {
	pool *pgxpool.Pool
}

// NewPgxSessionRepository creates a new repository for session lifecycle data.
func NewPgxSessionRepository(pool *pgxpool.Pool) portsrepo.SessionRepositoryFacade {
	return &PgxSessionRepository{pool: pool}
}

const sessionColumns = `session_id, drawer_id, status, opener_employee_id, opening_balance, opening_denominations, closed_at, actual_balance, discrepancy, close_status, closing_notes, approved_by, created_at, created_by, last_updated_at, last_updated_by`

func scanSession(row pgx.Row) (*domain.Session, error) {
	var session domain.Session
	err := row.Scan(
		&session.SessionID,
		&session.DrawerID,
		&session.Status,
		&session.OpenerEmployeeID,
		&session.OpeningBalance,
		&session.OpeningDenominations,
		&session.ClosedAt,
		&session.ActualBalance,
		&session.Discrepancy,
		&session.CloseStatus,
		&session.ClosingNotes,
		&session.ApprovedBy,
		&session.CreatedAt,
		&session.CreatedBy,
		&session.LastUpdatedAt,
		&session.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan session row: %w", err)
	}
	return &session, nil
}

// FindSessionByID retrieves a session by its ID.
func (r *PgxSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE session_id = $1;`
	return scanSession(r.pool.QueryRow(ctx, query, sessionID))
}

// FindOpenSessionByDrawerID retrieves the single open session for a drawer.
func (r *PgxSessionRepository) FindOpenSessionByDrawerID(ctx context.Context, drawerID string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE drawer_id = $1 AND status = 'OPEN';`
	return scanSession(r.pool.QueryRow(ctx, query, drawerID))
}

// FindOpenSessionForEmployee retrieves an open session the employee is
// attached to on a drawer of the given type.
func (r *PgxSessionRepository) FindOpenSessionForEmployee(ctx context.Context, employeeID string, drawerType domain.DrawerType) (*domain.Session, error) {
	query := `
		SELECT s.session_id, s.drawer_id, s.status, s.opener_employee_id, s.opening_balance, s.opening_denominations, s.closed_at, s.actual_balance, s.discrepancy, s.close_status, s.closing_notes, s.approved_by, s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
		FROM sessions s
		JOIN connections c ON c.session_id = s.session_id
		JOIN drawers d ON d.drawer_id = s.drawer_id
		WHERE c.employee_id = $1 AND d.type = $2 AND s.status = 'OPEN'
		LIMIT 1;
	`
	return scanSession(r.pool.QueryRow(ctx, query, employeeID, drawerType))
}

// FindLastClosedSessionByDrawerID retrieves the most recently closed session
// for a drawer.
func (r *PgxSessionRepository) FindLastClosedSessionByDrawerID(ctx context.Context, drawerID string) (*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE drawer_id = $1 AND status = 'CLOSED'
		ORDER BY closed_at DESC
		LIMIT 1;
	`
	return scanSession(r.pool.QueryRow(ctx, query, drawerID))
}

// ListConnections retrieves all connections attached to a session.
func (r *PgxSessionRepository) ListConnections(ctx context.Context, sessionID string) ([]domain.Connection, error) {
	query := `
		SELECT session_id, employee_id, role, connected_at
		FROM connections
		WHERE session_id = $1
		ORDER BY connected_at;
	`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query connections for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	connections := []domain.Connection{}
	for rows.Next() {
		var conn domain.Connection
		if err := rows.Scan(&conn.SessionID, &conn.EmployeeID, &conn.Role, &conn.ConnectedAt); err != nil {
			return nil, fmt.Errorf("failed to scan connection row for session %s: %w", sessionID, err)
		}
		connections = append(connections, conn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating connection rows for session %s: %w", sessionID, err)
	}

	return connections, nil
}

// ListAdjustmentsBySession retrieves all adjustments owned by a session.
func (r *PgxSessionRepository) ListAdjustmentsBySession(ctx context.Context, sessionID string) ([]domain.Adjustment, error) {
	query := `
		SELECT adjustment_id, session_id, type, amount, reason, performed_by, denominations, counter_session_id, external_ref, created_at
		FROM adjustments
		WHERE session_id = $1
		ORDER BY created_at;
	`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustments for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	adjustments := []domain.Adjustment{}
	for rows.Next() {
		var adj domain.Adjustment
		if err := rows.Scan(
			&adj.AdjustmentID,
			&adj.SessionID,
			&adj.Type,
			&adj.Amount,
			&adj.Reason,
			&adj.PerformedBy,
			&adj.Denominations,
			&adj.CounterSessionID,
			&adj.ExternalRef,
			&adj.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan adjustment row for session %s: %w", sessionID, err)
		}
		adjustments = append(adjustments, adj)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating adjustment rows for session %s: %w", sessionID, err)
	}

	return adjustments, nil
}

// OpenSession persists the session, the opener connection, any open-phase
// tender balances and the OPEN journal entry in one transaction.
func (r *PgxSessionRepository) OpenSession(ctx context.Context, session domain.Session, opener domain.Connection, tenders []domain.TenderBalance, entry domain.JournalEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	sessionQuery := `
		INSERT INTO sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, sessionQuery,
		session.SessionID,
		session.DrawerID,
		session.Status,
		session.OpenerEmployeeID,
		session.OpeningBalance,
		session.OpeningDenominations,
		session.ClosedAt,
		session.ActualBalance,
		session.Discrepancy,
		session.CloseStatus,
		session.ClosingNotes,
		session.ApprovedBy,
		session.CreatedAt,
		session.CreatedBy,
		session.LastUpdatedAt,
		session.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session %s: %w", session.SessionID, err)
	}

	if err := insertConnectionTx(ctx, tx, opener); err != nil {
		return err
	}
	if err := insertTenderBalancesTx(ctx, tx, tenders); err != nil {
		return err
	}
	if err := appendJournalEntryTx(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit open for session %s: %w", session.SessionID, err)
	}
	return nil
}

// SaveConnection persists an additional connection with its journal entry.
func (r *PgxSessionRepository) SaveConnection(ctx context.Context, conn domain.Connection, entry domain.JournalEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := insertConnectionTx(ctx, tx, conn); err != nil {
		return err
	}
	if err := appendJournalEntryTx(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit connection for session %s: %w", conn.SessionID, err)
	}
	return nil
}

// DeleteConnection removes a connection and records the journal entry.
func (r *PgxSessionRepository) DeleteConnection(ctx context.Context, sessionID, employeeID string, entry domain.JournalEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, `DELETE FROM connections WHERE session_id = $1 AND employee_id = $2;`, sessionID, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete connection for session %s: %w", sessionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	if err := appendJournalEntryTx(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit disconnection for session %s: %w", sessionID, err)
	}
	return nil
}

// CloseSession marks the session closed, persists close-phase tender balances
// and the CLOSE journal entry in one transaction.
func (r *PgxSessionRepository) CloseSession(ctx context.Context, session domain.Session, tenders []domain.TenderBalance, entry domain.JournalEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	closeQuery := `
		UPDATE sessions
		SET status = $2, closed_at = $3, actual_balance = $4, discrepancy = $5, close_status = $6, closing_notes = $7, approved_by = $8, last_updated_at = $9, last_updated_by = $10
		WHERE session_id = $1 AND status = 'OPEN';
	`
	tag, err := tx.Exec(ctx, closeQuery,
		session.SessionID,
		session.Status,
		session.ClosedAt,
		session.ActualBalance,
		session.Discrepancy,
		session.CloseStatus,
		session.ClosingNotes,
		session.ApprovedBy,
		session.LastUpdatedAt,
		session.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to close session %s: %w", session.SessionID, err)
	}
	if tag.RowsAffected() == 0 {
		// Lost a race with another close; the per-session lock should make
		// this unreachable.
		return fmt.Errorf("%w: session %s is not open", apperrors.ErrConflict, session.SessionID)
	}

	if err := insertTenderBalancesTx(ctx, tx, tenders); err != nil {
		return err
	}
	if err := appendJournalEntryTx(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit close for session %s: %w", session.SessionID, err)
	}
	return nil
}

func insertConnectionTx(ctx context.Context, tx pgx.Tx, conn domain.Connection) error {
	query := `
		INSERT INTO connections (session_id, employee_id, role, connected_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := tx.Exec(ctx, query, conn.SessionID, conn.EmployeeID, conn.Role, conn.ConnectedAt)
	if err != nil {
		return fmt.Errorf("failed to insert connection for session %s: %w", conn.SessionID, err)
	}
	return nil
}

func insertTenderBalancesTx(ctx context.Context, tx pgx.Tx, tenders []domain.TenderBalance) error {
	if len(tenders) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO tender_balances (session_id, payment_method_id, kind, phase, counted_qty, counted_amount, expected_qty, expected_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, tb := range tenders {
		batch.Queue(query,
			tb.SessionID,
			tb.PaymentMethodID,
			tb.Kind,
			tb.Phase,
			tb.CountedQty,
			tb.CountedAmount,
			tb.ExpectedQty,
			tb.ExpectedAmount,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute tender balance batch: %w", err)
	}
	return nil
}
