package repositories

import (
	"context"

	"github.com/oakpos/cashdesk/internal/core/domain"
)

// SessionReader defines read operations for session data.
type SessionReader interface {
	// FindSessionByID retrieves a session by its unique identifier.
	FindSessionByID(ctx context.Context, sessionID string) (*domain.Session, error)

	// FindOpenSessionByDrawerID retrieves the single open session for a
	// drawer, or apperrors.ErrNotFound when the drawer is idle.
	FindOpenSessionByDrawerID(ctx context.Context, drawerID string) (*domain.Session, error)

	// FindOpenSessionForEmployee retrieves an open session the employee is
	// attached to (as opener or connected) on a drawer of the given type.
	FindOpenSessionForEmployee(ctx context.Context, employeeID string, drawerType domain.DrawerType) (*domain.Session, error)

	// FindLastClosedSessionByDrawerID retrieves the most recently closed
	// session for a drawer, used for the opening-balance continuity check.
	FindLastClosedSessionByDrawerID(ctx context.Context, drawerID string) (*domain.Session, error)

	// ListConnections retrieves all connections attached to a session.
	ListConnections(ctx context.Context, sessionID string) ([]domain.Connection, error)

	// ListAdjustmentsBySession retrieves all adjustments owned by a session.
	ListAdjustmentsBySession(ctx context.Context, sessionID string) ([]domain.Adjustment, error)
}

// SessionWriter defines the mutating operations of the session lifecycle.
// Every method is a single atomic unit: all rows (session, connection,
// tender balances, journal entry with its sequence) are committed together
// or not at all.
type SessionWriter interface {
	// OpenSession persists a new session, the opener connection, any
	// open-phase tender balances, and the OPEN journal entry.
	OpenSession(ctx context.Context, session domain.Session, opener domain.Connection, tenders []domain.TenderBalance, entry domain.JournalEntry) error

	// SaveConnection persists an additional connection and its journal entry.
	SaveConnection(ctx context.Context, conn domain.Connection, entry domain.JournalEntry) error

	// DeleteConnection removes a connection and records the journal entry.
	DeleteConnection(ctx context.Context, sessionID, employeeID string, entry domain.JournalEntry) error

	// CloseSession marks the session closed with its reconciliation result,
	// persists close-phase tender balances, and the CLOSE journal entry.
	CloseSession(ctx context.Context, session domain.Session, tenders []domain.TenderBalance, entry domain.JournalEntry) error
}

// SessionRepositoryFacade combines all session repository interfaces.
type SessionRepositoryFacade interface {
	SessionReader
	SessionWriter
}
