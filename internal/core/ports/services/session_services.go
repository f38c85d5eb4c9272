package services

import (
	"context"

	"github.com/oakpos/cashdesk/internal/core/domain"
	"github.com/oakpos/cashdesk/internal/dto"
)

// SessionSvcFacade owns the session lifecycle: open, connect, disconnect,
// close and the manager-approved force close.
type SessionSvcFacade interface {
	// Open opens a new session on the drawer, or connects the employee to
	// the existing open session when the drawer is shared.
	Open(ctx context.Context, req dto.OpenSessionRequest, employeeID string) (*dto.OpenSessionResponse, error)

	// Connect attaches the employee to an open shared session. Idempotent
	// per employee.
	Connect(ctx context.Context, sessionID, employeeID string) (*domain.Session, error)

	// Disconnect removes a connected employee from the session.
	Disconnect(ctx context.Context, sessionID, employeeID string) error

	// Close reconciles the counted contents against the expected balance and
	// closes the session when the discrepancy is within threshold.
	Close(ctx context.Context, sessionID string, req dto.CloseSessionRequest, employeeID string) (*dto.CloseSessionResponse, error)

	// ForceClose closes an over-threshold session after re-authenticating a
	// manager; the approver is recorded on the session and journal entry.
	ForceClose(ctx context.Context, sessionID string, req dto.ForceCloseRequest, employeeID string) (*dto.CloseSessionResponse, error)

	// GetSession retrieves a session with its connections.
	GetSession(ctx context.Context, sessionID string) (*domain.Session, []domain.Connection, error)
}
