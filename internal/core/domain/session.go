package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus indicates the lifecycle state of a drawer session.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "OPEN"
	SessionClosed SessionStatus = "CLOSED"
)

// CloseStatus records how a closed session reconciled.
type CloseStatus string

const (
	CloseBalanced    CloseStatus = "BALANCED"     // discrepancy exactly zero
	CloseWithinLimit CloseStatus = "WITHIN_LIMIT" // non-zero but under threshold
	CloseApproved    CloseStatus = "APPROVED"     // over threshold, manager approved
)

// Session is one open-to-close working period for a drawer. It owns every
// adjustment, connection, tender balance and journal entry created while it
// is open. Exactly one session may be open per drawer at a time.
type Session struct {
	SessionID        string        `json:"sessionID"` // Primary Key (UUID)
	DrawerID         string        `json:"drawerID"`  // FK -> drawers.drawer_id
	Status           SessionStatus `json:"status"`
	OpenerEmployeeID string        `json:"openerEmployeeID"`

	OpeningBalance       decimal.Decimal    `json:"openingBalance"`
	OpeningDenominations DenominationCounts `json:"openingDenominations,omitempty"`

	// Set only at close. Discrepancy is actual minus expected and is
	// undefined while the session is open.
	ClosedAt      *time.Time       `json:"closedAt,omitempty"`
	ActualBalance *decimal.Decimal `json:"actualBalance,omitempty"`
	Discrepancy   *decimal.Decimal `json:"discrepancy,omitempty"`
	CloseStatus   *CloseStatus     `json:"closeStatus,omitempty"`
	ClosingNotes  string           `json:"closingNotes,omitempty"`
	ApprovedBy    *string          `json:"approvedBy,omitempty"` // manager who authorized a force close

	AuditFields
}

// ConnectionRole distinguishes the session opener from additionally attached
// employees on a shared drawer.
type ConnectionRole string

const (
	RoleOpener    ConnectionRole = "OPENER"
	RoleConnected ConnectionRole = "CONNECTED"
)

// Connection attaches an employee to an open session. The opener's connection
// is created with the session; connected employees may detach independently.
type Connection struct {
	SessionID   string         `json:"sessionID"`
	EmployeeID  string         `json:"employeeID"`
	Role        ConnectionRole `json:"role"`
	ConnectedAt time.Time      `json:"connectedAt"`
}
