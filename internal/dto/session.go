package dto

import (
	"time"

	"github.com/oakpos/cashdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenSessionRequest opens a new session on a drawer, or connects the caller
// to an existing open session when the drawer is shared.
type OpenSessionRequest struct {
	DrawerID string `json:"drawerID" binding:"required"`

	// Exactly one of OpeningAmount or OpeningDenominations must be supplied
	// when a new session is created. Neither is consumed on a connect.
	OpeningAmount        *decimal.Decimal          `json:"openingAmount,omitempty"`
	OpeningDenominations domain.DenominationCounts `json:"openingDenominations,omitempty"`

	// SharingMode resolves an undecided drawer on first open.
	SharingMode *bool `json:"sharingMode,omitempty"`

	// ConfirmDiscrepancy acknowledges an opening balance that differs from
	// the previous session's closing balance.
	ConfirmDiscrepancy bool `json:"confirmDiscrepancy,omitempty"`
}

// OpenSessionResponse is returned by Open. When the opening balance differs
// from the previous closing balance and the caller has not confirmed,
// RequiresConfirmation is set and no session is created.
type OpenSessionResponse struct {
	Session                *SessionResponse `json:"session,omitempty"`
	Connected              bool             `json:"connected"` // true when Open fell back to a connect
	RequiresConfirmation   bool             `json:"requiresConfirmation,omitempty"`
	PreviousClosingBalance *decimal.Decimal `json:"previousClosingBalance,omitempty"`
}

// SessionResponse is the externally visible shape of a session.
type SessionResponse struct {
	SessionID        string           `json:"sessionID"`
	DrawerID         string           `json:"drawerID"`
	Status           string           `json:"status"`
	OpenerEmployeeID string           `json:"openerEmployeeID"`
	OpeningBalance   decimal.Decimal  `json:"openingBalance"`
	ClosedAt         *time.Time       `json:"closedAt,omitempty"`
	ActualBalance    *decimal.Decimal `json:"actualBalance,omitempty"`
	Discrepancy      *decimal.Decimal `json:"discrepancy,omitempty"`
	CloseStatus      *string          `json:"closeStatus,omitempty"`
	ApprovedBy       *string          `json:"approvedBy,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// ToSessionResponse converts a domain.Session to its response DTO.
func ToSessionResponse(s *domain.Session) SessionResponse {
	resp := SessionResponse{
		SessionID:        s.SessionID,
		DrawerID:         s.DrawerID,
		Status:           string(s.Status),
		OpenerEmployeeID: s.OpenerEmployeeID,
		OpeningBalance:   s.OpeningBalance,
		ClosedAt:         s.ClosedAt,
		ActualBalance:    s.ActualBalance,
		Discrepancy:      s.Discrepancy,
		ApprovedBy:       s.ApprovedBy,
		CreatedAt:        s.CreatedAt,
	}
	if s.CloseStatus != nil {
		cs := string(*s.CloseStatus)
		resp.CloseStatus = &cs
	}
	return resp
}

// TenderCountInput is one counted payment-method total submitted at close.
type TenderCountInput struct {
	PaymentMethodID string          `json:"paymentMethodID" binding:"required"`
	CountedQty      int64           `json:"countedQty"`
	CountedAmount   decimal.Decimal `json:"countedAmount"`
}

// CloseSessionRequest submits the counted drawer contents for reconciliation.
type CloseSessionRequest struct {
	// Denominations carries the bill/coin counts; CountedAmount is accepted
	// instead when the drawer does not use individual denomination counting.
	Denominations domain.DenominationCounts `json:"denominations,omitempty"`
	CountedAmount *decimal.Decimal          `json:"countedAmount,omitempty"`

	// TenderCounts covers non-cash physical instruments and electronic
	// methods.
	TenderCounts []TenderCountInput `json:"tenderCounts,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// ForceCloseRequest re-submits a rejected close with manager credentials.
type ForceCloseRequest struct {
	ManagerUsername string              `json:"managerUsername" binding:"required"`
	ManagerPassword string              `json:"managerPassword" binding:"required"`
	Closing         CloseSessionRequest `json:"closing" binding:"required"`
}

// CloseSessionResponse reports the reconciliation outcome. Under blind-count
// policy the expected and discrepancy figures are omitted (Disclosable is
// false) when the close lands within threshold.
type CloseSessionResponse struct {
	SessionID   string `json:"sessionID"`
	CloseStatus string `json:"closeStatus"`
	Disclosable bool   `json:"disclosable"`

	Discrepancy           *decimal.Decimal `json:"discrepancy,omitempty"`
	ExpectedBalance       *decimal.Decimal `json:"expectedBalance,omitempty"`
	PhysicalDiscrepancy   *decimal.Decimal `json:"physicalDiscrepancy,omitempty"`
	ElectronicDiscrepancy *decimal.Decimal `json:"electronicDiscrepancy,omitempty"`

	Warnings       []string               `json:"warnings,omitempty"`
	JournalEntries []JournalEntryResponse `json:"journalEntries,omitempty"`
	ApproverID     *string                `json:"approverID,omitempty"`
}

// ConnectionResponse is the externally visible shape of a connection.
type ConnectionResponse struct {
	SessionID   string    `json:"sessionID"`
	EmployeeID  string    `json:"employeeID"`
	Role        string    `json:"role"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// ToConnectionResponse converts a domain.Connection to its response DTO.
func ToConnectionResponse(c *domain.Connection) ConnectionResponse {
	return ConnectionResponse{
		SessionID:   c.SessionID,
		EmployeeID:  c.EmployeeID,
		Role:        string(c.Role),
		ConnectedAt: c.ConnectedAt,
	}
}
