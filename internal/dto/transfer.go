package dto

import (
	"time"

	"github.com/oakpos/cashdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest moves cash between two open sessions along the drawer
// hierarchy.
type TransferRequest struct {
	SourceSessionID      string                    `json:"sourceSessionID" binding:"required"`
	DestinationSessionID string                    `json:"destinationSessionID" binding:"required"`
	Amount               decimal.Decimal           `json:"amount" binding:"required"`
	Denominations        domain.DenominationCounts `json:"denominations,omitempty"`
	Reason               string                    `json:"reason,omitempty"`
}

// AdjustmentResponse is the externally visible shape of an adjustment.
type AdjustmentResponse struct {
	AdjustmentID     string          `json:"adjustmentID"`
	SessionID        string          `json:"sessionID"`
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	Reason           string          `json:"reason,omitempty"`
	PerformedBy      string          `json:"performedBy"`
	CounterSessionID *string         `json:"counterSessionID,omitempty"`
	ExternalRef      string          `json:"externalRef,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ToAdjustmentResponse converts a domain.Adjustment to its response DTO.
func ToAdjustmentResponse(a *domain.Adjustment) AdjustmentResponse {
	return AdjustmentResponse{
		AdjustmentID:     a.AdjustmentID,
		SessionID:        a.SessionID,
		Type:             string(a.Type),
		Amount:           a.Amount,
		Reason:           a.Reason,
		PerformedBy:      a.PerformedBy,
		CounterSessionID: a.CounterSessionID,
		ExternalRef:      a.ExternalRef,
		CreatedAt:        a.CreatedAt,
	}
}

// TransferResponse carries both legs of a completed transfer.
type TransferResponse struct {
	Debit  AdjustmentResponse `json:"debit"`
	Credit AdjustmentResponse `json:"credit"`
}

// BankMovementRequest deposits to or withdraws from a bank against the
// master safe session.
type BankMovementRequest struct {
	SessionID string          `json:"sessionID" binding:"required"`
	BankID    string          `json:"bankID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Reference string          `json:"reference,omitempty"`
}

// PettyCashRequest pays out an expense from an open session.
type PettyCashRequest struct {
	SessionID   string          `json:"sessionID" binding:"required"`
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

// ManualAdjustmentRequest records a correction or other signed movement.
type ManualAdjustmentRequest struct {
	SessionID string          `json:"sessionID" binding:"required"`
	Type      string          `json:"type" binding:"required,oneof=CORRECTION OTHER"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Reason    string          `json:"reason" binding:"required"`
}

// InterStoreSendRequest starts the two-phase inter-store transfer.
type InterStoreSendRequest struct {
	SessionID string          `json:"sessionID" binding:"required"`
	ToStoreID string          `json:"toStoreID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// InterStoreReceiveRequest completes a pending inter-store transfer into a
// session at the destination store.
type InterStoreReceiveRequest struct {
	SessionID string `json:"sessionID" binding:"required"`
}

// InterStoreTransferResponse is the externally visible transfer record.
type InterStoreTransferResponse struct {
	TransferID    string          `json:"transferID"`
	Reference     string          `json:"reference"`
	FromStoreID   string          `json:"fromStoreID"`
	ToStoreID     string          `json:"toStoreID"`
	FromSessionID string          `json:"fromSessionID"`
	ToSessionID   *string         `json:"toSessionID,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	SentBy        string          `json:"sentBy"`
	ReceivedBy    *string         `json:"receivedBy,omitempty"`
	SentAt        time.Time       `json:"sentAt"`
	ReceivedAt    *time.Time      `json:"receivedAt,omitempty"`
}

// ToInterStoreTransferResponse converts the domain record to its DTO.
func ToInterStoreTransferResponse(t *domain.InterStoreTransfer) InterStoreTransferResponse {
	return InterStoreTransferResponse{
		TransferID:    t.TransferID,
		Reference:     t.Reference,
		FromStoreID:   t.FromStoreID,
		ToStoreID:     t.ToStoreID,
		FromSessionID: t.FromSessionID,
		ToSessionID:   t.ToSessionID,
		Amount:        t.Amount,
		Status:        string(t.Status),
		SentBy:        t.SentBy,
		ReceivedBy:    t.ReceivedBy,
		SentAt:        t.SentAt,
		ReceivedAt:    t.ReceivedAt,
	}
}
