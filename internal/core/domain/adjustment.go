package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentType classifies a non-sale money movement.
type AdjustmentType string

const (
	TransferIn     AdjustmentType = "TRANSFER_IN"
	TransferOut    AdjustmentType = "TRANSFER_OUT"
	BankDeposit    AdjustmentType = "BANK_DEPOSIT"
	BankWithdrawal AdjustmentType = "BANK_WITHDRAWAL"
	PettyCash      AdjustmentType = "PETTY_CASH"
	Correction     AdjustmentType = "CORRECTION"
	OtherMovement  AdjustmentType = "OTHER"
)

// Adjustment is a signed ledger entry against an open session. Adjustments
// are immutable once created; reversals are new entries, never edits.
type Adjustment struct {
	AdjustmentID string          `json:"adjustmentID"` // Primary Key (UUID)
	SessionID    string          `json:"sessionID"`    // FK -> sessions.session_id
	Type         AdjustmentType  `json:"type"`
	Amount       decimal.Decimal `json:"amount"` // signed: credits positive, debits negative
	Reason       string          `json:"reason"`
	PerformedBy  string          `json:"performedBy"`

	Denominations DenominationCounts `json:"denominations,omitempty"`

	// CounterSessionID links the two legs of a drawer-to-drawer transfer.
	CounterSessionID *string `json:"counterSessionID,omitempty"`

	// ExternalRef holds a bank reference, expense account or inter-store
	// transfer reference depending on Type.
	ExternalRef string `json:"externalRef,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
