package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InterStoreTransferStatus tracks the two-phase inter-store flow.
type InterStoreTransferStatus string

const (
	TransferPending   InterStoreTransferStatus = "PENDING"
	TransferCompleted InterStoreTransferStatus = "COMPLETED"
	TransferVoided    InterStoreTransferStatus = "VOIDED"
)

// InterStoreTransfer records cash sent between stores. Send debits the source
// session and leaves the record pending; Receive credits a destination
// session at the other store and completes it. A pending transfer is a
// liability until received or voided.
type InterStoreTransfer struct {
	TransferID    string                   `json:"transferID"` // Primary Key (UUID)
	Reference     string                   `json:"reference"`  // short human-readable code
	FromStoreID   string                   `json:"fromStoreID"`
	ToStoreID     string                   `json:"toStoreID"`
	FromSessionID string                   `json:"fromSessionID"`
	ToSessionID   *string                  `json:"toSessionID,omitempty"`
	Amount        decimal.Decimal          `json:"amount"` // always positive
	Status        InterStoreTransferStatus `json:"status"`
	SentBy        string                   `json:"sentBy"`
	ReceivedBy    *string                  `json:"receivedBy,omitempty"`
	SentAt        time.Time                `json:"sentAt"`
	ReceivedAt    *time.Time               `json:"receivedAt,omitempty"`
}
