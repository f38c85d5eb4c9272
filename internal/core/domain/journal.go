package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryType classifies an audit journal entry.
type JournalEntryType string

const (
	EntryOpen           JournalEntryType = "OPEN"
	EntryConnect        JournalEntryType = "CONNECT"
	EntryDisconnect     JournalEntryType = "DISCONNECT"
	EntryClose          JournalEntryType = "CLOSE"
	EntryAdjustment     JournalEntryType = "ADJUSTMENT"
	EntryTransferDebit  JournalEntryType = "TRANSFER_DEBIT"
	EntryTransferCredit JournalEntryType = "TRANSFER_CREDIT"
)

// JournalEntry is one append-only audit record. Entries are never updated or
// deleted; the per-session sequence is assigned inside the same database
// transaction that commits the mutation, so it reflects true commit order.
type JournalEntry struct {
	EntryID     string           `json:"entryID"`   // Primary Key (UUID)
	SessionID   string           `json:"sessionID"` // FK -> sessions.session_id
	Sequence    int64            `json:"sequence"`  // monotonic per session
	EntryType   JournalEntryType `json:"entryType"`
	Amount      decimal.Decimal  `json:"amount"` // signed; OPEN carries the opening balance, CLOSE the discrepancy
	Description string           `json:"description,omitempty"`
	PerformedBy string           `json:"performedBy"`

	AdjustmentID *string `json:"adjustmentID,omitempty"`
	ApprovedBy   *string `json:"approvedBy,omitempty"` // manager identity on force-closed sessions

	CreatedAt time.Time `json:"createdAt"`
}
