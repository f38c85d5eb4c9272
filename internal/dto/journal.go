package dto

import (
	"time"

	"github.com/oakpos/cashdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryResponse is the externally visible shape of an audit entry.
type JournalEntryResponse struct {
	EntryID     string          `json:"entryID"`
	SessionID   string          `json:"sessionID"`
	Sequence    int64           `json:"sequence"`
	EntryType   string          `json:"entryType"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	PerformedBy string          `json:"performedBy"`
	ApprovedBy  *string         `json:"approvedBy,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:     e.EntryID,
		SessionID:   e.SessionID,
		Sequence:    e.Sequence,
		EntryType:   string(e.EntryType),
		Amount:      e.Amount,
		Description: e.Description,
		PerformedBy: e.PerformedBy,
		ApprovedBy:  e.ApprovedBy,
		CreatedAt:   e.CreatedAt,
	}
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}

// SessionJournalResponse lists a session's entries with the balance
// reconstructed by replay.
type SessionJournalResponse struct {
	SessionID       string                 `json:"sessionID"`
	Entries         []JournalEntryResponse `json:"entries"`
	ReplayedBalance decimal.Decimal        `json:"replayedBalance"`
}

// BalanceResponse reports a session's recomputed expected balance.
type BalanceResponse struct {
	SessionID       string          `json:"sessionID"`
	ExpectedBalance decimal.Decimal `json:"expectedBalance"`
}
