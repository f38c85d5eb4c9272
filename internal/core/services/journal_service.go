package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/oakpos/cashdesk/internal/core/domain"
	portsrepo "github.com/oakpos/cashdesk/internal/core/ports/repositories"
	portssvc "github.com/oakpos/cashdesk/internal/core/ports/services"
)

type journalService struct {
	journalRepo portsrepo.JournalReader
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalReader) portssvc.JournalSvcFacade {
	return &journalService{journalRepo: journalRepo}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// ListEntries retrieves a session's journal entries in sequence order.
func (s *journalService) ListEntries(ctx context.Context, sessionID string) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.ListEntriesBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries for session %s: %w", sessionID, err)
	}
	return entries, nil
}

// ReplayBalance reconstructs the session's running cash balance purely from
// journal entries. The OPEN entry carries the opening balance; adjustment and
// transfer entries carry their signed amounts; connect and disconnect carry
// zero. The CLOSE entry's discrepancy amount is excluded so the replay yields
// the expected balance at close.
func (s *journalService) ReplayBalance(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	entries, err := s.journalRepo.ListEntriesBySession(ctx, sessionID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list journal entries for session %s: %w", sessionID, err)
	}

	balance := decimal.Zero
	for _, e := range entries {
		if e.EntryType == domain.EntryClose {
			continue
		}
		balance = balance.Add(e.Amount)
	}
	return balance, nil
}
