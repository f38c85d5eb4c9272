package services

import (
	"context"
	"fmt"

	"github.com/oakpos/cashdesk/internal/core/domain"
	portsrepo "github.com/oakpos/cashdesk/internal/core/ports/repositories"
	portssvc "github.com/oakpos/cashdesk/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// balanceService derives expected balances on demand. It never stores a
// mutable running total: every call recomputes from the committed rows, so
// the figure stays consistent even when adjustments arrive out of order.
type balanceService struct {
	sessionRepo portsrepo.SessionReader
	ledger      portsrepo.LedgerReader
	methods     portsrepo.PaymentMethodReader
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(sessionRepo portsrepo.SessionReader, ledger portsrepo.LedgerReader, methods portsrepo.PaymentMethodReader) portssvc.BalanceSvcFacade {
	return &balanceService{
		sessionRepo: sessionRepo,
		ledger:      ledger,
		methods:     methods,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// ExpectedBalance computes opening balance + sum of adjustments + sum of
// cash postings. Reads only committed rows; safe to call lock-free.
func (s *balanceService) ExpectedBalance(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find session %s: %w", sessionID, err)
	}

	total := session.OpeningBalance

	adjustments, err := s.sessionRepo.ListAdjustmentsBySession(ctx, sessionID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list adjustments for session %s: %w", sessionID, err)
	}
	for _, adj := range adjustments {
		total = total.Add(adj.Amount)
	}

	cashMethods, err := s.cashMethodIDs(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	postings, err := s.ledger.ListPostingsBySession(ctx, sessionID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list postings for session %s: %w", sessionID, err)
	}
	for _, p := range postings {
		if _, isCash := cashMethods[p.PaymentMethodID]; isCash {
			total = total.Add(p.Amount)
		}
	}

	return total, nil
}

// TenderExpectations aggregates ledger postings per payment method.
func (s *balanceService) TenderExpectations(ctx context.Context, sessionID string) ([]domain.TenderExpectation, error) {
	methods, err := s.methods.ListPaymentMethods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	methodsByID := make(map[string]domain.PaymentMethod, len(methods))
	for _, m := range methods {
		methodsByID[m.PaymentMethodID] = m
	}

	postings, err := s.ledger.ListPostingsBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list postings for session %s: %w", sessionID, err)
	}

	totals := make(map[string]*domain.TenderExpectation)
	for _, p := range postings {
		method, ok := methodsByID[p.PaymentMethodID]
		if !ok {
			// A posting against an uncataloged method is a data integrity
			// problem upstream; surface it rather than folding it in quietly.
			return nil, fmt.Errorf("posting references unknown payment method %s", p.PaymentMethodID)
		}
		exp, ok := totals[p.PaymentMethodID]
		if !ok {
			exp = &domain.TenderExpectation{Method: method}
			totals[p.PaymentMethodID] = exp
		}
		exp.ExpectedQty++
		exp.ExpectedAmount = exp.ExpectedAmount.Add(p.Amount)
	}

	result := make([]domain.TenderExpectation, 0, len(totals))
	for _, exp := range totals {
		result = append(result, *exp)
	}
	return result, nil
}

func (s *balanceService) cashMethodIDs(ctx context.Context) (map[string]struct{}, error) {
	methods, err := s.methods.ListPaymentMethods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	cash := make(map[string]struct{})
	for _, m := range methods {
		if m.IsCash {
			cash[m.PaymentMethodID] = struct{}{}
		}
	}
	return cash, nil
}
