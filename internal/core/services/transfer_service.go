package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oakpos/cashdesk/internal/apperrors"
	"github.com/oakpos/cashdesk/internal/core/domain"
	portsrepo "github.com/oakpos/cashdesk/internal/core/ports/repositories"
	portssvc "github.com/oakpos/cashdesk/internal/core/ports/services"
	"github.com/oakpos/cashdesk/internal/dto"
	"github.com/oakpos/cashdesk/internal/middleware"
	"github.com/oakpos/cashdesk/internal/utils"
)

var (
	ErrInvalidTransferPath = fmt.Errorf("%w: transfer not allowed between these drawer types", apperrors.ErrConflict)
	ErrCrossStoreTransfer  = fmt.Errorf("%w: sessions belong to different stores; use an inter-store transfer", apperrors.ErrConflict)
	ErrInsufficientFunds   = fmt.Errorf("%w: amount exceeds the session's expected balance", apperrors.ErrConflict)
	ErrTransferNotPending  = fmt.Errorf("%w: transfer is not pending", apperrors.ErrConflict)
	ErrWrongStore          = fmt.Errorf("%w: session does not belong to the transfer's destination store", apperrors.ErrConflict)
	ErrMasterSafeOnly      = fmt.Errorf("%w: bank movements run against a master safe session", apperrors.ErrConflict)
	ErrAmountNotPositive   = fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
)

// transferService executes money movements. Every movement is journaled
// inside the same transaction that writes the adjustment rows.
type transferService struct {
	drawerRepo     portsrepo.DrawerReader
	sessionRepo    portsrepo.SessionReader
	adjustmentRepo portsrepo.AdjustmentRepositoryFacade
	interStoreRepo portsrepo.InterStoreTransferRepositoryFacade
	stores         portsrepo.StoreSessionReader
	balanceSvc     portssvc.BalanceSvcFacade
	locks          *KeyedMutex
}

// NewTransferService creates a new TransferService.
func NewTransferService(
	drawerRepo portsrepo.DrawerReader,
	sessionRepo portsrepo.SessionReader,
	adjustmentRepo portsrepo.AdjustmentRepositoryFacade,
	interStoreRepo portsrepo.InterStoreTransferRepositoryFacade,
	stores portsrepo.StoreSessionReader,
	balanceSvc portssvc.BalanceSvcFacade,
	locks *KeyedMutex,
) portssvc.TransferSvcFacade {
	return &transferService{
		drawerRepo:     drawerRepo,
		sessionRepo:    sessionRepo,
		adjustmentRepo: adjustmentRepo,
		interStoreRepo: interStoreRepo,
		stores:         stores,
		balanceSvc:     balanceSvc,
		locks:          locks,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// Transfer moves cash between two open sessions along the drawer hierarchy.
// The debit and credit adjustments commit together; the sum of the two legs
// is always zero.
func (s *transferService) Transfer(ctx context.Context, req dto.TransferRequest, employeeID string) (*dto.TransferResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	if req.SourceSessionID == req.DestinationSessionID {
		return nil, fmt.Errorf("%w: source and destination sessions are the same", apperrors.ErrValidation)
	}
	if len(req.Denominations) > 0 {
		if err := req.Denominations.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		if !req.Denominations.Total().Equal(req.Amount) {
			return nil, fmt.Errorf("%w: denomination total does not match amount", apperrors.ErrValidation)
		}
	}

	unlock := s.locks.LockPair(req.SourceSessionID, req.DestinationSessionID)
	defer unlock()

	source, sourceDrawer, err := s.openSessionWithDrawer(ctx, req.SourceSessionID)
	if err != nil {
		return nil, err
	}
	destination, destinationDrawer, err := s.openSessionWithDrawer(ctx, req.DestinationSessionID)
	if err != nil {
		return nil, err
	}
	// Direct transfers stay inside one store; crossing stores must go through
	// the two-phase inter-store flow and its pending record. This also makes
	// the single store-open check cover both drawers.
	if sourceDrawer.StoreID != destinationDrawer.StoreID {
		return nil, ErrCrossStoreTransfer
	}
	if err := requireStoreOpen(ctx, s.stores, sourceDrawer.StoreID); err != nil {
		return nil, err
	}

	if !sourceDrawer.Type.CanTransferTo(destinationDrawer.Type) {
		return nil, fmt.Errorf("%w (%s to %s)", ErrInvalidTransferPath, sourceDrawer.Type, destinationDrawer.Type)
	}

	if err := s.requireFunds(ctx, source.SessionID, req.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	debit := domain.Adjustment{
		AdjustmentID:     uuid.NewString(),
		SessionID:        source.SessionID,
		Type:             domain.TransferOut,
		Amount:           req.Amount.Neg(),
		Reason:           req.Reason,
		PerformedBy:      employeeID,
		Denominations:    req.Denominations,
		CounterSessionID: &destination.SessionID,
		CreatedAt:        now,
	}
	credit := domain.Adjustment{
		AdjustmentID:     uuid.NewString(),
		SessionID:        destination.SessionID,
		Type:             domain.TransferIn,
		Amount:           req.Amount,
		Reason:           req.Reason,
		PerformedBy:      employeeID,
		Denominations:    req.Denominations,
		CounterSessionID: &source.SessionID,
		CreatedAt:        now,
	}
	debitEntry := transferEntry(debit, domain.EntryTransferDebit, now)
	creditEntry := transferEntry(credit, domain.EntryTransferCredit, now)

	if err := s.adjustmentRepo.SaveTransferPair(ctx, debit, credit, debitEntry, creditEntry); err != nil {
		return nil, fmt.Errorf("failed to save transfer from session %s to %s: %w",
			source.SessionID, destination.SessionID, err)
	}

	logger.Info("Transfer completed",
		slog.String("source_session_id", source.SessionID),
		slog.String("destination_session_id", destination.SessionID),
		slog.String("amount", req.Amount.String()))
	return &dto.TransferResponse{
		Debit:  dto.ToAdjustmentResponse(&debit),
		Credit: dto.ToAdjustmentResponse(&credit),
	}, nil
}

// BankDeposit moves cash out of the master safe session to a bank.
func (s *transferService) BankDeposit(ctx context.Context, req dto.BankMovementRequest, employeeID string) (*dto.AdjustmentResponse, error) {
	return s.bankMovement(ctx, req, employeeID, domain.BankDeposit)
}

// BankWithdrawal moves cash from a bank into the master safe session.
func (s *transferService) BankWithdrawal(ctx context.Context, req dto.BankMovementRequest, employeeID string) (*dto.AdjustmentResponse, error) {
	return s.bankMovement(ctx, req, employeeID, domain.BankWithdrawal)
}

func (s *transferService) bankMovement(ctx context.Context, req dto.BankMovementRequest, employeeID string, movement domain.AdjustmentType) (*dto.AdjustmentResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}

	unlock := s.locks.Lock(req.SessionID)
	defer unlock()

	session, drawer, err := s.openSessionWithDrawer(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if drawer.Type != domain.MasterSafe {
		return nil, ErrMasterSafeOnly
	}
	if err := requireStoreOpen(ctx, s.stores, drawer.StoreID); err != nil {
		return nil, err
	}

	amount := req.Amount
	if movement == domain.BankDeposit {
		if err := s.requireFunds(ctx, session.SessionID, req.Amount); err != nil {
			return nil, err
		}
		amount = amount.Neg()
	}

	externalRef := req.BankID
	if req.Reference != "" {
		externalRef = fmt.Sprintf("%s/%s", req.BankID, req.Reference)
	}

	now := time.Now().UTC()
	adj := domain.Adjustment{
		AdjustmentID: uuid.NewString(),
		SessionID:    session.SessionID,
		Type:         movement,
		Amount:       amount,
		PerformedBy:  employeeID,
		ExternalRef:  externalRef,
		CreatedAt:    now,
	}
	if err := s.saveAdjustment(ctx, adj, now); err != nil {
		return nil, err
	}
	resp := dto.ToAdjustmentResponse(&adj)
	return &resp, nil
}

// PettyCashPayout debits an open session for an expense payout.
func (s *transferService) PettyCashPayout(ctx context.Context, req dto.PettyCashRequest, employeeID string) (*dto.AdjustmentResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}

	unlock := s.locks.Lock(req.SessionID)
	defer unlock()

	session, drawer, err := s.openSessionWithDrawer(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStoreOpen(ctx, s.stores, drawer.StoreID); err != nil {
		return nil, err
	}
	if err := s.requireFunds(ctx, session.SessionID, req.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	adj := domain.Adjustment{
		AdjustmentID: uuid.NewString(),
		SessionID:    session.SessionID,
		Type:         domain.PettyCash,
		Amount:       req.Amount.Neg(),
		Reason:       req.Description,
		PerformedBy:  employeeID,
		ExternalRef:  req.AccountID,
		CreatedAt:    now,
	}
	if err := s.saveAdjustment(ctx, adj, now); err != nil {
		return nil, err
	}
	resp := dto.ToAdjustmentResponse(&adj)
	return &resp, nil
}

// Adjust records a manual signed correction against an open session.
func (s *transferService) Adjust(ctx context.Context, req dto.ManualAdjustmentRequest, employeeID string) (*dto.AdjustmentResponse, error) {
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: amount cannot be zero", apperrors.ErrValidation)
	}

	unlock := s.locks.Lock(req.SessionID)
	defer unlock()

	session, drawer, err := s.openSessionWithDrawer(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStoreOpen(ctx, s.stores, drawer.StoreID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	adj := domain.Adjustment{
		AdjustmentID: uuid.NewString(),
		SessionID:    session.SessionID,
		Type:         domain.AdjustmentType(req.Type),
		Amount:       req.Amount,
		Reason:       req.Reason,
		PerformedBy:  employeeID,
		CreatedAt:    now,
	}
	if err := s.saveAdjustment(ctx, adj, now); err != nil {
		return nil, err
	}
	resp := dto.ToAdjustmentResponse(&adj)
	return &resp, nil
}

// InterStoreSend debits the sending session and records a pending transfer.
// The cash leaves the sender immediately; it exists nowhere until received.
func (s *transferService) InterStoreSend(ctx context.Context, req dto.InterStoreSendRequest, employeeID string) (*dto.InterStoreTransferResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}

	unlock := s.locks.Lock(req.SessionID)
	defer unlock()

	session, drawer, err := s.openSessionWithDrawer(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if drawer.StoreID == req.ToStoreID {
		return nil, fmt.Errorf("%w: destination store is the sending store", apperrors.ErrValidation)
	}
	if err := requireStoreOpen(ctx, s.stores, drawer.StoreID); err != nil {
		return nil, err
	}
	if err := s.requireFunds(ctx, session.SessionID, req.Amount); err != nil {
		return nil, err
	}

	reference, err := utils.GenerateTransferReference()
	if err != nil {
		return nil, fmt.Errorf("failed to generate transfer reference: %w", err)
	}

	now := time.Now().UTC()
	transfer := domain.InterStoreTransfer{
		TransferID:    uuid.NewString(),
		Reference:     reference,
		FromStoreID:   drawer.StoreID,
		ToStoreID:     req.ToStoreID,
		FromSessionID: session.SessionID,
		Amount:        req.Amount,
		Status:        domain.TransferPending,
		SentBy:        employeeID,
		SentAt:        now,
	}
	debit := domain.Adjustment{
		AdjustmentID: uuid.NewString(),
		SessionID:    session.SessionID,
		Type:         domain.TransferOut,
		Amount:       req.Amount.Neg(),
		Reason:       fmt.Sprintf("inter-store transfer to %s", req.ToStoreID),
		PerformedBy:  employeeID,
		ExternalRef:  reference,
		CreatedAt:    now,
	}
	entry := transferEntry(debit, domain.EntryTransferDebit, now)

	if err := s.interStoreRepo.CreateInterStoreTransfer(ctx, transfer, debit, entry); err != nil {
		return nil, fmt.Errorf("failed to create inter-store transfer: %w", err)
	}

	logger.Info("Inter-store transfer sent",
		slog.String("transfer_id", transfer.TransferID),
		slog.String("reference", reference),
		slog.String("to_store_id", req.ToStoreID))
	resp := dto.ToInterStoreTransferResponse(&transfer)
	return &resp, nil
}

// InterStoreReceive credits a session at the destination store and completes
// the pending record.
func (s *transferService) InterStoreReceive(ctx context.Context, transferID string, req dto.InterStoreReceiveRequest, employeeID string) (*dto.InterStoreTransferResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	transfer, err := s.interStoreRepo.FindInterStoreTransferByID(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to find inter-store transfer %s: %w", transferID, err)
	}
	if transfer.Status != domain.TransferPending {
		return nil, ErrTransferNotPending
	}

	unlock := s.locks.Lock(req.SessionID)
	defer unlock()

	session, drawer, err := s.openSessionWithDrawer(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if drawer.StoreID != transfer.ToStoreID {
		return nil, ErrWrongStore
	}
	if err := requireStoreOpen(ctx, s.stores, drawer.StoreID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	transfer.Status = domain.TransferCompleted
	transfer.ToSessionID = &session.SessionID
	transfer.ReceivedBy = &employeeID
	transfer.ReceivedAt = &now

	credit := domain.Adjustment{
		AdjustmentID: uuid.NewString(),
		SessionID:    session.SessionID,
		Type:         domain.TransferIn,
		Amount:       transfer.Amount,
		Reason:       fmt.Sprintf("inter-store transfer from %s", transfer.FromStoreID),
		PerformedBy:  employeeID,
		ExternalRef:  transfer.Reference,
		CreatedAt:    now,
	}
	entry := transferEntry(credit, domain.EntryTransferCredit, now)

	if err := s.interStoreRepo.CompleteInterStoreTransfer(ctx, *transfer, credit, entry); err != nil {
		return nil, fmt.Errorf("failed to complete inter-store transfer %s: %w", transferID, err)
	}

	logger.Info("Inter-store transfer received",
		slog.String("transfer_id", transferID),
		slog.String("session_id", session.SessionID))
	resp := dto.ToInterStoreTransferResponse(transfer)
	return &resp, nil
}

// InterStoreVoid cancels a pending transfer and restores the cash to the
// sending session. Completed transfers cannot be voided.
func (s *transferService) InterStoreVoid(ctx context.Context, transferID string, employeeID string) (*dto.InterStoreTransferResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	transfer, err := s.interStoreRepo.FindInterStoreTransferByID(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to find inter-store transfer %s: %w", transferID, err)
	}
	if transfer.Status != domain.TransferPending {
		return nil, ErrTransferNotPending
	}

	unlock := s.locks.Lock(transfer.FromSessionID)
	defer unlock()

	// The cash returns to the session it left; that session must still be
	// open to take it back.
	session, drawer, err := s.openSessionWithDrawer(ctx, transfer.FromSessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStoreOpen(ctx, s.stores, drawer.StoreID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	transfer.Status = domain.TransferVoided
	reversal := domain.Adjustment{
		AdjustmentID: uuid.NewString(),
		SessionID:    session.SessionID,
		Type:         domain.TransferIn,
		Amount:       transfer.Amount,
		Reason:       fmt.Sprintf("inter-store transfer %s voided", transfer.Reference),
		PerformedBy:  employeeID,
		ExternalRef:  transfer.Reference,
		CreatedAt:    now,
	}
	entry := transferEntry(reversal, domain.EntryTransferCredit, now)

	if err := s.interStoreRepo.VoidInterStoreTransfer(ctx, *transfer, reversal, entry); err != nil {
		return nil, fmt.Errorf("failed to void inter-store transfer %s: %w", transferID, err)
	}

	logger.Info("Inter-store transfer voided", slog.String("transfer_id", transferID))
	resp := dto.ToInterStoreTransferResponse(transfer)
	return &resp, nil
}

// ListPendingInterStore lists transfers awaiting receipt at a store.
func (s *transferService) ListPendingInterStore(ctx context.Context, toStoreID string) ([]dto.InterStoreTransferResponse, error) {
	transfers, err := s.interStoreRepo.ListPendingInterStoreTransfers(ctx, toStoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transfers for store %s: %w", toStoreID, err)
	}
	responses := make([]dto.InterStoreTransferResponse, len(transfers))
	for i := range transfers {
		responses[i] = dto.ToInterStoreTransferResponse(&transfers[i])
	}
	return responses, nil
}

func (s *transferService) saveAdjustment(ctx context.Context, adj domain.Adjustment, now time.Time) error {
	entry := domain.JournalEntry{
		EntryID:      uuid.NewString(),
		SessionID:    adj.SessionID,
		EntryType:    domain.EntryAdjustment,
		Amount:       adj.Amount,
		Description:  adjustmentDescription(adj),
		PerformedBy:  adj.PerformedBy,
		AdjustmentID: &adj.AdjustmentID,
		CreatedAt:    now,
	}
	if err := s.adjustmentRepo.SaveAdjustment(ctx, adj, entry); err != nil {
		return fmt.Errorf("failed to save adjustment on session %s: %w", adj.SessionID, err)
	}
	return nil
}

// requireFunds rejects outgoing movements that would take the session's
// expected balance negative.
func (s *transferService) requireFunds(ctx context.Context, sessionID string, amount decimal.Decimal) error {
	expected, err := s.balanceSvc.ExpectedBalance(ctx, sessionID)
	if err != nil {
		return err
	}
	if amount.GreaterThan(expected) {
		return ErrInsufficientFunds
	}
	return nil
}

func (s *transferService) openSessionWithDrawer(ctx context.Context, sessionID string) (*domain.Session, *domain.Drawer, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find session %s: %w", sessionID, err)
	}
	if session.Status != domain.SessionOpen {
		return nil, nil, ErrSessionNotOpen
	}
	drawer, err := s.drawerRepo.FindDrawerByID(ctx, session.DrawerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find drawer %s: %w", session.DrawerID, err)
	}
	return session, drawer, nil
}

func transferEntry(adj domain.Adjustment, entryType domain.JournalEntryType, now time.Time) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:      uuid.NewString(),
		SessionID:    adj.SessionID,
		EntryType:    entryType,
		Amount:       adj.Amount,
		Description:  adj.Reason,
		PerformedBy:  adj.PerformedBy,
		AdjustmentID: &adj.AdjustmentID,
		CreatedAt:    now,
	}
}

func adjustmentDescription(adj domain.Adjustment) string {
	if adj.Reason != "" {
		return adj.Reason
	}
	return string(adj.Type)
}
