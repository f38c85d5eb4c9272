package services

import (
	"context"
	"errors"
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
)

var (
	ErrAlreadyOpen            = fmt.Errorf("%w: employee already holds an open session for this drawer type", apperrors.ErrConflict)
	ErrSharingModeRequired    = fmt.Errorf("%w: drawer sharing mode is undecided and must be supplied", apperrors.ErrConflict)
	ErrConnectionsRemain      = fmt.Errorf("%w: connected employees must disconnect before close", apperrors.ErrConflict)
	ErrOpenerCannotDisconnect = fmt.Errorf("%w: the opener ends a session with close, not disconnect", apperrors.ErrConflict)
	ErrSessionNotOpen         = fmt.Errorf("%w: session is not open", apperrors.ErrConflict)
	ErrDrawerNotShared        = fmt.Errorf("%w: drawer does not allow connections", apperrors.ErrConflict)
	ErrBalanceInputMissing    = fmt.Errorf("%w: opening amount or denomination counts required", apperrors.ErrValidation)
	ErrZeroDenominationTotal  = fmt.Errorf("%w: denomination counts total zero", apperrors.ErrValidation)
	ErrCloseOutOfRange        = fmt.Errorf("%w: counted balance outside the drawer close range", apperrors.ErrValidation)
)

// sessionService owns the session lifecycle. Every mutating operation holds
// the per-session (or, for Open, per-drawer) lock for its full duration;
// balance reads stay lock-free.
type sessionService struct {
	drawerRepo   portsrepo.DrawerRepositoryFacade
	sessionRepo  portsrepo.SessionRepositoryFacade
	journalRepo  portsrepo.JournalReader
	employeeRepo portsrepo.EmployeeReader
	stores       portsrepo.StoreSessionReader
	balanceSvc   portssvc.BalanceSvcFacade
	authSvc      portssvc.AuthSvcFacade

	defaultThreshold decimal.Decimal
	openingTolerance decimal.Decimal
	locks            *KeyedMutex
}

// NewSessionService creates a new SessionService.
func NewSessionService(
	drawerRepo portsrepo.DrawerRepositoryFacade,
	sessionRepo portsrepo.SessionRepositoryFacade,
	journalRepo portsrepo.JournalReader,
	employeeRepo portsrepo.EmployeeReader,
	stores portsrepo.StoreSessionReader,
	balanceSvc portssvc.BalanceSvcFacade,
	authSvc portssvc.AuthSvcFacade,
	locks *KeyedMutex,
	defaultThreshold decimal.Decimal,
	openingTolerance decimal.Decimal,
) portssvc.SessionSvcFacade {
	return &sessionService{
		drawerRepo:       drawerRepo,
		sessionRepo:      sessionRepo,
		journalRepo:      journalRepo,
		employeeRepo:     employeeRepo,
		stores:           stores,
		balanceSvc:       balanceSvc,
		authSvc:          authSvc,
		defaultThreshold: defaultThreshold,
		openingTolerance: openingTolerance,
		locks:            locks,
	}
}

var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

// Open opens a new session, or connects the employee when another opener
// already holds an open session on a shared drawer.
func (s *sessionService) Open(ctx context.Context, req dto.OpenSessionRequest, employeeID string) (*dto.OpenSessionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	drawer, err := s.drawerRepo.FindDrawerByID(ctx, req.DrawerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find drawer %s: %w", req.DrawerID, err)
	}
	if !drawer.IsActive {
		return nil, fmt.Errorf("%w: drawer %s is inactive", apperrors.ErrValidation, drawer.DrawerID)
	}

	if err := requireStoreOpen(ctx, s.stores, drawer.StoreID); err != nil {
		return nil, err
	}

	// The drawer lock covers the open-session existence check and the insert
	// so two racing opens cannot both create a session.
	unlock := s.locks.Lock("drawer:" + drawer.DrawerID)
	defer unlock()

	existing, err := s.sessionRepo.FindOpenSessionByDrawerID(ctx, drawer.DrawerID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for open session on drawer %s: %w", drawer.DrawerID, err)
	}

	if existing != nil {
		shared, _ := drawer.EffectiveShared()
		if !shared {
			return nil, ErrAlreadyOpen
		}
		// Shared drawer with an open session: Open degrades to a connect.
		// No balance input is consumed and no counting happens.
		session, err := s.Connect(ctx, existing.SessionID, employeeID)
		if err != nil {
			return nil, err
		}
		resp := dto.ToSessionResponse(session)
		return &dto.OpenSessionResponse{Session: &resp, Connected: true}, nil
	}

	// One open session per drawer type per employee.
	if _, err := s.sessionRepo.FindOpenSessionForEmployee(ctx, employeeID, drawer.Type); err == nil {
		return nil, ErrAlreadyOpen
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check employee sessions: %w", err)
	}

	// An undecided sharing mode must be supplied before the first session.
	// It is persisted further down, once the open is actually going ahead, so
	// a confirmation round trip leaves no drawer-config side effect.
	if _, decided := drawer.EffectiveShared(); !decided && req.SharingMode == nil {
		return nil, ErrSharingModeRequired
	}

	openingBalance, denominations, err := resolveCountedInput(req.OpeningAmount, req.OpeningDenominations)
	if err != nil {
		return nil, err
	}

	// Continuity check against the previous session's counted close.
	if drawer.Type == domain.Physical && !req.ConfirmDiscrepancy {
		last, err := s.sessionRepo.FindLastClosedSessionByDrawerID(ctx, drawer.DrawerID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to find previous session for drawer %s: %w", drawer.DrawerID, err)
		}
		if last != nil && last.ActualBalance != nil {
			if openingBalance.Sub(*last.ActualBalance).Abs().GreaterThan(s.openingTolerance) {
				logger.Warn("Opening balance differs from previous close",
					slog.String("drawer_id", drawer.DrawerID),
					slog.String("opening", openingBalance.String()),
					slog.String("previous_close", last.ActualBalance.String()))
				return &dto.OpenSessionResponse{
					RequiresConfirmation:   true,
					PreviousClosingBalance: last.ActualBalance,
				}, nil
			}
		}
	}

	if _, decided := drawer.EffectiveShared(); !decided {
		drawer.IsShared = req.SharingMode
		drawer.LastUpdatedAt = time.Now().UTC()
		drawer.LastUpdatedBy = employeeID
		if err := s.drawerRepo.UpdateDrawer(ctx, *drawer); err != nil {
			return nil, fmt.Errorf("failed to persist sharing mode for drawer %s: %w", drawer.DrawerID, err)
		}
	}

	now := time.Now().UTC()
	session := domain.Session{
		SessionID:            uuid.NewString(),
		DrawerID:             drawer.DrawerID,
		Status:               domain.SessionOpen,
		OpenerEmployeeID:     employeeID,
		OpeningBalance:       openingBalance,
		OpeningDenominations: denominations,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     employeeID,
			LastUpdatedAt: now,
			LastUpdatedBy: employeeID,
		},
	}
	opener := domain.Connection{
		SessionID:   session.SessionID,
		EmployeeID:  employeeID,
		Role:        domain.RoleOpener,
		ConnectedAt: now,
	}
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		SessionID:   session.SessionID,
		EntryType:   domain.EntryOpen,
		Amount:      openingBalance,
		Description: "session opened",
		PerformedBy: employeeID,
		CreatedAt:   now,
	}

	if err := s.sessionRepo.OpenSession(ctx, session, opener, nil, entry); err != nil {
		return nil, fmt.Errorf("failed to open session on drawer %s: %w", drawer.DrawerID, err)
	}

	logger.Info("Session opened",
		slog.String("session_id", session.SessionID),
		slog.String("drawer_id", drawer.DrawerID))
	resp := dto.ToSessionResponse(&session)
	return &dto.OpenSessionResponse{Session: &resp}, nil
}

// Connect attaches the employee to an open shared session. Idempotent per
// employee: repeated connects yield a single connection row.
func (s *sessionService) Connect(ctx context.Context, sessionID, employeeID string) (*domain.Session, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, drawer, err := s.openSessionWithDrawer(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if shared, _ := drawer.EffectiveShared(); !shared {
		return nil, ErrDrawerNotShared
	}
	if err := requireStoreOpen(ctx, s.stores, drawer.StoreID); err != nil {
		return nil, err
	}

	connections, err := s.sessionRepo.ListConnections(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections for session %s: %w", sessionID, err)
	}
	for _, conn := range connections {
		if conn.EmployeeID == employeeID {
			return session, nil
		}
	}

	now := time.Now().UTC()
	conn := domain.Connection{
		SessionID:   sessionID,
		EmployeeID:  employeeID,
		Role:        domain.RoleConnected,
		ConnectedAt: now,
	}
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		SessionID:   sessionID,
		EntryType:   domain.EntryConnect,
		Amount:      decimal.Zero,
		Description: "employee connected",
		PerformedBy: employeeID,
		CreatedAt:   now,
	}
	if err := s.sessionRepo.SaveConnection(ctx, conn, entry); err != nil {
		return nil, fmt.Errorf("failed to connect employee to session %s: %w", sessionID, err)
	}

	logger.Info("Employee connected to session", slog.String("session_id", sessionID))
	return session, nil
}

// Disconnect removes a connected employee. The opener never disconnects; a
// session ends through Close.
func (s *sessionService) Disconnect(ctx context.Context, sessionID, employeeID string) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, drawer, err := s.openSessionWithDrawer(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := requireStoreOpen(ctx, s.stores, drawer.StoreID); err != nil {
		return err
	}
	if session.OpenerEmployeeID == employeeID {
		return ErrOpenerCannotDisconnect
	}

	connections, err := s.sessionRepo.ListConnections(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to list connections for session %s: %w", sessionID, err)
	}
	found := false
	for _, conn := range connections {
		if conn.EmployeeID == employeeID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: employee is not connected to session %s", apperrors.ErrNotFound, sessionID)
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		SessionID:   sessionID,
		EntryType:   domain.EntryDisconnect,
		Amount:      decimal.Zero,
		Description: "employee disconnected",
		PerformedBy: employeeID,
		CreatedAt:   now,
	}
	if err := s.sessionRepo.DeleteConnection(ctx, sessionID, employeeID, entry); err != nil {
		return fmt.Errorf("failed to disconnect employee from session %s: %w", sessionID, err)
	}
	return nil
}

// Close reconciles and closes a session when the cumulative discrepancy is
// within the employee's threshold.
func (s *sessionService) Close(ctx context.Context, sessionID string, req dto.CloseSessionRequest, employeeID string) (*dto.CloseSessionResponse, error) {
	return s.performClose(ctx, sessionID, req, employeeID, nil)
}

// ForceClose re-authenticates a manager and closes the session regardless of
// threshold, recording the approver.
func (s *sessionService) ForceClose(ctx context.Context, sessionID string, req dto.ForceCloseRequest, employeeID string) (*dto.CloseSessionResponse, error) {
	approver, err := s.authSvc.Reauthenticate(ctx, req.ManagerUsername, req.ManagerPassword, domain.RoleManager)
	if err != nil {
		return nil, err
	}
	return s.performClose(ctx, sessionID, req.Closing, employeeID, approver)
}

// GetSession retrieves a session with its connections. Blind-count
// concealment covers the read path too: a within-threshold close on a
// blind-count drawer never exposes its discrepancy, only an approved close
// does (the approving manager has already seen the figures).
func (s *sessionService) GetSession(ctx context.Context, sessionID string) (*domain.Session, []domain.Connection, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find session %s: %w", sessionID, err)
	}
	connections, err := s.sessionRepo.ListConnections(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list connections for session %s: %w", sessionID, err)
	}
	drawer, err := s.drawerRepo.FindDrawerByID(ctx, session.DrawerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find drawer %s: %w", session.DrawerID, err)
	}
	if drawer.BlindCount && session.ApprovedBy == nil {
		session.Discrepancy = nil
	}
	return session, connections, nil
}

func (s *sessionService) performClose(ctx context.Context, sessionID string, req dto.CloseSessionRequest, employeeID string, approver *domain.Employee) (*dto.CloseSessionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, drawer, err := s.openSessionWithDrawer(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStoreOpen(ctx, s.stores, drawer.StoreID); err != nil {
		return nil, err
	}
	if session.OpenerEmployeeID != employeeID {
		return nil, fmt.Errorf("%w: only the session opener may close it", apperrors.ErrForbidden)
	}

	connections, err := s.sessionRepo.ListConnections(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections for session %s: %w", sessionID, err)
	}
	for _, conn := range connections {
		if conn.Role != domain.RoleOpener {
			return nil, ErrConnectionsRemain
		}
	}

	cashActual, _, err := resolveCountedInput(req.CountedAmount, req.Denominations)
	if err != nil {
		return nil, err
	}

	// The close range check runs independently of discrepancy. Physical
	// drawers reject; safes warn and proceed.
	var warnings []string
	if outOfRange(cashActual, drawer) {
		if drawer.Type == domain.Physical {
			return nil, fmt.Errorf("%w: counted %s, allowed [%s, %s]",
				ErrCloseOutOfRange, cashActual.String(), drawer.MinClose.String(), drawer.MaxClose.String())
		}
		warnings = append(warnings, fmt.Sprintf("counted balance %s outside close range [%s, %s]",
			cashActual.String(), drawer.MinClose.String(), drawer.MaxClose.String()))
	}

	cashExpected, err := s.balanceSvc.ExpectedBalance(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	expectations, err := s.balanceSvc.TenderExpectations(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	counts := make([]tenderCount, len(req.TenderCounts))
	for i, tc := range req.TenderCounts {
		counts[i] = tenderCount{
			PaymentMethodID: tc.PaymentMethodID,
			CountedQty:      tc.CountedQty,
			CountedAmount:   tc.CountedAmount,
		}
	}
	rec := reconcile(cashExpected, cashActual, counts, expectations)

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find employee %s: %w", employeeID, err)
	}
	threshold := resolveThreshold(employee, s.defaultThreshold)

	closeStatus := closeStatusFor(rec)
	if rec.TotalCumulative.GreaterThan(threshold) {
		if approver == nil {
			logger.Warn("Close rejected: discrepancy over threshold",
				slog.String("session_id", sessionID),
				slog.String("cumulative", rec.TotalCumulative.String()),
				slog.String("threshold", threshold.String()))
			if drawer.BlindCount {
				// Blind count: the amount is not disclosable, only the fact.
				return nil, fmt.Errorf("%w: discrepancy exceeds threshold", apperrors.ErrApprovalRequired)
			}
			return nil, fmt.Errorf("%w: cumulative discrepancy %s exceeds threshold %s",
				apperrors.ErrApprovalRequired, rec.TotalCumulative.String(), threshold.String())
		}
		closeStatus = domain.CloseApproved
	}

	now := time.Now().UTC()
	discrepancy := cashActual.Sub(cashExpected)
	session.Status = domain.SessionClosed
	session.ClosedAt = &now
	session.ActualBalance = &cashActual
	session.Discrepancy = &discrepancy
	session.CloseStatus = &closeStatus
	session.ClosingNotes = req.Notes
	session.LastUpdatedAt = now
	session.LastUpdatedBy = employeeID

	var approverID *string
	if approver != nil {
		approverID = &approver.EmployeeID
		session.ApprovedBy = approverID
	}

	tenders := buildCloseTenders(sessionID, counts, expectations)
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		SessionID:   sessionID,
		EntryType:   domain.EntryClose,
		Amount:      discrepancy,
		Description: fmt.Sprintf("session closed %s", closeStatus),
		PerformedBy: employeeID,
		ApprovedBy:  approverID,
		CreatedAt:   now,
	}

	if err := s.sessionRepo.CloseSession(ctx, *session, tenders, entry); err != nil {
		return nil, fmt.Errorf("failed to close session %s: %w", sessionID, err)
	}

	entries, err := s.journalRepo.ListEntriesBySession(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to fetch journal entries after close", slog.String("error", err.Error()))
		entries = nil
	}

	logger.Info("Session closed",
		slog.String("session_id", sessionID),
		slog.String("close_status", string(closeStatus)))

	return shapeCloseResponse(session, drawer, rec, closeStatus, warnings, entries, approverID), nil
}

// shapeCloseResponse applies the blind-count display policy. The figures are
// always computed; concealment is response shaping only.
func shapeCloseResponse(
	session *domain.Session,
	drawer *domain.Drawer,
	rec Reconciliation,
	closeStatus domain.CloseStatus,
	warnings []string,
	entries []domain.JournalEntry,
	approverID *string,
) *dto.CloseSessionResponse {
	resp := &dto.CloseSessionResponse{
		SessionID:      session.SessionID,
		CloseStatus:    string(closeStatus),
		Warnings:       warnings,
		JournalEntries: dto.ToJournalEntryResponses(entries),
		ApproverID:     approverID,
	}

	// A manager approval reveals the figures; otherwise blind count keeps
	// them concealed for in-threshold closes.
	disclose := !drawer.BlindCount || approverID != nil
	resp.Disclosable = disclose
	if disclose {
		resp.Discrepancy = session.Discrepancy
		expected := rec.PhysicalExpected
		resp.ExpectedBalance = &expected
		physical := rec.PhysicalDiscrepancy
		resp.PhysicalDiscrepancy = &physical
	}
	if !drawer.ElectronicBlindCount || approverID != nil {
		electronic := rec.ElectronicDiscrepancySum
		resp.ElectronicDiscrepancy = &electronic
	}
	return resp
}

// openSessionWithDrawer loads a session, verifies it is open, and loads its
// drawer.
func (s *sessionService) openSessionWithDrawer(ctx context.Context, sessionID string) (*domain.Session, *domain.Drawer, error) {
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

// requireStoreOpen gates every mutating operation on the store being open.
func requireStoreOpen(ctx context.Context, stores portsrepo.StoreSessionReader, storeID string) error {
	open, err := stores.IsStoreOpen(ctx, storeID)
	if err != nil {
		return fmt.Errorf("failed to check store session for store %s: %w", storeID, err)
	}
	if !open {
		return apperrors.ErrStoreClosed
	}
	return nil
}

// resolveCountedInput validates the amount-or-denominations pair used at
// open and close. Denomination counts that total zero are rejected rather
// than silently treated as a zero balance.
func resolveCountedInput(amount *decimal.Decimal, counts domain.DenominationCounts) (decimal.Decimal, domain.DenominationCounts, error) {
	if len(counts) > 0 {
		if err := counts.Validate(); err != nil {
			return decimal.Zero, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		total := counts.Total()
		if total.IsZero() {
			return decimal.Zero, nil, ErrZeroDenominationTotal
		}
		return total, counts, nil
	}
	if amount == nil {
		return decimal.Zero, nil, ErrBalanceInputMissing
	}
	if amount.IsNegative() {
		return decimal.Zero, nil, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
	}
	return *amount, nil, nil
}

// outOfRange checks the drawer's close bounds. A zero MaxClose means no
// upper bound is configured.
func outOfRange(actual decimal.Decimal, drawer *domain.Drawer) bool {
	if actual.LessThan(drawer.MinClose) {
		return true
	}
	if drawer.MaxClose.IsPositive() && actual.GreaterThan(drawer.MaxClose) {
		return true
	}
	return false
}

// buildCloseTenders materializes the close-phase tender balance rows from
// the counted figures and ledger expectations.
func buildCloseTenders(sessionID string, counts []tenderCount, expectations []domain.TenderExpectation) []domain.TenderBalance {
	expByMethod := make(map[string]domain.TenderExpectation, len(expectations))
	for _, e := range expectations {
		expByMethod[e.Method.PaymentMethodID] = e
	}

	tenders := make([]domain.TenderBalance, 0, len(counts))
	for _, tc := range counts {
		tb := domain.TenderBalance{
			SessionID:       sessionID,
			PaymentMethodID: tc.PaymentMethodID,
			Phase:           domain.TenderAtClose,
			CountedQty:      tc.CountedQty,
			CountedAmount:   tc.CountedAmount,
		}
		if exp, ok := expByMethod[tc.PaymentMethodID]; ok {
			tb.Kind = exp.Method.Kind
			tb.ExpectedQty = exp.ExpectedQty
			tb.ExpectedAmount = exp.ExpectedAmount
		}
		tenders = append(tenders, tb)
	}
	return tenders
}
