package services_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/oakpos/cashdesk/internal/core/domain"
	portsrepo "github.com/oakpos/cashdesk/internal/core/ports/repositories"
	portssvc "github.com/oakpos/cashdesk/internal/core/ports/services"
	"github.com/oakpos/cashdesk/internal/dto"
)

// --- Mock DrawerRepository ---

type MockDrawerRepository struct {
	mock.Mock
}

var _ portsrepo.DrawerRepositoryFacade = (*MockDrawerRepository)(nil)

func (m *MockDrawerRepository) FindDrawerByID(ctx context.Context, drawerID string) (*domain.Drawer, error) {
	args := m.Called(ctx, drawerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Drawer), args.Error(1)
}

func (m *MockDrawerRepository) ListDrawersByStore(ctx context.Context, storeID string) ([]domain.Drawer, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Drawer), args.Error(1)
}

func (m *MockDrawerRepository) SaveDrawer(ctx context.Context, drawer domain.Drawer) error {
	args := m.Called(ctx, drawer)
	return args.Error(0)
}

func (m *MockDrawerRepository) UpdateDrawer(ctx context.Context, drawer domain.Drawer) error {
	args := m.Called(ctx, drawer)
	return args.Error(0)
}

// --- Mock SessionRepository ---

type MockSessionRepository struct {
	mock.Mock
}

var _ portsrepo.SessionRepositoryFacade = (*MockSessionRepository)(nil)

func (m *MockSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) FindOpenSessionByDrawerID(ctx context.Context, drawerID string) (*domain.Session, error) {
	args := m.Called(ctx, drawerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) FindOpenSessionForEmployee(ctx context.Context, employeeID string, drawerType domain.DrawerType) (*domain.Session, error) {
	args := m.Called(ctx, employeeID, drawerType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) FindLastClosedSessionByDrawerID(ctx context.Context, drawerID string) (*domain.Session, error) {
	args := m.Called(ctx, drawerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) ListConnections(ctx context.Context, sessionID string) ([]domain.Connection, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Connection), args.Error(1)
}

func (m *MockSessionRepository) ListAdjustmentsBySession(ctx context.Context, sessionID string) ([]domain.Adjustment, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Adjustment), args.Error(1)
}

func (m *MockSessionRepository) OpenSession(ctx context.Context, session domain.Session, opener domain.Connection, tenders []domain.TenderBalance, entry domain.JournalEntry) error {
	args := m.Called(ctx, session, opener, tenders, entry)
	return args.Error(0)
}

func (m *MockSessionRepository) SaveConnection(ctx context.Context, conn domain.Connection, entry domain.JournalEntry) error {
	args := m.Called(ctx, conn, entry)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteConnection(ctx context.Context, sessionID, employeeID string, entry domain.JournalEntry) error {
	args := m.Called(ctx, sessionID, employeeID, entry)
	return args.Error(0)
}

func (m *MockSessionRepository) CloseSession(ctx context.Context, session domain.Session, tenders []domain.TenderBalance, entry domain.JournalEntry) error {
	args := m.Called(ctx, session, tenders, entry)
	return args.Error(0)
}

// --- Mock AdjustmentRepository ---

type MockAdjustmentRepository struct {
	mock.Mock
}

var _ portsrepo.AdjustmentRepositoryFacade = (*MockAdjustmentRepository)(nil)

func (m *MockAdjustmentRepository) SaveAdjustment(ctx context.Context, adj domain.Adjustment, entry domain.JournalEntry) error {
	args := m.Called(ctx, adj, entry)
	return args.Error(0)
}

func (m *MockAdjustmentRepository) SaveTransferPair(ctx context.Context, debit, credit domain.Adjustment, debitEntry, creditEntry domain.JournalEntry) error {
	args := m.Called(ctx, debit, credit, debitEntry, creditEntry)
	return args.Error(0)
}

// --- Mock InterStoreTransferRepository ---

type MockInterStoreTransferRepository struct {
	mock.Mock
}

var _ portsrepo.InterStoreTransferRepositoryFacade = (*MockInterStoreTransferRepository)(nil)

func (m *MockInterStoreTransferRepository) FindInterStoreTransferByID(ctx context.Context, transferID string) (*domain.InterStoreTransfer, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterStoreTransfer), args.Error(1)
}

func (m *MockInterStoreTransferRepository) ListPendingInterStoreTransfers(ctx context.Context, toStoreID string) ([]domain.InterStoreTransfer, error) {
	args := m.Called(ctx, toStoreID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterStoreTransfer), args.Error(1)
}

func (m *MockInterStoreTransferRepository) CreateInterStoreTransfer(ctx context.Context, transfer domain.InterStoreTransfer, debit domain.Adjustment, entry domain.JournalEntry) error {
	args := m.Called(ctx, transfer, debit, entry)
	return args.Error(0)
}

func (m *MockInterStoreTransferRepository) CompleteInterStoreTransfer(ctx context.Context, transfer domain.InterStoreTransfer, credit domain.Adjustment, entry domain.JournalEntry) error {
	args := m.Called(ctx, transfer, credit, entry)
	return args.Error(0)
}

func (m *MockInterStoreTransferRepository) VoidInterStoreTransfer(ctx context.Context, transfer domain.InterStoreTransfer, reversal domain.Adjustment, entry domain.JournalEntry) error {
	args := m.Called(ctx, transfer, reversal, entry)
	return args.Error(0)
}

// --- Mock JournalReader ---

type MockJournalReader struct {
	mock.Mock
}

var _ portsrepo.JournalReader = (*MockJournalReader)(nil)

func (m *MockJournalReader) ListEntriesBySession(ctx context.Context, sessionID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// --- Mock EmployeeReader ---

type MockEmployeeReader struct {
	mock.Mock
}

var _ portsrepo.EmployeeReader = (*MockEmployeeReader)(nil)

func (m *MockEmployeeReader) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeReader) FindEmployeeByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

// --- Mock StoreSessionReader ---

type MockStoreSessionReader struct {
	mock.Mock
}

var _ portsrepo.StoreSessionReader = (*MockStoreSessionReader)(nil)

func (m *MockStoreSessionReader) IsStoreOpen(ctx context.Context, storeID string) (bool, error) {
	args := m.Called(ctx, storeID)
	return args.Bool(0), args.Error(1)
}

// --- Mock LedgerReader ---

type MockLedgerReader struct {
	mock.Mock
}

var _ portsrepo.LedgerReader = (*MockLedgerReader)(nil)

func (m *MockLedgerReader) ListPostingsBySession(ctx context.Context, sessionID string) ([]domain.LedgerPosting, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerPosting), args.Error(1)
}

// --- Mock PaymentMethodReader ---

type MockPaymentMethodReader struct {
	mock.Mock
}

var _ portsrepo.PaymentMethodReader = (*MockPaymentMethodReader)(nil)

func (m *MockPaymentMethodReader) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethod), args.Error(1)
}

// --- Mock BalanceService ---

type MockBalanceService struct {
	mock.Mock
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

func (m *MockBalanceService) ExpectedBalance(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceService) TenderExpectations(ctx context.Context, sessionID string) ([]domain.TenderExpectation, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TenderExpectation), args.Error(1)
}

// --- Mock AuthService ---

type MockAuthService struct {
	mock.Mock
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

func (m *MockAuthService) Reauthenticate(ctx context.Context, username, password string, minRole domain.EmployeeRole) (*domain.Employee, error) {
	args := m.Called(ctx, username, password, minRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockAuthService) GetEmployee(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}
