package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/oakpos/cashdesk/internal/apperrors"
	"github.com/oakpos/cashdesk/internal/core/domain"
	portssvc "github.com/oakpos/cashdesk/internal/core/ports/services"
	"github.com/oakpos/cashdesk/internal/core/services"
	"github.com/oakpos/cashdesk/internal/dto"
)

type TransferServiceTestSuite struct {
	suite.Suite
	mockDrawerRepo     *MockDrawerRepository
	mockSessionRepo    *MockSessionRepository
	mockAdjustmentRepo *MockAdjustmentRepository
	mockInterStoreRepo *MockInterStoreTransferRepository
	mockStores         *MockStoreSessionReader
	mockBalanceSvc     *MockBalanceService
	service            portssvc.TransferSvcFacade

	storeID    string
	employeeID string
}

func (suite *TransferServiceTestSuite) SetupTest() {
	suite.mockDrawerRepo = new(MockDrawerRepository)
	suite.mockSessionRepo = new(MockSessionRepository)
	suite.mockAdjustmentRepo = new(MockAdjustmentRepository)
	suite.mockInterStoreRepo = new(MockInterStoreTransferRepository)
	suite.mockStores = new(MockStoreSessionReader)
	suite.mockBalanceSvc = new(MockBalanceService)

	suite.service = services.NewTransferService(
		suite.mockDrawerRepo,
		suite.mockSessionRepo,
		suite.mockAdjustmentRepo,
		suite.mockInterStoreRepo,
		suite.mockStores,
		suite.mockBalanceSvc,
		services.NewKeyedMutex(),
	)

	suite.storeID = uuid.NewString()
	suite.employeeID = uuid.NewString()
	suite.mockStores.On("IsStoreOpen", mock.Anything, mock.AnythingOfType("string")).Return(true, nil)
}

// openSession registers an open session on a new drawer of the given type and
// returns the session ID.
func (suite *TransferServiceTestSuite) openSession(drawerType domain.DrawerType, storeID string) string {
	drawer := &domain.Drawer{
		DrawerID: uuid.NewString(),
		StoreID:  storeID,
		Name:     string(drawerType),
		Type:     drawerType,
		IsActive: true,
	}
	session := &domain.Session{
		SessionID:        uuid.NewString(),
		DrawerID:         drawer.DrawerID,
		Status:           domain.SessionOpen,
		OpenerEmployeeID: suite.employeeID,
		OpeningBalance:   decimal.NewFromInt(100),
	}
	suite.mockSessionRepo.On("FindSessionByID", mock.Anything, session.SessionID).Return(session, nil)
	suite.mockDrawerRepo.On("FindDrawerByID", mock.Anything, drawer.DrawerID).Return(drawer, nil)
	return session.SessionID
}

func (suite *TransferServiceTestSuite) expectBalance(sessionID string, balance float64) {
	suite.mockBalanceSvc.On("ExpectedBalance", mock.Anything, sessionID).Return(decimal.NewFromFloat(balance), nil)
}

func (suite *TransferServiceTestSuite) TestTransferProducesBalancedPair() {
	ctx := context.Background()
	source := suite.openSession(domain.Physical, suite.storeID)
	destination := suite.openSession(domain.Safe, suite.storeID)
	suite.expectBalance(source, 500)
	suite.mockAdjustmentRepo.On("SaveTransferPair", mock.Anything, mock.AnythingOfType("domain.Adjustment"), mock.AnythingOfType("domain.Adjustment"), mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	resp, err := suite.service.Transfer(ctx, dto.TransferRequest{
		SourceSessionID:      source,
		DestinationSessionID: destination,
		Amount:               decimal.NewFromInt(75),
	}, suite.employeeID)

	suite.Require().NoError(err)
	suite.True(resp.Debit.Amount.Equal(decimal.NewFromInt(-75)))
	suite.True(resp.Credit.Amount.Equal(decimal.NewFromInt(75)))
	suite.True(resp.Debit.Amount.Add(resp.Credit.Amount).IsZero())

	call := findCall(suite.mockAdjustmentRepo.Calls, "SaveTransferPair")
	suite.Require().NotNil(call)
	debit := call.Arguments.Get(1).(domain.Adjustment)
	credit := call.Arguments.Get(2).(domain.Adjustment)
	suite.Equal(domain.TransferOut, debit.Type)
	suite.Equal(domain.TransferIn, credit.Type)
	suite.Require().NotNil(debit.CounterSessionID)
	suite.Require().NotNil(credit.CounterSessionID)
	suite.Equal(destination, *debit.CounterSessionID)
	suite.Equal(source, *credit.CounterSessionID)
}

func (suite *TransferServiceTestSuite) TestTransferRejectsPathAgainstHierarchy() {
	ctx := context.Background()
	source := suite.openSession(domain.MasterSafe, suite.storeID)
	destination := suite.openSession(domain.Physical, suite.storeID)

	_, err := suite.service.Transfer(ctx, dto.TransferRequest{
		SourceSessionID:      source,
		DestinationSessionID: destination,
		Amount:               decimal.NewFromInt(10),
	}, suite.employeeID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidTransferPath)
	suite.mockAdjustmentRepo.AssertNotCalled(suite.T(), "SaveTransferPair", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestTransferRejectsCrossStoreSessions() {
	ctx := context.Background()
	source := suite.openSession(domain.Physical, suite.storeID)
	destination := suite.openSession(domain.Safe, uuid.NewString())

	_, err := suite.service.Transfer(ctx, dto.TransferRequest{
		SourceSessionID:      source,
		DestinationSessionID: destination,
		Amount:               decimal.NewFromInt(25),
	}, suite.employeeID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCrossStoreTransfer)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAdjustmentRepo.AssertNotCalled(suite.T(), "SaveTransferPair", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockBalanceSvc.AssertNotCalled(suite.T(), "ExpectedBalance", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestTransferRejectsInsufficientFunds() {
	ctx := context.Background()
	source := suite.openSession(domain.Physical, suite.storeID)
	destination := suite.openSession(domain.Safe, suite.storeID)
	suite.expectBalance(source, 50)

	_, err := suite.service.Transfer(ctx, dto.TransferRequest{
		SourceSessionID:      source,
		DestinationSessionID: destination,
		Amount:               decimal.NewFromInt(75),
	}, suite.employeeID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInsufficientFunds)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *TransferServiceTestSuite) TestTransferRejectsDenominationMismatch() {
	ctx := context.Background()

	_, err := suite.service.Transfer(ctx, dto.TransferRequest{
		SourceSessionID:      uuid.NewString(),
		DestinationSessionID: uuid.NewString(),
		Amount:               decimal.NewFromInt(75),
		Denominations:        domain.DenominationCounts{domain.Bill20: 3},
	}, suite.employeeID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransferServiceTestSuite) TestTransferRejectsNonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.Transfer(ctx, dto.TransferRequest{
		SourceSessionID:      uuid.NewString(),
		DestinationSessionID: uuid.NewString(),
		Amount:               decimal.Zero,
	}, suite.employeeID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAmountNotPositive)
}

func (suite *TransferServiceTestSuite) TestBankDepositRequiresMasterSafe() {
	ctx := context.Background()
	sessionID := suite.openSession(domain.Safe, suite.storeID)

	_, err := suite.service.BankDeposit(ctx, dto.BankMovementRequest{
		SessionID: sessionID,
		BankID:    "main-bank",
		Amount:    decimal.NewFromInt(100),
	}, suite.employeeID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrMasterSafeOnly)
}

func (suite *TransferServiceTestSuite) TestBankDepositDebitsMasterSafe() {
	ctx := context.Background()
	sessionID := suite.openSession(domain.MasterSafe, suite.storeID)
	suite.expectBalance(sessionID, 1000)
	suite.mockAdjustmentRepo.On("SaveAdjustment", mock.Anything, mock.AnythingOfType("domain.Adjustment"), mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	resp, err := suite.service.BankDeposit(ctx, dto.BankMovementRequest{
		SessionID: sessionID,
		BankID:    "main-bank",
		Amount:    decimal.NewFromInt(600),
		Reference: "slip-42",
	}, suite.employeeID)

	suite.Require().NoError(err)
	suite.True(resp.Amount.Equal(decimal.NewFromInt(-600)))
	suite.Equal(string(domain.BankDeposit), resp.Type)
	suite.Equal("main-bank/slip-42", resp.ExternalRef)
}

func (suite *TransferServiceTestSuite) TestBankWithdrawalCreditsMasterSafe() {
	ctx := context.Background()
	sessionID := suite.openSession(domain.MasterSafe, suite.storeID)
	suite.mockAdjustmentRepo.On("SaveAdjustment", mock.Anything, mock.AnythingOfType("domain.Adjustment"), mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	resp, err := suite.service.BankWithdrawal(ctx, dto.BankMovementRequest{
		SessionID: sessionID,
		BankID:    "main-bank",
		Amount:    decimal.NewFromInt(300),
	}, suite.employeeID)

	suite.Require().NoError(err)
	suite.True(resp.Amount.Equal(decimal.NewFromInt(300)))
	suite.Equal("main-bank", resp.ExternalRef)
	suite.mockBalanceSvc.AssertNotCalled(suite.T(), "ExpectedBalance", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestPettyCashPayoutDebitsSession() {
	ctx := context.Background()
	sessionID := suite.openSession(domain.Physical, suite.storeID)
	suite.expectBalance(sessionID, 200)
	suite.mockAdjustmentRepo.On("SaveAdjustment", mock.Anything, mock.AnythingOfType("domain.Adjustment"), mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	resp, err := suite.service.PettyCashPayout(ctx, dto.PettyCashRequest{
		SessionID:   sessionID,
		AccountID:   "office-supplies",
		Amount:      decimal.NewFromFloat(35.50),
		Description: "printer paper",
	}, suite.employeeID)

	suite.Require().NoError(err)
	suite.True(resp.Amount.Equal(decimal.NewFromFloat(-35.50)))
	suite.Equal("printer paper", resp.Reason)
	suite.Equal("office-supplies", resp.ExternalRef)
}

func (suite *TransferServiceTestSuite) TestAdjustRejectsZeroAmount() {
	ctx := context.Background()

	_, err := suite.service.Adjust(ctx, dto.ManualAdjustmentRequest{
		SessionID: uuid.NewString(),
		Type:      "CORRECTION",
		Amount:    decimal.Zero,
		Reason:    "typo",
	}, suite.employeeID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransferServiceTestSuite) TestAdjustRecordsSignedCorrection() {
	ctx := context.Background()
	sessionID := suite.openSession(domain.Physical, suite.storeID)
	suite.mockAdjustmentRepo.On("SaveAdjustment", mock.Anything, mock.AnythingOfType("domain.Adjustment"), mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	resp, err := suite.service.Adjust(ctx, dto.ManualAdjustmentRequest{
		SessionID: sessionID,
		Type:      "CORRECTION",
		Amount:    decimal.NewFromFloat(-12.25),
		Reason:    "miskeyed sale",
	}, suite.employeeID)

	suite.Require().NoError(err)
	suite.True(resp.Amount.Equal(decimal.NewFromFloat(-12.25)))
	suite.Equal("CORRECTION", resp.Type)
}

func (suite *TransferServiceTestSuite) TestInterStoreSendCreatesPendingTransfer() {
	ctx := context.Background()
	sessionID := suite.openSession(domain.Safe, suite.storeID)
	otherStore := uuid.NewString()
	suite.expectBalance(sessionID, 500)
	suite.mockInterStoreRepo.On("CreateInterStoreTransfer", mock.Anything, mock.AnythingOfType("domain.InterStoreTransfer"), mock.AnythingOfType("domain.Adjustment"), mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	resp, err := suite.service.InterStoreSend(ctx, dto.InterStoreSendRequest{
		SessionID: sessionID,
		ToStoreID: otherStore,
		Amount:    decimal.NewFromInt(250),
	}, suite.employeeID)

	suite.Require().NoError(err)
	suite.Equal("PENDING", resp.Status)
	suite.Equal(otherStore, resp.ToStoreID)
	suite.NotEmpty(resp.Reference)
	suite.Nil(resp.ToSessionID)

	call := findCall(suite.mockInterStoreRepo.Calls, "CreateInterStoreTransfer")
	suite.Require().NotNil(call)
	debit := call.Arguments.Get(2).(domain.Adjustment)
	suite.True(debit.Amount.Equal(decimal.NewFromInt(-250)))
	suite.Equal(resp.Reference, debit.ExternalRef)
}

func (suite *TransferServiceTestSuite) TestInterStoreSendRejectsSameStore() {
	ctx := context.Background()
	sessionID := suite.openSession(domain.Safe, suite.storeID)

	_, err := suite.service.InterStoreSend(ctx, dto.InterStoreSendRequest{
		SessionID: sessionID,
		ToStoreID: suite.storeID,
		Amount:    decimal.NewFromInt(250),
	}, suite.employeeID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransferServiceTestSuite) pendingTransfer(fromSessionID, toStoreID string) *domain.InterStoreTransfer {
	return &domain.InterStoreTransfer{
		TransferID:    uuid.NewString(),
		Reference:     "TRF-TEST01",
		FromStoreID:   suite.storeID,
		ToStoreID:     toStoreID,
		FromSessionID: fromSessionID,
		Amount:        decimal.NewFromInt(250),
		Status:        domain.TransferPending,
		SentBy:        suite.employeeID,
		SentAt:        time.Now().UTC(),
	}
}

func (suite *TransferServiceTestSuite) TestInterStoreReceiveCompletesTransfer() {
	ctx := context.Background()
	otherStore := uuid.NewString()
	receiving := suite.openSession(domain.Safe, otherStore)
	transfer := suite.pendingTransfer(uuid.NewString(), otherStore)

	suite.mockInterStoreRepo.On("FindInterStoreTransferByID", mock.Anything, transfer.TransferID).Return(transfer, nil)
	suite.mockInterStoreRepo.On("CompleteInterStoreTransfer", mock.Anything, mock.AnythingOfType("domain.InterStoreTransfer"), mock.AnythingOfType("domain.Adjustment"), mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	resp, err := suite.service.InterStoreReceive(ctx, transfer.TransferID, dto.InterStoreReceiveRequest{SessionID: receiving}, suite.employeeID)

	suite.Require().NoError(err)
	suite.Equal("COMPLETED", resp.Status)
	suite.Require().NotNil(resp.ToSessionID)
	suite.Equal(receiving, *resp.ToSessionID)
	suite.Require().NotNil(resp.ReceivedBy)
	suite.Equal(suite.employeeID, *resp.ReceivedBy)

	call := findCall(suite.mockInterStoreRepo.Calls, "CompleteInterStoreTransfer")
	suite.Require().NotNil(call)
	credit := call.Arguments.Get(2).(domain.Adjustment)
	suite.True(credit.Amount.Equal(decimal.NewFromInt(250)))
	suite.Equal(domain.TransferIn, credit.Type)
}

func (suite *TransferServiceTestSuite) TestInterStoreReceiveRejectsWrongStore() {
	ctx := context.Background()
	receiving := suite.openSession(domain.Safe, suite.storeID)
	transfer := suite.pendingTransfer(uuid.NewString(), uuid.NewString())

	suite.mockInterStoreRepo.On("FindInterStoreTransferByID", mock.Anything, transfer.TransferID).Return(transfer, nil)

	_, err := suite.service.InterStoreReceive(ctx, transfer.TransferID, dto.InterStoreReceiveRequest{SessionID: receiving}, suite.employeeID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrWrongStore)
}

func (suite *TransferServiceTestSuite) TestInterStoreReceiveRejectsSettledTransfer() {
	ctx := context.Background()
	transfer := suite.pendingTransfer(uuid.NewString(), uuid.NewString())
	transfer.Status = domain.TransferCompleted

	suite.mockInterStoreRepo.On("FindInterStoreTransferByID", mock.Anything, transfer.TransferID).Return(transfer, nil)

	_, err := suite.service.InterStoreReceive(ctx, transfer.TransferID, dto.InterStoreReceiveRequest{SessionID: uuid.NewString()}, suite.employeeID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTransferNotPending)
}

func (suite *TransferServiceTestSuite) TestInterStoreVoidRestoresFunds() {
	ctx := context.Background()
	sending := suite.openSession(domain.Safe, suite.storeID)
	transfer := suite.pendingTransfer(sending, uuid.NewString())

	suite.mockInterStoreRepo.On("FindInterStoreTransferByID", mock.Anything, transfer.TransferID).Return(transfer, nil)
	suite.mockInterStoreRepo.On("VoidInterStoreTransfer", mock.Anything, mock.AnythingOfType("domain.InterStoreTransfer"), mock.AnythingOfType("domain.Adjustment"), mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	resp, err := suite.service.InterStoreVoid(ctx, transfer.TransferID, suite.employeeID)

	suite.Require().NoError(err)
	suite.Equal("VOIDED", resp.Status)

	call := findCall(suite.mockInterStoreRepo.Calls, "VoidInterStoreTransfer")
	suite.Require().NotNil(call)
	reversal := call.Arguments.Get(2).(domain.Adjustment)
	suite.True(reversal.Amount.Equal(decimal.NewFromInt(250)))
	suite.Equal(sending, reversal.SessionID)
}

func (suite *TransferServiceTestSuite) TestInterStoreVoidRejectsSettledTransfer() {
	ctx := context.Background()
	transfer := suite.pendingTransfer(uuid.NewString(), uuid.NewString())
	transfer.Status = domain.TransferVoided

	suite.mockInterStoreRepo.On("FindInterStoreTransferByID", mock.Anything, transfer.TransferID).Return(transfer, nil)

	_, err := suite.service.InterStoreVoid(ctx, transfer.TransferID, suite.employeeID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTransferNotPending)
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}
