package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/oakpos/cashdesk/internal/core/domain"
	portssvc "github.com/oakpos/cashdesk/internal/core/ports/services"
	"github.com/oakpos/cashdesk/internal/core/services"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	mockSessionRepo *MockSessionRepository
	mockLedger      *MockLedgerReader
	mockMethods     *MockPaymentMethodReader
	service         portssvc.BalanceSvcFacade

	sessionID string
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockSessionRepo = new(MockSessionRepository)
	suite.mockLedger = new(MockLedgerReader)
	suite.mockMethods = new(MockPaymentMethodReader)
	suite.service = services.NewBalanceService(suite.mockSessionRepo, suite.mockLedger, suite.mockMethods)
	suite.sessionID = uuid.NewString()
}

func (suite *BalanceServiceTestSuite) catalog() []domain.PaymentMethod {
	return []domain.PaymentMethod{
		{PaymentMethodID: "cash", Name: "Cash", Kind: domain.TenderPhysical, IsCash: true},
		{PaymentMethodID: "card", Name: "Card", Kind: domain.TenderElectronic},
		{PaymentMethodID: "check", Name: "Check", Kind: domain.TenderPhysical},
	}
}

func (suite *BalanceServiceTestSuite) TestExpectedBalanceSumsOpeningAdjustmentsAndCashPostings() {
	ctx := context.Background()
	session := &domain.Session{SessionID: suite.sessionID, Status: domain.SessionOpen, OpeningBalance: decimal.NewFromInt(200)}

	suite.mockSessionRepo.On("FindSessionByID", mock.Anything, suite.sessionID).Return(session, nil)
	suite.mockSessionRepo.On("ListAdjustmentsBySession", mock.Anything, suite.sessionID).Return([]domain.Adjustment{
		{Amount: decimal.NewFromInt(-50)},
		{Amount: decimal.NewFromFloat(12.50)},
	}, nil)
	suite.mockMethods.On("ListPaymentMethods", mock.Anything).Return(suite.catalog(), nil)
	suite.mockLedger.On("ListPostingsBySession", mock.Anything, suite.sessionID).Return([]domain.LedgerPosting{
		{SessionID: suite.sessionID, PaymentMethodID: "cash", Amount: decimal.NewFromInt(80)},
		{SessionID: suite.sessionID, PaymentMethodID: "card", Amount: decimal.NewFromInt(120)},
	}, nil)

	balance, err := suite.service.ExpectedBalance(ctx, suite.sessionID)

	suite.Require().NoError(err)
	// 200 - 50 + 12.50 + 80; the card posting never touches the drawer.
	suite.True(balance.Equal(decimal.NewFromFloat(242.50)))
}

func (suite *BalanceServiceTestSuite) TestTenderExpectationsAggregatePerMethod() {
	ctx := context.Background()

	suite.mockMethods.On("ListPaymentMethods", mock.Anything).Return(suite.catalog(), nil)
	suite.mockLedger.On("ListPostingsBySession", mock.Anything, suite.sessionID).Return([]domain.LedgerPosting{
		{SessionID: suite.sessionID, PaymentMethodID: "card", Amount: decimal.NewFromInt(40)},
		{SessionID: suite.sessionID, PaymentMethodID: "card", Amount: decimal.NewFromInt(60)},
		{SessionID: suite.sessionID, PaymentMethodID: "check", Amount: decimal.NewFromInt(75)},
	}, nil)

	expectations, err := suite.service.TenderExpectations(ctx, suite.sessionID)

	suite.Require().NoError(err)
	suite.Require().Len(expectations, 2)

	byMethod := make(map[string]domain.TenderExpectation)
	for _, e := range expectations {
		byMethod[e.Method.PaymentMethodID] = e
	}
	suite.Require().Contains(byMethod, "card")
	suite.Require().Contains(byMethod, "check")
	suite.Equal(int64(2), byMethod["card"].ExpectedQty)
	suite.True(byMethod["card"].ExpectedAmount.Equal(decimal.NewFromInt(100)))
	suite.Equal(int64(1), byMethod["check"].ExpectedQty)
	suite.True(byMethod["check"].ExpectedAmount.Equal(decimal.NewFromInt(75)))
}

func (suite *BalanceServiceTestSuite) TestTenderExpectationsRejectUncatalogedMethod() {
	ctx := context.Background()

	suite.mockMethods.On("ListPaymentMethods", mock.Anything).Return(suite.catalog(), nil)
	suite.mockLedger.On("ListPostingsBySession", mock.Anything, suite.sessionID).Return([]domain.LedgerPosting{
		{SessionID: suite.sessionID, PaymentMethodID: "mystery", Amount: decimal.NewFromInt(10)},
	}, nil)

	_, err := suite.service.TenderExpectations(ctx, suite.sessionID)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "mystery")
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
