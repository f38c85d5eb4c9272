package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/oakpos/cashdesk/internal/core/domain"
	portssvc "github.com/oakpos/cashdesk/internal/core/ports/services"
	"github.com/oakpos/cashdesk/internal/core/services"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalReader
	service         portssvc.JournalSvcFacade
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalReader)
	suite.service = services.NewJournalService(suite.mockJournalRepo)
}

func (suite *JournalServiceTestSuite) TestListEntries() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	entries := []domain.JournalEntry{
		{EntryID: uuid.NewString(), SessionID: sessionID, Sequence: 1, EntryType: domain.EntryOpen},
		{EntryID: uuid.NewString(), SessionID: sessionID, Sequence: 2, EntryType: domain.EntryAdjustment},
	}
	suite.mockJournalRepo.On("ListEntriesBySession", mock.Anything, sessionID).Return(entries, nil).Once()

	got, err := suite.service.ListEntries(ctx, sessionID)

	suite.Require().NoError(err)
	suite.Equal(entries, got)
}

func (suite *JournalServiceTestSuite) TestReplayBalanceReconstructsExpectedBalance() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	entries := []domain.JournalEntry{
		{Sequence: 1, EntryType: domain.EntryOpen, Amount: decimal.NewFromInt(200)},
		{Sequence: 2, EntryType: domain.EntryConnect, Amount: decimal.Zero},
		{Sequence: 3, EntryType: domain.EntryTransferDebit, Amount: decimal.NewFromInt(-50)},
		{Sequence: 4, EntryType: domain.EntryAdjustment, Amount: decimal.NewFromFloat(12.75)},
		{Sequence: 5, EntryType: domain.EntryDisconnect, Amount: decimal.Zero},
	}
	suite.mockJournalRepo.On("ListEntriesBySession", mock.Anything, sessionID).Return(entries, nil).Once()

	balance, err := suite.service.ReplayBalance(ctx, sessionID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromFloat(162.75)))
}

func (suite *JournalServiceTestSuite) TestReplayBalanceSkipsCloseEntry() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	entries := []domain.JournalEntry{
		{Sequence: 1, EntryType: domain.EntryOpen, Amount: decimal.NewFromInt(200)},
		{Sequence: 2, EntryType: domain.EntryAdjustment, Amount: decimal.NewFromInt(45)},
		{Sequence: 3, EntryType: domain.EntryClose, Amount: decimal.NewFromInt(-3)},
	}
	suite.mockJournalRepo.On("ListEntriesBySession", mock.Anything, sessionID).Return(entries, nil).Once()

	balance, err := suite.service.ReplayBalance(ctx, sessionID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(245)))
}

func (suite *JournalServiceTestSuite) TestReplayBalancePropagatesRepoError() {
	ctx := context.Background()
	sessionID := uuid.NewString()
	repoErr := errors.New("connection refused")
	suite.mockJournalRepo.On("ListEntriesBySession", mock.Anything, sessionID).Return(nil, repoErr).Once()

	_, err := suite.service.ReplayBalance(ctx, sessionID)

	suite.Require().Error(err)
	suite.ErrorIs(err, repoErr)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
