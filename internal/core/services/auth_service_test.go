package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/oakpos/cashdesk/internal/apperrors"
	"github.com/oakpos/cashdesk/internal/core/domain"
	portssvc "github.com/oakpos/cashdesk/internal/core/ports/services"
	"github.com/oakpos/cashdesk/internal/core/services"
	"github.com/oakpos/cashdesk/internal/dto"
	"github.com/oakpos/cashdesk/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockEmployees *MockEmployeeReader
	service       portssvc.AuthSvcFacade
	employee      *domain.Employee
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockEmployees = new(MockEmployeeReader)
	suite.service = services.NewAuthService(suite.mockEmployees, "test-secret", time.Hour, "cashdesk-test")

	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	suite.employee = &domain.Employee{
		EmployeeID:   uuid.NewString(),
		Username:     "cashier",
		Name:         "Cashier",
		PasswordHash: hash,
		Role:         domain.RoleMember,
		IsActive:     true,
	}
}

func (suite *AuthServiceTestSuite) TestLoginIssuesToken() {
	ctx := context.Background()
	suite.mockEmployees.On("FindEmployeeByUsername", mock.Anything, "cashier").Return(suite.employee, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "cashier", Password: "correct-horse"})

	suite.Require().NoError(err)
	suite.NotEmpty(resp.Token)
	suite.Equal(suite.employee.EmployeeID, resp.EmployeeID)
	suite.Equal("MEMBER", resp.Role)
	suite.True(resp.ExpiresAt.After(time.Now()))
}

func (suite *AuthServiceTestSuite) TestLoginRejectsWrongPassword() {
	ctx := context.Background()
	suite.mockEmployees.On("FindEmployeeByUsername", mock.Anything, "cashier").Return(suite.employee, nil).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Username: "cashier", Password: "wrong"})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLoginRejectsUnknownUsernameWithSameError() {
	ctx := context.Background()
	suite.mockEmployees.On("FindEmployeeByUsername", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "whatever"})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLoginRejectsInactiveEmployee() {
	ctx := context.Background()
	suite.employee.IsActive = false
	suite.mockEmployees.On("FindEmployeeByUsername", mock.Anything, "cashier").Return(suite.employee, nil).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Username: "cashier", Password: "correct-horse"})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestReauthenticateEnforcesMinimumRole() {
	ctx := context.Background()
	suite.mockEmployees.On("FindEmployeeByUsername", mock.Anything, "cashier").Return(suite.employee, nil).Once()

	_, err := suite.service.Reauthenticate(ctx, "cashier", "correct-horse", domain.RoleManager)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInsufficientRole)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AuthServiceTestSuite) TestReauthenticateAcceptsSufficientRole() {
	ctx := context.Background()
	suite.employee.Role = domain.RoleOwner
	suite.mockEmployees.On("FindEmployeeByUsername", mock.Anything, "cashier").Return(suite.employee, nil).Once()

	got, err := suite.service.Reauthenticate(ctx, "cashier", "correct-horse", domain.RoleManager)

	suite.Require().NoError(err)
	suite.Equal(suite.employee.EmployeeID, got.EmployeeID)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
