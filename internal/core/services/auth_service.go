package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oakpos/cashdesk/internal/apperrors"
	"github.com/oakpos/cashdesk/internal/core/domain"
	portsrepo "github.com/oakpos/cashdesk/internal/core/ports/repositories"
	portssvc "github.com/oakpos/cashdesk/internal/core/ports/services"
	"github.com/oakpos/cashdesk/internal/dto"
	"github.com/oakpos/cashdesk/internal/middleware"
	"github.com/oakpos/cashdesk/internal/utils"
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	ErrInsufficientRole   = fmt.Errorf("%w: role does not permit this action", apperrors.ErrForbidden)
)

type authService struct {
	employeeRepo portsrepo.EmployeeReader

	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates a new AuthService.
func NewAuthService(employeeRepo portsrepo.EmployeeReader, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		employeeRepo: employeeRepo,
		jwtSecret:    jwtSecret,
		jwtExpiry:    jwtExpiry,
		jwtIssuer:    jwtIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies credentials and issues a bearer token.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.verifyCredentials(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateJWT(employee.EmployeeID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("Employee logged in", slog.String("employee_id", employee.EmployeeID))
	return &dto.LoginResponse{
		Token:      token,
		ExpiresAt:  time.Now().Add(s.jwtExpiry),
		EmployeeID: employee.EmployeeID,
		Name:       employee.Name,
		Role:       string(employee.Role),
	}, nil
}

// Reauthenticate verifies credentials independently of any session token and
// requires at least the given role. The approval path for over-threshold
// closes runs through here.
func (s *authService) Reauthenticate(ctx context.Context, username, password string, minRole domain.EmployeeRole) (*domain.Employee, error) {
	employee, err := s.verifyCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if !employee.Role.AtLeast(minRole) {
		return nil, ErrInsufficientRole
	}
	return employee, nil
}

// GetEmployee retrieves an employee identity.
func (s *authService) GetEmployee(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find employee %s: %w", employeeID, err)
	}
	return employee, nil
}

// verifyCredentials resolves the username and checks the password. Unknown
// usernames and wrong passwords return the same error.
func (s *authService) verifyCredentials(ctx context.Context, username, password string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find employee %s: %w", username, err)
	}
	if !employee.IsActive {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, employee.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return employee, nil
}
