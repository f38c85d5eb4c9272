package services

import (
	"context"

	"github.com/oakpos/cashdesk/internal/core/domain"
	"github.com/oakpos/cashdesk/internal/dto"
)

// AuthSvcFacade supplies employee authentication and the manager
// re-authentication primitive that gates force closes.
type AuthSvcFacade interface {
	// Login verifies credentials and issues a bearer token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// Reauthenticate verifies credentials against a distinct credential
	// check and requires at least the given role. Used by ForceClose.
	Reauthenticate(ctx context.Context, username, password string, minRole domain.EmployeeRole) (*domain.Employee, error)

	// GetEmployee retrieves an employee identity.
	GetEmployee(ctx context.Context, employeeID string) (*domain.Employee, error)
}
