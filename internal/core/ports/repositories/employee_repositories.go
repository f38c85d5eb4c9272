package repositories

import (
	"context"

	"github.com/oakpos/cashdesk/internal/core/domain"
)

// EmployeeReader defines read access to employee identity. Employee CRUD is
// owned by the surrounding HR system; the engine only reads identities,
// roles, credential hashes and per-employee thresholds.
type EmployeeReader interface {
	// FindEmployeeByID retrieves an employee by ID.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// FindEmployeeByUsername retrieves an employee by username, used by the
	// login and manager re-authentication flows.
	FindEmployeeByUsername(ctx context.Context, username string) (*domain.Employee, error)
}
