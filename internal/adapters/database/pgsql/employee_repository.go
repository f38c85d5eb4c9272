package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oakpos/cashdesk/internal/apperrors"
	"github.com/oakpos/cashdesk/internal/core/domain"
	portsrepo "github.com/oakpos/cashdesk/internal/core/ports/repositories"
)

type PgxEmployeeRepository struct {
	pool *pgxpool.Pool
}

// NewPgxEmployeeRepository creates a new read-only repository for employee
// identity.
func NewPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeReader {
	return &PgxEmployeeRepository{pool: pool}
}

const employeeColumns = `employee_id, username, name, password_hash, role, is_active, discrepancy_threshold, created_at, created_by, last_updated_at, last_updated_by`

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var employee domain.Employee
	err := row.Scan(
		&employee.EmployeeID,
		&employee.Username,
		&employee.Name,
		&employee.PasswordHash,
		&employee.Role,
		&employee.IsActive,
		&employee.DiscrepancyThreshold,
		&employee.CreatedAt,
		&employee.CreatedBy,
		&employee.LastUpdatedAt,
		&employee.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan employee row: %w", err)
	}
	return &employee, nil
}

// FindEmployeeByID retrieves an employee by ID.
func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1;`
	return scanEmployee(r.pool.QueryRow(ctx, query, employeeID))
}

// FindEmployeeByUsername retrieves an employee by username.
func (r *PgxEmployeeRepository) FindEmployeeByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE username = $1;`
	return scanEmployee(r.pool.QueryRow(ctx, query, username))
}
