package domain

import "github.com/shopspring/decimal"

// EmployeeRole orders authorization levels. Manager and owner may approve
// over-threshold closes.
type EmployeeRole string

const (
	RoleMember  EmployeeRole = "MEMBER"
	RoleManager EmployeeRole = "MANAGER"
	RoleOwner   EmployeeRole = "OWNER"
)

// AtLeast reports whether r carries at least the privileges of required.
func (r EmployeeRole) AtLeast(required EmployeeRole) bool {
	rank := map[EmployeeRole]int{RoleMember: 1, RoleManager: 2, RoleOwner: 3}
	return rank[r] >= rank[required]
}

// Employee is the identity record consumed from the auth collaborator.
type Employee struct {
	EmployeeID   string       `json:"employeeID"` // Primary Key (UUID)
	Username     string       `json:"username"`
	Name         string       `json:"name"`
	PasswordHash string       `json:"-"`
	Role         EmployeeRole `json:"role"`
	IsActive     bool         `json:"isActive"`

	// DiscrepancyThreshold overrides the system default close threshold for
	// this employee when set.
	DiscrepancyThreshold *decimal.Decimal `json:"discrepancyThreshold,omitempty"`

	AuditFields
}
