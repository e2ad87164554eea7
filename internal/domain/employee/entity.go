package employee

import (
	"time"

	"github.com/sekurindo/secops-backend-go/internal/domain/user"
)

type Employee struct {
	ID           int64
	UserID       *int64
	EmployeeCode string
	FullName     string
	// ApprovalLine is the employee_code of the person this employee reports
	// to. It is a back-reference into the same table, which makes the
	// reporting structure a graph that must be walked with a cycle guard.
	ApprovalLine     *string
	Position         *string
	PhoneNumber      *string
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// Actor is the authenticated employee behind a request, with the account
// role carried alongside for coarse permission checks.
type Actor struct {
	Employee Employee
	Role     user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}
