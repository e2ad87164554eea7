package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (Employee, error)

	// GetByUserID resolves the employee linked to an account, used when
	// mapping an authenticated user onto its employee profile.
	GetByUserID(ctx context.Context, userID int64) (Employee, error)

	GetByCode(ctx context.Context, employeeCode string) (Employee, error)

	// ListByApprovalLine returns active employees whose approval_line equals
	// the given code: the direct reports of that code's owner.
	ListByApprovalLine(ctx context.Context, approvalLine string) ([]Employee, error)

	// ActiveProjectIDs returns ids of projects the employee is currently
	// assigned to.
	ActiveProjectIDs(ctx context.Context, employeeID int64) ([]int64, error)
}
