package postgresql

import (
	"context"
	"fmt"

	"github.com/sekurindo/secops-backend-go/internal/domain/employee"
	"github.com/sekurindo/secops-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, user_id, employee_code, full_name, approval_line, position,
	phone_number, employment_status, created_at, updated_at, deleted_at
`

func scanEmployee(row interface {
	Scan(dest ...interface{}) error
}) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.UserID, &e.EmployeeCode, &e.FullName, &e.ApprovalLine, &e.Position,
		&e.PhoneNumber, &e.EmploymentStatus, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	)
	return e, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1
		  AND deleted_at IS NULL
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return e, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByUserID(ctx context.Context, userID int64) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE user_id = $1
		  AND deleted_at IS NULL
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, userID))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee by user id: %w", err)
	}
	return e, nil
}

// GetByCode implements employee.EmployeeRepository.
func (r *employeeRepository) GetByCode(ctx context.Context, employeeCode string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE employee_code = $1
		  AND deleted_at IS NULL
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, employeeCode))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}
	return e, nil
}

// ListByApprovalLine implements employee.EmployeeRepository.
func (r *employeeRepository) ListByApprovalLine(ctx context.Context, approvalLine string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE approval_line = $1
		  AND employment_status = 'active'
		  AND deleted_at IS NULL
		ORDER BY id
	`

	rows, err := q.Query(ctx, query, approvalLine)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by approval line: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// ActiveProjectIDs implements employee.EmployeeRepository.
func (r *employeeRepository) ActiveProjectIDs(ctx context.Context, employeeID int64) ([]int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ep.project_id
		FROM employee_projects ep
		JOIN client_projects cp ON cp.id = ep.project_id
		WHERE ep.employee_id = $1
		  AND ep.active = TRUE
		  AND cp.active = TRUE
		ORDER BY ep.project_id
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project assignments: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan project id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate project assignments: %w", err)
	}

	return ids, nil
}
