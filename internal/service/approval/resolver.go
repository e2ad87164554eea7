package approval

import (
	"context"
	"fmt"

	"github.com/sekurindo/secops-backend-go/internal/domain/approval"
	"github.com/sekurindo/secops-backend-go/internal/domain/employee"
)

type ScopeResolverImpl struct {
	employee.EmployeeRepository
}

func NewScopeResolver(employeeRepo employee.EmployeeRepository) approval.ScopeResolver {
	return &ScopeResolverImpl{
		EmployeeRepository: employeeRepo,
	}
}

// ResolveSubordinates walks the approval_line relation breadth-first from
// the root, collecting every transitive report. The approval line is a
// same-table back-reference, so a misconfigured hierarchy can contain
// cycles; the visited set guarantees termination regardless.
func (r *ScopeResolverImpl) ResolveSubordinates(ctx context.Context, root employee.Employee) (approval.Scope, error) {
	scope := approval.Scope{root.ID: {}}

	if root.EmployeeCode == "" {
		return scope, nil
	}

	visited := map[string]struct{}{}
	queue := []string{root.EmployeeCode}

	for len(queue) > 0 {
		code := queue[0]
		queue = queue[1:]

		if _, seen := visited[code]; seen {
			continue
		}
		visited[code] = struct{}{}

		reports, err := r.EmployeeRepository.ListByApprovalLine(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to list reports of %s: %w", code, err)
		}

		for _, report := range reports {
			if scope.Contains(report.ID) {
				continue
			}
			scope[report.ID] = struct{}{}
			if report.EmployeeCode != "" {
				queue = append(queue, report.EmployeeCode)
			}
		}
	}

	return scope, nil
}
