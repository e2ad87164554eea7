package approval

import (
	"context"

	"github.com/sekurindo/secops-backend-go/internal/domain/employee"
)

// Scope is a set of employee ids a manager may see. The root employee is
// always a member of its own scope.
type Scope map[int64]struct{}

func (s Scope) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s Scope) IDs() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}

// ScopeResolver computes the transitive subordinate set of an employee over
// the approval_line relation. Results are not cached; the resolver is re-run
// on every authorization check, which is fine for the hierarchy sizes this
// system sees. Callers needing more should memoize per request.
type ScopeResolver interface {
	ResolveSubordinates(ctx context.Context, root employee.Employee) (Scope, error)
}
