package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrProfileRequired means the authenticated account has no linked
	// employee record and cannot use employee-scoped features.
	ErrProfileRequired = errors.New("employee profile required")
)
