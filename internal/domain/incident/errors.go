package incident

import "errors"

// Incident domain errors
var (
	ErrIncidentNotFound = errors.New("incident not found")
	ErrForbidden        = errors.New("not allowed to access this incident")
	// ErrAlreadyResolved guards the terminal state: a resolved incident
	// accepts no further status transitions.
	ErrAlreadyResolved = errors.New("incident has already been resolved")
)
