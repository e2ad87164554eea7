package patrol

import (
	"errors"
	"fmt"
)

// Patrol domain errors
var (
	// Start errors
	ErrNoProjectAssigned   = errors.New("no active project assignment")
	ErrPatrolAlreadyActive = errors.New("an in-progress patrol already exists")

	// Transition errors
	ErrPatrolNotInProgress = errors.New("patrol is not in progress")

	// General errors
	ErrPatrolNotFound = errors.New("patrol not found")
	ErrForbidden      = errors.New("not allowed to access this patrol")
)

// AmbiguousAssignmentError is returned when a guard holds more than one
// active project assignment. The lifecycle refuses to guess which site is
// being patrolled; candidates are surfaced so a client could disambiguate.
type AmbiguousAssignmentError struct {
	CandidateProjectIDs []int64
}

func (e *AmbiguousAssignmentError) Error() string {
	return fmt.Sprintf("employee has %d active project assignments, expected exactly one", len(e.CandidateProjectIDs))
}

// GeofenceViolationError rejects a checkpoint visit recorded outside the
// fence. It is retryable: the guard moves closer and submits again.
type GeofenceViolationError struct {
	DistanceMeters  float64
	RadiusMeters    float64
	RemainingMeters float64
}

func (e *GeofenceViolationError) Error() string {
	return fmt.Sprintf("outside geofence: %.2fm from checkpoint, radius %.2fm, %.2fm remaining",
		e.DistanceMeters, e.RadiusMeters, e.RemainingMeters)
}
