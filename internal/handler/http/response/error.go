package response

import (
	"errors"
	"net/http"

	"github.com/sekurindo/secops-backend-go/internal/domain/auth"
	"github.com/sekurindo/secops-backend-go/internal/domain/employee"
	"github.com/sekurindo/secops-backend-go/internal/domain/incident"
	"github.com/sekurindo/secops-backend-go/internal/domain/patrol"
	"github.com/sekurindo/secops-backend-go/internal/domain/project"
	"github.com/sekurindo/secops-backend-go/internal/domain/user"
	"github.com/sekurindo/secops-backend-go/internal/pkg/geo"
	"github.com/sekurindo/secops-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Typed patrol errors carry measurements the client needs. They go
	// out as numbers, rounded for display only.
	var geofenceErr *patrol.GeofenceViolationError
	if errors.As(err, &geofenceErr) {
		UnprocessableEntity(w, "OUTSIDE_GEOFENCE", "Location is outside the checkpoint geofence", patrol.GeofenceResponse{
			DistanceMeters:  geo.Round2(geofenceErr.DistanceMeters),
			RadiusMeters:    geo.Round2(geofenceErr.RadiusMeters),
			Inside:          false,
			RemainingMeters: geo.Round2(geofenceErr.RemainingMeters),
		})
		return
	}

	var ambiguousErr *patrol.AmbiguousAssignmentError
	if errors.As(err, &ambiguousErr) {
		UnprocessableEntity(w, "AMBIGUOUS_ASSIGNMENT", "Employee has multiple active project assignments", ambiguousAssignmentDetails{
			CandidateProjectIDs: ambiguousErr.CandidateProjectIDs,
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid employee code or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// Access errors
	case errors.Is(err, employee.ErrProfileRequired):
		Forbidden(w, "An employee profile is required for this operation")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, patrol.ErrForbidden):
		Forbidden(w, "Not allowed to access this patrol")
	case errors.Is(err, incident.ErrForbidden):
		Forbidden(w, "Not allowed to access this incident")

	// Patrol lifecycle errors
	case errors.Is(err, patrol.ErrNoProjectAssigned):
		UnprocessableEntity(w, "NO_PROJECT_ASSIGNED", "Employee has no active project assignment", nil)
	case errors.Is(err, patrol.ErrPatrolAlreadyActive):
		Conflict(w, "An in-progress patrol already exists")
	case errors.Is(err, patrol.ErrPatrolNotInProgress):
		Conflict(w, "Patrol is not in progress")
	case errors.Is(err, incident.ErrAlreadyResolved):
		Conflict(w, "Incident is already resolved")

	// Not found
	case errors.Is(err, patrol.ErrPatrolNotFound):
		NotFound(w, "Patrol not found")
	case errors.Is(err, incident.ErrIncidentNotFound):
		NotFound(w, "Incident not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")
	case errors.Is(err, project.ErrCheckpointNotFound):
		NotFound(w, "Checkpoint not found")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

type ambiguousAssignmentDetails struct {
	CandidateProjectIDs []int64 `json:"candidate_project_ids"`
}
