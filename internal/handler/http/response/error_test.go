package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekurindo/secops-backend-go/internal/domain/auth"
	"github.com/sekurindo/secops-backend-go/internal/domain/incident"
	"github.com/sekurindo/secops-backend-go/internal/domain/patrol"
	"github.com/sekurindo/secops-backend-go/internal/pkg/validator"
)

func handle(t *testing.T, err error) (int, Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	HandleError(rec, err)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHandleError_ValidationErrors(t *testing.T) {
	code, body := handle(t, validator.ValidationErrors{
		{Field: "latitude", Message: "latitude must be between -90 and 90"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Contains(t, body.Error.Details, "latitude")
}

func TestHandleError_GeofenceViolation(t *testing.T) {
	code, body := handle(t, &patrol.GeofenceViolationError{
		DistanceMeters:  138.728,
		RadiusMeters:    25,
		RemainingMeters: 113.728,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "OUTSIDE_GEOFENCE", body.Error.Code)

	details, ok := body.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 138.73, details["distance_m"])
	assert.Equal(t, 25.0, details["radius_m"])
	assert.Equal(t, 113.73, details["remaining_m"])
	assert.Equal(t, false, details["inside"])
}

func TestHandleError_AmbiguousAssignment(t *testing.T) {
	code, body := handle(t, &patrol.AmbiguousAssignmentError{CandidateProjectIDs: []int64{10, 11}})

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "AMBIGUOUS_ASSIGNMENT", body.Error.Code)

	details, ok := body.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{10.0, 11.0}, details["candidate_project_ids"])
}

func TestHandleError_StatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"token expired", auth.ErrTokenExpired, http.StatusUnauthorized},
		{"no project assigned", patrol.ErrNoProjectAssigned, http.StatusUnprocessableEntity},
		{"patrol already active", patrol.ErrPatrolAlreadyActive, http.StatusConflict},
		{"patrol not in progress", patrol.ErrPatrolNotInProgress, http.StatusConflict},
		{"patrol forbidden", patrol.ErrForbidden, http.StatusForbidden},
		{"patrol not found", patrol.ErrPatrolNotFound, http.StatusNotFound},
		{"incident already resolved", incident.ErrAlreadyResolved, http.StatusConflict},
		{"incident not found", incident.ErrIncidentNotFound, http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := handle(t, tt.err)
			assert.Equal(t, tt.want, code)
			assert.False(t, body.Success)
		})
	}
}

func TestHandleError_WrappedErrorsStillMatch(t *testing.T) {
	wrapped := errors.Join(errors.New("refused"), patrol.ErrPatrolAlreadyActive)
	code, _ := handle(t, wrapped)
	assert.Equal(t, http.StatusConflict, code)
}
