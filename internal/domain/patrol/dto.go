package patrol

import (
	"time"

	"github.com/sekurindo/secops-backend-go/internal/pkg/geo"
	"github.com/sekurindo/secops-backend-go/internal/pkg/validator"
)

// ========================================
// PATROL DTOs
// ========================================

// Coordinate is an observed GPS position in decimal degrees (WGS84).
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func validateCoordinate(lat, lon float64, errs validator.ValidationErrors) validator.ValidationErrors {
	if !validator.IsValidLatitude(lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if !validator.IsValidLongitude(lon) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	return errs
}

type StartPatrolRequest struct {
	CheckpointID *int64   `json:"checkpoint_id"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Note         *string  `json:"note"`
}

func (r *StartPatrolRequest) Validate() error {
	var errs validator.ValidationErrors

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	}
	if r.Latitude != nil && r.Longitude != nil {
		errs = validateCoordinate(*r.Latitude, *r.Longitude, errs)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type VisitRequest struct {
	CheckpointID int64   `json:"checkpoint_id"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

func (r *VisitRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CheckpointID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "checkpoint_id",
			Message: "checkpoint_id is required",
		})
	}
	errs = validateCoordinate(r.Latitude, r.Longitude, errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CompletePatrolRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Note      *string  `json:"note"`
}

func (r *CompletePatrolRequest) Validate() error {
	var errs validator.ValidationErrors

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	}
	if r.Latitude != nil && r.Longitude != nil {
		errs = validateCoordinate(*r.Latitude, *r.Longitude, errs)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListFilter mirrors the query parameters of the listing endpoints.
// MaxListLimit caps page size; zero Limit means MaxListLimit.
type ListFilter struct {
	Status *Status
	Date   *time.Time
	Limit  int
}

const MaxListLimit = 100

// ========================================
// RESPONSES
// ========================================

// GeofenceResponse reports a geofence check with values rounded for display.
// The comparison against the radius happens on raw floats before rounding.
type GeofenceResponse struct {
	DistanceMeters  float64 `json:"distance_m"`
	RadiusMeters    float64 `json:"radius_m"`
	Inside          bool    `json:"inside"`
	RemainingMeters float64 `json:"remaining_m"`
}

func ToGeofenceResponse(result geo.Result, radiusMeters float64) GeofenceResponse {
	return GeofenceResponse{
		DistanceMeters:  geo.Round2(result.DistanceMeters),
		RadiusMeters:    geo.Round2(radiusMeters),
		Inside:          result.Inside,
		RemainingMeters: geo.Round2(result.RemainingMeters),
	}
}

type PatrolResponse struct {
	ID           int64    `json:"id"`
	EmployeeID   int64    `json:"employee_id"`
	ProjectID    int64    `json:"project_id"`
	CheckpointID *int64   `json:"checkpoint_id,omitempty"`
	Status       Status   `json:"status"`
	StartTime    string   `json:"start_time"`
	EndTime      *string  `json:"end_time,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Note         *string  `json:"note,omitempty"`
	EmployeeName *string  `json:"employee_name,omitempty"`
	EmployeeCode *string  `json:"employee_code,omitempty"`
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

func ToPatrolResponse(p Patrol) PatrolResponse {
	return PatrolResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		ProjectID:    p.ProjectID,
		CheckpointID: p.CheckpointID,
		Status:       p.Status,
		StartTime:    p.StartTime.Format(time.RFC3339),
		EndTime:      timePtrToString(p.EndTime),
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		Note:         p.Note,
		EmployeeName: p.EmployeeName,
		EmployeeCode: p.EmployeeCode,
	}
}

// VisitResponse carries the updated patrol together with the geofence
// verdict for audit display.
type VisitResponse struct {
	Patrol   PatrolResponse    `json:"patrol"`
	Geofence *GeofenceResponse `json:"geofence,omitempty"`
}

type PatrolDetailResponse struct {
	Patrol       PatrolResponse `json:"patrol"`
	EvidenceURLs []string       `json:"evidence_urls"`
}

type EvidenceResponse struct {
	ID       int64  `json:"id"`
	PatrolID int64  `json:"patrol_id"`
	FileURL  string `json:"file_url"`
}

// CheckpointStatus annotates a checkpoint with the live geofence verdict
// relative to the caller's reported position, when one was supplied.
type CheckpointStatus struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Latitude     *float64          `json:"latitude,omitempty"`
	Longitude    *float64          `json:"longitude,omitempty"`
	RadiusMeters *float64          `json:"radius_m,omitempty"`
	Sequence     int               `json:"sequence"`
	Geofence     *GeofenceResponse `json:"geofence,omitempty"`
}
