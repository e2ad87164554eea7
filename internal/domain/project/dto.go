package project

import (
	"github.com/sekurindo/secops-backend-go/internal/pkg/validator"
)

// ========================================
// CHECKPOINT DTOs
// ========================================

type CreateCheckpointRequest struct {
	ProjectID    int64    `json:"-"`
	Name         string   `json:"name"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	RadiusMeters *float64 `json:"radius_m"`
	Sequence     int      `json:"sequence"`
}

func (r *CreateCheckpointRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	// Geofence data is optional but must be all-or-nothing: a lone latitude
	// cannot be enforced.
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	}

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.RadiusMeters != nil && *r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_m",
			Message: "radius_m must be greater than 0",
		})
	}

	if r.Sequence < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "sequence",
			Message: "sequence must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateCheckpointRequest struct {
	ID           int64    `json:"-"`
	Name         string   `json:"name"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	RadiusMeters *float64 `json:"radius_m"`
	Sequence     int      `json:"sequence"`
	Active       bool     `json:"active"`
}

func (r *UpdateCheckpointRequest) Validate() error {
	create := CreateCheckpointRequest{
		Name:         r.Name,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		RadiusMeters: r.RadiusMeters,
		Sequence:     r.Sequence,
	}
	return create.Validate()
}

type CheckpointResponse struct {
	ID           int64    `json:"id"`
	ProjectID    int64    `json:"project_id"`
	Name         string   `json:"name"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RadiusMeters *float64 `json:"radius_m,omitempty"`
	Sequence     int      `json:"sequence"`
	Active       bool     `json:"active"`
}

func ToCheckpointResponse(c Checkpoint) CheckpointResponse {
	return CheckpointResponse{
		ID:           c.ID,
		ProjectID:    c.ProjectID,
		Name:         c.Name,
		Latitude:     c.Latitude,
		Longitude:    c.Longitude,
		RadiusMeters: c.RadiusMeters,
		Sequence:     c.Sequence,
		Active:       c.Active,
	}
}
