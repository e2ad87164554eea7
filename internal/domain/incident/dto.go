package incident

import (
	"time"

	"github.com/sekurindo/secops-backend-go/internal/pkg/validator"
)

// ========================================
// INCIDENT DTOs
// ========================================

type ReportIncidentRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	ProjectID   *int64   `json:"project_id"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`

	// Optional photo attached out-of-band by the handler
	PhotoPath *string `json:"-"`
}

var severities = []string{
	string(SeverityLow), string(SeverityMedium), string(SeverityHigh), string(SeverityCritical),
}

func (r *ReportIncidentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	if !validator.IsInSlice(string(r.Severity), severities) {
		errs = append(errs, validator.ValidationError{
			Field:   "severity",
			Message: "severity must be one of low, medium, high, critical",
		})
	}

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

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStatusRequest struct {
	Status         Status  `json:"status"`
	ResolutionNote *string `json:"resolution_note"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != StatusInReview && r.Status != StatusResolved {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be in_review or resolved",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IncidentFilter narrows list queries; VisibleReporterIDs nil means no
// reporter restriction (admin view).
type IncidentFilter struct {
	VisibleReporterIDs []int64
	HandledBy          *int64
	Status             *Status
	Severity           *Severity
	Limit              int
}

const MaxListLimit = 100

type IncidentResponse struct {
	ID             int64    `json:"id"`
	ReporterID     int64    `json:"reporter_id"`
	ProjectID      *int64   `json:"project_id,omitempty"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Severity       Severity `json:"severity"`
	Status         Status   `json:"status"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	PhotoURL       *string  `json:"photo_url,omitempty"`
	HandledBy      *int64   `json:"handled_by,omitempty"`
	HandledAt      *string  `json:"handled_at,omitempty"`
	ResolutionNote *string  `json:"resolution_note,omitempty"`
	ReportedAt     string   `json:"reported_at"`
	ReporterName   *string  `json:"reporter_name,omitempty"`
	ReporterCode   *string  `json:"reporter_code,omitempty"`
}

func ToIncidentResponse(i Incident, photoURL *string) IncidentResponse {
	var handledAt *string
	if i.HandledAt != nil {
		s := i.HandledAt.Format(time.RFC3339)
		handledAt = &s
	}
	return IncidentResponse{
		ID:             i.ID,
		ReporterID:     i.ReporterID,
		ProjectID:      i.ProjectID,
		Title:          i.Title,
		Description:    i.Description,
		Severity:       i.Severity,
		Status:         i.Status,
		Latitude:       i.Latitude,
		Longitude:      i.Longitude,
		PhotoURL:       photoURL,
		HandledBy:      i.HandledBy,
		HandledAt:      handledAt,
		ResolutionNote: i.ResolutionNote,
		ReportedAt:     i.CreatedAt.Format(time.RFC3339),
		ReporterName:   i.ReporterName,
		ReporterCode:   i.ReporterCode,
	}
}
