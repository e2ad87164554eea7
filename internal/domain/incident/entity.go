package incident

import "time"

// Incident is a security event reported from the field: trespass, damage,
// theft and the like. Visibility follows the approval hierarchy.
type Incident struct {
	ID             int64
	ReporterID     int64
	ProjectID      *int64
	Title          string
	Description    string
	Severity       Severity
	Status         Status
	Latitude       *float64
	Longitude      *float64
	PhotoPath      *string
	HandledBy      *int64
	HandledAt      *time.Time
	ResolutionNote *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined for list views
	ReporterName *string
	ReporterCode *string
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type Status string

const (
	StatusOpen     Status = "open"
	StatusInReview Status = "in_review"
	StatusResolved Status = "resolved"
)
