package patrol

import (
	"time"
)

// Patrol is one guard's continuous duty session on a project, from Start
// until Complete. The status machine is strictly linear: in_progress is the
// only mutable state and completed is terminal.
type Patrol struct {
	ID           int64
	EmployeeID   int64
	ProjectID    int64
	CheckpointID *int64
	Status       Status
	StartTime    time.Time
	EndTime      *time.Time
	Latitude     *float64
	Longitude    *float64
	Note         *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined for monitoring views
	EmployeeName *string
	EmployeeCode *string
}

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// PatrolFile is an appended evidence photo. Evidence is append-only and not
// gated on patrol status.
type PatrolFile struct {
	ID        int64
	PatrolID  int64
	FilePath  string
	CreatedAt time.Time
}
