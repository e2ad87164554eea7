package patrol

import (
	"context"
	"time"
)

// PatrolFilter narrows listing queries. EmployeeIDs nil means no employee
// restriction (admin view); an empty non-nil slice matches nothing.
type PatrolFilter struct {
	EmployeeIDs []int64
	Status      *Status
	Date        *time.Time
	Limit       int
}

type PatrolRepository interface {
	Create(ctx context.Context, patrol Patrol) (Patrol, error)

	GetByID(ctx context.Context, id int64) (Patrol, error)

	// GetOpenByEmployee returns the employee's in-progress patrol, nil when
	// there is none. Used to refuse a second concurrent Start.
	GetOpenByEmployee(ctx context.Context, employeeID int64) (*Patrol, error)

	// RecordVisit updates checkpoint and last coordinate. The update is a
	// compare-and-swap on status = in_progress; ErrPatrolNotInProgress is
	// returned when the patrol completed underneath the caller.
	RecordVisit(ctx context.Context, patrolID int64, checkpointID int64, latitude, longitude float64) (Patrol, error)

	// Complete closes the patrol with the same CAS guard as RecordVisit.
	Complete(ctx context.Context, patrolID int64, endTime time.Time, latitude, longitude *float64, note *string) (Patrol, error)

	List(ctx context.Context, filter PatrolFilter) ([]Patrol, error)

	AddFile(ctx context.Context, file PatrolFile) (PatrolFile, error)
	ListFiles(ctx context.Context, patrolID int64) ([]PatrolFile, error)
}
