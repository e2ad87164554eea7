package patrol

import (
	"context"
	"io"

	"github.com/sekurindo/secops-backend-go/internal/domain/employee"
)

// PatrolService drives the patrol lifecycle. Every operation takes the
// acting employee explicitly; authorization (owner, transitive supervisor,
// admin) is resolved inside the service so the rules live next to the state
// machine they guard.
type PatrolService interface {
	// Start opens a duty session after resolving the guard's single active
	// project assignment. No geofence check happens at start.
	Start(ctx context.Context, actor employee.Actor, req StartPatrolRequest) (PatrolResponse, error)

	// Get returns one patrol with its evidence URLs.
	Get(ctx context.Context, actor employee.Actor, patrolID int64) (PatrolDetailResponse, error)

	// Visit validates the observed coordinate against the checkpoint's
	// geofence and, when inside (or the checkpoint has no fence), records
	// the visit. An outside observation rejects without mutating the patrol.
	Visit(ctx context.Context, actor employee.Actor, patrolID int64, req VisitRequest) (VisitResponse, error)

	// Complete terminally closes an in-progress patrol.
	Complete(ctx context.Context, actor employee.Actor, patrolID int64, req CompletePatrolRequest) (PatrolResponse, error)

	// AttachEvidence appends an evidence photo; allowed in any status.
	AttachEvidence(ctx context.Context, actor employee.Actor, patrolID int64, file io.Reader, filename string, size int64) (EvidenceResponse, error)

	// ListMine returns the actor's own patrols.
	ListMine(ctx context.Context, actor employee.Actor, filter ListFilter) ([]PatrolResponse, error)

	// Monitoring returns patrols of the actor's transitive subordinates;
	// admins see everything.
	Monitoring(ctx context.Context, actor employee.Actor, filter ListFilter) ([]PatrolResponse, error)

	// Checkpoints lists the active checkpoints of the actor's assigned
	// project, optionally annotated with live distance from observer.
	Checkpoints(ctx context.Context, actor employee.Actor, observer *Coordinate) ([]CheckpointStatus, error)
}
