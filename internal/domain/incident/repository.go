package incident

import "context"

type IncidentRepository interface {
	Create(ctx context.Context, incident Incident) (Incident, error)

	GetByID(ctx context.Context, id int64) (Incident, error)

	List(ctx context.Context, filter IncidentFilter) ([]Incident, error)

	// UpdateStatus transitions the incident and stamps the handler. The
	// update refuses already-resolved rows (CAS on status != resolved);
	// ErrAlreadyResolved is returned when nothing matched.
	UpdateStatus(ctx context.Context, id int64, status Status, handledBy int64, resolutionNote *string) (Incident, error)
}
