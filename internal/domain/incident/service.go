package incident

import (
	"context"
	"io"

	"github.com/sekurindo/secops-backend-go/internal/domain/employee"
)

// IncidentService defines business logic for security incident reporting.
type IncidentService interface {
	// Report files a new incident on behalf of the acting employee, with an
	// optional evidence photo.
	Report(ctx context.Context, actor employee.Actor, req ReportIncidentRequest, photo io.Reader, photoFilename string, photoSize int64) (IncidentResponse, error)

	// Get returns one incident if the actor may see it.
	Get(ctx context.Context, actor employee.Actor, id int64) (IncidentResponse, error)

	// List returns incidents visible to the actor: admins see all, others
	// see their transitive subordinates' reports plus incidents assigned to
	// themselves.
	List(ctx context.Context, actor employee.Actor, filter ListQuery) ([]IncidentResponse, error)

	// UpdateStatus moves an incident to in_review or resolved. Only a
	// supervisor of the reporter or an admin may do this.
	UpdateStatus(ctx context.Context, actor employee.Actor, id int64, req UpdateStatusRequest) (IncidentResponse, error)
}

// ListQuery is the caller-facing subset of IncidentFilter; visibility
// restriction is computed by the service, never accepted from the client.
type ListQuery struct {
	Status   *Status
	Severity *Severity
	Limit    int
}
