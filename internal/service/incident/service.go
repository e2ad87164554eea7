package incident

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"

	"github.com/sekurindo/secops-backend-go/internal/domain/approval"
	"github.com/sekurindo/secops-backend-go/internal/domain/employee"
	"github.com/sekurindo/secops-backend-go/internal/domain/incident"
	"github.com/sekurindo/secops-backend-go/internal/service/file"
)

type IncidentServiceImpl struct {
	incident.IncidentRepository
	employee.EmployeeRepository
	scopeResolver approval.ScopeResolver
	fileService   file.FileService
}

func NewIncidentService(
	incidentRepo incident.IncidentRepository,
	employeeRepo employee.EmployeeRepository,
	scopeResolver approval.ScopeResolver,
	fileService file.FileService,
) incident.IncidentService {
	return &IncidentServiceImpl{
		IncidentRepository: incidentRepo,
		EmployeeRepository: employeeRepo,
		scopeResolver:      scopeResolver,
		fileService:        fileService,
	}
}

// Report implements incident.IncidentService.
func (s *IncidentServiceImpl) Report(ctx context.Context, actor employee.Actor, req incident.ReportIncidentRequest, photo io.Reader, photoFilename string, photoSize int64) (incident.IncidentResponse, error) {
	if err := req.Validate(); err != nil {
		return incident.IncidentResponse{}, err
	}

	if photo != nil {
		path, err := s.fileService.UploadIncidentPhoto(ctx, actor.Employee.ID, photo, photoFilename, photoSize)
		if err != nil {
			return incident.IncidentResponse{}, err
		}
		req.PhotoPath = &path
	}

	created, err := s.IncidentRepository.Create(ctx, incident.Incident{
		ReporterID:  actor.Employee.ID,
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
		Status:      incident.StatusOpen,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		PhotoPath:   req.PhotoPath,
	})
	if err != nil {
		return incident.IncidentResponse{}, fmt.Errorf("failed to create incident: %w", err)
	}

	return s.toResponse(created), nil
}

// visibleTo reports whether the actor may see the incident: admins always,
// otherwise the reporter must sit in the actor's transitive scope or the
// incident must be assigned to the actor.
func (s *IncidentServiceImpl) visibleTo(ctx context.Context, actor employee.Actor, inc incident.Incident) (bool, error) {
	if actor.IsAdmin() {
		return true, nil
	}
	if inc.HandledBy != nil && *inc.HandledBy == actor.Employee.ID {
		return true, nil
	}

	scope, err := s.scopeResolver.ResolveSubordinates(ctx, actor.Employee)
	if err != nil {
		return false, fmt.Errorf("failed to resolve subordinate scope: %w", err)
	}
	return scope.Contains(inc.ReporterID), nil
}

// Get implements incident.IncidentService.
func (s *IncidentServiceImpl) Get(ctx context.Context, actor employee.Actor, id int64) (incident.IncidentResponse, error) {
	inc, err := s.IncidentRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return incident.IncidentResponse{}, incident.ErrIncidentNotFound
		}
		return incident.IncidentResponse{}, fmt.Errorf("failed to get incident: %w", err)
	}

	visible, err := s.visibleTo(ctx, actor, inc)
	if err != nil {
		return incident.IncidentResponse{}, err
	}
	if !visible {
		return incident.IncidentResponse{}, incident.ErrForbidden
	}

	return s.toResponse(inc), nil
}

// List implements incident.IncidentService.
func (s *IncidentServiceImpl) List(ctx context.Context, actor employee.Actor, query incident.ListQuery) ([]incident.IncidentResponse, error) {
	limit := query.Limit
	if limit <= 0 || limit > incident.MaxListLimit {
		limit = incident.MaxListLimit
	}

	filter := incident.IncidentFilter{
		Status:   query.Status,
		Severity: query.Severity,
		Limit:    limit,
	}

	if !actor.IsAdmin() {
		scope, err := s.scopeResolver.ResolveSubordinates(ctx, actor.Employee)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve subordinate scope: %w", err)
		}
		filter.VisibleReporterIDs = scope.IDs()
		filter.HandledBy = &actor.Employee.ID
	}

	incidents, err := s.IncidentRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}

	out := make([]incident.IncidentResponse, 0, len(incidents))
	for _, inc := range incidents {
		out = append(out, s.toResponse(inc))
	}
	return out, nil
}

// UpdateStatus implements incident.IncidentService.
func (s *IncidentServiceImpl) UpdateStatus(ctx context.Context, actor employee.Actor, id int64, req incident.UpdateStatusRequest) (incident.IncidentResponse, error) {
	if err := req.Validate(); err != nil {
		return incident.IncidentResponse{}, err
	}

	inc, err := s.IncidentRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return incident.IncidentResponse{}, incident.ErrIncidentNotFound
		}
		return incident.IncidentResponse{}, fmt.Errorf("failed to get incident: %w", err)
	}

	// Only a supervisor of the reporter or an admin may process an incident;
	// reporters cannot resolve their own reports.
	if !actor.IsAdmin() {
		if inc.ReporterID == actor.Employee.ID {
			return incident.IncidentResponse{}, incident.ErrForbidden
		}
		scope, err := s.scopeResolver.ResolveSubordinates(ctx, actor.Employee)
		if err != nil {
			return incident.IncidentResponse{}, fmt.Errorf("failed to resolve subordinate scope: %w", err)
		}
		if !scope.Contains(inc.ReporterID) {
			return incident.IncidentResponse{}, incident.ErrForbidden
		}
	}

	if inc.Status == incident.StatusResolved {
		return incident.IncidentResponse{}, incident.ErrAlreadyResolved
	}

	updated, err := s.IncidentRepository.UpdateStatus(ctx, inc.ID, req.Status, actor.Employee.ID, req.ResolutionNote)
	if err != nil {
		if errors.Is(err, incident.ErrAlreadyResolved) {
			return incident.IncidentResponse{}, incident.ErrAlreadyResolved
		}
		return incident.IncidentResponse{}, fmt.Errorf("failed to update incident status: %w", err)
	}

	return s.toResponse(updated), nil
}

func (s *IncidentServiceImpl) toResponse(inc incident.Incident) incident.IncidentResponse {
	var photoURL *string
	if inc.PhotoPath != nil {
		url := s.fileService.PublicURL(*inc.PhotoPath)
		photoURL = &url
	}
	return incident.ToIncidentResponse(inc, photoURL)
}
