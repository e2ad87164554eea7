package patrol

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sekurindo/secops-backend-go/internal/domain/approval"
	"github.com/sekurindo/secops-backend-go/internal/domain/employee"
	"github.com/sekurindo/secops-backend-go/internal/domain/patrol"
	"github.com/sekurindo/secops-backend-go/internal/domain/project"
	"github.com/sekurindo/secops-backend-go/internal/pkg/geo"
	"github.com/sekurindo/secops-backend-go/internal/service/file"
)

type PatrolServiceImpl struct {
	patrol.PatrolRepository
	employee.EmployeeRepository
	project.CheckpointRepository
	scopeResolver approval.ScopeResolver
	fileService   file.FileService
}

func NewPatrolService(
	patrolRepo patrol.PatrolRepository,
	employeeRepo employee.EmployeeRepository,
	checkpointRepo project.CheckpointRepository,
	scopeResolver approval.ScopeResolver,
	fileService file.FileService,
) patrol.PatrolService {
	return &PatrolServiceImpl{
		PatrolRepository:     patrolRepo,
		EmployeeRepository:   employeeRepo,
		CheckpointRepository: checkpointRepo,
		scopeResolver:        scopeResolver,
		fileService:          fileService,
	}
}

// resolveAssignedProject returns the one project the employee patrols right
// now. Zero assignments cannot start a patrol; more than one is an ambiguity
// the lifecycle refuses to guess past.
func (s *PatrolServiceImpl) resolveAssignedProject(ctx context.Context, employeeID int64) (int64, error) {
	projectIDs, err := s.EmployeeRepository.ActiveProjectIDs(ctx, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to list project assignments: %w", err)
	}

	switch len(projectIDs) {
	case 0:
		return 0, patrol.ErrNoProjectAssigned
	case 1:
		return projectIDs[0], nil
	default:
		return 0, &patrol.AmbiguousAssignmentError{CandidateProjectIDs: projectIDs}
	}
}

// authorize admits the patrol owner, any transitive supervisor of the owner,
// and admins.
func (s *PatrolServiceImpl) authorize(ctx context.Context, actor employee.Actor, p patrol.Patrol) error {
	if actor.IsAdmin() || actor.Employee.ID == p.EmployeeID {
		return nil
	}

	scope, err := s.scopeResolver.ResolveSubordinates(ctx, actor.Employee)
	if err != nil {
		return fmt.Errorf("failed to resolve subordinate scope: %w", err)
	}
	if !scope.Contains(p.EmployeeID) {
		return patrol.ErrForbidden
	}
	return nil
}

func (s *PatrolServiceImpl) getPatrol(ctx context.Context, patrolID int64) (patrol.Patrol, error) {
	p, err := s.PatrolRepository.GetByID(ctx, patrolID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return patrol.Patrol{}, patrol.ErrPatrolNotFound
		}
		return patrol.Patrol{}, fmt.Errorf("failed to get patrol: %w", err)
	}
	return p, nil
}

// loadCheckpoint fetches a checkpoint and pins it to the given project.
func (s *PatrolServiceImpl) loadCheckpoint(ctx context.Context, checkpointID, projectID int64) (project.Checkpoint, error) {
	cp, err := s.CheckpointRepository.GetByID(ctx, checkpointID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Checkpoint{}, project.ErrCheckpointNotFound
		}
		return project.Checkpoint{}, fmt.Errorf("failed to get checkpoint: %w", err)
	}
	if cp.ProjectID != projectID {
		return project.Checkpoint{}, project.ErrCheckpointNotFound
	}
	return cp, nil
}

// Start implements patrol.PatrolService.
func (s *PatrolServiceImpl) Start(ctx context.Context, actor employee.Actor, req patrol.StartPatrolRequest) (patrol.PatrolResponse, error) {
	if err := req.Validate(); err != nil {
		return patrol.PatrolResponse{}, err
	}

	projectID, err := s.resolveAssignedProject(ctx, actor.Employee.ID)
	if err != nil {
		return patrol.PatrolResponse{}, err
	}

	if req.CheckpointID != nil {
		if _, err := s.loadCheckpoint(ctx, *req.CheckpointID, projectID); err != nil {
			return patrol.PatrolResponse{}, err
		}
	}

	nowUTC := time.Now().UTC()

	open, err := s.PatrolRepository.GetOpenByEmployee(ctx, actor.Employee.ID)
	if err != nil {
		return patrol.PatrolResponse{}, fmt.Errorf("failed to check open patrol: %w", err)
	}
	if open != nil {
		return patrol.PatrolResponse{}, patrol.ErrPatrolAlreadyActive
	}

	created, err := s.PatrolRepository.Create(ctx, patrol.Patrol{
		EmployeeID:   actor.Employee.ID,
		ProjectID:    projectID,
		CheckpointID: req.CheckpointID,
		Status:       patrol.StatusInProgress,
		StartTime:    nowUTC,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Note:         req.Note,
	})
	if err != nil {
		return patrol.PatrolResponse{}, fmt.Errorf("failed to create patrol: %w", err)
	}

	return patrol.ToPatrolResponse(created), nil
}

// Visit implements patrol.PatrolService.
func (s *PatrolServiceImpl) Visit(ctx context.Context, actor employee.Actor, patrolID int64, req patrol.VisitRequest) (patrol.VisitResponse, error) {
	if err := req.Validate(); err != nil {
		return patrol.VisitResponse{}, err
	}

	p, err := s.getPatrol(ctx, patrolID)
	if err != nil {
		return patrol.VisitResponse{}, err
	}

	if err := s.authorize(ctx, actor, p); err != nil {
		return patrol.VisitResponse{}, err
	}

	if p.Status != patrol.StatusInProgress {
		return patrol.VisitResponse{}, patrol.ErrPatrolNotInProgress
	}

	cp, err := s.loadCheckpoint(ctx, req.CheckpointID, p.ProjectID)
	if err != nil {
		return patrol.VisitResponse{}, err
	}

	var geofence *patrol.GeofenceResponse
	if cp.HasGeofence() {
		result := geo.Evaluate(*cp.Latitude, *cp.Longitude, *cp.RadiusMeters, req.Latitude, req.Longitude)
		if !result.Inside {
			// Reject without touching the patrol; the guard retries after
			// moving closer.
			return patrol.VisitResponse{}, &patrol.GeofenceViolationError{
				DistanceMeters:  result.DistanceMeters,
				RadiusMeters:    *cp.RadiusMeters,
				RemainingMeters: result.RemainingMeters,
			}
		}
		resp := patrol.ToGeofenceResponse(result, *cp.RadiusMeters)
		geofence = &resp
	}
	// Checkpoints without geofence data accept any observation. Inherited
	// policy: this silently disables the presence check for the checkpoint.

	updated, err := s.PatrolRepository.RecordVisit(ctx, p.ID, cp.ID, req.Latitude, req.Longitude)
	if err != nil {
		if errors.Is(err, patrol.ErrPatrolNotInProgress) {
			return patrol.VisitResponse{}, patrol.ErrPatrolNotInProgress
		}
		return patrol.VisitResponse{}, fmt.Errorf("failed to record visit: %w", err)
	}

	return patrol.VisitResponse{
		Patrol:   patrol.ToPatrolResponse(updated),
		Geofence: geofence,
	}, nil
}

// Complete implements patrol.PatrolService.
func (s *PatrolServiceImpl) Complete(ctx context.Context, actor employee.Actor, patrolID int64, req patrol.CompletePatrolRequest) (patrol.PatrolResponse, error) {
	if err := req.Validate(); err != nil {
		return patrol.PatrolResponse{}, err
	}

	p, err := s.getPatrol(ctx, patrolID)
	if err != nil {
		return patrol.PatrolResponse{}, err
	}

	if err := s.authorize(ctx, actor, p); err != nil {
		return patrol.PatrolResponse{}, err
	}

	if p.Status != patrol.StatusInProgress {
		return patrol.PatrolResponse{}, patrol.ErrPatrolNotInProgress
	}

	nowUTC := time.Now().UTC()

	completed, err := s.PatrolRepository.Complete(ctx, p.ID, nowUTC, req.Latitude, req.Longitude, req.Note)
	if err != nil {
		if errors.Is(err, patrol.ErrPatrolNotInProgress) {
			// Lost a race against a concurrent completion.
			return patrol.PatrolResponse{}, patrol.ErrPatrolNotInProgress
		}
		return patrol.PatrolResponse{}, fmt.Errorf("failed to complete patrol: %w", err)
	}

	return patrol.ToPatrolResponse(completed), nil
}

// AttachEvidence implements patrol.PatrolService.
func (s *PatrolServiceImpl) AttachEvidence(ctx context.Context, actor employee.Actor, patrolID int64, fileReader io.Reader, filename string, size int64) (patrol.EvidenceResponse, error) {
	p, err := s.getPatrol(ctx, patrolID)
	if err != nil {
		return patrol.EvidenceResponse{}, err
	}

	if err := s.authorize(ctx, actor, p); err != nil {
		return patrol.EvidenceResponse{}, err
	}

	// Evidence is a side channel, accepted regardless of patrol status.
	path, err := s.fileService.UploadPatrolEvidence(ctx, p.ID, fileReader, filename, size)
	if err != nil {
		return patrol.EvidenceResponse{}, err
	}

	stored, err := s.PatrolRepository.AddFile(ctx, patrol.PatrolFile{
		PatrolID: p.ID,
		FilePath: path,
	})
	if err != nil {
		return patrol.EvidenceResponse{}, fmt.Errorf("failed to store evidence record: %w", err)
	}

	return patrol.EvidenceResponse{
		ID:       stored.ID,
		PatrolID: stored.PatrolID,
		FileURL:  s.fileService.PublicURL(stored.FilePath),
	}, nil
}

// Get implements patrol.PatrolService.
func (s *PatrolServiceImpl) Get(ctx context.Context, actor employee.Actor, patrolID int64) (patrol.PatrolDetailResponse, error) {
	p, err := s.getPatrol(ctx, patrolID)
	if err != nil {
		return patrol.PatrolDetailResponse{}, err
	}

	if err := s.authorize(ctx, actor, p); err != nil {
		return patrol.PatrolDetailResponse{}, err
	}

	files, err := s.PatrolRepository.ListFiles(ctx, p.ID)
	if err != nil {
		return patrol.PatrolDetailResponse{}, fmt.Errorf("failed to list evidence: %w", err)
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		urls = append(urls, s.fileService.PublicURL(f.FilePath))
	}

	return patrol.PatrolDetailResponse{
		Patrol:       patrol.ToPatrolResponse(p),
		EvidenceURLs: urls,
	}, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > patrol.MaxListLimit {
		return patrol.MaxListLimit
	}
	return limit
}

// ListMine implements patrol.PatrolService.
func (s *PatrolServiceImpl) ListMine(ctx context.Context, actor employee.Actor, filter patrol.ListFilter) ([]patrol.PatrolResponse, error) {
	patrols, err := s.PatrolRepository.List(ctx, patrol.PatrolFilter{
		EmployeeIDs: []int64{actor.Employee.ID},
		Status:      filter.Status,
		Date:        filter.Date,
		Limit:       clampLimit(filter.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list patrols: %w", err)
	}

	return toResponses(patrols), nil
}

// Monitoring implements patrol.PatrolService.
func (s *PatrolServiceImpl) Monitoring(ctx context.Context, actor employee.Actor, filter patrol.ListFilter) ([]patrol.PatrolResponse, error) {
	repoFilter := patrol.PatrolFilter{
		Status: filter.Status,
		Date:   filter.Date,
		Limit:  clampLimit(filter.Limit),
	}

	if !actor.IsAdmin() {
		scope, err := s.scopeResolver.ResolveSubordinates(ctx, actor.Employee)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve subordinate scope: %w", err)
		}
		// Monitoring is about the downline; own patrols live under ListMine.
		ids := make([]int64, 0, len(scope))
		for _, id := range scope.IDs() {
			if id != actor.Employee.ID {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return []patrol.PatrolResponse{}, nil
		}
		repoFilter.EmployeeIDs = ids
	}

	patrols, err := s.PatrolRepository.List(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list patrols: %w", err)
	}

	return toResponses(patrols), nil
}

// Checkpoints implements patrol.PatrolService.
func (s *PatrolServiceImpl) Checkpoints(ctx context.Context, actor employee.Actor, observer *patrol.Coordinate) ([]patrol.CheckpointStatus, error) {
	projectID, err := s.resolveAssignedProject(ctx, actor.Employee.ID)
	if err != nil {
		return nil, err
	}

	checkpoints, err := s.CheckpointRepository.ListByProject(ctx, projectID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}

	out := make([]patrol.CheckpointStatus, 0, len(checkpoints))
	for _, cp := range checkpoints {
		status := patrol.CheckpointStatus{
			ID:           cp.ID,
			Name:         cp.Name,
			Latitude:     cp.Latitude,
			Longitude:    cp.Longitude,
			RadiusMeters: cp.RadiusMeters,
			Sequence:     cp.Sequence,
		}
		if observer != nil && cp.HasGeofence() {
			result := geo.Evaluate(*cp.Latitude, *cp.Longitude, *cp.RadiusMeters, observer.Latitude, observer.Longitude)
			resp := patrol.ToGeofenceResponse(result, *cp.RadiusMeters)
			status.Geofence = &resp
		}
		out = append(out, status)
	}

	return out, nil
}

func toResponses(patrols []patrol.Patrol) []patrol.PatrolResponse {
	out := make([]patrol.PatrolResponse, 0, len(patrols))
	for _, p := range patrols {
		out = append(out, patrol.ToPatrolResponse(p))
	}
	return out
}
