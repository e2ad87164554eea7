package checkpoint

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sekurindo/secops-backend-go/internal/domain/project"
)

type CheckpointServiceImpl struct {
	projectRepo    project.ProjectRepository
	checkpointRepo project.CheckpointRepository
}

func NewCheckpointService(
	projectRepo project.ProjectRepository,
	checkpointRepo project.CheckpointRepository,
) project.CheckpointService {
	return &CheckpointServiceImpl{
		projectRepo:    projectRepo,
		checkpointRepo: checkpointRepo,
	}
}

// ListCheckpoints implements project.CheckpointService. Inactive checkpoints
// are included so admins can re-enable them.
func (s *CheckpointServiceImpl) ListCheckpoints(ctx context.Context, projectID int64) ([]project.CheckpointResponse, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	checkpoints, err := s.checkpointRepo.ListByProject(ctx, projectID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}

	responses := make([]project.CheckpointResponse, 0, len(checkpoints))
	for _, c := range checkpoints {
		responses = append(responses, project.ToCheckpointResponse(c))
	}
	return responses, nil
}

// CreateCheckpoint implements project.CheckpointService.
func (s *CheckpointServiceImpl) CreateCheckpoint(ctx context.Context, req project.CreateCheckpointRequest) (project.CheckpointResponse, error) {
	if err := req.Validate(); err != nil {
		return project.CheckpointResponse{}, err
	}

	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.CheckpointResponse{}, project.ErrProjectNotFound
		}
		return project.CheckpointResponse{}, fmt.Errorf("failed to get project: %w", err)
	}

	radius := req.RadiusMeters
	if req.Latitude != nil && radius == nil {
		defaultRadius := float64(project.DefaultRadiusMeters)
		radius = &defaultRadius
	}

	created, err := s.checkpointRepo.Create(ctx, project.Checkpoint{
		ProjectID:    req.ProjectID,
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: radius,
		Sequence:     req.Sequence,
		Active:       true,
	})
	if err != nil {
		return project.CheckpointResponse{}, fmt.Errorf("failed to create checkpoint: %w", err)
	}

	return project.ToCheckpointResponse(created), nil
}

// UpdateCheckpoint implements project.CheckpointService.
func (s *CheckpointServiceImpl) UpdateCheckpoint(ctx context.Context, req project.UpdateCheckpointRequest) (project.CheckpointResponse, error) {
	if err := req.Validate(); err != nil {
		return project.CheckpointResponse{}, err
	}

	existing, err := s.checkpointRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.CheckpointResponse{}, project.ErrCheckpointNotFound
		}
		return project.CheckpointResponse{}, fmt.Errorf("failed to get checkpoint: %w", err)
	}

	radius := req.RadiusMeters
	if req.Latitude != nil && radius == nil {
		defaultRadius := float64(project.DefaultRadiusMeters)
		radius = &defaultRadius
	}

	existing.Name = req.Name
	existing.Latitude = req.Latitude
	existing.Longitude = req.Longitude
	existing.RadiusMeters = radius
	existing.Sequence = req.Sequence
	existing.Active = req.Active

	updated, err := s.checkpointRepo.Update(ctx, existing)
	if err != nil {
		return project.CheckpointResponse{}, fmt.Errorf("failed to update checkpoint: %w", err)
	}

	return project.ToCheckpointResponse(updated), nil
}
