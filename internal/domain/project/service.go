package project

import "context"

// CheckpointService is the admin-facing checkpoint management surface.
// Listing here includes inactive checkpoints; the field-facing listing in
// the patrol service filters those out.
type CheckpointService interface {
	ListCheckpoints(ctx context.Context, projectID int64) ([]CheckpointResponse, error)
	CreateCheckpoint(ctx context.Context, req CreateCheckpointRequest) (CheckpointResponse, error)
	UpdateCheckpoint(ctx context.Context, req UpdateCheckpointRequest) (CheckpointResponse, error)
}
