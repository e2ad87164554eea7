package project

import "context"

type ProjectRepository interface {
	GetByID(ctx context.Context, id int64) (ClientProject, error)
}

type CheckpointRepository interface {
	GetByID(ctx context.Context, id int64) (Checkpoint, error)

	// ListByProject returns checkpoints of a project ordered by sequence.
	// activeOnly excludes soft-disabled checkpoints.
	ListByProject(ctx context.Context, projectID int64, activeOnly bool) ([]Checkpoint, error)

	Create(ctx context.Context, checkpoint Checkpoint) (Checkpoint, error)
	Update(ctx context.Context, checkpoint Checkpoint) (Checkpoint, error)
}
