package postgresql

import (
	"context"
	"fmt"

	"github.com/sekurindo/secops-backend-go/internal/domain/project"
	"github.com/sekurindo/secops-backend-go/internal/pkg/database"
)

type checkpointRepository struct {
	db *database.DB
}

func NewCheckpointRepository(db *database.DB) project.CheckpointRepository {
	return &checkpointRepository{db: db}
}

const checkpointColumns = `
	id, project_id, name, latitude, longitude, radius_m, sequence, active,
	created_at, updated_at
`

// GetByID implements project.CheckpointRepository.
func (r *checkpointRepository) GetByID(ctx context.Context, id int64) (project.Checkpoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + checkpointColumns + `
		FROM patroli_checkpoints
		WHERE id = $1
	`

	var cp project.Checkpoint
	err := q.QueryRow(ctx, query, id).Scan(
		&cp.ID, &cp.ProjectID, &cp.Name, &cp.Latitude, &cp.Longitude, &cp.RadiusMeters,
		&cp.Sequence, &cp.Active, &cp.CreatedAt, &cp.UpdatedAt,
	)
	if err != nil {
		return project.Checkpoint{}, fmt.Errorf("failed to get checkpoint: %w", err)
	}

	return cp, nil
}

// ListByProject implements project.CheckpointRepository.
func (r *checkpointRepository) ListByProject(ctx context.Context, projectID int64, activeOnly bool) ([]project.Checkpoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + checkpointColumns + `
		FROM patroli_checkpoints
		WHERE project_id = $1
		  AND ($2 = FALSE OR active = TRUE)
		ORDER BY sequence, id
	`

	rows, err := q.Query(ctx, query, projectID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	defer rows.Close()

	var checkpoints []project.Checkpoint
	for rows.Next() {
		var cp project.Checkpoint
		if err := rows.Scan(
			&cp.ID, &cp.ProjectID, &cp.Name, &cp.Latitude, &cp.Longitude, &cp.RadiusMeters,
			&cp.Sequence, &cp.Active, &cp.CreatedAt, &cp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan checkpoint: %w", err)
		}
		checkpoints = append(checkpoints, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate checkpoints: %w", err)
	}

	return checkpoints, nil
}

// Create implements project.CheckpointRepository.
func (r *checkpointRepository) Create(ctx context.Context, cp project.Checkpoint) (project.Checkpoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO patroli_checkpoints (
			project_id, name, latitude, longitude, radius_m, sequence, active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		cp.ProjectID, cp.Name, cp.Latitude, cp.Longitude, cp.RadiusMeters, cp.Sequence, cp.Active,
	).Scan(&cp.ID, &cp.CreatedAt, &cp.UpdatedAt)
	if err != nil {
		return project.Checkpoint{}, fmt.Errorf("failed to create checkpoint: %w", err)
	}

	return cp, nil
}

// Update implements project.CheckpointRepository.
func (r *checkpointRepository) Update(ctx context.Context, cp project.Checkpoint) (project.Checkpoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE patroli_checkpoints
		SET name = $2,
			latitude = $3,
			longitude = $4,
			radius_m = $5,
			sequence = $6,
			active = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING project_id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		cp.ID, cp.Name, cp.Latitude, cp.Longitude, cp.RadiusMeters, cp.Sequence, cp.Active,
	).Scan(&cp.ProjectID, &cp.CreatedAt, &cp.UpdatedAt)
	if err != nil {
		return project.Checkpoint{}, fmt.Errorf("failed to update checkpoint: %w", err)
	}

	return cp, nil
}
