package postgresql

import (
	"context"
	"fmt"

	"github.com/sekurindo/secops-backend-go/internal/domain/project"
	"github.com/sekurindo/secops-backend-go/internal/pkg/database"
)

type projectRepository struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) project.ProjectRepository {
	return &projectRepository{db: db}
}

// GetByID implements project.ProjectRepository.
func (r *projectRepository) GetByID(ctx context.Context, id int64) (project.ClientProject, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, active, created_at, updated_at
		FROM client_projects
		WHERE id = $1
	`

	var p project.ClientProject
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Address, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return project.ClientProject{}, fmt.Errorf("failed to get project: %w", err)
	}

	return p, nil
}
