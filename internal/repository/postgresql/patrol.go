package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sekurindo/secops-backend-go/internal/domain/patrol"
	"github.com/sekurindo/secops-backend-go/internal/pkg/database"
)

type patrolRepository struct {
	db *database.DB
}

func NewPatrolRepository(db *database.DB) patrol.PatrolRepository {
	return &patrolRepository{db: db}
}

const patrolColumns = `
	p.id, p.employee_id, p.project_id, p.checkpoint_id, p.status,
	p.start_time, p.end_time, p.latitude, p.longitude, p.note,
	p.created_at, p.updated_at
`

func scanPatrol(row interface {
	Scan(dest ...interface{}) error
}) (patrol.Patrol, error) {
	var p patrol.Patrol
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.ProjectID, &p.CheckpointID, &p.Status,
		&p.StartTime, &p.EndTime, &p.Latitude, &p.Longitude, &p.Note,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create implements patrol.PatrolRepository.
func (r *patrolRepository) Create(ctx context.Context, newPatrol patrol.Patrol) (patrol.Patrol, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO patrolis (
			employee_id, project_id, checkpoint_id, status, start_time,
			latitude, longitude, note
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newPatrol.EmployeeID,
		newPatrol.ProjectID,
		newPatrol.CheckpointID,
		newPatrol.Status,
		newPatrol.StartTime,
		newPatrol.Latitude,
		newPatrol.Longitude,
		newPatrol.Note,
	).Scan(&newPatrol.ID, &newPatrol.CreatedAt, &newPatrol.UpdatedAt)
	if err != nil {
		return patrol.Patrol{}, fmt.Errorf("failed to create patrol: %w", err)
	}

	return newPatrol, nil
}

// GetByID implements patrol.PatrolRepository.
func (r *patrolRepository) GetByID(ctx context.Context, id int64) (patrol.Patrol, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + patrolColumns + `
		FROM patrolis p
		WHERE p.id = $1
	`

	p, err := scanPatrol(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return patrol.Patrol{}, fmt.Errorf("patrol not found: %w", err)
		}
		return patrol.Patrol{}, fmt.Errorf("failed to get patrol: %w", err)
	}

	return p, nil
}

// GetOpenByEmployee implements patrol.PatrolRepository.
func (r *patrolRepository) GetOpenByEmployee(ctx context.Context, employeeID int64) (*patrol.Patrol, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + patrolColumns + `
		FROM patrolis p
		WHERE p.employee_id = $1
		  AND p.status = 'in_progress'
		ORDER BY p.start_time DESC
		LIMIT 1
	`

	p, err := scanPatrol(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open patrol: %w", err)
	}

	return &p, nil
}

// RecordVisit implements patrol.PatrolRepository. The WHERE status clause is
// the concurrency guard: a patrol completed by a racing request matches no
// rows and the visit is refused.
func (r *patrolRepository) RecordVisit(ctx context.Context, patrolID int64, checkpointID int64, latitude, longitude float64) (patrol.Patrol, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE patrolis p
		SET checkpoint_id = $2,
			latitude = $3,
			longitude = $4,
			updated_at = NOW()
		WHERE p.id = $1
		  AND p.status = 'in_progress'
		RETURNING ` + patrolColumns + `
	`

	p, err := scanPatrol(q.QueryRow(ctx, query, patrolID, checkpointID, latitude, longitude))
	if err != nil {
		if err == pgx.ErrNoRows {
			return patrol.Patrol{}, patrol.ErrPatrolNotInProgress
		}
		return patrol.Patrol{}, fmt.Errorf("failed to record visit: %w", err)
	}

	return p, nil
}

// Complete implements patrol.PatrolRepository with the same status guard as
// RecordVisit.
func (r *patrolRepository) Complete(ctx context.Context, patrolID int64, endTime time.Time, latitude, longitude *float64, note *string) (patrol.Patrol, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE patrolis p
		SET status = 'completed',
			end_time = $2,
			latitude = COALESCE($3, p.latitude),
			longitude = COALESCE($4, p.longitude),
			note = COALESCE($5, p.note),
			updated_at = NOW()
		WHERE p.id = $1
		  AND p.status = 'in_progress'
		RETURNING ` + patrolColumns + `
	`

	p, err := scanPatrol(q.QueryRow(ctx, query, patrolID, endTime, latitude, longitude, note))
	if err != nil {
		if err == pgx.ErrNoRows {
			return patrol.Patrol{}, patrol.ErrPatrolNotInProgress
		}
		return patrol.Patrol{}, fmt.Errorf("failed to complete patrol: %w", err)
	}

	return p, nil
}

// List implements patrol.PatrolRepository.
func (r *patrolRepository) List(ctx context.Context, filter patrol.PatrolFilter) ([]patrol.Patrol, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeIDs != nil {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = ANY($%d)", argPos))
		args = append(args, filter.EmployeeIDs)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.Date != nil {
		conditions = append(conditions, fmt.Sprintf("p.start_time::date = $%d::date", argPos))
		args = append(args, *filter.Date)
		argPos++
	}

	limit := filter.Limit
	if limit <= 0 || limit > patrol.MaxListLimit {
		limit = patrol.MaxListLimit
	}
	args = append(args, limit)

	query := `
		SELECT ` + patrolColumns + `, e.full_name, e.employee_code
		FROM patrolis p
		JOIN employees e ON e.id = p.employee_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY p.start_time DESC
		LIMIT $` + fmt.Sprintf("%d", argPos)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list patrols: %w", err)
	}
	defer rows.Close()

	var patrols []patrol.Patrol
	for rows.Next() {
		var p patrol.Patrol
		if err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.ProjectID, &p.CheckpointID, &p.Status,
			&p.StartTime, &p.EndTime, &p.Latitude, &p.Longitude, &p.Note,
			&p.CreatedAt, &p.UpdatedAt,
			&p.EmployeeName, &p.EmployeeCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan patrol: %w", err)
		}
		patrols = append(patrols, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate patrols: %w", err)
	}

	return patrols, nil
}

// AddFile implements patrol.PatrolRepository.
func (r *patrolRepository) AddFile(ctx context.Context, file patrol.PatrolFile) (patrol.PatrolFile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO patroli_files (patroli_id, file_path)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, file.PatrolID, file.FilePath).Scan(&file.ID, &file.CreatedAt)
	if err != nil {
		return patrol.PatrolFile{}, fmt.Errorf("failed to add patrol file: %w", err)
	}

	return file, nil
}

// ListFiles implements patrol.PatrolRepository.
func (r *patrolRepository) ListFiles(ctx context.Context, patrolID int64) ([]patrol.PatrolFile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, patroli_id, file_path, created_at
		FROM patroli_files
		WHERE patroli_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, patrolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patrol files: %w", err)
	}
	defer rows.Close()

	var files []patrol.PatrolFile
	for rows.Next() {
		var f patrol.PatrolFile
		if err := rows.Scan(&f.ID, &f.PatrolID, &f.FilePath, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan patrol file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate patrol files: %w", err)
	}

	return files, nil
}
