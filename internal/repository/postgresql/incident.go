package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/sekurindo/secops-backend-go/internal/domain/incident"
	"github.com/sekurindo/secops-backend-go/internal/pkg/database"
)

type incidentRepository struct {
	db *database.DB
}

func NewIncidentRepository(db *database.DB) incident.IncidentRepository {
	return &incidentRepository{db: db}
}

const incidentColumns = `
	i.id, i.reporter_id, i.project_id, i.title, i.description, i.severity,
	i.status, i.latitude, i.longitude, i.photo_path, i.handled_by,
	i.handled_at, i.resolution_note, i.created_at, i.updated_at
`

func scanIncident(row interface {
	Scan(dest ...interface{}) error
}) (incident.Incident, error) {
	var in incident.Incident
	err := row.Scan(
		&in.ID, &in.ReporterID, &in.ProjectID, &in.Title, &in.Description, &in.Severity,
		&in.Status, &in.Latitude, &in.Longitude, &in.PhotoPath, &in.HandledBy,
		&in.HandledAt, &in.ResolutionNote, &in.CreatedAt, &in.UpdatedAt,
	)
	return in, err
}

// Create implements incident.IncidentRepository.
func (r *incidentRepository) Create(ctx context.Context, newIncident incident.Incident) (incident.Incident, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO incidents (
			reporter_id, project_id, title, description, severity, status,
			latitude, longitude, photo_path
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newIncident.ReporterID,
		newIncident.ProjectID,
		newIncident.Title,
		newIncident.Description,
		newIncident.Severity,
		newIncident.Status,
		newIncident.Latitude,
		newIncident.Longitude,
		newIncident.PhotoPath,
	).Scan(&newIncident.ID, &newIncident.CreatedAt, &newIncident.UpdatedAt)
	if err != nil {
		return incident.Incident{}, fmt.Errorf("failed to create incident: %w", err)
	}

	return newIncident, nil
}

// GetByID implements incident.IncidentRepository.
func (r *incidentRepository) GetByID(ctx context.Context, id int64) (incident.Incident, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + incidentColumns + `, e.full_name, e.employee_code
		FROM incidents i
		JOIN employees e ON e.id = i.reporter_id
		WHERE i.id = $1
	`

	var in incident.Incident
	err := q.QueryRow(ctx, query, id).Scan(
		&in.ID, &in.ReporterID, &in.ProjectID, &in.Title, &in.Description, &in.Severity,
		&in.Status, &in.Latitude, &in.Longitude, &in.PhotoPath, &in.HandledBy,
		&in.HandledAt, &in.ResolutionNote, &in.CreatedAt, &in.UpdatedAt,
		&in.ReporterName, &in.ReporterCode,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return incident.Incident{}, fmt.Errorf("incident not found: %w", err)
		}
		return incident.Incident{}, fmt.Errorf("failed to get incident: %w", err)
	}

	return in, nil
}

// List implements incident.IncidentRepository. Visibility is reporter-scope OR
// handler-assignment so supervisors keep seeing incidents they picked up even
// when the reporter later moves out of their line.
func (r *incidentRepository) List(ctx context.Context, filter incident.IncidentFilter) ([]incident.Incident, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.VisibleReporterIDs != nil {
		if filter.HandledBy != nil {
			conditions = append(conditions, fmt.Sprintf("(i.reporter_id = ANY($%d) OR i.handled_by = $%d)", argPos, argPos+1))
			args = append(args, filter.VisibleReporterIDs, *filter.HandledBy)
			argPos += 2
		} else {
			conditions = append(conditions, fmt.Sprintf("i.reporter_id = ANY($%d)", argPos))
			args = append(args, filter.VisibleReporterIDs)
			argPos++
		}
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("i.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.Severity != nil {
		conditions = append(conditions, fmt.Sprintf("i.severity = $%d", argPos))
		args = append(args, *filter.Severity)
		argPos++
	}

	limit := filter.Limit
	if limit <= 0 || limit > incident.MaxListLimit {
		limit = incident.MaxListLimit
	}
	args = append(args, limit)

	query := `
		SELECT ` + incidentColumns + `, e.full_name, e.employee_code
		FROM incidents i
		JOIN employees e ON e.id = i.reporter_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY i.created_at DESC
		LIMIT $` + fmt.Sprintf("%d", argPos)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	var incidents []incident.Incident
	for rows.Next() {
		var in incident.Incident
		if err := rows.Scan(
			&in.ID, &in.ReporterID, &in.ProjectID, &in.Title, &in.Description, &in.Severity,
			&in.Status, &in.Latitude, &in.Longitude, &in.PhotoPath, &in.HandledBy,
			&in.HandledAt, &in.ResolutionNote, &in.CreatedAt, &in.UpdatedAt,
			&in.ReporterName, &in.ReporterCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		incidents = append(incidents, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate incidents: %w", err)
	}

	return incidents, nil
}

// UpdateStatus implements incident.IncidentRepository. Resolved is terminal;
// the status guard makes a second resolve match no rows.
func (r *incidentRepository) UpdateStatus(ctx context.Context, id int64, status incident.Status, handledBy int64, resolutionNote *string) (incident.Incident, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE incidents i
		SET status = $2,
			handled_by = $3,
			handled_at = NOW(),
			resolution_note = COALESCE($4, i.resolution_note),
			updated_at = NOW()
		WHERE i.id = $1
		  AND i.status != 'resolved'
		RETURNING ` + incidentColumns + `
	`

	in, err := scanIncident(q.QueryRow(ctx, query, id, status, handledBy, resolutionNote))
	if err != nil {
		if err == pgx.ErrNoRows {
			return incident.Incident{}, incident.ErrAlreadyResolved
		}
		return incident.Incident{}, fmt.Errorf("failed to update incident status: %w", err)
	}

	return in, nil
}
