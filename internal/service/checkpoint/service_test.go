package checkpoint

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekurindo/secops-backend-go/internal/domain/project"
	"github.com/sekurindo/secops-backend-go/internal/pkg/validator"
)

type fakeProjectRepo struct {
	projects map[int64]project.ClientProject
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, id int64) (project.ClientProject, error) {
	p, ok := f.projects[id]
	if !ok {
		return project.ClientProject{}, pgx.ErrNoRows
	}
	return p, nil
}

type fakeCheckpointRepo struct {
	nextID      int64
	checkpoints map[int64]project.Checkpoint
}

func newFakeCheckpointRepo() *fakeCheckpointRepo {
	return &fakeCheckpointRepo{nextID: 1, checkpoints: map[int64]project.Checkpoint{}}
}

func (f *fakeCheckpointRepo) GetByID(ctx context.Context, id int64) (project.Checkpoint, error) {
	cp, ok := f.checkpoints[id]
	if !ok {
		return project.Checkpoint{}, pgx.ErrNoRows
	}
	return cp, nil
}

func (f *fakeCheckpointRepo) ListByProject(ctx context.Context, projectID int64, activeOnly bool) ([]project.Checkpoint, error) {
	var out []project.Checkpoint
	for _, cp := range f.checkpoints {
		if cp.ProjectID != projectID {
			continue
		}
		if activeOnly && !cp.Active {
			continue
		}
		out = append(out, cp)
	}
	return out, nil
}

func (f *fakeCheckpointRepo) Create(ctx context.Context, cp project.Checkpoint) (project.Checkpoint, error) {
	cp.ID = f.nextID
	f.nextID++
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	f.checkpoints[cp.ID] = cp
	return cp, nil
}

func (f *fakeCheckpointRepo) Update(ctx context.Context, cp project.Checkpoint) (project.Checkpoint, error) {
	existing, ok := f.checkpoints[cp.ID]
	if !ok {
		return project.Checkpoint{}, pgx.ErrNoRows
	}
	cp.ProjectID = existing.ProjectID
	cp.UpdatedAt = time.Now().UTC()
	f.checkpoints[cp.ID] = cp
	return cp, nil
}

func newService(t *testing.T) (project.CheckpointService, *fakeCheckpointRepo) {
	t.Helper()
	projectRepo := &fakeProjectRepo{projects: map[int64]project.ClientProject{
		10: {ID: 10, Name: "Warehouse Cakung", Active: true},
	}}
	checkpointRepo := newFakeCheckpointRepo()
	return NewCheckpointService(projectRepo, checkpointRepo), checkpointRepo
}

func ptrFloat(v float64) *float64 { return &v }

func TestCreateCheckpoint_DefaultsRadius(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.CreateCheckpoint(context.Background(), project.CreateCheckpointRequest{
		ProjectID: 10,
		Name:      "Gerbang Utama",
		Latitude:  ptrFloat(-6.175),
		Longitude: ptrFloat(106.827),
		Sequence:  1,
	})
	require.NoError(t, err)

	require.NotNil(t, created.RadiusMeters)
	assert.Equal(t, project.DefaultRadiusMeters, *created.RadiusMeters)
	assert.True(t, created.Active)
}

func TestCreateCheckpoint_WithoutGeofence(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.CreateCheckpoint(context.Background(), project.CreateCheckpointRequest{
		ProjectID: 10,
		Name:      "Pos Dalam",
		Sequence:  2,
	})
	require.NoError(t, err)

	assert.Nil(t, created.Latitude)
	assert.Nil(t, created.RadiusMeters)
}

func TestCreateCheckpoint_UnknownProject(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateCheckpoint(context.Background(), project.CreateCheckpointRequest{
		ProjectID: 99,
		Name:      "Gerbang Utama",
	})
	assert.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestCreateCheckpoint_LoneLatitudeRejected(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateCheckpoint(context.Background(), project.CreateCheckpointRequest{
		ProjectID: 10,
		Name:      "Gerbang Utama",
		Latitude:  ptrFloat(-6.175),
	})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "latitude")
}

func TestListCheckpoints_IncludesInactive(t *testing.T) {
	svc, repo := newService(t)
	repo.checkpoints[1] = project.Checkpoint{ID: 1, ProjectID: 10, Name: "Gerbang Utama", Sequence: 1, Active: true}
	repo.checkpoints[2] = project.Checkpoint{ID: 2, ProjectID: 10, Name: "Pos Lama", Sequence: 2, Active: false}
	repo.nextID = 3

	checkpoints, err := svc.ListCheckpoints(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, checkpoints, 2)
}

func TestUpdateCheckpoint_Deactivate(t *testing.T) {
	svc, repo := newService(t)
	repo.checkpoints[1] = project.Checkpoint{
		ID: 1, ProjectID: 10, Name: "Gerbang Utama",
		Latitude: ptrFloat(-6.175), Longitude: ptrFloat(106.827), RadiusMeters: ptrFloat(30),
		Sequence: 1, Active: true,
	}
	repo.nextID = 2

	updated, err := svc.UpdateCheckpoint(context.Background(), project.UpdateCheckpointRequest{
		ID:       1,
		Name:     "Gerbang Utama",
		Latitude: ptrFloat(-6.175), Longitude: ptrFloat(106.827), RadiusMeters: ptrFloat(30),
		Sequence: 1,
		Active:   false,
	})
	require.NoError(t, err)
	assert.False(t, updated.Active)
}

func TestUpdateCheckpoint_NotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.UpdateCheckpoint(context.Background(), project.UpdateCheckpointRequest{
		ID:   42,
		Name: "Gerbang Utama",
	})
	assert.ErrorIs(t, err, project.ErrCheckpointNotFound)
}
