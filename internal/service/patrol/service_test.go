package patrol

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekurindo/secops-backend-go/internal/domain/employee"
	"github.com/sekurindo/secops-backend-go/internal/domain/patrol"
	"github.com/sekurindo/secops-backend-go/internal/domain/project"
	"github.com/sekurindo/secops-backend-go/internal/domain/user"
	approvalService "github.com/sekurindo/secops-backend-go/internal/service/approval"
)

// ===== in-memory fakes =====

type fakePatrolRepo struct {
	nextID  int64
	patrols map[int64]patrol.Patrol
	files   []patrol.PatrolFile
}

func newFakePatrolRepo() *fakePatrolRepo {
	return &fakePatrolRepo{nextID: 1, patrols: map[int64]patrol.Patrol{}}
}

func (f *fakePatrolRepo) Create(ctx context.Context, p patrol.Patrol) (patrol.Patrol, error) {
	p.ID = f.nextID
	f.nextID++
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	f.patrols[p.ID] = p
	return p, nil
}

func (f *fakePatrolRepo) GetByID(ctx context.Context, id int64) (patrol.Patrol, error) {
	p, ok := f.patrols[id]
	if !ok {
		return patrol.Patrol{}, pgx.ErrNoRows
	}
	return p, nil
}

func (f *fakePatrolRepo) GetOpenByEmployee(ctx context.Context, employeeID int64) (*patrol.Patrol, error) {
	for _, p := range f.patrols {
		if p.EmployeeID == employeeID && p.Status == patrol.StatusInProgress {
			open := p
			return &open, nil
		}
	}
	return nil, nil
}

func (f *fakePatrolRepo) RecordVisit(ctx context.Context, patrolID int64, checkpointID int64, latitude, longitude float64) (patrol.Patrol, error) {
	p, ok := f.patrols[patrolID]
	if !ok {
		return patrol.Patrol{}, pgx.ErrNoRows
	}
	if p.Status != patrol.StatusInProgress {
		return patrol.Patrol{}, patrol.ErrPatrolNotInProgress
	}
	p.CheckpointID = &checkpointID
	p.Latitude = &latitude
	p.Longitude = &longitude
	p.UpdatedAt = time.Now().UTC()
	f.patrols[patrolID] = p
	return p, nil
}

func (f *fakePatrolRepo) Complete(ctx context.Context, patrolID int64, endTime time.Time, latitude, longitude *float64, note *string) (patrol.Patrol, error) {
	p, ok := f.patrols[patrolID]
	if !ok {
		return patrol.Patrol{}, pgx.ErrNoRows
	}
	if p.Status != patrol.StatusInProgress {
		return patrol.Patrol{}, patrol.ErrPatrolNotInProgress
	}
	p.Status = patrol.StatusCompleted
	p.EndTime = &endTime
	if latitude != nil {
		p.Latitude = latitude
	}
	if longitude != nil {
		p.Longitude = longitude
	}
	if note != nil {
		p.Note = note
	}
	f.patrols[patrolID] = p
	return p, nil
}

func (f *fakePatrolRepo) List(ctx context.Context, filter patrol.PatrolFilter) ([]patrol.Patrol, error) {
	var out []patrol.Patrol
	for _, p := range f.patrols {
		if filter.EmployeeIDs != nil {
			found := false
			for _, id := range filter.EmployeeIDs {
				if p.EmployeeID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		out = append(out, p)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakePatrolRepo) AddFile(ctx context.Context, file patrol.PatrolFile) (patrol.PatrolFile, error) {
	file.ID = int64(len(f.files) + 1)
	file.CreatedAt = time.Now().UTC()
	f.files = append(f.files, file)
	return file, nil
}

func (f *fakePatrolRepo) ListFiles(ctx context.Context, patrolID int64) ([]patrol.PatrolFile, error) {
	var out []patrol.PatrolFile
	for _, file := range f.files {
		if file.PatrolID == patrolID {
			out = append(out, file)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees   []employee.Employee
	assignments map[int64][]int64
}

func (f *fakeEmployeeRepo) ListByApprovalLine(ctx context.Context, approvalLine string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.ApprovalLine != nil && *e.ApprovalLine == approvalLine {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) ActiveProjectIDs(ctx context.Context, employeeID int64) ([]int64, error) {
	return f.assignments[employeeID], nil
}

type fakeCheckpointRepo struct {
	project.CheckpointRepository
	checkpoints map[int64]project.Checkpoint
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

type fakeFileService struct{}

func (fakeFileService) UploadPatrolEvidence(ctx context.Context, patrolID int64, file io.Reader, filename string, size int64) (string, error) {
	return "patrols/1/test.jpg", nil
}

func (fakeFileService) UploadIncidentPhoto(ctx context.Context, reporterEmployeeID int64, file io.Reader, filename string, size int64) (string, error) {
	return "incidents/1/test.jpg", nil
}

func (fakeFileService) PublicURL(path string) string { return "http://localhost:8080/uploads/" + path }

func (fakeFileService) DeleteFile(ctx context.Context, path string) error { return nil }

// ===== fixtures =====

func f64Ptr(v float64) *float64 { return &v }
func strPtr(s string) *string   { return &s }

// fixture builds a supervisor (id 1) with guard (id 2) reporting to her, an
// unrelated guard (id 3), and one project with two checkpoints: one fenced
// at the origin with a 25m radius, one without geofence data.
func fixture() (*fakePatrolRepo, *fakeEmployeeRepo, *fakeCheckpointRepo, patrol.PatrolService) {
	employees := []employee.Employee{
		{ID: 1, EmployeeCode: "SPV-001"},
		{ID: 2, EmployeeCode: "GRD-002", ApprovalLine: strPtr("SPV-001")},
		{ID: 3, EmployeeCode: "GRD-003"},
	}
	empRepo := &fakeEmployeeRepo{
		employees: employees,
		assignments: map[int64][]int64{
			2: {10},
			3: {10},
		},
	}
	cpRepo := &fakeCheckpointRepo{checkpoints: map[int64]project.Checkpoint{
		100: {ID: 100, ProjectID: 10, Name: "Gate A", Latitude: f64Ptr(0), Longitude: f64Ptr(0), RadiusMeters: f64Ptr(25), Sequence: 1, Active: true},
		101: {ID: 101, ProjectID: 10, Name: "Lobby", Sequence: 2, Active: true},
	}}
	patrolRepo := newFakePatrolRepo()
	resolver := approvalService.NewScopeResolver(empRepo)
	svc := NewPatrolService(patrolRepo, empRepo, cpRepo, resolver, fakeFileService{})
	return patrolRepo, empRepo, cpRepo, svc
}

func guardActor() employee.Actor {
	return employee.Actor{Employee: employee.Employee{ID: 2, EmployeeCode: "GRD-002", ApprovalLine: strPtr("SPV-001")}, Role: user.RoleGuard}
}

func supervisorActor() employee.Actor {
	return employee.Actor{Employee: employee.Employee{ID: 1, EmployeeCode: "SPV-001"}, Role: user.RoleSupervisor}
}

func strangerActor() employee.Actor {
	return employee.Actor{Employee: employee.Employee{ID: 3, EmployeeCode: "GRD-003"}, Role: user.RoleGuard}
}

// ===== tests =====

func TestPatrolLifecycle_HappyPath(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, _, _, svc := fixture()

	started, err := svc.Start(ctx, guardActor(), patrol.StartPatrolRequest{})
	require.NoError(t, err)
	assert.Equal(t, patrol.StatusInProgress, started.Status)
	assert.Equal(t, int64(10), started.ProjectID)
	assert.NotEmpty(t, started.StartTime)

	// Visit inside the fence (at the checkpoint center).
	visit, err := svc.Visit(ctx, guardActor(), started.ID, patrol.VisitRequest{
		CheckpointID: 100,
		Latitude:     0,
		Longitude:    0,
	})
	require.NoError(t, err)
	require.NotNil(t, visit.Geofence)
	assert.True(t, visit.Geofence.Inside)
	assert.Equal(t, float64(0), visit.Geofence.RemainingMeters)
	require.NotNil(t, visit.Patrol.CheckpointID)
	assert.Equal(t, int64(100), *visit.Patrol.CheckpointID)

	completed, err := svc.Complete(ctx, guardActor(), started.ID, patrol.CompletePatrolRequest{Note: strPtr("all clear")})
	require.NoError(t, err)
	assert.Equal(t, patrol.StatusCompleted, completed.Status)
	assert.NotNil(t, completed.EndTime)

	stored := repo.patrols[started.ID]
	assert.Equal(t, patrol.StatusCompleted, stored.Status)
	assert.NotNil(t, stored.EndTime)
	require.NotNil(t, stored.CheckpointID)
	assert.Equal(t, int64(100), *stored.CheckpointID)
}

func TestStart_NoProjectAssigned(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, empRepo, _, svc := fixture()
	empRepo.assignments[2] = nil

	_, err := svc.Start(ctx, guardActor(), patrol.StartPatrolRequest{})
	assert.ErrorIs(t, err, patrol.ErrNoProjectAssigned)
	assert.Empty(t, repo.patrols)
}

func TestStart_AmbiguousAssignment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, empRepo, _, svc := fixture()
	empRepo.assignments[2] = []int64{10, 11}

	_, err := svc.Start(ctx, guardActor(), patrol.StartPatrolRequest{})

	var ambiguous *patrol.AmbiguousAssignmentError
	require.ErrorAs(t, err, &ambiguous)
	assert.ElementsMatch(t, []int64{10, 11}, ambiguous.CandidateProjectIDs)
	// No patrol row may be created on ambiguity.
	assert.Empty(t, repo.patrols)
}

func TestStart_RefusesSecondOpenPatrol(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, _, _, svc := fixture()

	_, err := svc.Start(ctx, guardActor(), patrol.StartPatrolRequest{})
	require.NoError(t, err)

	_, err = svc.Start(ctx, guardActor(), patrol.StartPatrolRequest{})
	assert.ErrorIs(t, err, patrol.ErrPatrolAlreadyActive)
}

func TestVisit_OutsideGeofence_LeavesPatrolUntouched(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, _, _, svc := fixture()

	started, err := svc.Start(ctx, guardActor(), patrol.StartPatrolRequest{})
	require.NoError(t, err)

	// ~111m north of the checkpoint against a 25m radius.
	_, err = svc.Visit(ctx, guardActor(), started.ID, patrol.VisitRequest{
		CheckpointID: 100,
		Latitude:     0.001,
		Longitude:    0,
	})

	var violation *patrol.GeofenceViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, float64(25), violation.RadiusMeters)
	assert.Greater(t, violation.RemainingMeters, float64(0))
	assert.InDelta(t, violation.DistanceMeters-25, violation.RemainingMeters, 1e-9)

	stored := repo.patrols[started.ID]
	assert.Nil(t, stored.CheckpointID, "rejected visit must not record the checkpoint")
	assert.Nil(t, stored.Latitude)
	assert.Equal(t, patrol.StatusInProgress, stored.Status)
}

func TestVisit_GeofenceBypass_NoCoordinatesConfigured(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, _, _, svc := fixture()

	started, err := svc.Start(ctx, guardActor(), patrol.StartPatrolRequest{})
	require.NoError(t, err)

	// Checkpoint 101 has no geofence data: any observation passes.
	visit, err := svc.Visit(ctx, guardActor(), started.ID, patrol.VisitRequest{
		CheckpointID: 101,
		Latitude:     -33.86,
		Longitude:    151.2,
	})
	require.NoError(t, err)
	assert.Nil(t, visit.Geofence)
	require.NotNil(t, visit.Patrol.CheckpointID)
	assert.Equal(t, int64(101), *visit.Patrol.CheckpointID)
}

func TestVisit_CompletedPatrolRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, _, _, svc := fixture()

	started, err := svc.Start(ctx, guardActor(), patrol.StartPatrolRequest{})
	require.NoError(t, err)
	_, err = svc.Complete(ctx, guardActor(), started.ID, patrol.CompletePatrolRequest{})
	require.NoError(t, err)

	_, err = svc.Visit(ctx, guardActor(), started.ID, patrol.VisitRequest{
		CheckpointID: 100,
		Latitude:     0,
		Longitude:    0,
	})
	assert.ErrorIs(t, err, patrol.ErrPatrolNotInProgress)
}

func TestComplete_TwiceRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, _, _, svc := fixture()

	started, err := svc.Start(ctx, guardActor(), patrol.StartPatrolRequest{})
	require.NoError(t, err)

	first, err := svc.Complete(ctx, guardActor(), started.ID, patrol.CompletePatrolRequest{})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, guardActor(), started.ID, patrol.CompletePatrolRequest{})
	assert.ErrorIs(t, err, patrol.ErrPatrolNotInProgress)

	// Second attempt left the record as the first completion wrote it.
	stored := repo.patrols[started.ID]
	assert.Equal(t, *first.EndTime, stored.EndTime.Format(time.RFC3339))
}

func TestComplete_UnknownPatrol(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, _, _, svc := fixture()

	_, err := svc.Complete(ctx, guardActor(), 999, patrol.CompletePatrolRequest{})
	assert.ErrorIs(t, err, patrol.ErrPatrolNotFound)
}

func TestAuthorization_StrangerForbidden(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, _, _, svc := fixture()

	started, err := svc.Start(ctx, guardActor(), patrol.StartPatrolRequest{})
	require.NoError(t, err)

	_, err = svc.Get(ctx, strangerActor(), started.ID)
	assert.ErrorIs(t, err, patrol.ErrForbidden)

	_, err = svc.Complete(ctx, strangerActor(), started.ID, patrol.CompletePatrolRequest{})
	assert.ErrorIs(t, err, patrol.ErrForbidden)
}

func TestAuthorization_SupervisorAllowed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, _, _, svc := fixture()

	started, err := svc.Start(ctx, guardActor(), patrol.StartPatrolRequest{})
	require.NoError(t, err)

	detail, err := svc.Get(ctx, supervisorActor(), started.ID)
	require.NoError(t, err)
	assert.Equal(t, started.ID, detail.Patrol.ID)
}

func TestMonitoring_ScopedToSubordinates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, _, _, svc := fixture()

	// Guard 2 (subordinate of supervisor 1) and guard 3 (unrelated) both
	// start patrols.
	_, err := svc.Start(ctx, guardActor(), patrol.StartPatrolRequest{})
	require.NoError(t, err)
	_, err = svc.Start(ctx, strangerActor(), patrol.StartPatrolRequest{})
	require.NoError(t, err)

	patrols, err := svc.Monitoring(ctx, supervisorActor(), patrol.ListFilter{})
	require.NoError(t, err)
	require.Len(t, patrols, 1)
	assert.Equal(t, int64(2), patrols[0].EmployeeID)
}

func TestCheckpoints_AnnotatesLiveDistance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, _, _, svc := fixture()

	statuses, err := svc.Checkpoints(ctx, guardActor(), &patrol.Coordinate{Latitude: 0.001, Longitude: 0})
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	byID := map[int64]patrol.CheckpointStatus{}
	for _, st := range statuses {
		byID[st.ID] = st
	}

	fenced := byID[100]
	require.NotNil(t, fenced.Geofence)
	assert.False(t, fenced.Geofence.Inside)
	assert.InDelta(t, 111.19, fenced.Geofence.DistanceMeters, 0.5)

	unfenced := byID[101]
	assert.Nil(t, unfenced.Geofence)
}

func TestCheckpoints_AmbiguousAssignmentBlocks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, empRepo, _, svc := fixture()
	empRepo.assignments[2] = []int64{10, 11}

	_, err := svc.Checkpoints(ctx, guardActor(), nil)
	var ambiguous *patrol.AmbiguousAssignmentError
	assert.ErrorAs(t, err, &ambiguous)
}

func TestAttachEvidence_AllowedAfterCompletion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, _, _, svc := fixture()

	started, err := svc.Start(ctx, guardActor(), patrol.StartPatrolRequest{})
	require.NoError(t, err)
	_, err = svc.Complete(ctx, guardActor(), started.ID, patrol.CompletePatrolRequest{})
	require.NoError(t, err)

	evidence, err := svc.AttachEvidence(ctx, guardActor(), started.ID, nil, "proof.jpg", 1024)
	require.NoError(t, err)
	assert.Equal(t, started.ID, evidence.PatrolID)
	assert.NotEmpty(t, evidence.FileURL)
	assert.Len(t, repo.files, 1)
}
