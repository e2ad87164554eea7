package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekurindo/secops-backend-go/internal/domain/employee"
	"github.com/sekurindo/secops-backend-go/internal/domain/patrol"
	"github.com/sekurindo/secops-backend-go/internal/domain/user"
	"github.com/sekurindo/secops-backend-go/internal/handler/http/middleware"
	"github.com/sekurindo/secops-backend-go/internal/handler/http/response"
)

type stubPatrolService struct {
	startResult patrol.PatrolResponse
	startErr    error
	startActor  employee.Actor
}

func (s *stubPatrolService) Start(_ context.Context, actor employee.Actor, _ patrol.StartPatrolRequest) (patrol.PatrolResponse, error) {
	s.startActor = actor
	return s.startResult, s.startErr
}

func (s *stubPatrolService) Get(context.Context, employee.Actor, int64) (patrol.PatrolDetailResponse, error) {
	return patrol.PatrolDetailResponse{}, nil
}

func (s *stubPatrolService) Visit(context.Context, employee.Actor, int64, patrol.VisitRequest) (patrol.VisitResponse, error) {
	return patrol.VisitResponse{}, nil
}

func (s *stubPatrolService) Complete(context.Context, employee.Actor, int64, patrol.CompletePatrolRequest) (patrol.PatrolResponse, error) {
	return patrol.PatrolResponse{}, nil
}

func (s *stubPatrolService) AttachEvidence(context.Context, employee.Actor, int64, io.Reader, string, int64) (patrol.EvidenceResponse, error) {
	return patrol.EvidenceResponse{}, nil
}

func (s *stubPatrolService) ListMine(context.Context, employee.Actor, patrol.ListFilter) ([]patrol.PatrolResponse, error) {
	return nil, nil
}

func (s *stubPatrolService) Monitoring(context.Context, employee.Actor, patrol.ListFilter) ([]patrol.PatrolResponse, error) {
	return nil, nil
}

func (s *stubPatrolService) Checkpoints(context.Context, employee.Actor, *patrol.Coordinate) ([]patrol.CheckpointStatus, error) {
	return nil, nil
}

func guardActor() employee.Actor {
	return employee.Actor{
		Employee: employee.Employee{
			ID:           2,
			EmployeeCode: "GRD-002",
			FullName:     "Budi Santoso",
		},
		Role: user.RoleGuard,
	}
}

func TestPatrolHandler_Start(t *testing.T) {
	svc := &stubPatrolService{
		startResult: patrol.PatrolResponse{
			ID:         7,
			EmployeeID: 2,
			ProjectID:  10,
			Status:     patrol.StatusInProgress,
		},
	}
	handler := NewPatrolHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patrols/start", strings.NewReader(`{}`))
	req = req.WithContext(middleware.WithActor(req.Context(), guardActor()))
	rec := httptest.NewRecorder()

	handler.Start(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(2), svc.startActor.Employee.ID)

	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Patrol started", body.Message)
}

func TestPatrolHandler_Start_MissingActor(t *testing.T) {
	handler := NewPatrolHandler(&stubPatrolService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patrols/start", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	handler.Start(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
