package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sekurindo/secops-backend-go/internal/domain/project"
	"github.com/sekurindo/secops-backend-go/internal/handler/http/response"
)

type CheckpointHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type checkpointHandlerImpl struct {
	checkpointService project.CheckpointService
}

func NewCheckpointHandler(checkpointService project.CheckpointService) CheckpointHandler {
	return &checkpointHandlerImpl{
		checkpointService: checkpointService,
	}
}

// Index implements CheckpointHandler.
func (h *checkpointHandlerImpl) Index(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil || projectID <= 0 {
		response.BadRequest(w, "Invalid project id", nil)
		return
	}

	checkpoints, err := h.checkpointService.ListCheckpoints(r.Context(), projectID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, checkpoints)
}

// Create implements CheckpointHandler.
func (h *checkpointHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil || projectID <= 0 {
		response.BadRequest(w, "Invalid project id", nil)
		return
	}

	var req project.CreateCheckpointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create checkpoint decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ProjectID = projectID

	result, err := h.checkpointService.CreateCheckpoint(r.Context(), req)
	if err != nil {
		slog.Error("Create checkpoint service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Checkpoint created", "checkpoint_id", result.ID, "project_id", projectID)
	response.Created(w, "Checkpoint created", result)
}

// Update implements CheckpointHandler.
func (h *checkpointHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	checkpointID, err := strconv.ParseInt(chi.URLParam(r, "checkpointID"), 10, 64)
	if err != nil || checkpointID <= 0 {
		response.BadRequest(w, "Invalid checkpoint id", nil)
		return
	}

	var req project.UpdateCheckpointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update checkpoint decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = checkpointID

	result, err := h.checkpointService.UpdateCheckpoint(r.Context(), req)
	if err != nil {
		slog.Error("Update checkpoint service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Checkpoint updated", "checkpoint_id", checkpointID)
	response.SuccessWithMessage(w, "Checkpoint updated", result)
}
