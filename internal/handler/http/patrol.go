package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sekurindo/secops-backend-go/internal/domain/patrol"
	"github.com/sekurindo/secops-backend-go/internal/handler/http/middleware"
	"github.com/sekurindo/secops-backend-go/internal/handler/http/response"
	"github.com/sekurindo/secops-backend-go/internal/pkg/validator"
)

type PatrolHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
	Monitoring(w http.ResponseWriter, r *http.Request)
	Checkpoints(w http.ResponseWriter, r *http.Request)
	Start(w http.ResponseWriter, r *http.Request)
	Show(w http.ResponseWriter, r *http.Request)
	Visit(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
	UploadEvidence(w http.ResponseWriter, r *http.Request)
}

type patrolHandlerImpl struct {
	patrolService patrol.PatrolService
}

func NewPatrolHandler(patrolService patrol.PatrolService) PatrolHandler {
	return &patrolHandlerImpl{
		patrolService: patrolService,
	}
}

var errInvalidFilter = errors.New("invalid filter parameter")

func patrolIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "patrolID"), 10, 64)
	return id, err == nil && id > 0
}

// parsePatrolFilter reads the shared list query parameters: status, date
// (YYYY-MM-DD) and limit.
func parsePatrolFilter(r *http.Request) (patrol.ListFilter, error) {
	var filter patrol.ListFilter

	if s := r.URL.Query().Get("status"); s != "" {
		status := patrol.Status(s)
		if status != patrol.StatusInProgress && status != patrol.StatusCompleted {
			return filter, errInvalidFilter
		}
		filter.Status = &status
	}

	if d := r.URL.Query().Get("date"); d != "" {
		date, ok := validator.IsValidDate(d)
		if !ok {
			return filter, errInvalidFilter
		}
		filter.Date = &date
	}

	if l := r.URL.Query().Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil {
			return filter, err
		}
		filter.Limit = limit
	}

	return filter, nil
}

// Index implements PatrolHandler, listing the caller's own patrols.
func (h *patrolHandlerImpl) Index(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor context")
		return
	}

	filter, err := parsePatrolFilter(r)
	if err != nil {
		response.BadRequest(w, "Invalid query parameters", nil)
		return
	}

	patrols, err := h.patrolService.ListMine(r.Context(), actor, filter)
	if err != nil {
		slog.Error("List patrols service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, patrols, &response.Meta{Count: len(patrols), Limit: filter.Limit})
}

// Monitoring implements PatrolHandler, listing subordinates' patrols.
func (h *patrolHandlerImpl) Monitoring(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor context")
		return
	}

	filter, err := parsePatrolFilter(r)
	if err != nil {
		response.BadRequest(w, "Invalid query parameters", nil)
		return
	}

	patrols, err := h.patrolService.Monitoring(r.Context(), actor, filter)
	if err != nil {
		slog.Error("Monitoring service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, patrols, &response.Meta{Count: len(patrols), Limit: filter.Limit})
}

// Checkpoints implements PatrolHandler. Optional lat and lng query params
// annotate each checkpoint with the live geofence verdict.
func (h *patrolHandlerImpl) Checkpoints(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor context")
		return
	}

	var observer *patrol.Coordinate
	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")
	if latStr != "" || lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			response.BadRequest(w, "lat and lng must be valid coordinates, provided together", nil)
			return
		}
		observer = &patrol.Coordinate{Latitude: lat, Longitude: lng}
	}

	checkpoints, err := h.patrolService.Checkpoints(r.Context(), actor, observer)
	if err != nil {
		slog.Error("Checkpoints service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, checkpoints)
}

// Start implements PatrolHandler.
func (h *patrolHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor context")
		return
	}

	var req patrol.StartPatrolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Start patrol decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.patrolService.Start(r.Context(), actor, req)
	if err != nil {
		slog.Error("Start patrol service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Patrol started", "patrol_id", result.ID, "employee_id", actor.Employee.ID)
	response.Created(w, "Patrol started", result)
}

// Show implements PatrolHandler.
func (h *patrolHandlerImpl) Show(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor context")
		return
	}

	patrolID, ok := patrolIDParam(r)
	if !ok {
		response.BadRequest(w, "Invalid patrol id", nil)
		return
	}

	result, err := h.patrolService.Get(r.Context(), actor, patrolID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Visit implements PatrolHandler.
func (h *patrolHandlerImpl) Visit(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor context")
		return
	}

	patrolID, ok := patrolIDParam(r)
	if !ok {
		response.BadRequest(w, "Invalid patrol id", nil)
		return
	}

	var req patrol.VisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Visit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.patrolService.Visit(r.Context(), actor, patrolID, req)
	if err != nil {
		slog.Error("Visit service error", "error", err, "patrol_id", patrolID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Checkpoint visit recorded", "patrol_id", patrolID, "checkpoint_id", req.CheckpointID)
	response.Success(w, result)
}

// Complete implements PatrolHandler.
func (h *patrolHandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor context")
		return
	}

	patrolID, ok := patrolIDParam(r)
	if !ok {
		response.BadRequest(w, "Invalid patrol id", nil)
		return
	}

	var req patrol.CompletePatrolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Complete patrol decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.patrolService.Complete(r.Context(), actor, patrolID, req)
	if err != nil {
		slog.Error("Complete patrol service error", "error", err, "patrol_id", patrolID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Patrol completed", "patrol_id", patrolID)
	response.Success(w, result)
}

// UploadEvidence implements PatrolHandler.
func (h *patrolHandlerImpl) UploadEvidence(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor context")
		return
	}

	patrolID, ok := patrolIDParam(r)
	if !ok {
		response.BadRequest(w, "Invalid patrol id", nil)
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Evidence file is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	result, err := h.patrolService.AttachEvidence(r.Context(), actor, patrolID, file, fileHeader.Filename, fileHeader.Size)
	if err != nil {
		slog.Error("Attach evidence service error", "error", err, "patrol_id", patrolID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Evidence attached", "patrol_id", patrolID, "evidence_id", result.ID)
	response.Created(w, "Evidence uploaded", result)
}
