package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sekurindo/secops-backend-go/internal/domain/incident"
	"github.com/sekurindo/secops-backend-go/internal/handler/http/middleware"
	"github.com/sekurindo/secops-backend-go/internal/handler/http/response"
)

type IncidentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Index(w http.ResponseWriter, r *http.Request)
	Show(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type incidentHandlerImpl struct {
	incidentService incident.IncidentService
}

func NewIncidentHandler(incidentService incident.IncidentService) IncidentHandler {
	return &incidentHandlerImpl{
		incidentService: incidentService,
	}
}

func incidentIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "incidentID"), 10, 64)
	return id, err == nil && id > 0
}

// Create implements IncidentHandler. The request is multipart: a 'data' field
// carrying the JSON payload and an optional 'photo' file.
func (h *incidentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor context")
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return
	}

	var req incident.ReportIncidentRequest
	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	var photo io.Reader
	var photoFilename string
	var photoSize int64
	file, fileHeader, err := r.FormFile("photo")
	if err == nil {
		defer file.Close()
		photo = file
		photoFilename = fileHeader.Filename
		photoSize = fileHeader.Size
	} else if err != http.ErrMissingFile {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	result, err := h.incidentService.Report(r.Context(), actor, req, photo, photoFilename, photoSize)
	if err != nil {
		slog.Error("Report incident service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Incident reported", "incident_id", result.ID, "severity", result.Severity)
	response.Created(w, "Incident reported", result)
}

// Index implements IncidentHandler.
func (h *incidentHandlerImpl) Index(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor context")
		return
	}

	var query incident.ListQuery
	if s := r.URL.Query().Get("status"); s != "" {
		status := incident.Status(s)
		if status != incident.StatusOpen && status != incident.StatusInReview && status != incident.StatusResolved {
			response.BadRequest(w, "Invalid status filter", nil)
			return
		}
		query.Status = &status
	}
	if s := r.URL.Query().Get("severity"); s != "" {
		severity := incident.Severity(s)
		switch severity {
		case incident.SeverityLow, incident.SeverityMedium, incident.SeverityHigh, incident.SeverityCritical:
			query.Severity = &severity
		default:
			response.BadRequest(w, "Invalid severity filter", nil)
			return
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil {
			response.BadRequest(w, "Invalid limit", nil)
			return
		}
		query.Limit = limit
	}

	incidents, err := h.incidentService.List(r.Context(), actor, query)
	if err != nil {
		slog.Error("List incidents service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, incidents, &response.Meta{Count: len(incidents), Limit: query.Limit})
}

// Show implements IncidentHandler.
func (h *incidentHandlerImpl) Show(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor context")
		return
	}

	incidentID, ok := incidentIDParam(r)
	if !ok {
		response.BadRequest(w, "Invalid incident id", nil)
		return
	}

	result, err := h.incidentService.Get(r.Context(), actor, incidentID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateStatus implements IncidentHandler.
func (h *incidentHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor context")
		return
	}

	incidentID, ok := incidentIDParam(r)
	if !ok {
		response.BadRequest(w, "Invalid incident id", nil)
		return
	}

	var req incident.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update incident status decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.incidentService.UpdateStatus(r.Context(), actor, incidentID, req)
	if err != nil {
		slog.Error("Update incident status service error", "error", err, "incident_id", incidentID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Incident status updated", "incident_id", incidentID, "status", result.Status)
	response.Success(w, result)
}
