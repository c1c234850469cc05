// Package handler is the thin HTTP layer for the application module. It
// delegates to the service without embedding business logic so transport
// concerns remain isolated.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"insureease/internal/application/models"
	"insureease/internal/application/store"
	"insureease/internal/catalog"
	dErrors "insureease/pkg/domain-errors"
	"insureease/pkg/requestcontext"
)

// Service defines the lifecycle operations the handler depends on.
type Service interface {
	Create(ctx context.Context, sub models.Submission) (string, error)
	Status(ctx context.Context, id string) (*store.StatusProjection, error)
	Submit(ctx context.Context, id string) error
}

// Handler handles the insurance application endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// New creates a new application Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the application routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/insurance", func(r chi.Router) {
		r.Post("/applications", h.handleCreate)
		r.Get("/packages", h.handlePackages)
		r.Get("/applications/{id}/status", h.handleStatus)
		r.Post("/applications/{id}/submit", h.handleSubmit)
	})
}

// envelope is the wire format shared by the front-end facing endpoints. The
// original web client expects HTTP 200 with a status field for both outcomes,
// so input and validation failures keep a 200 status code here.
type envelope struct {
	Status        string `json:"status"`
	Message       string `json:"message,omitempty"`
	ApplicationID string `json:"application_id,omitempty"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sub, err := decodeSubmission(r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid application payload",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		writeJSON(w, http.StatusOK, envelope{Status: "error", Message: "No data provided"})
		return
	}

	id, err := h.service.Create(ctx, sub)
	if err != nil {
		h.writeCreateError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Status:        "success",
		Message:       "Application submitted successfully",
		ApplicationID: id,
	})
}

func (h *Handler) writeCreateError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	if dErrors.HasCode(err, dErrors.CodeInvalidInput) || dErrors.HasCode(err, dErrors.CodeBadRequest) {
		h.logger.WarnContext(ctx, "application rejected",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		writeJSON(w, http.StatusOK, envelope{Status: "error", Message: dErrors.MessageOf(err)})
		return
	}
	h.logger.ErrorContext(ctx, "failed to create application",
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	)
	writeJSON(w, http.StatusInternalServerError, envelope{
		Status:  "error",
		Message: "An error occurred while processing your application",
	})
}

func (h *Handler) handlePackages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Get())
}

// statusResponse extends the envelope with the projection fields.
type statusResponse struct {
	Status            string `json:"status"`
	ApplicationStatus string `json:"application_status"`
	ApplicationDate   string `json:"application_date"`
	ApplicantName     string `json:"applicant_name"`
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	projection, err := h.service.Status(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "status lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"application_id", id,
			"error", err.Error(),
		)
		writeJSON(w, http.StatusOK, envelope{Status: "error", Message: dErrors.MessageOf(err)})
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:            "success",
		ApplicationStatus: string(projection.Status),
		ApplicationDate:   projection.Date.Format("2006-01-02"),
		ApplicantName:     projection.ApplicantName,
	})
}

// handleSubmit is the operator-facing transition trigger; unlike the guest
// endpoints it reports failures through HTTP status codes.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := h.service.Submit(ctx, id); err != nil {
		status := http.StatusInternalServerError
		var de *dErrors.Error
		if errors.As(err, &de) {
			status = dErrors.ToHTTPStatus(de.Code)
		}
		h.logger.WarnContext(ctx, "submission transition failed",
			"request_id", requestcontext.RequestID(ctx),
			"application_id", id,
			"error", err.Error(),
		)
		writeJSON(w, status, envelope{Status: "error", Message: dErrors.MessageOf(err)})
		return
	}

	writeJSON(w, http.StatusOK, envelope{Status: "success", Message: "Application submitted", ApplicationID: id})
}

// decodeSubmission accepts either a JSON object payload or a {"data": "<json>"}
// wrapper carrying the submission as a serialized string.
func decodeSubmission(r *http.Request) (models.Submission, error) {
	var sub models.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		return nil, err
	}
	if raw, ok := sub["data"].(string); ok && len(sub) == 1 {
		var inner models.Submission
		if err := json.Unmarshal([]byte(raw), &inner); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return sub, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
