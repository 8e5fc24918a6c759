package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jareyesmx/personas-web/internal/inference"
	"github.com/jareyesmx/personas-web/internal/relay"
	"github.com/jareyesmx/personas-web/internal/site"
	"github.com/jareyesmx/personas-web/internal/types"
)

//go:generate mockgen -source=handlers.go -destination=mock_queryclient.go -package=http QueryClient

// QueryClient defines the interface for the inference query client
type QueryClient interface {
	Submit(ctx context.Context, question string, profile inference.Profile) (*inference.QueryResult, error)
	Reset()
	Snapshot() inference.Snapshot
}

//go:generate mockgen -source=handlers.go -destination=mock_scheduler.go -package=http Scheduler

// Scheduler defines the interface for the email relay collaborator
type Scheduler interface {
	Send(ctx context.Context, msg relay.Message) error
}

type QueryReq struct {
	Question string `json:"question"`
	Profile  string `json:"profile"`
}

type ScheduleReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"`
	Topic string `json:"topic"`
}

type Handler struct {
	queryClient QueryClient
	scheduler   Scheduler
	renderer    *site.Renderer
}

// NewHandlers initializes handlers with dependencies. scheduler may be nil
// when no relay is configured; the scheduling endpoint then reports 503.
func NewHandlers(queryClient QueryClient, scheduler Scheduler, renderer *site.Renderer) *Handler {
	return &Handler{
		queryClient: queryClient,
		scheduler:   scheduler,
		renderer:    renderer,
	}
}

func (h *Handler) QueryHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req QueryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.queryClient.Submit(r.Context(), req.Question, inference.Profile(req.Profile))
	if err != nil {
		var verr *inference.ValidationError
		if errors.As(err, &verr) {
			fieldErrorResponse(w, verr)
			return
		}
		var terr *inference.TransportError
		if errors.As(err, &terr) {
			slog.Error("Inference exchange failed", "error", err, "upstream_status", terr.StatusCode)
			errorResponse(w, http.StatusBadGateway, "Inference service unavailable", err)
			return
		}
		slog.Error("Error submitting query", "error", err)
		errorResponse(w, http.StatusInternalServerError, "Failed to process query", err)
		return
	}

	response := types.QueryResponse{
		Answer: result.ExtractedAnswer,
		Raw:    result.RawText,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func (h *Handler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	h.queryClient.Reset()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func (h *Handler) StateHandler(w http.ResponseWriter, r *http.Request) {
	snap := h.queryClient.Snapshot()

	response := types.StateResponse{State: snap.State.String()}
	if snap.Result != nil {
		response.Answer = snap.Result.ExtractedAnswer
	}
	if snap.Err != nil {
		response.Error = snap.Err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func (h *Handler) ScheduleHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	if h.scheduler == nil {
		errorResponse(w, http.StatusServiceUnavailable, "Scheduling is not configured", nil)
		return
	}

	var req ScheduleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	msg := relay.Message{
		Name:  req.Name,
		Email: req.Email,
		Date:  req.Date,
		Topic: req.Topic,
	}

	if err := h.scheduler.Send(r.Context(), msg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			errorResponse(w, http.StatusBadRequest, "Invalid scheduling request", err)
			return
		}
		slog.Error("Error relaying scheduling message", "error", err)
		errorResponse(w, http.StatusBadGateway, "Failed to deliver scheduling message", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "sent"}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func (h *Handler) ViewHandler(w http.ResponseWriter, r *http.Request) {
	view := site.Resolve(chi.URLParam(r, "view"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, view); err != nil {
		slog.Error("Error rendering view", "error", err, "view", view)
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func errorResponse(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorMsg := message
	if err != nil {
		errorMsg = fmt.Sprintf("%s: %v", message, err)
	}

	if err := json.NewEncoder(w).Encode(types.ErrorResponse{
		Error:   http.StatusText(status),
		Message: errorMsg,
	}); err != nil {
		slog.Error("Error encoding error response", "error", err, "status", status)
	}
}

func fieldErrorResponse(w http.ResponseWriter, verr *inference.ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	if err := json.NewEncoder(w).Encode(types.ErrorResponse{
		Error:   http.StatusText(http.StatusBadRequest),
		Message: verr.Error(),
		Field:   verr.Field,
	}); err != nil {
		slog.Error("Error encoding error response", "error", err)
	}
}
