package httpapi

import (
	"encoding/json"
	"net/http"

	"tripwatch-service/internal/usecase"
	"tripwatch-service/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler exposes the service's HTTP surface: health, metrics, the
// trip-created webhook and the on-demand scheduler trigger.
type Handler struct {
	poller       *usecase.StatusPoller
	confirmation *usecase.ConfirmationSender
	logger       logger.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(poller *usecase.StatusPoller, confirmation *usecase.ConfirmationSender, logger logger.Logger) *Handler {
	return &Handler{
		poller:       poller,
		confirmation: confirmation,
		logger:       logger,
	}
}

// Router builds the chi router
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/webhooks/trip-created", h.handleTripCreated)
	r.Post("/scheduler/run", h.handleSchedulerRun)

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// tripCreatedPayload is the Supabase-style insert webhook envelope
type tripCreatedPayload struct {
	Type   string `json:"type"`
	Table  string `json:"table"`
	Record struct {
		ID string `json:"id"`
	} `json:"record"`
}

// handleTripCreated sends the booking confirmation to every traveler of the
// newly inserted trip
func (h *Handler) handleTripCreated(w http.ResponseWriter, r *http.Request) {
	var payload tripCreatedPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Record.ID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	sent, err := h.confirmation.SendConfirmation(r.Context(), payload.Record.ID)
	if err != nil {
		h.logger.Error("Failed to send confirmation", "tripId", payload.Record.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "confirmation failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"sent": sent})
}

// handleSchedulerRun triggers one batch pass out-of-band. A pass already in
// flight reports skipped rather than running twice.
func (h *Handler) handleSchedulerRun(w http.ResponseWriter, r *http.Request) {
	result, err := h.poller.RunDueChecks(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if result.Skipped {
		writeJSON(w, http.StatusConflict, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
