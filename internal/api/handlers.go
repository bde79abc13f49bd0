// Package api exposes the HTTP handlers of the annual report service.
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Lqint/RMBSVolReport/internal/domain"
	"github.com/Lqint/RMBSVolReport/internal/observability"
	"github.com/Lqint/RMBSVolReport/internal/store"
)

// Handler coordinates HTTP requests with the report service and the record
// store.
type Handler struct {
	service *domain.Service
	store   *store.Store
	logger  *log.Logger
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service, st *store.Store, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(log.Writer(), "[api] ", log.LstdFlags)
	}
	return &Handler{service: service, store: st, logger: logger}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/annual-report", h.annualReport)
	mux.HandleFunc("/api/v1/reload", h.reload)
	mux.HandleFunc("/healthz", healthz)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// AnnualReportRequest is the payload for POST /api/v1/annual-report.
type AnnualReportRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// annualReport builds one volunteer's report. Any unexpected failure during
// assembly is caught here and surfaced as a generic failure; the client
// never receives a partial report.
func (h *Handler) annualReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, envelope{Success: false, Error: "unsupported method"})
		return
	}

	var req AnnualReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: "unable to parse body"})
		return
	}

	id := domain.NewIdentity(req.Name, req.Phone)
	started := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("report assembly panicked: %v", rec)
			h.logger.Printf("report failed (name=%q): %v", req.Name, err)
			observability.CaptureError(err, map[string]string{"endpoint": "annual-report"})
			observability.RecordReport(observability.OutcomeError, time.Since(started))
			writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Error: "failed to build report"})
		}
	}()

	snap := h.store.Snapshot()
	report := h.service.BuildReport(snap.Records, snap.Org, id)

	outcome := observability.OutcomeVolunteer
	if _, guest := report.(domain.GuestReport); guest {
		outcome = observability.OutcomeGuest
	}
	observability.RecordReport(outcome, time.Since(started))

	writeJSON(w, http.StatusOK, envelope{Success: true, Data: report})
}

// reload swaps in a fresh snapshot. Intended for the admin pipeline after a
// new export lands.
func (h *Handler) reload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, envelope{Success: false, Error: "unsupported method"})
		return
	}

	if err := h.store.Reload(r.Context()); err != nil {
		h.logger.Printf("reload failed: %v", err)
		observability.CaptureError(err, map[string]string{"endpoint": "reload"})
		writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Error: "reload failed"})
		return
	}

	snap := h.store.Snapshot()
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: map[string]any{
		"records":   len(snap.Records),
		"loaded_at": snap.LoadedAt.Format(time.RFC3339),
	}})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
