package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/moneymap/moneymap-backend/internal/api/request"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/service"
	"github.com/moneymap/moneymap-backend/internal/validation"
)

// AlertHandler handles alert triage HTTP requests
type AlertHandler struct {
	alertService *service.AlertService
}

// NewAlertHandler creates a new AlertHandler
func NewAlertHandler(alertService *service.AlertService) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
	}
}

// Alerts lists alerts, optionally filtered by ?status= and ?severity=
func (h *AlertHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	filter := model.AlertFilter{
		Status:   model.AlertStatus(r.URL.Query().Get("status")),
		Severity: model.AlertSeverity(r.URL.Query().Get("severity")),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		respondError(w, http.StatusBadRequest, "invalid status filter", string(filter.Status))
		return
	}
	if filter.Severity != "" && !filter.Severity.Valid() {
		respondError(w, http.StatusBadRequest, "invalid severity filter", string(filter.Severity))
		return
	}

	alerts, err := h.alertService.GetAlerts(filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, alerts)
}

// Alert retrieves a single alert
func (h *AlertHandler) Alert(w http.ResponseWriter, r *http.Request) {
	alert, err := h.alertService.GetAlert(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, alert)
}

// UpdateStatus advances an alert through triage
func (h *AlertHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req request.AlertStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateAlertStatus(req); err != nil {
		respondServiceError(w, err)
		return
	}

	alert, err := h.alertService.TransitionStatus(chi.URLParam(r, "uuid"), model.AlertStatus(req.Status))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, alert)
}
