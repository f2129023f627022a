package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/moneymap/moneymap-backend/internal/service"
)

// ReportHandler handles quarterly report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// ClientReport generates the quarterly statement for one client
func (h *ReportHandler) ClientReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.GenerateClientReport(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Reports generates quarterly statements for every active client
func (h *ReportHandler) Reports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reportService.GenerateAllReports(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reports)
}
