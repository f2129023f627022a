package handlers

import (
	"context"
	"net/http"
)

// PriceRefresher triggers the price sweep outside its cron schedule.
// *scheduler.Scheduler satisfies it.
type PriceRefresher interface {
	RefreshPrices(ctx context.Context)
}

// MaintenanceHandler handles internal operational endpoints
type MaintenanceHandler struct {
	refresher PriceRefresher
}

// NewMaintenanceHandler creates a new MaintenanceHandler
func NewMaintenanceHandler(refresher PriceRefresher) *MaintenanceHandler {
	return &MaintenanceHandler{
		refresher: refresher,
	}
}

// RefreshPrices runs the price sweep immediately
func (h *MaintenanceHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	h.refresher.RefreshPrices(r.Context())
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "refresh complete"})
}
