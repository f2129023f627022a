package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/service"
	"github.com/moneymap/moneymap-backend/internal/valuation"
)

// MarketHandler handles market data HTTP requests
type MarketHandler struct {
	marketService *service.MarketService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
	}
}

// Catalog lists tradable instruments, optionally filtered by ?type=
func (h *MarketHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	assetType := r.URL.Query().Get("type")
	if assetType != "" && !model.AssetType(assetType).Valid() {
		respondError(w, http.StatusBadRequest, "invalid type filter", assetType)
		return
	}
	respondJSON(w, http.StatusOK, h.marketService.Catalog(assetType))
}

// QuoteResponse pairs a catalog entry with its resolved price
type QuoteResponse struct {
	Symbol string                `json:"symbol"`
	Name   string                `json:"name"`
	Type   model.AssetType       `json:"type"`
	Price  float64               `json:"price"`
	Source valuation.QuoteSource `json:"source"`
}

// Quote resolves the freshest price for a catalog symbol
func (h *MarketHandler) Quote(w http.ResponseWriter, r *http.Request) {
	entry, q, err := h.marketService.Quote(r.Context(), chi.URLParam(r, "symbol"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, QuoteResponse{
		Symbol: entry.Symbol,
		Name:   entry.Name,
		Type:   entry.Type,
		Price:  q.Price,
		Source: q.Source,
	})
}

// History returns a daily price series for ?period=1W|1M|1Y
func (h *MarketHandler) History(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "1M"
	}
	series, err := h.marketService.History(r.Context(), chi.URLParam(r, "symbol"), period)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, series)
}
