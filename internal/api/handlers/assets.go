package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/moneymap/moneymap-backend/internal/api/request"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/service"
	"github.com/moneymap/moneymap-backend/internal/validation"
)

// AssetHandler handles asset-related HTTP requests
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// AssetResponse flattens an asset with its type discriminator for clients
type AssetResponse struct {
	ID            string             `json:"id"`
	PortfolioID   string             `json:"portfolioId"`
	Type          model.AssetType    `json:"type"`
	Symbol        string             `json:"symbol"`
	Name          string             `json:"name"`
	Quantity      float64            `json:"quantity"`
	PurchasePrice float64            `json:"purchasePrice"`
	PurchaseDate  string             `json:"purchaseDate"`
	CurrentPrice  float64            `json:"currentPrice"`
	Notes         string             `json:"notes,omitempty"`
	Details       model.AssetDetails `json:"details"`
}

func toAssetResponse(a model.Asset) AssetResponse {
	return AssetResponse{
		ID:            a.ID,
		PortfolioID:   a.PortfolioID,
		Type:          a.Type(),
		Symbol:        a.Symbol,
		Name:          a.Name,
		Quantity:      a.Quantity,
		PurchasePrice: a.PurchasePrice,
		PurchaseDate:  a.PurchaseDate.Format("2006-01-02"),
		CurrentPrice:  a.CurrentPrice,
		Notes:         a.Notes,
		Details:       a.Details,
	}
}

// Assets lists the assets of a portfolio
func (h *AssetHandler) Assets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.assetService.GetAssets(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response := make([]AssetResponse, len(assets))
	for i, a := range assets {
		response[i] = toAssetResponse(a)
	}
	respondJSON(w, http.StatusOK, response)
}

// Asset retrieves a single asset
func (h *AssetHandler) Asset(w http.ResponseWriter, r *http.Request) {
	asset, err := h.assetService.GetAsset(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toAssetResponse(asset))
}

// CreateAsset registers an existing holding
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAssetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateCreateAsset(req); err != nil {
		respondServiceError(w, err)
		return
	}

	assetType := model.AssetType(req.Type)
	purchaseDate, _ := time.Parse("2006-01-02", req.PurchaseDate)

	asset, err := h.assetService.CreateAsset(model.Asset{
		PortfolioID:   req.PortfolioID,
		Symbol:        req.Symbol,
		Name:          req.Name,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		PurchaseDate:  purchaseDate,
		Notes:         req.Notes,
		Details:       validation.BuildAssetDetails(assetType, req.Details),
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toAssetResponse(asset))
}

// UpdateAsset updates an asset's mutable fields
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateAssetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateUpdateAsset(req); err != nil {
		respondServiceError(w, err)
		return
	}

	asset, err := h.assetService.GetAsset(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.Quantity != nil {
		asset.Quantity = *req.Quantity
	}
	if req.PurchasePrice != nil {
		asset.PurchasePrice = *req.PurchasePrice
	}
	if req.Notes != nil {
		asset.Notes = *req.Notes
	}
	if req.Details != nil {
		asset.Details = validation.BuildAssetDetails(asset.Type(), *req.Details)
	}

	updated, err := h.assetService.UpdateAsset(asset)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toAssetResponse(updated))
}

// DeleteAsset removes an asset
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := h.assetService.DeleteAsset(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// RefreshPrice fetches and stores a fresh quote for the asset
func (h *AssetHandler) RefreshPrice(w http.ResponseWriter, r *http.Request) {
	asset, err := h.assetService.RefreshPrice(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toAssetResponse(asset))
}

// PriceHistory returns stored price points for ?period=1W|1M|1Y
func (h *AssetHandler) PriceHistory(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "1M"
	}
	history, err := h.assetService.GetPriceHistory(chi.URLParam(r, "uuid"), period)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}
