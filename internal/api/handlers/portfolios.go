package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/moneymap/moneymap-backend/internal/api/request"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/service"
	"github.com/moneymap/moneymap-backend/internal/validation"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Portfolios lists portfolios, optionally scoped to ?clientId=
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("clientId")
	if clientID != "" {
		if err := validation.ValidateUUID(clientID); err != nil {
			respondError(w, http.StatusBadRequest, "invalid clientId", err.Error())
			return
		}
	}

	portfolios, err := h.portfolioService.GetPortfolios(clientID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, portfolios)
}

// Portfolio retrieves a single portfolio
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.portfolioService.GetPortfolio(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, portfolio)
}

// CreatePortfolio creates a portfolio for a client
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePortfolioRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateCreatePortfolio(req); err != nil {
		respondServiceError(w, err)
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(model.Portfolio{
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, portfolio)
}

// UpdatePortfolio updates a portfolio's name and description
func (h *PortfolioHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePortfolioRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateUpdatePortfolio(req); err != nil {
		respondServiceError(w, err)
		return
	}

	portfolio, err := h.portfolioService.GetPortfolio(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if req.Name != nil {
		portfolio.Name = *req.Name
	}
	if req.Description != nil {
		portfolio.Description = *req.Description
	}

	updated, err := h.portfolioService.UpdatePortfolio(portfolio)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeletePortfolio removes a portfolio and its assets
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	if err := h.portfolioService.DeletePortfolio(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Summary values every asset in the portfolio and returns the totals
func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolioService.GetSummary(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// TopAssets ranks the portfolio's assets by current value. Limit defaults to 5.
func (h *PortfolioHandler) TopAssets(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid limit", raw)
			return
		}
		limit = n
	}

	assets, err := h.portfolioService.TopAssets(r.Context(), chi.URLParam(r, "uuid"), limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, assets)
}

// Distribution aggregates a client's holdings into per-type buckets
func (h *PortfolioHandler) Distribution(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.portfolioService.GetDistribution(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, buckets)
}
