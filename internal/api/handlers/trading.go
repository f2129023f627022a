package handlers

import (
	"net/http"
	"time"

	"github.com/moneymap/moneymap-backend/internal/api/request"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/service"
	"github.com/moneymap/moneymap-backend/internal/validation"
)

// TradingHandler handles buy and sell orders
type TradingHandler struct {
	tradingService     *service.TradingService
	transactionService *service.TransactionService
}

// NewTradingHandler creates a new TradingHandler
func NewTradingHandler(
	tradingService *service.TradingService,
	transactionService *service.TransactionService,
) *TradingHandler {
	return &TradingHandler{
		tradingService:     tradingService,
		transactionService: transactionService,
	}
}

// Buy executes a funded buy order
func (h *TradingHandler) Buy(w http.ResponseWriter, r *http.Request) {
	var req request.TradeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateTrade(req); err != nil {
		respondServiceError(w, err)
		return
	}

	result, err := h.tradingService.Buy(r.Context(), req.PortfolioID, req.Symbol, req.Quantity)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// Sell executes a sell order, crediting the wallet
func (h *TradingHandler) Sell(w http.ResponseWriter, r *http.Request) {
	var req request.TradeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateTrade(req); err != nil {
		respondServiceError(w, err)
		return
	}

	result, err := h.tradingService.Sell(r.Context(), req.PortfolioID, req.Symbol, req.Quantity)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// RecordTransaction writes a ledger entry that does not move wallet funds
func (h *TradingHandler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req request.RecordTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateRecordTransaction(req); err != nil {
		respondServiceError(w, err)
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		date, _ = time.Parse("2006-01-02", req.Date)
	}

	tx, err := h.transactionService.RecordTransaction(model.Transaction{
		AssetID:      req.AssetID,
		Type:         model.TransactionType(req.Type),
		Quantity:     req.Quantity,
		PricePerUnit: req.PricePerUnit,
		TotalAmount:  req.TotalAmount,
		Date:         date,
		Notes:        req.Notes,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tx)
}
