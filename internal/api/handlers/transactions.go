package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/moneymap/moneymap-backend/internal/service"
)

// TransactionHandler handles transaction ledger HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// Transaction retrieves a single transaction
func (h *TransactionHandler) Transaction(w http.ResponseWriter, r *http.Request) {
	tx, err := h.transactionService.GetTransaction(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tx)
}

// AssetTransactions lists an asset's transactions, newest first
func (h *TransactionHandler) AssetTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.transactionService.GetTransactionsOnAsset(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, txs)
}

// PortfolioTransactions lists all transactions across a portfolio's assets
func (h *TransactionHandler) PortfolioTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.transactionService.GetTransactionsOnPortfolio(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, txs)
}
