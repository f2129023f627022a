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

// ClientHandler handles client and wallet HTTP requests
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// Clients lists clients. Inactive clients are included with ?includeInactive=true.
func (h *ClientHandler) Clients(w http.ResponseWriter, r *http.Request) {
	filter := model.ClientFilter{
		IncludeInactive: r.URL.Query().Get("includeInactive") == "true",
	}
	clients, err := h.clientService.GetClients(filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, clients)
}

// Client retrieves a single client
func (h *ClientHandler) Client(w http.ResponseWriter, r *http.Request) {
	client, err := h.clientService.GetClient(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

// CreateClient registers a new client
func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req request.CreateClientRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateCreateClient(req); err != nil {
		respondServiceError(w, err)
		return
	}

	client, err := h.clientService.CreateClient(model.Client{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		City:              req.City,
		CountryCode:       req.CountryCode,
		PreferredCurrency: req.PreferredCurrency,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, client)
}

// UpdateClient updates a client's profile
func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateClientRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateUpdateClient(req); err != nil {
		respondServiceError(w, err)
		return
	}

	client, err := h.clientService.GetClient(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	// Apply only provided fields
	if req.FirstName != nil {
		client.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		client.LastName = *req.LastName
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.City != nil {
		client.City = *req.City
	}
	if req.CountryCode != nil {
		client.CountryCode = *req.CountryCode
	}
	if req.PreferredCurrency != nil {
		client.PreferredCurrency = *req.PreferredCurrency
	}
	if req.Active != nil {
		client.Active = *req.Active
	}

	updated, err := h.clientService.UpdateClient(client)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteClient removes a client
func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := h.clientService.DeleteClient(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Deposit adds funds to the client's wallet
func (h *ClientHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req request.WalletRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateWallet(req); err != nil {
		respondServiceError(w, err)
		return
	}

	client, err := h.clientService.Deposit(chi.URLParam(r, "uuid"), req.Amount)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

// Withdraw removes funds from the client's wallet
func (h *ClientHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req request.WalletRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidateWallet(req); err != nil {
		respondServiceError(w, err)
		return
	}

	client, err := h.clientService.Withdraw(chi.URLParam(r, "uuid"), req.Amount)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

// TopClients ranks clients by total holdings value. Limit defaults to 10.
func (h *ClientHandler) TopClients(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid limit", raw)
			return
		}
		limit = n
	}

	summaries, err := h.clientService.TopClients(r.Context(), limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}
