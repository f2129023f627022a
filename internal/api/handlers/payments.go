package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/moneymap/moneymap-backend/internal/api/request"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/service"
	"github.com/moneymap/moneymap-backend/internal/validation"
)

// PaymentHandler handles payment lifecycle HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Payments lists payments, optionally filtered by ?status= and ?sourceAccount=
func (h *PaymentHandler) Payments(w http.ResponseWriter, r *http.Request) {
	filter := model.PaymentFilter{
		Status:        model.PaymentStatus(r.URL.Query().Get("status")),
		SourceAccount: r.URL.Query().Get("sourceAccount"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		respondError(w, http.StatusBadRequest, "invalid status filter", string(filter.Status))
		return
	}

	payments, err := h.paymentService.GetPayments(filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

// Payment retrieves a single payment
func (h *PaymentHandler) Payment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.paymentService.GetPayment(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

// CreatePayment registers a payment and evaluates the monitoring rules.
// The Idempotency-Key header takes precedence over the body field.
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		req.IdempotencyKey = key
	}
	if err := validation.ValidateCreatePayment(req); err != nil {
		respondServiceError(w, err)
		return
	}

	payment, err := h.paymentService.CreatePayment(model.Payment{
		SourceAccount:      req.SourceAccount,
		DestinationAccount: req.DestinationAccount,
		Amount:             req.Amount,
		Currency:           req.Currency,
		Description:        req.Description,
		IdempotencyKey:     req.IdempotencyKey,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, payment)
}

// UpdateStatus advances a payment through its lifecycle
func (h *PaymentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.ValidatePaymentStatus(req); err != nil {
		respondServiceError(w, err)
		return
	}

	payment, err := h.paymentService.TransitionStatus(
		chi.URLParam(r, "uuid"), model.PaymentStatus(req.Status), req.Reason)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

// StatusHistory returns a payment's status changes in order
func (h *PaymentHandler) StatusHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.paymentService.GetStatusHistory(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}
