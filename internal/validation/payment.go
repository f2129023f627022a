package validation

import (
	"strings"

	"github.com/moneymap/moneymap-backend/internal/api/request"
	"github.com/moneymap/moneymap-backend/internal/model"
)

func ValidateCreatePayment(req request.CreatePaymentRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.SourceAccount) == "" {
		errors["sourceAccount"] = "sourceAccount is required"
	}
	if strings.TrimSpace(req.DestinationAccount) == "" {
		errors["destinationAccount"] = "destinationAccount is required"
	}
	if req.SourceAccount != "" && req.SourceAccount == req.DestinationAccount {
		errors["destinationAccount"] = "destinationAccount must differ from sourceAccount"
	}
	if req.Amount <= 0 {
		errors["amount"] = "amount must be positive"
	}
	if len(req.Currency) != 3 {
		errors["currency"] = "currency must be a 3-letter ISO code"
	}
	if len(req.Description) > 500 {
		errors["description"] = "description must be 500 characters or less"
	}
	if len(req.IdempotencyKey) > 100 {
		errors["idempotencyKey"] = "idempotencyKey must be 100 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidatePaymentStatus(req request.PaymentStatusRequest) error {
	errors := make(map[string]string)

	if !model.PaymentStatus(req.Status).Valid() {
		errors["status"] = "status must be one of CREATED, VALIDATED, SENT, COMPLETED, FAILED"
	}
	if len(req.Reason) > 500 {
		errors["reason"] = "reason must be 500 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
