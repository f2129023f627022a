package request

// CreatePaymentRequest represents the request body for creating a payment.
// IdempotencyKey is optional; re-sending the same key returns the original
// payment instead of creating a duplicate.
type CreatePaymentRequest struct {
	SourceAccount      string  `json:"sourceAccount"`
	DestinationAccount string  `json:"destinationAccount"`
	Amount             float64 `json:"amount"`
	Currency           string  `json:"currency"`
	Description        string  `json:"description"`
	IdempotencyKey     string  `json:"idempotencyKey"`
}

// PaymentStatusRequest represents a lifecycle transition for a payment
type PaymentStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}
