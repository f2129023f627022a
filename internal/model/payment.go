package model

import "time"

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentCreated   PaymentStatus = "CREATED"
	PaymentValidated PaymentStatus = "VALIDATED"
	PaymentSent      PaymentStatus = "SENT"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentCreated, PaymentValidated, PaymentSent, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

// Terminal reports whether s allows no further transitions.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentCompleted || s == PaymentFailed
}

// CanTransitionTo enforces the payment state machine:
// CREATED → VALIDATED → SENT → COMPLETED, with FAILED reachable from any
// non-terminal state. COMPLETED and FAILED are terminal.
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	if target == PaymentFailed {
		return !s.Terminal()
	}
	switch s {
	case PaymentCreated:
		return target == PaymentValidated
	case PaymentValidated:
		return target == PaymentSent
	case PaymentSent:
		return target == PaymentCompleted
	default:
		return false
	}
}

// Payment is a money transfer between two accounts, monitored by the rule
// engine on creation.
type Payment struct {
	ID                 string        `json:"id"`
	PaymentReference   string        `json:"paymentReference"`
	IdempotencyKey     string        `json:"idempotencyKey,omitempty"`
	SourceAccount      string        `json:"sourceAccount"`
	DestinationAccount string        `json:"destinationAccount"`
	Amount             float64       `json:"amount"`
	Currency           string        `json:"currency"`
	Status             PaymentStatus `json:"status"`
	Description        string        `json:"description,omitempty"`
	ErrorMessage       string        `json:"errorMessage,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// PaymentStatusChange is one entry in a payment's status history.
type PaymentStatusChange struct {
	ID         string        `json:"id"`
	PaymentID  string        `json:"paymentId"`
	FromStatus PaymentStatus `json:"fromStatus"`
	ToStatus   PaymentStatus `json:"toStatus"`
	Reason     string        `json:"reason,omitempty"`
	ChangedAt  time.Time     `json:"changedAt"`
}

// PaymentFilter for querying payments.
type PaymentFilter struct {
	Status        PaymentStatus
	SourceAccount string
}
