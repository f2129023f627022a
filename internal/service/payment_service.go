package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/repository"
)

// PaymentService handles the payment lifecycle: creation with idempotency,
// the status machine, and rule evaluation on new payments.
type PaymentService struct {
	paymentRepo *repository.PaymentRepository
	ruleEngine  *RuleEngine
}

// NewPaymentService creates a new PaymentService with the provided dependencies.
func NewPaymentService(
	paymentRepo *repository.PaymentRepository,
	ruleEngine *RuleEngine,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		ruleEngine:  ruleEngine,
	}
}

// newPaymentReference derives a human-readable reference from a fresh UUID.
func newPaymentReference(id string) string {
	return "PAY-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:12])
}

// CreatePayment registers a payment in CREATED state and evaluates the
// monitoring rules against it. When an idempotency key is supplied and a
// payment already carries it, that payment is returned unchanged and no new
// payment or alert is produced.
func (s *PaymentService) CreatePayment(p model.Payment) (model.Payment, error) {
	if p.Amount <= 0 {
		return model.Payment{}, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrNegativeAmount)
	}

	if p.IdempotencyKey != "" {
		existing, err := s.paymentRepo.GetPaymentOnIdempotencyKey(p.IdempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, apperrors.ErrPaymentNotFound) {
			return model.Payment{}, err
		}
	}

	p.ID = uuid.New().String()
	p.PaymentReference = newPaymentReference(p.ID)
	p.Status = model.PaymentCreated
	if err := s.paymentRepo.CreatePayment(p); err != nil {
		return model.Payment{}, fmt.Errorf("failed to create payment: %w", err)
	}

	created, err := s.paymentRepo.GetPaymentOnID(p.ID)
	if err != nil {
		return model.Payment{}, err
	}

	// Rules observe the payment; they never block it. The payment is already
	// committed at this point, so an evaluation failure is logged, not returned.
	if _, err := s.ruleEngine.EvaluatePayment(created); err != nil {
		log.Printf("Rule evaluation failed for payment %s: %v", created.ID, err)
	}

	return created, nil
}

// GetPayment retrieves a single payment by ID.
func (s *PaymentService) GetPayment(paymentID string) (model.Payment, error) {
	return s.paymentRepo.GetPaymentOnID(paymentID)
}

// GetPayments retrieves payments matching the filter, newest first.
func (s *PaymentService) GetPayments(filter model.PaymentFilter) ([]model.Payment, error) {
	return s.paymentRepo.GetPayments(filter)
}

// TransitionStatus advances a payment through its lifecycle. Only the
// transitions CREATED to VALIDATED to SENT to COMPLETED are allowed, plus
// FAILED from any non-terminal state. Each change lands in the status
// history with the given reason; the reason of a FAILED transition is also
// stored as the payment's error message.
func (s *PaymentService) TransitionStatus(paymentID string, target model.PaymentStatus, reason string) (model.Payment, error) {
	if !target.Valid() {
		return model.Payment{}, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidStatusTransition, target)
	}
	p, err := s.paymentRepo.GetPaymentOnID(paymentID)
	if err != nil {
		return model.Payment{}, err
	}
	if !p.Status.CanTransitionTo(target) {
		return model.Payment{}, fmt.Errorf("%w: %s to %s", apperrors.ErrInvalidStatusTransition, p.Status, target)
	}

	change := model.PaymentStatusChange{
		ID:         uuid.New().String(),
		PaymentID:  paymentID,
		FromStatus: p.Status,
		ToStatus:   target,
		Reason:     reason,
	}
	var errorMessage string
	if target == model.PaymentFailed {
		errorMessage = reason
	}
	if err := s.paymentRepo.UpdatePaymentStatus(paymentID, change, errorMessage); err != nil {
		return model.Payment{}, err
	}
	return s.paymentRepo.GetPaymentOnID(paymentID)
}

// GetStatusHistory returns a payment's status changes in order.
func (s *PaymentService) GetStatusHistory(paymentID string) ([]model.PaymentStatusChange, error) {
	if _, err := s.paymentRepo.GetPaymentOnID(paymentID); err != nil {
		return nil, err
	}
	return s.paymentRepo.GetStatusHistory(paymentID)
}
