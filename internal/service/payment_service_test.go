package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/testutil"
)

func TestPaymentService_CreatePayment(t *testing.T) {
	t.Run("creates payment in CREATED state with reference", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPaymentService(t, db)

		payment, err := svc.CreatePayment(model.Payment{
			SourceAccount:      "ACC-1001",
			DestinationAccount: "ACC-2001",
			Amount:             150,
			Currency:           "EUR",
		})
		if err != nil {
			t.Fatalf("CreatePayment failed: %v", err)
		}

		if payment.Status != model.PaymentCreated {
			t.Errorf("Expected status CREATED, got %s", payment.Status)
		}
		if !strings.HasPrefix(payment.PaymentReference, "PAY-") {
			t.Errorf("Expected PAY- reference, got %q", payment.PaymentReference)
		}
		if len(payment.PaymentReference) != len("PAY-")+12 {
			t.Errorf("Expected 12-character reference suffix, got %q", payment.PaymentReference)
		}
		if payment.PaymentReference != strings.ToUpper(payment.PaymentReference) {
			t.Errorf("Expected uppercase reference, got %q", payment.PaymentReference)
		}
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPaymentService(t, db)

		_, err := svc.CreatePayment(model.Payment{
			SourceAccount:      "ACC-1001",
			DestinationAccount: "ACC-2001",
			Amount:             0,
			Currency:           "EUR",
		})
		if !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("Expected ErrNegativeAmount, got %v", err)
		}
	})

	t.Run("idempotency key returns the existing payment", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPaymentService(t, db)

		first, err := svc.CreatePayment(model.Payment{
			SourceAccount:      "ACC-1001",
			DestinationAccount: "ACC-2001",
			Amount:             150,
			Currency:           "EUR",
			IdempotencyKey:     "retry-abc",
		})
		if err != nil {
			t.Fatalf("CreatePayment failed: %v", err)
		}

		second, err := svc.CreatePayment(model.Payment{
			SourceAccount:      "ACC-1001",
			DestinationAccount: "ACC-2001",
			Amount:             150,
			Currency:           "EUR",
			IdempotencyKey:     "retry-abc",
		})
		if err != nil {
			t.Fatalf("Replayed CreatePayment failed: %v", err)
		}

		if second.ID != first.ID {
			t.Errorf("Expected replay to return payment %s, got %s", first.ID, second.ID)
		}

		payments, err := svc.GetPayments(model.PaymentFilter{})
		if err != nil {
			t.Fatalf("GetPayments failed: %v", err)
		}
		if len(payments) != 1 {
			t.Errorf("Expected 1 payment after replay, got %d", len(payments))
		}
	})

	t.Run("evaluates monitoring rules on creation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPaymentService(t, db)
		alertSvc := testutil.NewTestAlertService(t, db)

		testutil.NewRule().WithThreshold(100, "EUR").Build(t, db)

		if _, err := svc.CreatePayment(model.Payment{
			SourceAccount:      "ACC-1001",
			DestinationAccount: "ACC-2001",
			Amount:             500,
			Currency:           "EUR",
		}); err != nil {
			t.Fatalf("CreatePayment failed: %v", err)
		}

		alerts, err := alertSvc.GetAlerts(model.AlertFilter{})
		if err != nil {
			t.Fatalf("GetAlerts failed: %v", err)
		}
		if len(alerts) != 1 {
			t.Fatalf("Expected 1 alert from threshold rule, got %d", len(alerts))
		}
		if alerts[0].Status != model.AlertOpen {
			t.Errorf("Expected alert status OPEN, got %s", alerts[0].Status)
		}
	})

	t.Run("rule evaluation failure does not block the payment", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPaymentService(t, db)

		// Break rule loading after the payment insert path is in place.
		if _, err := db.Exec(`DROP TABLE monitoring_rule`); err != nil {
			t.Fatalf("Failed to drop monitoring_rule: %v", err)
		}

		created, err := svc.CreatePayment(model.Payment{
			SourceAccount:      "ACC-1001",
			DestinationAccount: "ACC-2001",
			Amount:             500,
			Currency:           "EUR",
		})
		if err != nil {
			t.Fatalf("CreatePayment failed: %v", err)
		}
		if created.Status != model.PaymentCreated {
			t.Errorf("Expected status CREATED, got %s", created.Status)
		}

		stored, err := svc.GetPayment(created.ID)
		if err != nil {
			t.Fatalf("GetPayment failed: %v", err)
		}
		if stored.ID != created.ID {
			t.Errorf("Expected the committed payment to survive, got %+v", stored)
		}
	})
}

func TestPaymentService_TransitionStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPaymentService(t, db)

	create := func(t *testing.T) model.Payment {
		t.Helper()
		p, err := svc.CreatePayment(model.Payment{
			SourceAccount:      "ACC-1001",
			DestinationAccount: "ACC-2001",
			Amount:             150,
			Currency:           "EUR",
		})
		if err != nil {
			t.Fatalf("CreatePayment failed: %v", err)
		}
		return p
	}

	t.Run("walks the happy path to COMPLETED", func(t *testing.T) {
		p := create(t)

		for _, target := range []model.PaymentStatus{
			model.PaymentValidated, model.PaymentSent, model.PaymentCompleted,
		} {
			var err error
			p, err = svc.TransitionStatus(p.ID, target, "")
			if err != nil {
				t.Fatalf("Transition to %s failed: %v", target, err)
			}
			if p.Status != target {
				t.Errorf("Expected status %s, got %s", target, p.Status)
			}
		}

		history, err := svc.GetStatusHistory(p.ID)
		if err != nil {
			t.Fatalf("GetStatusHistory failed: %v", err)
		}
		if len(history) != 3 {
			t.Fatalf("Expected 3 history entries, got %d", len(history))
		}
		if history[0].FromStatus != model.PaymentCreated || history[0].ToStatus != model.PaymentValidated {
			t.Errorf("Unexpected first history entry: %s to %s", history[0].FromStatus, history[0].ToStatus)
		}
	})

	t.Run("rejects skipping a state", func(t *testing.T) {
		p := create(t)

		_, err := svc.TransitionStatus(p.ID, model.PaymentSent, "")
		if !errors.Is(err, apperrors.ErrInvalidStatusTransition) {
			t.Errorf("Expected ErrInvalidStatusTransition, got %v", err)
		}
	})

	t.Run("FAILED is reachable from any non-terminal state and stores the reason", func(t *testing.T) {
		p := create(t)
		if _, err := svc.TransitionStatus(p.ID, model.PaymentValidated, ""); err != nil {
			t.Fatalf("Transition failed: %v", err)
		}

		p, err := svc.TransitionStatus(p.ID, model.PaymentFailed, "downstream timeout")
		if err != nil {
			t.Fatalf("Transition to FAILED failed: %v", err)
		}
		if p.ErrorMessage != "downstream timeout" {
			t.Errorf("Expected error message on payment, got %q", p.ErrorMessage)
		}

		// Terminal: nothing leaves FAILED.
		if _, err := svc.TransitionStatus(p.ID, model.PaymentValidated, ""); !errors.Is(err, apperrors.ErrInvalidStatusTransition) {
			t.Errorf("Expected ErrInvalidStatusTransition from terminal state, got %v", err)
		}
	})

	t.Run("unknown target status is rejected", func(t *testing.T) {
		p := create(t)

		_, err := svc.TransitionStatus(p.ID, "SHIPPED", "")
		if !errors.Is(err, apperrors.ErrInvalidStatusTransition) {
			t.Errorf("Expected ErrInvalidStatusTransition, got %v", err)
		}
	})

	t.Run("unknown payment returns not found", func(t *testing.T) {
		_, err := svc.TransitionStatus(testutil.MakeID(), model.PaymentValidated, "")
		if !errors.Is(err, apperrors.ErrPaymentNotFound) {
			t.Errorf("Expected ErrPaymentNotFound, got %v", err)
		}
	})
}
