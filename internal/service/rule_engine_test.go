package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/testutil"
)

func TestRuleEngine_AmountThreshold(t *testing.T) {
	t.Run("fires at or above the threshold", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestRuleEngine(t, db)

		rule := testutil.NewRule().WithThreshold(1000, "EUR").Build(t, db)
		payment := testutil.NewPayment().WithAmount(1000, "EUR").Build(t, db)

		alerts, err := engine.EvaluatePayment(payment)
		if err != nil {
			t.Fatalf("EvaluatePayment failed: %v", err)
		}
		if len(alerts) != 1 {
			t.Fatalf("Expected 1 alert, got %d", len(alerts))
		}
		if alerts[0].RuleID != rule.ID {
			t.Errorf("Expected alert linked to rule %s, got %s", rule.ID, alerts[0].RuleID)
		}
		if alerts[0].PaymentID != payment.ID {
			t.Errorf("Expected alert linked to payment %s, got %s", payment.ID, alerts[0].PaymentID)
		}
		if alerts[0].Severity != rule.Severity {
			t.Errorf("Expected severity %s, got %s", rule.Severity, alerts[0].Severity)
		}
	})

	t.Run("stays quiet below the threshold", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestRuleEngine(t, db)

		testutil.NewRule().WithThreshold(1000, "EUR").Build(t, db)
		payment := testutil.NewPayment().WithAmount(999.99, "EUR").Build(t, db)

		alerts, err := engine.EvaluatePayment(payment)
		if err != nil {
			t.Fatalf("EvaluatePayment failed: %v", err)
		}
		if len(alerts) != 0 {
			t.Errorf("Expected no alerts, got %d", len(alerts))
		}
	})

	t.Run("currency-scoped rule ignores other currencies", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestRuleEngine(t, db)

		testutil.NewRule().WithThreshold(1000, "EUR").Build(t, db)
		payment := testutil.NewPayment().WithAmount(5000, "USD").Build(t, db)

		alerts, err := engine.EvaluatePayment(payment)
		if err != nil {
			t.Fatalf("EvaluatePayment failed: %v", err)
		}
		if len(alerts) != 0 {
			t.Errorf("Expected no alerts for mismatched currency, got %d", len(alerts))
		}
	})

	t.Run("inactive rules never evaluate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestRuleEngine(t, db)

		testutil.NewRule().WithThreshold(1000, "EUR").Inactive().Build(t, db)
		payment := testutil.NewPayment().WithAmount(5000, "EUR").Build(t, db)

		alerts, err := engine.EvaluatePayment(payment)
		if err != nil {
			t.Fatalf("EvaluatePayment failed: %v", err)
		}
		if len(alerts) != 0 {
			t.Errorf("Expected inactive rule to stay quiet, got %d alerts", len(alerts))
		}
	})
}

func TestRuleEngine_Velocity(t *testing.T) {
	t.Run("fires when the window fills up", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestRuleEngine(t, db)

		testutil.NewRule().
			WithType(model.RuleVelocity).
			WithVelocity(3, 60).
			Build(t, db)

		now := time.Now().UTC()
		testutil.NewPayment().WithAccounts("ACC-1001", "ACC-2001").WithCreatedAt(now.Add(-10 * time.Minute)).Build(t, db)
		testutil.NewPayment().WithAccounts("ACC-1001", "ACC-2002").WithCreatedAt(now.Add(-5 * time.Minute)).Build(t, db)
		payment := testutil.NewPayment().WithAccounts("ACC-1001", "ACC-2003").WithCreatedAt(now).Build(t, db)

		alerts, err := engine.EvaluatePayment(payment)
		if err != nil {
			t.Fatalf("EvaluatePayment failed: %v", err)
		}
		if len(alerts) != 1 {
			t.Fatalf("Expected velocity alert at 3 payments in window, got %d", len(alerts))
		}
		if !strings.Contains(alerts[0].Message, "ACC-1001") {
			t.Errorf("Expected message to name the account, got %q", alerts[0].Message)
		}
	})

	t.Run("payments outside the window do not count", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestRuleEngine(t, db)

		testutil.NewRule().
			WithType(model.RuleVelocity).
			WithVelocity(3, 60).
			Build(t, db)

		now := time.Now().UTC()
		testutil.NewPayment().WithAccounts("ACC-1001", "ACC-2001").WithCreatedAt(now.Add(-3 * time.Hour)).Build(t, db)
		testutil.NewPayment().WithAccounts("ACC-1001", "ACC-2002").WithCreatedAt(now.Add(-2 * time.Hour)).Build(t, db)
		payment := testutil.NewPayment().WithAccounts("ACC-1001", "ACC-2003").WithCreatedAt(now).Build(t, db)

		alerts, err := engine.EvaluatePayment(payment)
		if err != nil {
			t.Fatalf("EvaluatePayment failed: %v", err)
		}
		if len(alerts) != 0 {
			t.Errorf("Expected no velocity alert, got %d", len(alerts))
		}
	})

	t.Run("other accounts do not count", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestRuleEngine(t, db)

		testutil.NewRule().
			WithType(model.RuleVelocity).
			WithVelocity(2, 60).
			Build(t, db)

		now := time.Now().UTC()
		testutil.NewPayment().WithAccounts("ACC-9999", "ACC-2001").WithCreatedAt(now.Add(-5 * time.Minute)).Build(t, db)
		payment := testutil.NewPayment().WithAccounts("ACC-1001", "ACC-2001").WithCreatedAt(now).Build(t, db)

		alerts, err := engine.EvaluatePayment(payment)
		if err != nil {
			t.Fatalf("EvaluatePayment failed: %v", err)
		}
		if len(alerts) != 0 {
			t.Errorf("Expected no velocity alert across accounts, got %d", len(alerts))
		}
	})
}

func TestRuleEngine_NewPayee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := testutil.NewTestRuleEngine(t, db)

	testutil.NewRule().
		WithType(model.RuleNewPayee).
		WithSeverity(model.SeverityMedium).
		Build(t, db)

	t.Run("fires on a first-time payee", func(t *testing.T) {
		payment := testutil.NewPayment().WithAccounts("ACC-1001", "ACC-5001").Build(t, db)

		alerts, err := engine.EvaluatePayment(payment)
		if err != nil {
			t.Fatalf("EvaluatePayment failed: %v", err)
		}
		if len(alerts) != 1 {
			t.Fatalf("Expected new-payee alert, got %d", len(alerts))
		}
	})

	t.Run("stays quiet on a known payee", func(t *testing.T) {
		payment := testutil.NewPayment().WithAccounts("ACC-1001", "ACC-5001").Build(t, db)

		alerts, err := engine.EvaluatePayment(payment)
		if err != nil {
			t.Fatalf("EvaluatePayment failed: %v", err)
		}
		if len(alerts) != 0 {
			t.Errorf("Expected no alert on repeat payee, got %d", len(alerts))
		}
	})
}

func TestRuleEngine_DailyLimit(t *testing.T) {
	t.Run("fires when cumulative outflow reaches the limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestRuleEngine(t, db)

		testutil.NewRule().
			WithType(model.RuleDailyLimit).
			WithThreshold(1000, "").
			Build(t, db)

		now := time.Now().UTC()
		testutil.NewPayment().WithAccounts("ACC-1001", "ACC-2001").WithAmount(600, "EUR").WithCreatedAt(now).Build(t, db)
		payment := testutil.NewPayment().WithAccounts("ACC-1001", "ACC-2002").WithAmount(400, "EUR").WithCreatedAt(now).Build(t, db)

		alerts, err := engine.EvaluatePayment(payment)
		if err != nil {
			t.Fatalf("EvaluatePayment failed: %v", err)
		}
		if len(alerts) != 1 {
			t.Fatalf("Expected daily-limit alert at 1000 total, got %d", len(alerts))
		}
	})

	t.Run("stays quiet below the limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		engine := testutil.NewTestRuleEngine(t, db)

		testutil.NewRule().
			WithType(model.RuleDailyLimit).
			WithThreshold(1000, "").
			Build(t, db)

		payment := testutil.NewPayment().WithAmount(999, "EUR").WithCreatedAt(time.Now().UTC()).Build(t, db)

		alerts, err := engine.EvaluatePayment(payment)
		if err != nil {
			t.Fatalf("EvaluatePayment failed: %v", err)
		}
		if len(alerts) != 0 {
			t.Errorf("Expected no alert below daily limit, got %d", len(alerts))
		}
	})
}

func TestRuleEngine_MultipleRules(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := testutil.NewTestRuleEngine(t, db)

	testutil.NewRule().WithThreshold(100, "EUR").Build(t, db)
	testutil.NewRule().WithType(model.RuleNewPayee).WithSeverity(model.SeverityLow).Build(t, db)

	payment := testutil.NewPayment().WithAmount(500, "EUR").Build(t, db)

	alerts, err := engine.EvaluatePayment(payment)
	if err != nil {
		t.Fatalf("EvaluatePayment failed: %v", err)
	}
	if len(alerts) != 2 {
		t.Errorf("Expected one alert per firing rule, got %d", len(alerts))
	}
}
