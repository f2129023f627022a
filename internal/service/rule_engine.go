package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/repository"
)

// RuleEngine evaluates active monitoring rules against payments and raises
// alerts for matches. Evaluation is advisory; a firing rule never blocks the
// payment itself.
type RuleEngine struct {
	ruleRepo    *repository.RuleRepository
	paymentRepo *repository.PaymentRepository
	alertRepo   *repository.AlertRepository
}

// NewRuleEngine creates a new RuleEngine with the provided repository dependencies.
func NewRuleEngine(
	ruleRepo *repository.RuleRepository,
	paymentRepo *repository.PaymentRepository,
	alertRepo *repository.AlertRepository,
) *RuleEngine {
	return &RuleEngine{
		ruleRepo:    ruleRepo,
		paymentRepo: paymentRepo,
		alertRepo:   alertRepo,
	}
}

// EvaluatePayment runs every active rule against the payment and persists an
// alert per firing rule. Returns the alerts raised. A failing evaluator is
// logged and skipped so one broken rule cannot suppress the others.
func (e *RuleEngine) EvaluatePayment(p model.Payment) ([]model.Alert, error) {
	rules, err := e.ruleRepo.GetActiveRules()
	if err != nil {
		return nil, fmt.Errorf("failed to load active rules: %w", err)
	}

	raised := []model.Alert{}
	for _, rule := range rules {
		fired, message, err := e.evaluate(rule, p)
		if err != nil {
			log.Printf("rule %s (%s) evaluation failed for payment %s: %v", rule.Name, rule.Type, p.ID, err)
			continue
		}
		if !fired {
			continue
		}

		alert := model.Alert{
			ID:        uuid.New().String(),
			RuleID:    rule.ID,
			PaymentID: p.ID,
			AccountID: p.SourceAccount,
			Severity:  rule.Severity,
			Status:    model.AlertOpen,
			Message:   message,
		}
		if err := e.alertRepo.CreateAlert(alert); err != nil {
			return raised, fmt.Errorf("failed to persist alert for rule %s: %w", rule.Name, err)
		}
		raised = append(raised, alert)
	}

	return raised, nil
}

func (e *RuleEngine) evaluate(rule model.MonitoringRule, p model.Payment) (bool, string, error) {
	switch rule.Type {
	case model.RuleAmountThreshold:
		return e.evaluateAmountThreshold(rule, p)
	case model.RuleVelocity:
		return e.evaluateVelocity(rule, p)
	case model.RuleNewPayee:
		return e.evaluateNewPayee(rule, p)
	case model.RuleDailyLimit:
		return e.evaluateDailyLimit(rule, p)
	default:
		return false, "", fmt.Errorf("unknown rule type %q", rule.Type)
	}
}

// evaluateAmountThreshold fires when a single payment meets or exceeds the
// configured amount. A currency on the rule restricts it to that currency.
func (e *RuleEngine) evaluateAmountThreshold(rule model.MonitoringRule, p model.Payment) (bool, string, error) {
	if rule.ThresholdCurrency != "" && rule.ThresholdCurrency != p.Currency {
		return false, "", nil
	}
	if p.Amount < rule.ThresholdAmount {
		return false, "", nil
	}
	msg := fmt.Sprintf("payment %s of %.2f %s meets or exceeds threshold %.2f",
		p.PaymentReference, p.Amount, p.Currency, rule.ThresholdAmount)
	return true, msg, nil
}

// evaluateVelocity fires when the source account has made at least
// MaxTransactions payments within the trailing time window, counting this one.
func (e *RuleEngine) evaluateVelocity(rule model.MonitoringRule, p model.Payment) (bool, string, error) {
	window := time.Duration(rule.TimeWindowMinutes) * time.Minute
	since := time.Now().Add(-window)
	count, err := e.paymentRepo.CountRecentBySourceAccount(p.SourceAccount, since)
	if err != nil {
		return false, "", err
	}
	if count < rule.MaxTransactions {
		return false, "", nil
	}
	msg := fmt.Sprintf("account %s made %d payments in the last %d minutes (limit %d)",
		p.SourceAccount, count, rule.TimeWindowMinutes, rule.MaxTransactions)
	return true, msg, nil
}

// evaluateNewPayee fires when the source account has never paid this
// destination before.
func (e *RuleEngine) evaluateNewPayee(rule model.MonitoringRule, p model.Payment) (bool, string, error) {
	seen, err := e.paymentRepo.HasPriorPayee(p.SourceAccount, p.DestinationAccount, p.ID)
	if err != nil {
		return false, "", err
	}
	if seen {
		return false, "", nil
	}
	msg := fmt.Sprintf("account %s paid new payee %s for the first time",
		p.SourceAccount, p.DestinationAccount)
	return true, msg, nil
}

// evaluateDailyLimit fires when the source account's cumulative outflow since
// midnight UTC meets or exceeds the configured amount.
func (e *RuleEngine) evaluateDailyLimit(rule model.MonitoringRule, p model.Payment) (bool, string, error) {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	total, err := e.paymentRepo.SumDailyBySourceAccount(p.SourceAccount, midnight)
	if err != nil {
		return false, "", err
	}
	if total < rule.ThresholdAmount {
		return false, "", nil
	}
	msg := fmt.Sprintf("account %s moved %.2f today, meeting or exceeding daily limit %.2f",
		p.SourceAccount, total, rule.ThresholdAmount)
	return true, msg, nil
}
