package model

import "time"

// RuleType identifies the monitoring rule families evaluated against
// payments.
type RuleType string

const (
	// RuleAmountThreshold fires when a single payment exceeds a threshold.
	RuleAmountThreshold RuleType = "AMOUNT_THRESHOLD"
	// RuleVelocity fires when too many payments leave one account within a
	// time window.
	RuleVelocity RuleType = "VELOCITY"
	// RuleNewPayee fires when an account pays a previously unseen payee.
	RuleNewPayee RuleType = "NEW_PAYEE"
	// RuleDailyLimit fires when an account's cumulative daily outflow
	// exceeds a limit.
	RuleDailyLimit RuleType = "DAILY_LIMIT"
)

// Valid reports whether t is a known rule type.
func (t RuleType) Valid() bool {
	switch t {
	case RuleAmountThreshold, RuleVelocity, RuleNewPayee, RuleDailyLimit:
		return true
	}
	return false
}

// MonitoringRule configures one rule instance. Which parameter fields apply
// depends on the rule type; unused fields stay zero.
type MonitoringRule struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Type              RuleType      `json:"type"`
	Severity          AlertSeverity `json:"severity"`
	Active            bool          `json:"active"`
	Description       string        `json:"description,omitempty"`
	ThresholdAmount   float64       `json:"thresholdAmount,omitempty"`   // AMOUNT_THRESHOLD, DAILY_LIMIT
	ThresholdCurrency string        `json:"thresholdCurrency,omitempty"` // AMOUNT_THRESHOLD
	MaxTransactions   int           `json:"maxTransactions,omitempty"`   // VELOCITY
	TimeWindowMinutes int           `json:"timeWindowMinutes,omitempty"` // VELOCITY
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}
