package model

import "time"

// AlertSeverity orders alerts by urgency. Lower priority number means more
// urgent.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "HIGH"
	SeverityMedium AlertSeverity = "MEDIUM"
	SeverityLow    AlertSeverity = "LOW"
)

// Valid reports whether s is a known severity.
func (s AlertSeverity) Valid() bool {
	return s == SeverityHigh || s == SeverityMedium || s == SeverityLow
}

// Priority returns the numeric rank of the severity, 1 being most urgent.
func (s AlertSeverity) Priority() int {
	switch s {
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	default:
		return 3
	}
}

// AlertStatus is the triage state of an alert.
type AlertStatus string

const (
	AlertOpen          AlertStatus = "OPEN"
	AlertAcknowledged  AlertStatus = "ACKNOWLEDGED"
	AlertInvestigating AlertStatus = "INVESTIGATING"
	AlertClosed        AlertStatus = "CLOSED"
	AlertDismissed     AlertStatus = "DISMISSED"
)

// Valid reports whether s is a known alert status.
func (s AlertStatus) Valid() bool {
	switch s {
	case AlertOpen, AlertAcknowledged, AlertInvestigating, AlertClosed, AlertDismissed:
		return true
	}
	return false
}

// CanTransitionTo enforces the triage state machine: OPEN → ACKNOWLEDGED →
// INVESTIGATING → CLOSED, with DISMISSED reachable from any non-terminal
// state. CLOSED and DISMISSED are terminal.
func (s AlertStatus) CanTransitionTo(target AlertStatus) bool {
	switch s {
	case AlertOpen:
		return target == AlertAcknowledged || target == AlertDismissed
	case AlertAcknowledged:
		return target == AlertInvestigating || target == AlertDismissed
	case AlertInvestigating:
		return target == AlertClosed || target == AlertDismissed
	default:
		return false
	}
}

// Alert is raised by a monitoring rule against a payment, by the price-drop
// job against an asset, or by the low-value job against a portfolio. At most
// one of RuleID/AssetID/PortfolioID is set depending on the origin.
type Alert struct {
	ID          string        `json:"id"`
	RuleID      string        `json:"ruleId,omitempty"`
	AssetID     string        `json:"assetId,omitempty"`
	PaymentID   string        `json:"paymentId,omitempty"`
	PortfolioID string        `json:"portfolioId,omitempty"`
	AccountID   string        `json:"accountId,omitempty"`
	Severity    AlertSeverity `json:"severity"`
	Status      AlertStatus   `json:"status"`
	Message     string        `json:"message"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// AlertFilter for querying alerts.
type AlertFilter struct {
	Status   AlertStatus
	Severity AlertSeverity
}
