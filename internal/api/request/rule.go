package request

// CreateRuleRequest represents the request body for creating a monitoring rule
type CreateRuleRequest struct {
	Name              string  `json:"name"`
	Type              string  `json:"type"`
	Severity          string  `json:"severity"`
	Description       string  `json:"description"`
	ThresholdAmount   float64 `json:"thresholdAmount"`
	ThresholdCurrency string  `json:"thresholdCurrency"`
	MaxTransactions   int     `json:"maxTransactions"`
	TimeWindowMinutes int     `json:"timeWindowMinutes"`
}

type UpdateRuleRequest struct {
	Name              *string  `json:"name,omitempty"`
	Severity          *string  `json:"severity,omitempty"`
	Active            *bool    `json:"active,omitempty"`
	Description       *string  `json:"description,omitempty"`
	ThresholdAmount   *float64 `json:"thresholdAmount,omitempty"`
	ThresholdCurrency *string  `json:"thresholdCurrency,omitempty"`
	MaxTransactions   *int     `json:"maxTransactions,omitempty"`
	TimeWindowMinutes *int     `json:"timeWindowMinutes,omitempty"`
}

// AlertStatusRequest represents a triage transition for an alert
type AlertStatusRequest struct {
	Status string `json:"status"`
}
