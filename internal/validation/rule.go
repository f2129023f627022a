package validation

import (
	"strings"

	"github.com/moneymap/moneymap-backend/internal/api/request"
	"github.com/moneymap/moneymap-backend/internal/model"
)

func ValidateCreateRule(req request.CreateRuleRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	ruleType := model.RuleType(req.Type)
	if !ruleType.Valid() {
		errors["type"] = "type must be one of AMOUNT_THRESHOLD, VELOCITY, NEW_PAYEE, DAILY_LIMIT"
	}
	if !model.AlertSeverity(req.Severity).Valid() {
		errors["severity"] = "severity must be one of HIGH, MEDIUM, LOW"
	}

	switch ruleType {
	case model.RuleAmountThreshold, model.RuleDailyLimit:
		if req.ThresholdAmount <= 0 {
			errors["thresholdAmount"] = "thresholdAmount must be positive"
		}
	case model.RuleVelocity:
		if req.MaxTransactions <= 0 {
			errors["maxTransactions"] = "maxTransactions must be positive"
		}
		if req.TimeWindowMinutes <= 0 {
			errors["timeWindowMinutes"] = "timeWindowMinutes must be positive"
		}
	}

	if req.ThresholdCurrency != "" && len(req.ThresholdCurrency) != 3 {
		errors["thresholdCurrency"] = "thresholdCurrency must be a 3-letter ISO code"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateRule(req request.UpdateRuleRequest) error {
	errors := make(map[string]string)

	// Only validate provided fields
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}
	if req.Severity != nil && !model.AlertSeverity(*req.Severity).Valid() {
		errors["severity"] = "severity must be one of HIGH, MEDIUM, LOW"
	}
	if req.ThresholdAmount != nil && *req.ThresholdAmount <= 0 {
		errors["thresholdAmount"] = "thresholdAmount must be positive"
	}
	if req.MaxTransactions != nil && *req.MaxTransactions <= 0 {
		errors["maxTransactions"] = "maxTransactions must be positive"
	}
	if req.TimeWindowMinutes != nil && *req.TimeWindowMinutes <= 0 {
		errors["timeWindowMinutes"] = "timeWindowMinutes must be positive"
	}
	if req.ThresholdCurrency != nil && *req.ThresholdCurrency != "" && len(*req.ThresholdCurrency) != 3 {
		errors["thresholdCurrency"] = "thresholdCurrency must be a 3-letter ISO code"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateAlertStatus(req request.AlertStatusRequest) error {
	if !model.AlertStatus(req.Status).Valid() {
		return &Error{Fields: map[string]string{
			"status": "status must be one of OPEN, ACKNOWLEDGED, INVESTIGATING, CLOSED, DISMISSED",
		}}
	}
	return nil
}
