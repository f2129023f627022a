package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/repository"
)

// RuleService handles monitoring rule configuration.
type RuleService struct {
	ruleRepo *repository.RuleRepository
}

// NewRuleService creates a new RuleService with the provided repository dependencies.
func NewRuleService(ruleRepo *repository.RuleRepository) *RuleService {
	return &RuleService{ruleRepo: ruleRepo}
}

// validateRuleParameters checks that the parameter fields required by the
// rule type are present.
func validateRuleParameters(r model.MonitoringRule) error {
	switch r.Type {
	case model.RuleAmountThreshold, model.RuleDailyLimit:
		if r.ThresholdAmount <= 0 {
			return fmt.Errorf("%w: thresholdAmount", apperrors.ErrMissingRequiredField)
		}
	case model.RuleVelocity:
		if r.MaxTransactions <= 0 {
			return fmt.Errorf("%w: maxTransactions", apperrors.ErrMissingRequiredField)
		}
		if r.TimeWindowMinutes <= 0 {
			return fmt.Errorf("%w: timeWindowMinutes", apperrors.ErrMissingRequiredField)
		}
	case model.RuleNewPayee:
		// No parameters.
	default:
		return fmt.Errorf("%w: rule type %q", apperrors.ErrMissingRequiredField, r.Type)
	}
	if !r.Severity.Valid() {
		return fmt.Errorf("%w: severity", apperrors.ErrMissingRequiredField)
	}
	return nil
}

// GetRules retrieves all monitoring rules.
func (s *RuleService) GetRules() ([]model.MonitoringRule, error) {
	return s.ruleRepo.GetRules()
}

// GetRule retrieves a single rule by ID.
func (s *RuleService) GetRule(ruleID string) (model.MonitoringRule, error) {
	return s.ruleRepo.GetRuleOnID(ruleID)
}

// CreateRule registers a new monitoring rule, active by default.
func (s *RuleService) CreateRule(r model.MonitoringRule) (model.MonitoringRule, error) {
	if err := validateRuleParameters(r); err != nil {
		return model.MonitoringRule{}, err
	}
	r.ID = uuid.New().String()
	r.Active = true
	if err := s.ruleRepo.CreateRule(r); err != nil {
		return model.MonitoringRule{}, fmt.Errorf("failed to create monitoring rule: %w", err)
	}
	return s.ruleRepo.GetRuleOnID(r.ID)
}

// UpdateRule updates a rule's configuration, including toggling Active.
func (s *RuleService) UpdateRule(r model.MonitoringRule) (model.MonitoringRule, error) {
	if err := validateRuleParameters(r); err != nil {
		return model.MonitoringRule{}, err
	}
	if err := s.ruleRepo.UpdateRule(r); err != nil {
		return model.MonitoringRule{}, err
	}
	return s.ruleRepo.GetRuleOnID(r.ID)
}

// DeleteRule removes a monitoring rule. Alerts it raised survive with their
// rule reference cleared.
func (s *RuleService) DeleteRule(ruleID string) error {
	return s.ruleRepo.DeleteRule(ruleID)
}
