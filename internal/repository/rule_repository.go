package repository

import (
	"database/sql"
	"fmt"

	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/model"
)

// RuleRepository provides data access methods for the monitoring_rule table.
type RuleRepository struct {
	db *sql.DB
}

// NewRuleRepository creates a new RuleRepository with the provided database connection.
func NewRuleRepository(db *sql.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

const ruleColumns = `id, name, rule_type, severity, active, description, threshold_amount,
	threshold_currency, max_transactions, time_window_minutes, created_at, updated_at`

func scanRule(row interface{ Scan(...any) error }) (model.MonitoringRule, error) {
	var r model.MonitoringRule
	var description, thresholdCurrency sql.NullString
	var thresholdAmount sql.NullFloat64
	var maxTransactions, timeWindow sql.NullInt64
	err := row.Scan(
		&r.ID,
		&r.Name,
		&r.Type,
		&r.Severity,
		&r.Active,
		&description,
		&thresholdAmount,
		&thresholdCurrency,
		&maxTransactions,
		&timeWindow,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	r.Description = description.String
	r.ThresholdAmount = thresholdAmount.Float64
	r.ThresholdCurrency = thresholdCurrency.String
	r.MaxTransactions = int(maxTransactions.Int64)
	r.TimeWindowMinutes = int(timeWindow.Int64)
	return r, err
}

// CreateRule inserts a new monitoring rule.
func (r *RuleRepository) CreateRule(rule model.MonitoringRule) error {
	query := `
		INSERT INTO monitoring_rule (id, name, rule_type, severity, active, description,
			threshold_amount, threshold_currency, max_transactions, time_window_minutes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		rule.ID, rule.Name, rule.Type, rule.Severity, rule.Active, rule.Description,
		rule.ThresholdAmount, rule.ThresholdCurrency, rule.MaxTransactions, rule.TimeWindowMinutes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert monitoring rule: %w", err)
	}
	return nil
}

// GetRuleOnID retrieves a single rule by ID.
func (r *RuleRepository) GetRuleOnID(ruleID string) (model.MonitoringRule, error) {
	rule, err := scanRule(r.db.QueryRow(
		`SELECT `+ruleColumns+` FROM monitoring_rule WHERE id = ?`, ruleID,
	))
	if err == sql.ErrNoRows {
		return model.MonitoringRule{}, apperrors.ErrRuleNotFound
	}
	if err != nil {
		return model.MonitoringRule{}, fmt.Errorf("failed to query monitoring rule: %w", err)
	}
	return rule, nil
}

// GetRules retrieves all monitoring rules.
func (r *RuleRepository) GetRules() ([]model.MonitoringRule, error) {
	return r.collectRules(`SELECT ` + ruleColumns + ` FROM monitoring_rule ORDER BY created_at`)
}

// GetActiveRules retrieves only rules that should be evaluated against new payments.
func (r *RuleRepository) GetActiveRules() ([]model.MonitoringRule, error) {
	return r.collectRules(`SELECT ` + ruleColumns + ` FROM monitoring_rule WHERE active = 1 ORDER BY created_at`)
}

func (r *RuleRepository) collectRules(query string) ([]model.MonitoringRule, error) {
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query monitoring_rule table: %w", err)
	}
	defer rows.Close()

	rules := []model.MonitoringRule{}
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monitoring_rule table results: %w", err)
		}
		rules = append(rules, rule)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monitoring_rule table: %w", err)
	}

	return rules, nil
}

// UpdateRule updates a monitoring rule's configuration.
func (r *RuleRepository) UpdateRule(rule model.MonitoringRule) error {
	query := `
		UPDATE monitoring_rule
		SET name = ?, rule_type = ?, severity = ?, active = ?, description = ?,
			threshold_amount = ?, threshold_currency = ?, max_transactions = ?,
			time_window_minutes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		rule.Name, rule.Type, rule.Severity, rule.Active, rule.Description,
		rule.ThresholdAmount, rule.ThresholdCurrency, rule.MaxTransactions,
		rule.TimeWindowMinutes, rule.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update monitoring rule: %w", err)
	}
	return requireAffected(result, apperrors.ErrRuleNotFound)
}

// DeleteRule removes a monitoring rule.
func (r *RuleRepository) DeleteRule(ruleID string) error {
	result, err := r.db.Exec(`DELETE FROM monitoring_rule WHERE id = ?`, ruleID)
	if err != nil {
		return fmt.Errorf("failed to delete monitoring rule: %w", err)
	}
	return requireAffected(result, apperrors.ErrRuleNotFound)
}
