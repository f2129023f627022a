package repository

import (
	"database/sql"
	"fmt"

	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/model"
)

// AlertRepository provides data access methods for the alert table.
type AlertRepository struct {
	db *sql.DB
}

// NewAlertRepository creates a new AlertRepository with the provided database connection.
func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

const alertColumns = `id, rule_id, asset_id, payment_id, portfolio_id, account_id, severity, status, message, created_at, updated_at`

func scanAlert(row interface{ Scan(...any) error }) (model.Alert, error) {
	var a model.Alert
	var ruleID, assetID, paymentID, portfolioID, accountID sql.NullString
	err := row.Scan(
		&a.ID,
		&ruleID,
		&assetID,
		&paymentID,
		&portfolioID,
		&accountID,
		&a.Severity,
		&a.Status,
		&a.Message,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	a.RuleID = ruleID.String
	a.AssetID = assetID.String
	a.PaymentID = paymentID.String
	a.PortfolioID = portfolioID.String
	a.AccountID = accountID.String
	return a, err
}

// nullable converts empty strings to NULL for optional foreign keys.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// CreateAlert inserts a new alert.
func (r *AlertRepository) CreateAlert(a model.Alert) error {
	query := `
		INSERT INTO alert (id, rule_id, asset_id, payment_id, portfolio_id, account_id, severity, status, message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		a.ID, nullable(a.RuleID), nullable(a.AssetID), nullable(a.PaymentID),
		nullable(a.PortfolioID), nullable(a.AccountID), a.Severity, a.Status, a.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	return nil
}

// GetAlertOnID retrieves a single alert by ID.
func (r *AlertRepository) GetAlertOnID(alertID string) (model.Alert, error) {
	a, err := scanAlert(r.db.QueryRow(
		`SELECT `+alertColumns+` FROM alert WHERE id = ?`, alertID,
	))
	if err == sql.ErrNoRows {
		return model.Alert{}, apperrors.ErrAlertNotFound
	}
	if err != nil {
		return model.Alert{}, fmt.Errorf("failed to query alert: %w", err)
	}
	return a, nil
}

// GetAlerts retrieves alerts matching the filter, newest first.
func (r *AlertRepository) GetAlerts(filter model.AlertFilter) ([]model.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alert WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Severity != "" {
		query += " AND severity = ?"
		args = append(args, filter.Severity)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query alert table: %w", err)
	}
	defer rows.Close()

	alerts := []model.Alert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert table results: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alert table: %w", err)
	}

	return alerts, nil
}

// HasOpenAlertForPortfolio reports whether the portfolio already has an alert
// that has not been closed or dismissed.
func (r *AlertRepository) HasOpenAlertForPortfolio(portfolioID string) (bool, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM alert WHERE portfolio_id = ? AND status NOT IN ('CLOSED', 'DISMISSED')`,
		portfolioID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count portfolio alerts: %w", err)
	}
	return count > 0, nil
}

// UpdateAlertStatus persists a triage status change.
func (r *AlertRepository) UpdateAlertStatus(alertID string, status model.AlertStatus) error {
	result, err := r.db.Exec(
		`UPDATE alert SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, alertID,
	)
	if err != nil {
		return fmt.Errorf("failed to update alert status: %w", err)
	}
	return requireAffected(result, apperrors.ErrAlertNotFound)
}
