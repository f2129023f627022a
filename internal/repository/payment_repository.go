package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/model"
)

// PaymentRepository provides data access methods for the payment and
// payment_status_history tables.
type PaymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new PaymentRepository with the provided database connection.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, payment_reference, idempotency_key, source_account,
	destination_account, amount, currency, status, description, error_message,
	created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (model.Payment, error) {
	var p model.Payment
	var idempotencyKey, description, errorMessage sql.NullString
	err := row.Scan(
		&p.ID,
		&p.PaymentReference,
		&idempotencyKey,
		&p.SourceAccount,
		&p.DestinationAccount,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&description,
		&errorMessage,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	p.IdempotencyKey = idempotencyKey.String
	p.Description = description.String
	p.ErrorMessage = errorMessage.String
	return p, err
}

// CreatePayment inserts a new payment.
func (r *PaymentRepository) CreatePayment(p model.Payment) error {
	query := `
		INSERT INTO payment (id, payment_reference, idempotency_key, source_account,
			destination_account, amount, currency, status, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	var idempotencyKey any
	if p.IdempotencyKey != "" {
		idempotencyKey = p.IdempotencyKey
	}
	_, err := r.db.Exec(query,
		p.ID, p.PaymentReference, idempotencyKey, p.SourceAccount,
		p.DestinationAccount, p.Amount, p.Currency, p.Status, p.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// GetPaymentOnID retrieves a single payment by ID.
func (r *PaymentRepository) GetPaymentOnID(paymentID string) (model.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(
		`SELECT `+paymentColumns+` FROM payment WHERE id = ?`, paymentID,
	))
	if err == sql.ErrNoRows {
		return model.Payment{}, apperrors.ErrPaymentNotFound
	}
	if err != nil {
		return model.Payment{}, fmt.Errorf("failed to query payment: %w", err)
	}
	return p, nil
}

// GetPaymentOnIdempotencyKey retrieves the payment previously created with
// the given key, if any.
func (r *PaymentRepository) GetPaymentOnIdempotencyKey(key string) (model.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(
		`SELECT `+paymentColumns+` FROM payment WHERE idempotency_key = ?`, key,
	))
	if err == sql.ErrNoRows {
		return model.Payment{}, apperrors.ErrPaymentNotFound
	}
	if err != nil {
		return model.Payment{}, fmt.Errorf("failed to query payment: %w", err)
	}
	return p, nil
}

// GetPayments retrieves payments matching the filter, newest first.
func (r *PaymentRepository) GetPayments(filter model.PaymentFilter) ([]model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.SourceAccount != "" {
		query += " AND source_account = ?"
		args = append(args, filter.SourceAccount)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment table: %w", err)
	}
	defer rows.Close()

	payments := []model.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment table results: %w", err)
		}
		payments = append(payments, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment table: %w", err)
	}

	return payments, nil
}

// UpdatePaymentStatus persists a status change and its history entry in one
// database transaction.
func (r *PaymentRepository) UpdatePaymentStatus(paymentID string, change model.PaymentStatusChange, errorMessage string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE payment SET status = ?, error_message = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		change.ToStatus, errorMessage, paymentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if err := requireAffected(result, apperrors.ErrPaymentNotFound); err != nil {
		return err
	}

	_, err = tx.Exec(
		`INSERT INTO payment_status_history (id, payment_id, from_status, to_status, reason)
		 VALUES (?, ?, ?, ?, ?)`,
		change.ID, paymentID, change.FromStatus, change.ToStatus, change.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment status history: %w", err)
	}

	return tx.Commit()
}

// GetStatusHistory retrieves a payment's status changes, oldest first.
func (r *PaymentRepository) GetStatusHistory(paymentID string) ([]model.PaymentStatusChange, error) {
	rows, err := r.db.Query(
		`SELECT id, payment_id, from_status, to_status, reason, changed_at
		 FROM payment_status_history WHERE payment_id = ? ORDER BY changed_at`,
		paymentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment_status_history table: %w", err)
	}
	defer rows.Close()

	history := []model.PaymentStatusChange{}
	for rows.Next() {
		var h model.PaymentStatusChange
		var reason sql.NullString
		if err := rows.Scan(&h.ID, &h.PaymentID, &h.FromStatus, &h.ToStatus, &reason, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment_status_history results: %w", err)
		}
		h.Reason = reason.String
		history = append(history, h)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment_status_history table: %w", err)
	}

	return history, nil
}

// CountRecentBySourceAccount counts payments from an account since a cutoff,
// used by the velocity rule.
func (r *PaymentRepository) CountRecentBySourceAccount(sourceAccount string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM payment WHERE source_account = ? AND created_at >= ?`,
		sourceAccount, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent payments: %w", err)
	}
	return count, nil
}

// SumDailyBySourceAccount sums payment amounts from an account since a
// cutoff, used by the daily-limit rule.
func (r *PaymentRepository) SumDailyBySourceAccount(sourceAccount string, since time.Time) (float64, error) {
	var total float64
	err := r.db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM payment WHERE source_account = ? AND created_at >= ?`,
		sourceAccount, since,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum recent payments: %w", err)
	}
	return total, nil
}

// HasPriorPayee reports whether the account has ever paid this destination
// before, used by the new-payee rule. The payment being evaluated is
// excluded by ID.
func (r *PaymentRepository) HasPriorPayee(sourceAccount, destinationAccount, excludePaymentID string) (bool, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM payment
		 WHERE source_account = ? AND destination_account = ? AND id != ?`,
		sourceAccount, destinationAccount, excludePaymentID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check prior payee: %w", err)
	}
	return count > 0, nil
}
