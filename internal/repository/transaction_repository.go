package repository

import (
	"database/sql"
	"fmt"

	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, asset_id, type, quantity, price_per_unit, total_amount, date, notes, created_at`

func scanTransaction(row interface{ Scan(...any) error }) (model.Transaction, error) {
	var t model.Transaction
	var notes sql.NullString
	err := row.Scan(
		&t.ID,
		&t.AssetID,
		&t.Type,
		&t.Quantity,
		&t.PricePerUnit,
		&t.TotalAmount,
		&t.Date,
		&notes,
		&t.CreatedAt,
	)
	t.Notes = notes.String
	return t, err
}

// CreateTransaction inserts a new transaction record.
func (r *TransactionRepository) CreateTransaction(t model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, asset_id, type, quantity, price_per_unit, total_amount, date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		t.ID, t.AssetID, t.Type, t.Quantity, t.PricePerUnit, t.TotalAmount, t.Date, t.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// GetTransactionOnID retrieves a single transaction by ID.
func (r *TransactionRepository) GetTransactionOnID(transactionID string) (model.Transaction, error) {
	t, err := scanTransaction(r.db.QueryRow(
		`SELECT `+transactionColumns+` FROM "transaction" WHERE id = ?`, transactionID,
	))
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to query transaction: %w", err)
	}
	return t, nil
}

// GetTransactionsOnAssetID retrieves all transactions for an asset, newest first.
func (r *TransactionRepository) GetTransactionsOnAssetID(assetID string) ([]model.Transaction, error) {
	rows, err := r.db.Query(
		`SELECT `+transactionColumns+` FROM "transaction" WHERE asset_id = ? ORDER BY date DESC`,
		assetID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// GetTransactionsOnPortfolioID retrieves all transactions across a
// portfolio's assets, newest first.
func (r *TransactionRepository) GetTransactionsOnPortfolioID(portfolioID string) ([]model.Transaction, error) {
	query := `
		SELECT t.id, t.asset_id, t.type, t.quantity, t.price_per_unit, t.total_amount, t.date, t.notes, t.created_at
		FROM "transaction" t
		INNER JOIN asset a ON a.id = t.asset_id
		WHERE a.portfolio_id = ?
		ORDER BY t.date DESC
	`
	rows, err := r.db.Query(query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}
	return transactions, nil
}
