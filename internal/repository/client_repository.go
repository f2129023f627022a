package repository

import (
	"database/sql"
	"fmt"

	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/model"
)

// ClientRepository provides data access methods for the client table,
// including the wallet balance column used by trading operations.
type ClientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new ClientRepository with the provided database connection.
func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = `id, first_name, last_name, email, phone, address, city,
	country_code, preferred_currency, wallet_balance, active, created_at, updated_at`

func scanClient(row interface{ Scan(...any) error }) (model.Client, error) {
	var c model.Client
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.City,
		&c.CountryCode,
		&c.PreferredCurrency,
		&c.WalletBalance,
		&c.Active,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// GetClients retrieves clients from the database based on filter criteria.
// Returns an empty slice if no clients match.
func (r *ClientRepository) GetClients(filter model.ClientFilter) ([]model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM client WHERE 1=1`
	var args []any

	if !filter.IncludeInactive {
		query += " AND active = ?"
		args = append(args, 1)
	}
	query += " ORDER BY last_name, first_name"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query client table: %w", err)
	}
	defer rows.Close()

	clients := []model.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client table results: %w", err)
		}
		clients = append(clients, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client table: %w", err)
	}

	return clients, nil
}

// GetClientOnID retrieves a single client by ID.
func (r *ClientRepository) GetClientOnID(clientID string) (model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM client WHERE id = ?`

	c, err := scanClient(r.db.QueryRow(query, clientID))
	if err == sql.ErrNoRows {
		return model.Client{}, apperrors.ErrClientNotFound
	}
	if err != nil {
		return model.Client{}, fmt.Errorf("failed to query client: %w", err)
	}

	return c, nil
}

// GetClientOnEmail retrieves a single client by unique email.
func (r *ClientRepository) GetClientOnEmail(email string) (model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM client WHERE email = ?`

	c, err := scanClient(r.db.QueryRow(query, email))
	if err == sql.ErrNoRows {
		return model.Client{}, apperrors.ErrClientNotFound
	}
	if err != nil {
		return model.Client{}, fmt.Errorf("failed to query client: %w", err)
	}

	return c, nil
}

// CreateClient inserts a new client.
func (r *ClientRepository) CreateClient(c model.Client) error {
	query := `
		INSERT INTO client (id, first_name, last_name, email, phone, address, city,
			country_code, preferred_currency, wallet_balance, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.City,
		c.CountryCode, c.PreferredCurrency, c.WalletBalance, c.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}
	return nil
}

// UpdateClient updates a client's profile fields. The wallet balance is
// deliberately not touched here; use UpdateWalletBalance.
func (r *ClientRepository) UpdateClient(c model.Client) error {
	query := `
		UPDATE client
		SET first_name = ?, last_name = ?, email = ?, phone = ?, address = ?,
			city = ?, country_code = ?, preferred_currency = ?, active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Address,
		c.City, c.CountryCode, c.PreferredCurrency, c.Active, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	return requireAffected(result, apperrors.ErrClientNotFound)
}

// UpdateWalletBalance sets a client's wallet balance to the given value.
// Callers compute the new balance inside a transaction-scoped read.
func (r *ClientRepository) UpdateWalletBalance(clientID string, balance float64) error {
	result, err := r.db.Exec(
		`UPDATE client SET wallet_balance = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		balance, clientID,
	)
	if err != nil {
		return fmt.Errorf("failed to update wallet balance: %w", err)
	}
	return requireAffected(result, apperrors.ErrClientNotFound)
}

// DeleteClient removes a client. Portfolios and assets cascade.
func (r *ClientRepository) DeleteClient(clientID string) error {
	result, err := r.db.Exec(`DELETE FROM client WHERE id = ?`, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return requireAffected(result, apperrors.ErrClientNotFound)
}
