package repository

import (
	"database/sql"
	"fmt"

	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio table.
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

const portfolioColumns = `id, client_id, name, description, created_at, updated_at`

func scanPortfolio(row interface{ Scan(...any) error }) (model.Portfolio, error) {
	var p model.Portfolio
	err := row.Scan(
		&p.ID,
		&p.ClientID,
		&p.Name,
		&p.Description,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// GetPortfolios retrieves all portfolios.
// Returns an empty slice if none exist.
func (r *PortfolioRepository) GetPortfolios() ([]model.Portfolio, error) {
	rows, err := r.db.Query(`SELECT ` + portfolioColumns + ` FROM portfolio ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	return collectPortfolios(rows)
}

// GetPortfoliosOnClientID retrieves all portfolios belonging to a client.
// An empty slice for a client with no portfolios is not an error.
func (r *PortfolioRepository) GetPortfoliosOnClientID(clientID string) ([]model.Portfolio, error) {
	rows, err := r.db.Query(
		`SELECT `+portfolioColumns+` FROM portfolio WHERE client_id = ? ORDER BY name`,
		clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	return collectPortfolios(rows)
}

func collectPortfolios(rows *sql.Rows) ([]model.Portfolio, error) {
	portfolios := []model.Portfolio{}
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}
		portfolios = append(portfolios, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}
	return portfolios, nil
}

// GetPortfolioOnID retrieves a single portfolio by ID.
func (r *PortfolioRepository) GetPortfolioOnID(portfolioID string) (model.Portfolio, error) {
	p, err := scanPortfolio(r.db.QueryRow(
		`SELECT `+portfolioColumns+` FROM portfolio WHERE id = ?`, portfolioID,
	))
	if err == sql.ErrNoRows {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}
	return p, nil
}

// CreatePortfolio inserts a new portfolio.
func (r *PortfolioRepository) CreatePortfolio(p model.Portfolio) error {
	_, err := r.db.Exec(
		`INSERT INTO portfolio (id, client_id, name, description) VALUES (?, ?, ?, ?)`,
		p.ID, p.ClientID, p.Name, p.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}
	return nil
}

// UpdatePortfolio updates a portfolio's name and description.
func (r *PortfolioRepository) UpdatePortfolio(p model.Portfolio) error {
	result, err := r.db.Exec(
		`UPDATE portfolio SET name = ?, description = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		p.Name, p.Description, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update portfolio: %w", err)
	}
	return requireAffected(result, apperrors.ErrPortfolioNotFound)
}

// DeletePortfolio removes a portfolio. Assets and transactions cascade.
func (r *PortfolioRepository) DeletePortfolio(portfolioID string) error {
	result, err := r.db.Exec(`DELETE FROM portfolio WHERE id = ?`, portfolioID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	return requireAffected(result, apperrors.ErrPortfolioNotFound)
}
