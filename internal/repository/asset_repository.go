package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/model"
)

// AssetRepository provides data access methods for the asset and
// asset_price_history tables. Assets live in a single table with an
// asset_type discriminator; the per-type payload is reconstructed on scan so
// the rest of the application only ever sees the tagged variant.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = `id, portfolio_id, asset_type, symbol, name, quantity,
	purchase_price, purchase_date, current_price, notes,
	exchange, sector, dividend_yield, fractional_allowed,
	blockchain, wallet_address, staking_apy,
	purity, weight_in_grams, storage_type,
	fund_house, fund_code, expense_ratio,
	last_alert_at, created_at, updated_at`

// assetColumnsQualified prefixes every column with the asset alias for JOIN
// queries where portfolio columns would otherwise be ambiguous.
const assetColumnsQualified = `a.id, a.portfolio_id, a.asset_type, a.symbol, a.name, a.quantity,
	a.purchase_price, a.purchase_date, a.current_price, a.notes,
	a.exchange, a.sector, a.dividend_yield, a.fractional_allowed,
	a.blockchain, a.wallet_address, a.staking_apy,
	a.purity, a.weight_in_grams, a.storage_type,
	a.fund_house, a.fund_code, a.expense_ratio,
	a.last_alert_at, a.created_at, a.updated_at`

// assetRow carries the nullable per-type columns between scan and payload
// reconstruction.
type assetRow struct {
	assetType string

	exchange          sql.NullString
	sector            sql.NullString
	dividendYield     sql.NullFloat64
	fractionalAllowed sql.NullBool

	blockchain    sql.NullString
	walletAddress sql.NullString
	stakingApy    sql.NullFloat64

	purity        sql.NullString
	weightInGrams sql.NullFloat64
	storageType   sql.NullString

	fundHouse    sql.NullString
	fundCode     sql.NullString
	expenseRatio sql.NullFloat64
}

func scanAsset(row interface{ Scan(...any) error }) (model.Asset, error) {
	var a model.Asset
	var extra assetRow
	var notes sql.NullString
	var lastAlertAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.PortfolioID,
		&extra.assetType,
		&a.Symbol,
		&a.Name,
		&a.Quantity,
		&a.PurchasePrice,
		&a.PurchaseDate,
		&a.CurrentPrice,
		&notes,
		&extra.exchange,
		&extra.sector,
		&extra.dividendYield,
		&extra.fractionalAllowed,
		&extra.blockchain,
		&extra.walletAddress,
		&extra.stakingApy,
		&extra.purity,
		&extra.weightInGrams,
		&extra.storageType,
		&extra.fundHouse,
		&extra.fundCode,
		&extra.expenseRatio,
		&lastAlertAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return model.Asset{}, err
	}

	a.Notes = notes.String
	if lastAlertAt.Valid {
		t := lastAlertAt.Time
		a.LastAlertAt = &t
	}

	details, err := extra.details()
	if err != nil {
		return model.Asset{}, err
	}
	a.Details = details

	return a, nil
}

// details rebuilds the tagged payload from the discriminator column.
func (r assetRow) details() (model.AssetDetails, error) {
	switch model.AssetType(r.assetType) {
	case model.AssetTypeStock:
		return model.StockDetails{
			Exchange:          r.exchange.String,
			Sector:            r.sector.String,
			DividendYield:     r.dividendYield.Float64,
			FractionalAllowed: r.fractionalAllowed.Bool,
		}, nil
	case model.AssetTypeCrypto:
		return model.CryptoDetails{
			Blockchain:    r.blockchain.String,
			WalletAddress: r.walletAddress.String,
			StakingApy:    r.stakingApy.Float64,
		}, nil
	case model.AssetTypeGold:
		return model.GoldDetails{
			Purity:        r.purity.String,
			WeightInGrams: r.weightInGrams.Float64,
			StorageType:   r.storageType.String,
		}, nil
	case model.AssetTypeMutualFund:
		return model.MutualFundDetails{
			FundHouse:    r.fundHouse.String,
			FundCode:     r.fundCode.String,
			ExpenseRatio: r.expenseRatio.Float64,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown asset type %q", apperrors.ErrDataInconsistency, r.assetType)
	}
}

// columnValues flattens an asset's payload back into the nullable columns,
// in assetColumns order minus timestamps.
func columnValues(a model.Asset) []any {
	var exchange, sector, dividendYield, fractionalAllowed any
	var blockchain, walletAddress, stakingApy any
	var purity, weightInGrams, storageType any
	var fundHouse, fundCode, expenseRatio any

	switch d := a.Details.(type) {
	case model.StockDetails:
		exchange, sector = d.Exchange, d.Sector
		dividendYield, fractionalAllowed = d.DividendYield, d.FractionalAllowed
	case model.CryptoDetails:
		blockchain, walletAddress, stakingApy = d.Blockchain, d.WalletAddress, d.StakingApy
	case model.GoldDetails:
		purity, weightInGrams, storageType = d.Purity, d.WeightInGrams, d.StorageType
	case model.MutualFundDetails:
		fundHouse, fundCode, expenseRatio = d.FundHouse, d.FundCode, d.ExpenseRatio
	}

	return []any{
		a.ID, a.PortfolioID, string(a.Type()), a.Symbol, a.Name, a.Quantity,
		a.PurchasePrice, a.PurchaseDate, a.CurrentPrice, a.Notes,
		exchange, sector, dividendYield, fractionalAllowed,
		blockchain, walletAddress, stakingApy,
		purity, weightInGrams, storageType,
		fundHouse, fundCode, expenseRatio,
	}
}

// GetAssetsOnPortfolioID retrieves all assets in a portfolio.
// An empty slice for a portfolio with no holdings is not an error.
func (r *AssetRepository) GetAssetsOnPortfolioID(portfolioID string) ([]model.Asset, error) {
	rows, err := r.db.Query(
		`SELECT `+assetColumns+` FROM asset WHERE portfolio_id = ? ORDER BY symbol`,
		portfolioID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	return collectAssets(rows)
}

// GetAssetsOnClientID retrieves all assets held by a client across every
// portfolio.
func (r *AssetRepository) GetAssetsOnClientID(clientID string) ([]model.Asset, error) {
	query := `
		SELECT ` + assetColumnsQualified + `
		FROM asset a
		INNER JOIN portfolio p ON p.id = a.portfolio_id
		WHERE p.client_id = ?
		ORDER BY a.symbol
	`
	rows, err := r.db.Query(query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	return collectAssets(rows)
}

// GetAllAssets retrieves every asset, used by the price refresh job.
func (r *AssetRepository) GetAllAssets() ([]model.Asset, error) {
	rows, err := r.db.Query(`SELECT ` + assetColumns + ` FROM asset ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	return collectAssets(rows)
}

func collectAssets(rows *sql.Rows) ([]model.Asset, error) {
	assets := []model.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset table results: %w", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}
	return assets, nil
}

// GetAssetOnID retrieves a single asset by ID.
func (r *AssetRepository) GetAssetOnID(assetID string) (model.Asset, error) {
	a, err := scanAsset(r.db.QueryRow(
		`SELECT `+assetColumns+` FROM asset WHERE id = ?`, assetID,
	))
	if err == sql.ErrNoRows {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to query asset: %w", err)
	}
	return a, nil
}

// GetAssetOnPortfolioAndSymbol finds an existing holding of a symbol inside
// one portfolio, used by buy orders to grow positions instead of duplicating
// them.
func (r *AssetRepository) GetAssetOnPortfolioAndSymbol(portfolioID, symbol string) (model.Asset, error) {
	a, err := scanAsset(r.db.QueryRow(
		`SELECT `+assetColumns+` FROM asset WHERE portfolio_id = ? AND symbol = ?`,
		portfolioID, symbol,
	))
	if err == sql.ErrNoRows {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to query asset: %w", err)
	}
	return a, nil
}

// CreateAsset inserts a new asset with its typed payload.
func (r *AssetRepository) CreateAsset(a model.Asset) error {
	query := `
		INSERT INTO asset (id, portfolio_id, asset_type, symbol, name, quantity,
			purchase_price, purchase_date, current_price, notes,
			exchange, sector, dividend_yield, fractional_allowed,
			blockchain, wallet_address, staking_apy,
			purity, weight_in_grams, storage_type,
			fund_house, fund_code, expense_ratio)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.Exec(query, columnValues(a)...); err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	return nil
}

// UpdateAsset rewrites an asset's mutable fields, payload included.
func (r *AssetRepository) UpdateAsset(a model.Asset) error {
	query := `
		UPDATE asset
		SET name = ?, quantity = ?, purchase_price = ?, purchase_date = ?,
			current_price = ?, notes = ?,
			exchange = ?, sector = ?, dividend_yield = ?, fractional_allowed = ?,
			blockchain = ?, wallet_address = ?, staking_apy = ?,
			purity = ?, weight_in_grams = ?, storage_type = ?,
			fund_house = ?, fund_code = ?, expense_ratio = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	vals := columnValues(a)
	// columnValues order: skip id, portfolio_id, asset_type, symbol (0..3).
	args := append([]any{vals[4]}, vals[5:]...)
	args = append(args, a.ID)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}
	return requireAffected(result, apperrors.ErrAssetNotFound)
}

// UpdateCurrentPrice stores a fresh price snapshot for an asset.
func (r *AssetRepository) UpdateCurrentPrice(assetID string, price float64) error {
	result, err := r.db.Exec(
		`UPDATE asset SET current_price = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		price, assetID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset price: %w", err)
	}
	return requireAffected(result, apperrors.ErrAssetNotFound)
}

// UpdateLastAlertAt records when a price-drop alert was last raised for an
// asset, enforcing the alert cooldown.
func (r *AssetRepository) UpdateLastAlertAt(assetID string, at time.Time) error {
	result, err := r.db.Exec(
		`UPDATE asset SET last_alert_at = ? WHERE id = ?`, at, assetID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset alert timestamp: %w", err)
	}
	return requireAffected(result, apperrors.ErrAssetNotFound)
}

// DeleteAsset removes an asset. Transactions and price history cascade.
func (r *AssetRepository) DeleteAsset(assetID string) error {
	result, err := r.db.Exec(`DELETE FROM asset WHERE id = ?`, assetID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return requireAffected(result, apperrors.ErrAssetNotFound)
}

// AddPricePoint appends one historical price point for an asset.
func (r *AssetRepository) AddPricePoint(p model.AssetPrice) error {
	_, err := r.db.Exec(
		`INSERT INTO asset_price_history (id, asset_id, date, price) VALUES (?, ?, ?, ?)`,
		p.ID, p.AssetID, p.Date, p.Price,
	)
	if err != nil {
		return fmt.Errorf("failed to insert price point: %w", err)
	}
	return nil
}

// GetPriceHistory retrieves an asset's stored price points since a date,
// ascending.
func (r *AssetRepository) GetPriceHistory(assetID string, since time.Time) ([]model.AssetPrice, error) {
	rows, err := r.db.Query(
		`SELECT id, asset_id, date, price FROM asset_price_history
		 WHERE asset_id = ? AND date >= ? ORDER BY date`,
		assetID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset_price_history table: %w", err)
	}
	defer rows.Close()

	points := []model.AssetPrice{}
	for rows.Next() {
		var p model.AssetPrice
		if err := rows.Scan(&p.ID, &p.AssetID, &p.Date, &p.Price); err != nil {
			return nil, fmt.Errorf("failed to scan asset_price_history results: %w", err)
		}
		points = append(points, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset_price_history table: %w", err)
	}

	return points, nil
}
