package testutil

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/moneymap/moneymap-backend/internal/model"
)

// MakeID returns a fresh UUID string for test rows.
func MakeID() string {
	return uuid.New().String()
}

// MakeEmail returns a unique email address for test clients.
func MakeEmail() string {
	return fmt.Sprintf("client-%s@example.com", uuid.New().String()[:8])
}

// ClientBuilder provides a fluent interface for creating test clients.
//
// Example usage:
//
//	// Simple creation with defaults
//	client := testutil.NewClient().Build(t, db)
//
//	// Customized client
//	client := testutil.NewClient().
//	    WithName("Ada", "Lovelace").
//	    WithWalletBalance(5000).
//	    Inactive().
//	    Build(t, db)
type ClientBuilder struct {
	ID                string
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	Address           string
	City              string
	CountryCode       string
	PreferredCurrency string
	WalletBalance     float64
	Active            bool
}

// NewClient creates a ClientBuilder with sensible defaults.
func NewClient() *ClientBuilder {
	return &ClientBuilder{
		ID:                MakeID(),
		FirstName:         "Test",
		LastName:          "Client",
		Email:             MakeEmail(),
		Phone:             "+31612345678",
		Address:           "1 Test Street",
		City:              "Amsterdam",
		CountryCode:       "NL",
		PreferredCurrency: "EUR",
		WalletBalance:     10000,
		Active:            true,
	}
}

// WithID sets a custom ID.
func (b *ClientBuilder) WithID(id string) *ClientBuilder {
	b.ID = id
	return b
}

// WithName sets the first and last name.
func (b *ClientBuilder) WithName(first, last string) *ClientBuilder {
	b.FirstName = first
	b.LastName = last
	return b
}

// WithEmail sets a custom email.
func (b *ClientBuilder) WithEmail(email string) *ClientBuilder {
	b.Email = email
	return b
}

// WithWalletBalance sets the starting wallet balance.
func (b *ClientBuilder) WithWalletBalance(balance float64) *ClientBuilder {
	b.WalletBalance = balance
	return b
}

// Inactive marks the client as deactivated.
func (b *ClientBuilder) Inactive() *ClientBuilder {
	b.Active = false
	return b
}

// Build creates the client in the database and returns it.
func (b *ClientBuilder) Build(t *testing.T, db *sql.DB) model.Client {
	t.Helper()

	query := `
		INSERT INTO client (id, first_name, last_name, email, phone, address, city,
			country_code, preferred_currency, wallet_balance, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.FirstName, b.LastName, b.Email, b.Phone,
		b.Address, b.City, b.CountryCode, b.PreferredCurrency, b.WalletBalance, b.Active)
	if err != nil {
		t.Fatalf("Failed to create test client: %v", err)
	}

	return model.Client{
		ID:                b.ID,
		FirstName:         b.FirstName,
		LastName:          b.LastName,
		Email:             b.Email,
		Phone:             b.Phone,
		Address:           b.Address,
		City:              b.City,
		CountryCode:       b.CountryCode,
		PreferredCurrency: b.PreferredCurrency,
		WalletBalance:     b.WalletBalance,
		Active:            b.Active,
	}
}

// PortfolioBuilder provides a fluent interface for creating test portfolios.
type PortfolioBuilder struct {
	ID          string
	ClientID    string
	Name        string
	Description string
}

// NewPortfolio creates a PortfolioBuilder owned by the given client.
func NewPortfolio(clientID string) *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:          MakeID(),
		ClientID:    clientID,
		Name:        "Test Portfolio",
		Description: "Test description",
	}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// WithDescription sets a custom description.
func (b *PortfolioBuilder) WithDescription(desc string) *PortfolioBuilder {
	b.Description = desc
	return b
}

// Build creates the portfolio in the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	query := `
		INSERT INTO portfolio (id, client_id, name, description)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.ClientID, b.Name, b.Description)
	if err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}

	return model.Portfolio{
		ID:          b.ID,
		ClientID:    b.ClientID,
		Name:        b.Name,
		Description: b.Description,
	}
}

// AssetBuilder provides a fluent interface for creating test assets.
// Defaults to a STOCK holding; use WithDetails to switch variant.
type AssetBuilder struct {
	ID            string
	PortfolioID   string
	Symbol        string
	Name          string
	Quantity      float64
	PurchasePrice float64
	PurchaseDate  time.Time
	CurrentPrice  float64
	Notes         string
	Details       model.AssetDetails
	LastAlertAt   *time.Time
}

// NewAsset creates an AssetBuilder in the given portfolio.
func NewAsset(portfolioID string) *AssetBuilder {
	return &AssetBuilder{
		ID:            MakeID(),
		PortfolioID:   portfolioID,
		Symbol:        "AAPL",
		Name:          "Apple Inc.",
		Quantity:      10,
		PurchasePrice: 150,
		PurchaseDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		CurrentPrice:  175,
		Details:       model.StockDetails{Exchange: "NASDAQ", Sector: "Technology", FractionalAllowed: true},
	}
}

// WithID sets a custom ID.
func (b *AssetBuilder) WithID(id string) *AssetBuilder {
	b.ID = id
	return b
}

// WithSymbol sets the symbol and display name.
func (b *AssetBuilder) WithSymbol(symbol, name string) *AssetBuilder {
	b.Symbol = symbol
	b.Name = name
	return b
}

// WithQuantity sets the held quantity.
func (b *AssetBuilder) WithQuantity(qty float64) *AssetBuilder {
	b.Quantity = qty
	return b
}

// WithPurchasePrice sets the cost basis per unit.
func (b *AssetBuilder) WithPurchasePrice(price float64) *AssetBuilder {
	b.PurchasePrice = price
	return b
}

// WithCurrentPrice sets the stored price snapshot.
func (b *AssetBuilder) WithCurrentPrice(price float64) *AssetBuilder {
	b.CurrentPrice = price
	return b
}

// WithDetails sets the per-type payload, switching the asset variant.
func (b *AssetBuilder) WithDetails(details model.AssetDetails) *AssetBuilder {
	b.Details = details
	return b
}

// WithLastAlertAt sets the last price-drop alert timestamp.
func (b *AssetBuilder) WithLastAlertAt(at time.Time) *AssetBuilder {
	b.LastAlertAt = &at
	return b
}

// Build creates the asset in the database and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	asset := model.Asset{
		ID:            b.ID,
		PortfolioID:   b.PortfolioID,
		Symbol:        b.Symbol,
		Name:          b.Name,
		Quantity:      b.Quantity,
		PurchasePrice: b.PurchasePrice,
		PurchaseDate:  b.PurchaseDate,
		CurrentPrice:  b.CurrentPrice,
		Notes:         b.Notes,
		Details:       b.Details,
		LastAlertAt:   b.LastAlertAt,
	}

	query := `
		INSERT INTO asset (id, portfolio_id, asset_type, symbol, name, quantity,
			purchase_price, purchase_date, current_price, notes,
			exchange, sector, dividend_yield, fractional_allowed,
			blockchain, wallet_address, staking_apy,
			purity, weight_in_grams, storage_type,
			fund_house, fund_code, expense_ratio, last_alert_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var exchange, sector, dividendYield, fractional any
	var blockchain, walletAddr, stakingApy any
	var purity, weightInGrams, storageType any
	var fundHouse, fundCode, expenseRatio any
	switch d := b.Details.(type) {
	case model.StockDetails:
		exchange, sector, dividendYield, fractional = d.Exchange, d.Sector, d.DividendYield, d.FractionalAllowed
	case model.CryptoDetails:
		blockchain, walletAddr, stakingApy = d.Blockchain, d.WalletAddress, d.StakingApy
	case model.GoldDetails:
		purity, weightInGrams, storageType = d.Purity, d.WeightInGrams, d.StorageType
	case model.MutualFundDetails:
		fundHouse, fundCode, expenseRatio = d.FundHouse, d.FundCode, d.ExpenseRatio
	}

	_, err := db.Exec(query, b.ID, b.PortfolioID, string(asset.Type()), b.Symbol, b.Name,
		b.Quantity, b.PurchasePrice, b.PurchaseDate.Format("2006-01-02"), b.CurrentPrice, b.Notes,
		exchange, sector, dividendYield, fractional,
		blockchain, walletAddr, stakingApy,
		purity, weightInGrams, storageType,
		fundHouse, fundCode, expenseRatio, b.LastAlertAt)
	if err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}

	return asset
}

// TransactionBuilder provides a fluent interface for creating test transactions.
type TransactionBuilder struct {
	ID           string
	AssetID      string
	Type         model.TransactionType
	Quantity     float64
	PricePerUnit float64
	TotalAmount  float64
	Date         time.Time
	Notes        string
}

// NewTransaction creates a TransactionBuilder against the given asset.
func NewTransaction(assetID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:           MakeID(),
		AssetID:      assetID,
		Type:         model.TransactionBuy,
		Quantity:     5,
		PricePerUnit: 150,
		TotalAmount:  750,
		Date:         time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(typ model.TransactionType) *TransactionBuilder {
	b.Type = typ
	return b
}

// WithAmounts sets quantity, unit price and total.
func (b *TransactionBuilder) WithAmounts(qty, pricePerUnit, total float64) *TransactionBuilder {
	b.Quantity = qty
	b.PricePerUnit = pricePerUnit
	b.TotalAmount = total
	return b
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, asset_id, type, quantity, price_per_unit, total_amount, date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.AssetID, string(b.Type), b.Quantity,
		b.PricePerUnit, b.TotalAmount, b.Date, b.Notes)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:           b.ID,
		AssetID:      b.AssetID,
		Type:         b.Type,
		Quantity:     b.Quantity,
		PricePerUnit: b.PricePerUnit,
		TotalAmount:  b.TotalAmount,
		Date:         b.Date,
		Notes:        b.Notes,
	}
}

// PaymentBuilder provides a fluent interface for creating test payments.
type PaymentBuilder struct {
	ID                 string
	PaymentReference   string
	IdempotencyKey     string
	SourceAccount      string
	DestinationAccount string
	Amount             float64
	Currency           string
	Status             model.PaymentStatus
	Description        string
	CreatedAt          time.Time
}

// NewPayment creates a PaymentBuilder with sensible defaults.
func NewPayment() *PaymentBuilder {
	id := MakeID()
	return &PaymentBuilder{
		ID:                 id,
		PaymentReference:   "PAY-" + id[:12],
		SourceAccount:      "ACC-1001",
		DestinationAccount: "ACC-2001",
		Amount:             250,
		Currency:           "EUR",
		Status:             model.PaymentCreated,
		CreatedAt:          time.Now().UTC(),
	}
}

// WithAccounts sets the source and destination accounts.
func (b *PaymentBuilder) WithAccounts(source, destination string) *PaymentBuilder {
	b.SourceAccount = source
	b.DestinationAccount = destination
	return b
}

// WithAmount sets the amount and currency.
func (b *PaymentBuilder) WithAmount(amount float64, currency string) *PaymentBuilder {
	b.Amount = amount
	b.Currency = currency
	return b
}

// WithStatus sets the lifecycle status.
func (b *PaymentBuilder) WithStatus(status model.PaymentStatus) *PaymentBuilder {
	b.Status = status
	return b
}

// WithIdempotencyKey sets the idempotency key.
func (b *PaymentBuilder) WithIdempotencyKey(key string) *PaymentBuilder {
	b.IdempotencyKey = key
	return b
}

// WithCreatedAt sets the creation time, useful for velocity and daily-limit
// rule tests.
func (b *PaymentBuilder) WithCreatedAt(at time.Time) *PaymentBuilder {
	b.CreatedAt = at
	return b
}

// Build creates the payment in the database and returns it.
func (b *PaymentBuilder) Build(t *testing.T, db *sql.DB) model.Payment {
	t.Helper()

	query := `
		INSERT INTO payment (id, payment_reference, idempotency_key, source_account,
			destination_account, amount, currency, status, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var idemKey any
	if b.IdempotencyKey != "" {
		idemKey = b.IdempotencyKey
	}

	_, err := db.Exec(query, b.ID, b.PaymentReference, idemKey, b.SourceAccount,
		b.DestinationAccount, b.Amount, b.Currency, string(b.Status), b.Description, b.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test payment: %v", err)
	}

	return model.Payment{
		ID:                 b.ID,
		PaymentReference:   b.PaymentReference,
		IdempotencyKey:     b.IdempotencyKey,
		SourceAccount:      b.SourceAccount,
		DestinationAccount: b.DestinationAccount,
		Amount:             b.Amount,
		Currency:           b.Currency,
		Status:             b.Status,
		Description:        b.Description,
		CreatedAt:          b.CreatedAt,
	}
}

// RuleBuilder provides a fluent interface for creating test monitoring rules.
type RuleBuilder struct {
	ID                string
	Name              string
	Type              model.RuleType
	Severity          model.AlertSeverity
	Active            bool
	Description       string
	ThresholdAmount   float64
	ThresholdCurrency string
	MaxTransactions   int
	TimeWindowMinutes int
}

// NewRule creates a RuleBuilder defaulting to an amount-threshold rule.
func NewRule() *RuleBuilder {
	return &RuleBuilder{
		ID:                MakeID(),
		Name:              "Large payment",
		Type:              model.RuleAmountThreshold,
		Severity:          model.SeverityHigh,
		Active:            true,
		ThresholdAmount:   10000,
		ThresholdCurrency: "EUR",
	}
}

// WithType sets the rule type.
func (b *RuleBuilder) WithType(typ model.RuleType) *RuleBuilder {
	b.Type = typ
	return b
}

// WithSeverity sets the severity of alerts the rule raises.
func (b *RuleBuilder) WithSeverity(sev model.AlertSeverity) *RuleBuilder {
	b.Severity = sev
	return b
}

// WithThreshold sets the amount threshold and its currency.
func (b *RuleBuilder) WithThreshold(amount float64, currency string) *RuleBuilder {
	b.ThresholdAmount = amount
	b.ThresholdCurrency = currency
	return b
}

// WithVelocity sets the velocity window parameters.
func (b *RuleBuilder) WithVelocity(maxTransactions, windowMinutes int) *RuleBuilder {
	b.MaxTransactions = maxTransactions
	b.TimeWindowMinutes = windowMinutes
	return b
}

// Inactive disables the rule.
func (b *RuleBuilder) Inactive() *RuleBuilder {
	b.Active = false
	return b
}

// Build creates the rule in the database and returns it.
func (b *RuleBuilder) Build(t *testing.T, db *sql.DB) model.MonitoringRule {
	t.Helper()

	query := `
		INSERT INTO monitoring_rule (id, name, rule_type, severity, active, description,
			threshold_amount, threshold_currency, max_transactions, time_window_minutes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, string(b.Type), string(b.Severity), b.Active,
		b.Description, b.ThresholdAmount, b.ThresholdCurrency, b.MaxTransactions, b.TimeWindowMinutes)
	if err != nil {
		t.Fatalf("Failed to create test rule: %v", err)
	}

	return model.MonitoringRule{
		ID:                b.ID,
		Name:              b.Name,
		Type:              b.Type,
		Severity:          b.Severity,
		Active:            b.Active,
		Description:       b.Description,
		ThresholdAmount:   b.ThresholdAmount,
		ThresholdCurrency: b.ThresholdCurrency,
		MaxTransactions:   b.MaxTransactions,
		TimeWindowMinutes: b.TimeWindowMinutes,
	}
}

// AlertBuilder provides a fluent interface for creating test alerts.
type AlertBuilder struct {
	ID          string
	RuleID      string
	AssetID     string
	PaymentID   string
	PortfolioID string
	AccountID   string
	Severity    model.AlertSeverity
	Status      model.AlertStatus
	Message     string
}

// NewAlert creates an AlertBuilder with sensible defaults.
func NewAlert() *AlertBuilder {
	return &AlertBuilder{
		ID:       MakeID(),
		Severity: model.SeverityMedium,
		Status:   model.AlertOpen,
		Message:  "Test alert",
	}
}

// ForPayment links the alert to a rule and payment.
func (b *AlertBuilder) ForPayment(ruleID, paymentID, accountID string) *AlertBuilder {
	b.RuleID = ruleID
	b.PaymentID = paymentID
	b.AccountID = accountID
	return b
}

// ForAsset links the alert to an asset.
func (b *AlertBuilder) ForAsset(assetID string) *AlertBuilder {
	b.AssetID = assetID
	return b
}

// ForPortfolio links the alert to a portfolio.
func (b *AlertBuilder) ForPortfolio(portfolioID string) *AlertBuilder {
	b.PortfolioID = portfolioID
	return b
}

// WithStatus sets the triage status.
func (b *AlertBuilder) WithStatus(status model.AlertStatus) *AlertBuilder {
	b.Status = status
	return b
}

// WithSeverity sets the severity.
func (b *AlertBuilder) WithSeverity(sev model.AlertSeverity) *AlertBuilder {
	b.Severity = sev
	return b
}

// Build creates the alert in the database and returns it.
func (b *AlertBuilder) Build(t *testing.T, db *sql.DB) model.Alert {
	t.Helper()

	nullable := func(s string) any {
		if s == "" {
			return nil
		}
		return s
	}

	query := `
		INSERT INTO alert (id, rule_id, asset_id, payment_id, portfolio_id, account_id, severity, status, message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, nullable(b.RuleID), nullable(b.AssetID),
		nullable(b.PaymentID), nullable(b.PortfolioID), nullable(b.AccountID), string(b.Severity), string(b.Status), b.Message)
	if err != nil {
		t.Fatalf("Failed to create test alert: %v", err)
	}

	return model.Alert{
		ID:          b.ID,
		RuleID:      b.RuleID,
		AssetID:     b.AssetID,
		PaymentID:   b.PaymentID,
		PortfolioID: b.PortfolioID,
		AccountID:   b.AccountID,
		Severity:    b.Severity,
		Status:      b.Status,
		Message:     b.Message,
	}
}
