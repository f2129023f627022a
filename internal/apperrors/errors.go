package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrClientNotFound indicates that a client with the given ID does not exist.
	ErrClientNotFound = errors.New("client not found")

	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrAssetNotFound indicates that an asset with the given ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrPaymentNotFound indicates that a payment with the given ID does not exist.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrAlertNotFound indicates that an alert with the given ID does not exist.
	ErrAlertNotFound = errors.New("alert not found")

	// ErrRuleNotFound indicates that a monitoring rule with the given ID does not exist.
	ErrRuleNotFound = errors.New("monitoring rule not found")

	// ErrSymbolNotTradable indicates that a symbol is not in the market catalog.
	ErrSymbolNotTradable = errors.New("symbol not available for trading")

	// ErrSettingNotFound indicates that a system setting key has no value.
	ErrSettingNotFound = errors.New("system setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientFunds indicates that a buy order or wallet withdrawal
	// exceeds the client's wallet balance.
	ErrInsufficientFunds = errors.New("insufficient wallet balance")

	// ErrInsufficientQuantity indicates that a sell order exceeds the held
	// quantity of the asset.
	ErrInsufficientQuantity = errors.New("insufficient asset quantity")

	// ErrInvalidStatusTransition indicates a payment or alert status change
	// that the state machine does not allow.
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrInvalidPeriod indicates an unknown market-data period; valid values
	// are 1W, 1M and 1Y.
	ErrInvalidPeriod = errors.New("invalid period")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data, as opposed to missing entities or validation issues.
var (
	ErrFailedToRetrieveClients      = errors.New("failed to retrieve clients")
	ErrFailedToRetrievePortfolios   = errors.New("failed to retrieve portfolios")
	ErrFailedToRetrieveAssets       = errors.New("failed to retrieve assets")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrievePayments     = errors.New("failed to retrieve payments")
	ErrFailedToRetrieveAlerts       = errors.New("failed to retrieve alerts")
	ErrFailedToRetrieveRules        = errors.New("failed to retrieve monitoring rules")
	ErrFailedToGetSummary           = errors.New("failed to get portfolio summary")
	ErrFailedToGetDistribution      = errors.New("failed to get distribution")
	ErrFailedToGetQuote             = errors.New("failed to get market quote")
	ErrFailedToGetVersionInfo       = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., an asset references a portfolio that doesn't exist).
	ErrDataInconsistency = errors.New("data inconsistency detected")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
