package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production database schema.
//
//nolint:funlen // Database schema DDL
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Client table
		CREATE TABLE IF NOT EXISTS client (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			email VARCHAR(150) NOT NULL UNIQUE,
			phone VARCHAR(30),
			address VARCHAR(500),
			city VARCHAR(100),
			country_code VARCHAR(2),
			preferred_currency VARCHAR(3),
			wallet_balance FLOAT NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Portfolio table
		CREATE TABLE IF NOT EXISTS portfolio (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			client_id VARCHAR(36) NOT NULL,
			name VARCHAR(100) NOT NULL,
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(client_id) REFERENCES client(id) ON DELETE CASCADE
		);

		-- Asset table (asset_type discriminator, nullable per-type columns)
		CREATE TABLE IF NOT EXISTS asset (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL,
			asset_type VARCHAR(20) NOT NULL,
			symbol VARCHAR(20) NOT NULL,
			name VARCHAR(150) NOT NULL,
			quantity FLOAT NOT NULL,
			purchase_price FLOAT NOT NULL,
			purchase_date DATE NOT NULL,
			current_price FLOAT NOT NULL DEFAULT 0,
			notes VARCHAR(500),
			exchange VARCHAR(50),
			sector VARCHAR(100),
			dividend_yield FLOAT,
			fractional_allowed BOOLEAN,
			blockchain VARCHAR(100),
			wallet_address VARCHAR(200),
			staking_apy FLOAT,
			purity VARCHAR(10),
			weight_in_grams FLOAT,
			storage_type VARCHAR(50),
			fund_house VARCHAR(100),
			fund_code VARCHAR(50),
			expense_ratio FLOAT,
			last_alert_at DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE
		);

		-- Asset price history table
		CREATE TABLE IF NOT EXISTS asset_price_history (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			asset_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			price FLOAT NOT NULL,
			FOREIGN KEY(asset_id) REFERENCES asset(id) ON DELETE CASCADE
		);

		-- Transaction table (quoted because transaction is a reserved keyword)
		CREATE TABLE IF NOT EXISTS "transaction" (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			asset_id VARCHAR(36) NOT NULL,
			type VARCHAR(15) NOT NULL,
			quantity FLOAT NOT NULL,
			price_per_unit FLOAT NOT NULL,
			total_amount FLOAT NOT NULL,
			date DATETIME NOT NULL,
			notes VARCHAR(500),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(asset_id) REFERENCES asset(id) ON DELETE CASCADE
		);

		-- Payment table
		CREATE TABLE IF NOT EXISTS payment (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			payment_reference VARCHAR(50) NOT NULL UNIQUE,
			idempotency_key VARCHAR(100) UNIQUE,
			source_account VARCHAR(50) NOT NULL,
			destination_account VARCHAR(50) NOT NULL,
			amount FLOAT NOT NULL,
			currency VARCHAR(3) NOT NULL,
			status VARCHAR(10) NOT NULL,
			description VARCHAR(500),
			error_message VARCHAR(500),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Payment status history table
		CREATE TABLE IF NOT EXISTS payment_status_history (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			payment_id VARCHAR(36) NOT NULL,
			from_status VARCHAR(10) NOT NULL,
			to_status VARCHAR(10) NOT NULL,
			reason VARCHAR(500),
			changed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(payment_id) REFERENCES payment(id) ON DELETE CASCADE
		);

		-- Monitoring rule table
		CREATE TABLE IF NOT EXISTS monitoring_rule (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			rule_type VARCHAR(20) NOT NULL,
			severity VARCHAR(10) NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			description VARCHAR(500),
			threshold_amount FLOAT,
			threshold_currency VARCHAR(3),
			max_transactions INTEGER,
			time_window_minutes INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Alert table
		CREATE TABLE IF NOT EXISTS alert (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			rule_id VARCHAR(36),
			asset_id VARCHAR(36),
			payment_id VARCHAR(36),
			portfolio_id VARCHAR(36),
			account_id VARCHAR(50),
			severity VARCHAR(10) NOT NULL,
			status VARCHAR(15) NOT NULL,
			message VARCHAR(1000) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(rule_id) REFERENCES monitoring_rule(id) ON DELETE SET NULL,
			FOREIGN KEY(asset_id) REFERENCES asset(id) ON DELETE SET NULL,
			FOREIGN KEY(payment_id) REFERENCES payment(id) ON DELETE SET NULL,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE SET NULL
		);

		-- System setting table
		CREATE TABLE IF NOT EXISTS system_setting (
			key VARCHAR(50) NOT NULL PRIMARY KEY,
			value VARCHAR(1000) NOT NULL,
			updated_at DATETIME
		);

		-- Migration bookkeeping, so version checks work against test databases
		CREATE TABLE IF NOT EXISTS goose_db_version (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			version_id INTEGER NOT NULL,
			is_applied INTEGER NOT NULL,
			tstamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		INSERT INTO goose_db_version (version_id, is_applied) VALUES (1, 1);
	`

	_, err := db.Exec(schema)
	return err
}
