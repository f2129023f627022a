package repository

import (
	"database/sql"
	"fmt"

	"github.com/moneymap/moneymap-backend/internal/apperrors"
)

// SettingRepository provides data access methods for the system_setting table.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a setting value by key.
func (r *SettingRepository) GetSetting(key string) (string, error) {
	var value string
	err := r.db.QueryRow(
		`SELECT value FROM system_setting WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query system setting: %w", err)
	}
	return value, nil
}

// SetSetting inserts or replaces a setting value.
func (r *SettingRepository) SetSetting(key, value string) error {
	query := `
		INSERT INTO system_setting (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.Exec(query, key, value)
	if err != nil {
		return fmt.Errorf("failed to upsert system setting: %w", err)
	}
	return nil
}

// DeleteSetting removes a setting by key.
func (r *SettingRepository) DeleteSetting(key string) error {
	result, err := r.db.Exec(`DELETE FROM system_setting WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete system setting: %w", err)
	}
	return requireAffected(result, apperrors.ErrSettingNotFound)
}
