package service

import (
	"database/sql"
	"fmt"

	"github.com/moneymap/moneymap-backend/internal/database"
	"github.com/moneymap/moneymap-backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// VersionInfo pairs the build version with the applied schema version.
type VersionInfo struct {
	AppVersion string `json:"appVersion"`
	DBVersion  int64  `json:"dbVersion"`
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion returns the build version and the latest applied migration.
func (s *SystemService) CheckVersion() (VersionInfo, error) {
	info := VersionInfo{AppVersion: version.Version}
	err := s.db.QueryRow(
		`SELECT version_id FROM goose_db_version ORDER BY id DESC LIMIT 1`,
	).Scan(&info.DBVersion)
	if err != nil {
		return VersionInfo{}, fmt.Errorf("failed to read schema version: %w", err)
	}
	return info, nil
}
