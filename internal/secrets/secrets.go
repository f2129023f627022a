// Package secrets stores sensitive configuration values, such as the market
// data API key, fernet-encrypted in the system_setting table.
package secrets

import (
	"fmt"

	"github.com/fernet/fernet-go"
	"github.com/moneymap/moneymap-backend/internal/repository"
)

// Store encrypts values before persisting them and decrypts on read.
// Tokens never expire; rotation happens by overwriting the setting.
type Store struct {
	settingRepo *repository.SettingRepository
	key         *fernet.Key
}

// NewStore creates a Store over the given repository. encodedKey is a
// base64-encoded 32-byte fernet key.
func NewStore(settingRepo *repository.SettingRepository, encodedKey string) (*Store, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid secret key: %w", err)
	}
	return &Store{settingRepo: settingRepo, key: key}, nil
}

// Set encrypts the value and persists it under key.
func (s *Store) Set(key, value string) error {
	token, err := fernet.EncryptAndSign([]byte(value), s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt secret %s: %w", key, err)
	}
	return s.settingRepo.SetSetting(key, string(token))
}

// Get retrieves and decrypts the value stored under key.
func (s *Store) Get(key string) (string, error) {
	token, err := s.settingRepo.GetSetting(key)
	if err != nil {
		return "", err
	}
	plain := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{s.key})
	if plain == nil {
		return "", fmt.Errorf("failed to decrypt secret %s: token invalid or key rotated", key)
	}
	return string(plain), nil
}

// Delete removes a stored secret.
func (s *Store) Delete(key string) error {
	return s.settingRepo.DeleteSetting(key)
}
