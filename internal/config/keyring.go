package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name in the OS keychain
	KeyringService = "Reportr"

	// KeyringAPIKeyItem is the key for the text-generation API key
	KeyringAPIKeyItem = "llm-api-key"
)

// KeyringManager handles secure credential storage in the OS keychain.
// macOS Keychain, Windows Credential Manager, Linux Secret Service.
type KeyringManager struct {
	log *logrus.Entry
}

// NewKeyringManager creates a new keyring manager.
func NewKeyringManager(logger *logrus.Logger) *KeyringManager {
	return &KeyringManager{
		log: logger.WithField("component", "keyring"),
	}
}

// SaveAPIKey stores the API key in the OS keychain.
func (km *KeyringManager) SaveAPIKey(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("api key cannot be empty")
	}

	if err := keyring.Set(KeyringService, KeyringAPIKeyItem, apiKey); err != nil {
		km.log.WithError(err).Error("failed to save API key to keychain")
		return fmt.Errorf("failed to save to OS keychain: %w", err)
	}

	km.log.WithField("service", KeyringService).Info("api key saved to keychain")
	return nil
}

// GetAPIKey retrieves the API key from the OS keychain. A missing entry is
// not an error, just an empty result.
func (km *KeyringManager) GetAPIKey() (string, error) {
	apiKey, err := keyring.Get(KeyringService, KeyringAPIKeyItem)
	if err == keyring.ErrNotFound {
		return "", nil
	}
	if err != nil {
		km.log.WithError(err).Error("failed to get API key from keychain")
		return "", fmt.Errorf("failed to read from OS keychain: %w", err)
	}
	return apiKey, nil
}

// DeleteAPIKey removes the stored API key, if any.
func (km *KeyringManager) DeleteAPIKey() error {
	err := keyring.Delete(KeyringService, KeyringAPIKeyItem)
	if err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("failed to delete from OS keychain: %w", err)
	}
	return nil
}

// IsAvailable reports whether the OS keychain backend works in this
// environment (headless Linux without a secret service will not).
func (km *KeyringManager) IsAvailable() bool {
	const probe = "reportr-keyring-probe"
	if err := keyring.Set(KeyringService, probe, "ok"); err != nil {
		return false
	}
	keyring.Delete(KeyringService, probe)
	return true
}
