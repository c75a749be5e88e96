package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// envKeysByProvider lists the environment variables consulted for each
// provider, highest priority first.
var envKeysByProvider = map[string][]string{
	"openai": {"OPENAI_API_KEY"},
	"azure":  {"AZURE_OPENAI_KEY", "OPENAI_API_KEY"},
	"gemini": {"GEMINI_API_KEY"},
}

// CredentialManager resolves the text-generation API key with a priority
// chain: environment variables, OS keychain, credentials file, interactive
// prompt.
type CredentialManager struct {
	keyring    *KeyringManager
	configPath string
	log        *logrus.Entry
}

// Credentials is the on-disk fallback for environments without a keychain.
type Credentials struct {
	APIKey string `yaml:"api_key"`
}

// NewCredentialManager creates a credential manager.
func NewCredentialManager(logger *logrus.Logger) *CredentialManager {
	homeDir, _ := os.UserHomeDir()
	return &CredentialManager{
		keyring:    NewKeyringManager(logger),
		configPath: filepath.Join(homeDir, ".reportr", "credentials.yaml"),
		log:        logger.WithField("component", "credentials"),
	}
}

// APIKey resolves the API key for the given provider. Returns an empty
// string when nothing is configured and prompting is disabled.
func (cm *CredentialManager) APIKey(provider string, interactive bool) (string, error) {
	// 1. Environment variables (highest priority)
	for _, name := range envKeysByProvider[strings.ToLower(provider)] {
		if key := os.Getenv(name); key != "" {
			return key, nil
		}
	}

	// 2. OS keychain
	if cm.keyring.IsAvailable() {
		if key, err := cm.keyring.GetAPIKey(); err == nil && key != "" {
			return key, nil
		}
	}

	// 3. Credentials file
	if creds, err := cm.loadFile(); err == nil && creds.APIKey != "" {
		return creds.APIKey, nil
	}

	// 4. Interactive prompt
	if interactive {
		return cm.PromptAndStore(provider)
	}
	return "", nil
}

// Store persists the API key, preferring the keychain and falling back to
// the credentials file.
func (cm *CredentialManager) Store(apiKey string) error {
	if cm.keyring.IsAvailable() {
		return cm.keyring.SaveAPIKey(apiKey)
	}

	cm.log.Warn("OS keychain unavailable, storing credentials on disk")
	if err := os.MkdirAll(filepath.Dir(cm.configPath), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(&Credentials{APIKey: apiKey})
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.WriteFile(cm.configPath, data, 0o600); err != nil {
		return fmt.Errorf("write credentials file: %w", err)
	}
	return nil
}

func (cm *CredentialManager) loadFile() (*Credentials, error) {
	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return nil, err
	}
	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse %s: %w", cm.configPath, err)
	}
	return &creds, nil
}

// PromptAndStore reads an API key from the terminal without echo and
// persists it for later runs.
func (cm *CredentialManager) PromptAndStore(provider string) (string, error) {
	fmt.Fprintf(os.Stderr, "Enter %s API key: ", provider)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read api key: %w", err)
	}

	key := strings.TrimSpace(string(raw))
	if key == "" {
		return "", fmt.Errorf("no api key provided")
	}
	if err := cm.Store(key); err != nil {
		cm.log.WithError(err).Warn("could not persist api key, using it for this run only")
	}
	return key, nil
}
