package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration settings.
type Config struct {
	// Analysis defaults for the history miner
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`

	// LLM collaborator configuration
	LLM LLMConfig `yaml:"llm" mapstructure:"llm"`
}

type AnalysisConfig struct {
	DaysBack          int    `yaml:"days_back" mapstructure:"days_back"`                     // 0 = all time
	Branch            string `yaml:"branch" mapstructure:"branch"`                           // empty = main/master fallback
	PromptCommitLimit int    `yaml:"prompt_commit_limit" mapstructure:"prompt_commit_limit"` // commits included in the LLM context
}

type LLMConfig struct {
	Provider        string  `yaml:"provider" mapstructure:"provider"`         // "openai", "azure", "gemini", "none"
	Model           string  `yaml:"model" mapstructure:"model"`
	APIKey          string  `yaml:"api_key" mapstructure:"api_key"`
	AzureEndpoint   string  `yaml:"azure_endpoint" mapstructure:"azure_endpoint"`
	AzureDeployment string  `yaml:"azure_deployment" mapstructure:"azure_deployment"`
	MaxTokens       int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature     float32 `yaml:"temperature" mapstructure:"temperature"`
	UseKeychain     bool    `yaml:"use_keychain" mapstructure:"use_keychain"` // prefer keychain over config file
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			DaysBack:          30,
			PromptCommitLimit: 20,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			MaxTokens:   2000,
			Temperature: 0.7,
			UseKeychain: true,
		},
	}
}

// Load loads configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	// Load .env files first (in order of precedence)
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	// Set defaults
	cfg := Default()
	v.SetDefault("analysis", cfg.Analysis)
	v.SetDefault("llm", cfg.LLM)

	// Load from environment variables
	v.SetEnvPrefix("REPORTR")
	v.AutomaticEnv()

	// Try to find config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		// Search for config in standard locations
		v.SetConfigName("config")
		v.AddConfigPath(".reportr")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".reportr"))
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	// Unmarshal into struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence.
func loadEnvFiles() {
	envFiles := []string{
		".env.local", // Local overrides (highest precedence)
		".env",       // Main environment file
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}

	// Also try loading from home directory
	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".reportr", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		godotenv.Load(homeEnvFile)
	}
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if provider := os.Getenv("REPORTR_LLM_PROVIDER"); provider != "" {
		cfg.LLM.Provider = provider
	}
	if model := os.Getenv("REPORTR_LLM_MODEL"); model != "" {
		cfg.LLM.Model = model
	}
	if endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT"); endpoint != "" {
		cfg.LLM.AzureEndpoint = endpoint
	}
	if deployment := os.Getenv("AZURE_OPENAI_DEPLOYMENT"); deployment != "" {
		cfg.LLM.AzureDeployment = deployment
	}
}
