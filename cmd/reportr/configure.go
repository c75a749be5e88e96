package main

import (
	"github.com/spf13/cobra"

	"github.com/reportr/reportr-go/internal/config"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Store the text-generation API key",
	Long: `Prompts for the API key of the configured provider and stores it in
the OS keychain, falling back to ~/.reportr/credentials.yaml when no
keychain is available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		creds := config.NewCredentialManager(logger)
		_, err := creds.PromptAndStore(cfg.LLM.Provider)
		return err
	},
}
