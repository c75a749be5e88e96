package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reportr/reportr-go/internal/config"
	"github.com/reportr/reportr-go/internal/git"
	"github.com/reportr/reportr-go/internal/llm"
	"github.com/reportr/reportr-go/internal/miner"
	"github.com/reportr/reportr-go/internal/report"
)

var (
	reportDays   int
	reportBranch string
	reportUsers  []string
	reportPath   string
	reportJSON   bool
	reportNoAI   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a progress report from repository history",
	Long: `Mines the repository's commit history over a time window, prints
contributor and commit statistics, and (unless disabled) asks the configured
text-generation provider for a written progress report.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().IntVar(&reportDays, "days", miner.DefaultDaysBack, "days to look back (0 = all time)")
	reportCmd.Flags().StringVar(&reportBranch, "branch", "", "branch to analyze (default: main, then master)")
	reportCmd.Flags().StringArrayVar(&reportUsers, "username", nil, "filter by contributor name (repeatable)")
	reportCmd.Flags().StringVar(&reportPath, "path", ".", "path to the repository")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "emit the raw mining result as JSON")
	reportCmd.Flags().BoolVar(&reportNoAI, "no-ai", false, "skip the AI-written report")
}

func runReport(cmd *cobra.Command, args []string) error {
	// Config supplies defaults only for flags the user did not set.
	if !cmd.Flags().Changed("days") {
		reportDays = cfg.Analysis.DaysBack
	}
	if !cmd.Flags().Changed("branch") {
		reportBranch = cfg.Analysis.Branch
	}

	m := miner.New(reportPath, logger)
	result, err := m.Mine(cmd.Context(), miner.Options{
		DaysBack:     reportDays,
		Branch:       reportBranch,
		Contributors: reportUsers,
	})
	if err != nil {
		if errors.Is(err, git.ErrNotRepository) {
			return fmt.Errorf("could not analyze repository: %s is not a git repository", reportPath)
		}
		return err
	}

	client, err := buildLLMClient(cmd)
	if err != nil {
		return err
	}
	reporter := report.New(os.Stdout, client, logger)

	if reportJSON {
		return reporter.WriteJSON(result)
	}

	reporter.Render(result, reportBranch, cfg.Analysis.PromptCommitLimit)

	if reportNoAI {
		return nil
	}
	text, err := reporter.Generate(cmd.Context(), result, reportBranch, cfg.Analysis.PromptCommitLimit)
	if errors.Is(err, llm.ErrDisabled) {
		logger.Info("text generation disabled, skipping AI report")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func buildLLMClient(cmd *cobra.Command) (*llm.Client, error) {
	apiKey := ""
	if !reportNoAI && !reportJSON {
		creds := config.NewCredentialManager(logger)
		key, err := creds.APIKey(cfg.LLM.Provider, false)
		if err != nil {
			logger.WithError(err).Warn("could not resolve API key")
		}
		apiKey = key
	}
	return llm.NewClient(cmd.Context(), cfg, apiKey, logger)
}
