// Package cmd defines the command-line interface for gitfolio.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zarmaks/gitfolio/internal/contract"
	"github.com/zarmaks/gitfolio/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(portfolioCmd)
	rootCmd.AddCommand(repoCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rolesCmd)
	rootCmd.AddCommand(criteriaCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("token", "", "GitHub API token (raises rate limits, enables private API quotas)")
	rootCmd.PersistentFlags().String("api-url", "", "GitHub API base URL override (for GitHub Enterprise)")
	rootCmd.PersistentFlags().String("timeout", "", "HTTP timeout for GitHub API requests (e.g. 30s)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of ranked repositories to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emoji in text output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Bool("refresh", false, "Bypass the snapshot cache and refetch from the GitHub API")
	rootCmd.PersistentFlags().String("cache-ttl", "", "Snapshot cache freshness window (e.g. 6h, 30m)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("history-backend", "", "History tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for history tracking (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of learnCmd to Viper
	learnCmd.Flags().Int("top-gaps", contract.DefaultTopGaps, "Number of top skill gaps to highlight")
	if err := viper.BindPFlags(learnCmd.Flags()); err != nil {
		contract.LogFatal("Error binding learn flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().Float64("threshold", contract.DefaultCheckThreshold, "Minimum average portfolio score for the gate to pass")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
