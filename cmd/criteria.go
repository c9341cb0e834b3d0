package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zarmaks/gitfolio/internal/contract"
	"github.com/zarmaks/gitfolio/internal/outwriter"
)

// criteriaCmd documents the scoring model.
var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Show the scoring criteria and their effective weights.",
	Long: `Display the five scoring criteria with the weights currently in effect.

Weights can be overridden in the config file under the 'weights' key and are
renormalized to sum to 1.0, so this command shows the effective values after
overrides are applied.

Examples:
  # Show the effective scoring model
  gitfolio criteria

  # Verify weight overrides from a config file
  gitfolio criteria --config ./custom.yaml`,
	PreRunE: staticSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.WriteCriteriaDefinitions(cfg.Weights, cfg); err != nil {
			contract.LogFatal("Cannot write criteria definitions", err)
		}
	},
}
