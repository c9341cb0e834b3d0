package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/zarmaks/gitfolio/core"
	"github.com/zarmaks/gitfolio/internal/contract"
	"github.com/zarmaks/gitfolio/internal/outwriter"
)

// checkCmd focused on CI/CD quality gating.
var checkCmd = &cobra.Command{
	Use:   "check <username>",
	Short: "Enforce a minimum portfolio score (fails with non-zero exit on violations)",
	Long: `Analyze a portfolio and enforce a minimum average score threshold.

Designed for CI/CD and automation - exits with a non-zero code when the
portfolio's average score falls below the threshold.

Default threshold: 50.0

Use cases:
- Profile health checks on a schedule
- Classroom or bootcamp portfolio requirements
- Personal quality bars before job applications

Examples:
  # Gate against the default threshold
  gitfolio check octocat

  # Require a stricter average score
  gitfolio check octocat --threshold 70

  # Machine-readable verdict for pipelines
  gitfolio check octocat --threshold 60 --output json`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		input.UsernameStr = args[0]
		return sharedSetup(rootCtx, cmd, args)
	},
	Run: func(_ *cobra.Command, _ []string) {
		report, err := core.RunPortfolioAnalysis(rootCtx, cfg, newFetcher(), cacheManager)
		if err != nil {
			contract.LogFatal("Cannot run portfolio analysis", err)
		}
		verdict := core.EvaluateGate(report, cfg.CheckThreshold)
		if err := outwriter.WriteCheckReport(&verdict, cfg); err != nil {
			contract.LogFatal("Cannot write check report", err)
		}
		if !verdict.Passed {
			os.Exit(1)
		}
	},
}
