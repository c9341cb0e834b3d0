package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/zarmaks/gitfolio/core"
	"github.com/zarmaks/gitfolio/internal/contract"
	"github.com/zarmaks/gitfolio/internal/outwriter"
)

// portfolioCmd performs portfolio-level analysis for a GitHub user.
var portfolioCmd = &cobra.Command{
	Use:   "portfolio <username>",
	Short: "Score and rank all public repositories of a GitHub user.",
	Long: `Fetch a GitHub user's public repositories and rank them by quality score.

Each repository is scored on five weighted criteria (documentation, testing,
activity, popularity, organization) and assigned a tier. The report also
aggregates portfolio-wide signals, helping you:
- See which repositories best represent your work
- Find repositories dragging your profile down
- Understand your language mix and activity spread
- Get concrete, prioritized improvement suggestions

Examples:
  # Analyze a user's portfolio
  gitfolio portfolio octocat

  # Show only the top 10 repositories
  gitfolio portfolio octocat --limit 10

  # Refetch from the GitHub API, skipping the snapshot cache
  gitfolio portfolio octocat --refresh

  # Export findings to CSV for tracking
  gitfolio portfolio octocat --output csv --output-file portfolio.csv`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		input.UsernameStr = args[0]
		return sharedSetup(rootCtx, cmd, args)
	},
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		report, err := core.RunPortfolioAnalysis(rootCtx, cfg, newFetcher(), cacheManager)
		if err != nil {
			contract.LogFatal("Cannot run portfolio analysis", err)
		}
		if err := outwriter.WritePortfolioReport(report, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write portfolio report", err)
		}
	},
}
