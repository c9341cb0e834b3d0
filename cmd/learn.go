package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zarmaks/gitfolio/core"
	"github.com/zarmaks/gitfolio/internal/contract"
	"github.com/zarmaks/gitfolio/internal/outwriter"
)

// learnCmd matches a portfolio against a target role.
var learnCmd = &cobra.Command{
	Use:   "learn <username> <role>",
	Short: "Compare a portfolio against a target role and suggest what to learn next.",
	Long: `Match the skills visible in a GitHub portfolio against a target engineering role.

Skill evidence is inferred from repository languages, topics, and quality
signals, then compared against the role's required skill levels to find gaps,
helping you:
- See which required skills your public work already demonstrates
- Find the biggest gaps between your portfolio and the role
- Get curated learning resources for each gap
- Pick a next project that closes multiple gaps at once

Role names match case-insensitively and accept common aliases
(e.g. 'mlops' for 'MLOps Engineer'). Run 'gitfolio roles' for the full list.

Examples:
  # Match against a role by alias
  gitfolio learn octocat backend

  # Highlight the top 5 gaps instead of the default 3
  gitfolio learn octocat "mlops engineer" --top-gaps 5

  # Machine-readable gap report
  gitfolio learn octocat data-engineer --output json`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		input.UsernameStr = args[0]
		input.RoleStr = args[1]
		return sharedSetup(rootCtx, cmd, args)
	},
	Run: func(_ *cobra.Command, _ []string) {
		set, err := core.ResolveSnapshots(rootCtx, cfg, newFetcher(), cacheManager)
		if err != nil {
			contract.LogFatal("Cannot fetch repository snapshots", err)
		}
		engine := core.NewEngine(cfg.Weights, cfg.Catalog, core.WithTopGaps(cfg.TopGaps))
		report, err := engine.SuggestLearningPath(set, cfg.Role)
		if err != nil {
			contract.LogFatal("Cannot build learning path", err)
		}
		if err := outwriter.WriteLearningPathReport(report, cfg); err != nil {
			contract.LogFatal("Cannot write learning path report", err)
		}
	},
}
