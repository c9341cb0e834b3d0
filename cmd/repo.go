package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/zarmaks/gitfolio/core"
	"github.com/zarmaks/gitfolio/internal/contract"
	"github.com/zarmaks/gitfolio/internal/outwriter"
)

// repoCmd performs a deep dive on a single repository.
var repoCmd = &cobra.Command{
	Use:   "repo <username> <repo>",
	Short: "Show the full score breakdown for one repository.",
	Long: `Produce a detailed quality report for a single repository.

Shows the per-criterion breakdown behind the overall score so you can see
exactly where points are gained and lost, helping you:
- Understand why a repository scored the way it did
- Prioritize which criterion to improve first
- Track the effect of improvements over repeated runs

Examples:
  # Inspect one repository in depth
  gitfolio repo octocat hello-world

  # Machine-readable breakdown for tooling
  gitfolio repo octocat hello-world --output json

  # Refetch from the GitHub API, skipping the snapshot cache
  gitfolio repo octocat hello-world --refresh`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		input.UsernameStr = args[0]
		input.RepoNameStr = args[1]
		return sharedSetup(rootCtx, cmd, args)
	},
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		set, err := core.ResolveSnapshots(rootCtx, cfg, newFetcher(), cacheManager)
		if err != nil {
			contract.LogFatal("Cannot fetch repository snapshots", err)
		}
		engine := core.NewEngine(cfg.Weights, cfg.Catalog, core.WithResultLimit(cfg.ResultLimit))
		report, err := engine.AnalyzeRepository(set, cfg.RepoName)
		if err != nil {
			contract.LogFatal("Cannot run repository analysis", err)
		}
		if err := outwriter.WriteRepositoryReport(report, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write repository report", err)
		}
	},
}
