package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zarmaks/gitfolio/internal/contract"
	"github.com/zarmaks/gitfolio/internal/outwriter"
)

// rolesCmd lists the built-in target roles.
var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the target roles available to the learn command.",
	Long: `Display the role catalog used for learning path matching.

For each role, shows the accepted aliases, the required skills with their
target levels, and the project ideas attached to the role.

Examples:
  # Browse all roles
  gitfolio roles

  # Export the catalog for tooling
  gitfolio roles --output json`,
	PreRunE: staticSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.WriteRoleCatalog(cfg.Catalog, cfg); err != nil {
			contract.LogFatal("Cannot write role catalog", err)
		}
	},
}
