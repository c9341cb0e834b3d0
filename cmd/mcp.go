package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zarmaks/gitfolio/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Gitfolio MCP server",
	Long:  `Launch an MCP server that allows AI agents to run portfolio analysis via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Suppress the normal header logs when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, newFetcher(), cacheManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
