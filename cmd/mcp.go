package cmd

import (
	"github.com/huangsam/uatpulse/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [feed]",
	Short: "Start the UAT Pulse MCP server",
	Long: `Launch an MCP server over stdio so that AI agents can read the dashboard,
countdown, planned series, business days and daily status report as tools.

Each tool accepts an optional feed argument; the positional feed is the default.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs go to stderr so stdio stays free for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
