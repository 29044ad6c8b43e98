package cli

import (
	"github.com/spf13/cobra"

	"github.com/blakemt/pufflog/cmd/pufflog/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server",
	Long: `Run pufflog as an MCP (Model Context Protocol) server over stdio.

Exposes tools for querying sessions, reading statistics, and logging
new sessions from MCP clients.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	return mcp.StartServer(dbPath)
}
