// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package main

import (
	"github.com/korrel8r/implindex/internal/pkg/must"
	"github.com/korrel8r/implindex/pkg/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP stdio server",
	Long: `Run implindex as an MCP server communicating via stdin/stdout.
Allows implindex to be run as a sub-process by an MCP tool.
For a HTTP streaming server use the 'web' command with the '--mcp' flag.
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		l := load()
		server := mcp.NewServer(l.Registry, l.Exclude)
		log.Info("MCP server starting on stdio.")
		must.Must(server.ServeStdio(ctx))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
