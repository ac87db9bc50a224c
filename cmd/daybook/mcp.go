package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/pkg/config"
	"github.com/daybook-app/daybook/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the daybook MCP server on stdio",
	Long: `Starts a Model Context Protocol server that exposes the journal over stdio.
MCP clients can save, read, search, filter, tag, analyze, export, and import
entries through the registered tools.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := dbPath
		if path == "" {
			settings, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			path = settings.DBPath
		}

		srv, err := mcp.NewDaybookMCPServer(path)
		if err != nil {
			return fmt.Errorf("failed to start MCP server: %w", err)
		}
		defer srv.Close()

		srv.RegisterAllTools()

		fmt.Fprintf(os.Stderr, "Daybook MCP server running on stdio (database: %s)\n", srv.DbPath)
		return srv.Start()
	},
}
