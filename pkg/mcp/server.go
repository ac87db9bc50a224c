// Package mcp exposes the journal operations as MCP tools over stdio, so
// model-driven clients can read and write the journal through the same core
// the CLI uses.
package mcp

import (
	"database/sql"
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	daybook "github.com/daybook-app/daybook/pkg"
	pkgdb "github.com/daybook-app/daybook/pkg/db"
	"github.com/daybook-app/daybook/pkg/utils"
)

// DaybookMCPServer bundles the MCP server with its backing database.
type DaybookMCPServer struct {
	mcpServer *server.MCPServer
	db        *sql.DB
	DbPath    string
}

// NewDaybookMCPServer spins up an MCP server backed by the SQLite database at
// dbPath, creating and migrating the database if needed. An empty dbPath uses
// the per-OS default install path.
func NewDaybookMCPServer(dbPath string) (*DaybookMCPServer, error) {
	resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, err
	}

	s := server.NewMCPServer(
		"Daybook MCP Server",
		daybook.Version,
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	dbConn, err := pkgdb.OpenDBConnection(resolvedPath, true, "FULL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := pkgdb.UpgradeDB(dbConn, resolvedPath, pkgdb.TargetSchemaVersion); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("failed to initialize/upgrade database schema for '%s': %w", resolvedPath, err)
	}

	return &DaybookMCPServer{
		mcpServer: s,
		db:        dbConn,
		DbPath:    resolvedPath,
	}, nil
}

// RegisterAllTools wires every journal tool onto the server.
func (s *DaybookMCPServer) RegisterAllTools() {
	RegisterPingTool(s.mcpServer)
	RegisterSaveEntryTool(s.mcpServer, s.db)
	RegisterGetEntryTool(s.mcpServer, s.db)
	RegisterDeleteEntryTool(s.mcpServer, s.db)
	RegisterListEntriesTool(s.mcpServer, s.db)
	RegisterSearchEntriesTool(s.mcpServer, s.db)
	RegisterFilterEntriesTool(s.mcpServer, s.db)
	RegisterSetEntryTagsTool(s.mcpServer, s.db)
	RegisterGetEntryTagsTool(s.mcpServer, s.db)
	RegisterListTagsTool(s.mcpServer, s.db)
	RegisterJournalStatsTool(s.mcpServer, s.db)
	RegisterJournalStreaksTool(s.mcpServer, s.db)
	RegisterExportJournalTool(s.mcpServer, s.db)
	RegisterImportJournalTool(s.mcpServer, s.db)
}

// Start runs the stdio event loop. Make sure to register tools beforehand.
func (s *DaybookMCPServer) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// DB returns the underlying *sql.DB.
func (s *DaybookMCPServer) DB() *sql.DB {
	return s.db
}

// Close cleans up allocated resources.
func (s *DaybookMCPServer) Close() error {
	if s.db != nil {
		// TRUNCATE mode waits for transactions and writes the WAL back to the main DB.
		if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
			log.Warn().Err(err).Msg("WAL checkpoint failed during close")
		}
		return s.db.Close()
	}
	return nil
}
