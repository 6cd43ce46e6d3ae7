package main

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"tagwalk/internal/logging"
	mcpserver "tagwalk/internal/mcp"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Long: `Starts an MCP server over stdin/stdout exposing the loaded table through the
list_classes, collect and search_config tools.

The server monitors for parent process death and shuts down when the client
that spawned it goes away.`,
		Args: cobra.NoArgs,
		RunE: a.runServe,
	}
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	tbl, err := a.loadTable()
	if err != nil {
		return err
	}
	srv := mcpserver.NewServer(tbl, version)
	srv.Parallel = a.cfg.Parallel

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting tagwalk MCP server over stdio (parent watchdog active)",
		"table", a.cfg.Table, "classes", len(tbl.Classes()))
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
