package main

import (
	"context"
	"flag"

	"github.com/golang/glog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "shelfmark/internal/adapters/mcp"
	"shelfmark/internal/adapters/sqlite"
	"shelfmark/internal/application/commands"
	"shelfmark/internal/config"
)

func main() {
	dbFlag := flag.String("db", "", "path to the bookmark database (default $SHELFMARK_DB)")
	flag.Parse()
	defer glog.Flush()

	cfg, err := config.Load()
	if err != nil {
		glog.Exitf("shelfmark-mcp: %v", err)
	}
	if *dbFlag != "" {
		cfg.DatabasePath = *dbFlag
	}

	store := sqlite.NewStore()
	if err := store.Open(cfg.DatabasePath); err != nil {
		glog.Exitf("shelfmark-mcp: %v", err)
	}
	defer store.Close()

	gw := commands.NewGateway(store, commands.WithDefaultParent(cfg.DefaultParent))

	mcpServer := server.NewMCPServer(
		"shelfmark-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store)
	mcpadapter.RegisterWriteTools(mcpServer, gw)

	if err := server.ServeStdio(mcpServer); err != nil {
		glog.Exitf("shelfmark-mcp: %v", err)
	}
}
