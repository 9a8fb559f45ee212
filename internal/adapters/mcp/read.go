package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"shelfmark/internal/application"
	"shelfmark/internal/domain"
	"shelfmark/internal/ports"
)

// RegisterReadTools adds the read-only bookmark tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store ports.TreeReader) {
	s.AddTool(dashboardTool(), dashboardHandler(store))
	s.AddTool(getTool(), getHandler(store))
}

// --- dashboard ---

func dashboardTool() mcp.Tool {
	return mcp.NewTool("dashboard",
		mcp.WithDescription("Show the bookmark dashboard: every folder under the menu and toolbar with its bookmarks, then the uncategorized bookmarks. IDs are shown in brackets."),
	)
}

func dashboardHandler(store ports.TreeReader) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root, err := store.GetTree(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		if err := application.WriteDashboard(&sb, domain.ProjectTree(root)); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- get ---

func getTool() mcp.Tool {
	return mcp.NewTool("get",
		mcp.WithDescription("Get a single folder or bookmark by ID."),
		mcp.WithString("id",
			mcp.Description("Node ID as shown by the dashboard tool"),
			mcp.Required(),
		),
	)
}

func getHandler(store ports.TreeReader) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}

		node, err := store.Get(ctx, id)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(application.FormatNode(node)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
