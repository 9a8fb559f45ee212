package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"shelfmark/internal/application/commands"
)

// RegisterWriteTools adds the mutating bookmark tools to the MCP server.
// Every tool goes through the gateway.
func RegisterWriteTools(s *server.MCPServer, gw *commands.Gateway) {
	s.AddTool(createFolderTool(), createFolderHandler(gw))
	s.AddTool(renameFolderTool(), renameFolderHandler(gw))
	s.AddTool(addBookmarkTool(), addBookmarkHandler(gw))
	s.AddTool(moveTool(), moveHandler(gw))
	s.AddTool(removeTool(), removeHandler(gw))
}

// --- create_folder ---

func createFolderTool() mcp.Tool {
	return mcp.NewTool("create_folder",
		mcp.WithDescription("Create a new bookmark folder."),
		mcp.WithString("name",
			mcp.Description("Folder name"),
			mcp.Required(),
		),
		mcp.WithString("parent_id",
			mcp.Description("Folder to create it in. Omit to use the default container."),
		),
	)
}

func createFolderHandler(gw *commands.Gateway) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := gw.CreateFolder(ctx, req.GetString("name", ""), req.GetString("parent_id", ""))
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s [%s]", result.Message, result.Folder.ID)), nil
	}
}

// --- rename_folder ---

func renameFolderTool() mcp.Tool {
	return mcp.NewTool("rename_folder",
		mcp.WithDescription("Rename a bookmark folder."),
		mcp.WithString("id",
			mcp.Description("Folder ID"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("New folder name"),
			mcp.Required(),
		),
	)
}

func renameFolderHandler(gw *commands.Gateway) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := gw.RenameFolder(ctx, req.GetString("id", ""), req.GetString("name", ""))
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- add_bookmark ---

func addBookmarkTool() mcp.Tool {
	return mcp.NewTool("add_bookmark",
		mcp.WithDescription("Add a bookmark to a folder."),
		mcp.WithString("url",
			mcp.Description("Bookmark URL"),
			mcp.Required(),
		),
		mcp.WithString("title",
			mcp.Description("Bookmark title. Omit to show the URL instead."),
		),
		mcp.WithString("folder_id",
			mcp.Description("Folder to add it to. Omit to use the default container."),
		),
	)
}

func addBookmarkHandler(gw *commands.Gateway) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := gw.AddItem(ctx, req.GetString("folder_id", ""), req.GetString("url", ""), req.GetString("title", ""))
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s [%s]", result.Message, result.Item.ID)), nil
	}
}

// --- move ---

func moveTool() mcp.Tool {
	return mcp.NewTool("move",
		mcp.WithDescription("Move a folder or bookmark into another folder. Moving a folder into itself or one of its descendants is refused."),
		mcp.WithString("source_id",
			mcp.Description("ID of the folder or bookmark to move"),
			mcp.Required(),
		),
		mcp.WithString("destination_id",
			mcp.Description("ID of the destination folder"),
			mcp.Required(),
		),
	)
}

func moveHandler(gw *commands.Gateway) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := gw.MoveNode(ctx, req.GetString("source_id", ""), req.GetString("destination_id", ""))
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- remove ---

func removeTool() mcp.Tool {
	return mcp.NewTool("remove",
		mcp.WithDescription("Remove a bookmark, or a folder with everything in it. This cannot be undone."),
		mcp.WithString("id",
			mcp.Description("ID of the folder or bookmark to remove"),
			mcp.Required(),
		),
		mcp.WithBoolean("confirm",
			mcp.Description("Must be true to perform the removal"),
			mcp.Required(),
		),
	)
}

func removeHandler(gw *commands.Gateway) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !req.GetBool("confirm", false) {
			return toolError(fmt.Errorf("removal not confirmed: set confirm to true"))
		}

		result, err := gw.Confirming(commands.AutoConfirm(true)).Remove(ctx, req.GetString("id", ""))
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
