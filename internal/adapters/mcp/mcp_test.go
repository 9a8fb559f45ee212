package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"shelfmark/internal/adapters/memory"
	"shelfmark/internal/application/commands"
	"shelfmark/internal/domain"
)

func call(t *testing.T, h server.ToolHandlerFunc, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("%s returned a protocol error: %v", name, err)
	}
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want text", res.Content[0])
	}
	return tc.Text
}

func TestDashboardTool(t *testing.T) {
	store := memory.New()
	work := store.SeedFolder(domain.ToolbarID, "Work")
	store.SeedBookmark(work, "Go", "https://go.dev")
	store.SeedBookmark(domain.MenuID, "", "https://loose.example")

	res := call(t, dashboardHandler(store), "dashboard", nil)
	if res.IsError {
		t.Fatalf("dashboard failed: %s", text(t, res))
	}
	out := text(t, res)
	for _, want := range []string{"Work  [" + work + "]", "Go  https://go.dev", "Uncategorized", "https://loose.example"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard output missing %q:\n%s", want, out)
		}
	}
}

func TestGetTool(t *testing.T) {
	store := memory.New()
	work := store.SeedFolder(domain.ToolbarID, "Work")

	tests := []struct {
		name    string
		args    map[string]any
		wantErr bool
		want    string
	}{
		{name: "folder", args: map[string]any{"id": work}, want: `folder  "Work"`},
		{name: "missing id", args: map[string]any{}, wantErr: true},
		{name: "unknown id", args: map[string]any{"id": "nope"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := call(t, getHandler(store), "get", tt.args)
			if res.IsError != tt.wantErr {
				t.Fatalf("IsError = %v, want %v (%s)", res.IsError, tt.wantErr, text(t, res))
			}
			if tt.want != "" && !strings.Contains(text(t, res), tt.want) {
				t.Errorf("get = %q, want it to contain %q", text(t, res), tt.want)
			}
		})
	}
}

func TestWriteTools(t *testing.T) {
	store := memory.New()
	gw := commands.NewGateway(store)
	ctx := context.Background()

	res := call(t, createFolderHandler(gw), "create_folder", map[string]any{"name": "Work"})
	if res.IsError {
		t.Fatalf("create_folder failed: %s", text(t, res))
	}
	tree, _ := store.GetTree(ctx)
	p := domain.ProjectTree(tree)
	if len(p.Folders) != 1 || p.Folders[0].Title != "Work" {
		t.Fatalf("folders = %+v, want Work", p.Folders)
	}
	work := p.Folders[0].ID

	res = call(t, addBookmarkHandler(gw), "add_bookmark", map[string]any{"url": "https://go.dev", "title": "Go", "folder_id": work})
	if res.IsError {
		t.Fatalf("add_bookmark failed: %s", text(t, res))
	}

	res = call(t, renameFolderHandler(gw), "rename_folder", map[string]any{"id": work, "name": "Job"})
	if res.IsError || !strings.Contains(text(t, res), "Job") {
		t.Fatalf("rename_folder = %q", text(t, res))
	}

	sub := store.SeedFolder(work, "Sub")
	res = call(t, moveHandler(gw), "move", map[string]any{"source_id": work, "destination_id": sub})
	if !res.IsError {
		t.Error("moving a folder into its own subfolder should fail")
	}

	res = call(t, createFolderHandler(gw), "create_folder", map[string]any{"name": "  "})
	if !res.IsError {
		t.Error("blank folder name should fail")
	}
}

func TestRemoveTool_RequiresConfirm(t *testing.T) {
	store := memory.New()
	gw := commands.NewGateway(store)
	work := store.SeedFolder(domain.ToolbarID, "Work")
	store.SeedBookmark(work, "Go", "https://go.dev")

	tests := []struct {
		name    string
		args    map[string]any
		wantErr bool
		removed bool
	}{
		{name: "no confirm", args: map[string]any{"id": work}, wantErr: true},
		{name: "confirm false", args: map[string]any{"id": work, "confirm": false}, wantErr: true},
		{name: "confirmed", args: map[string]any{"id": work, "confirm": true}, removed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := call(t, removeHandler(gw), "remove", tt.args)
			if res.IsError != tt.wantErr {
				t.Fatalf("IsError = %v, want %v (%s)", res.IsError, tt.wantErr, text(t, res))
			}
			_, err := store.Get(context.Background(), work)
			if removed := err != nil; removed != tt.removed {
				t.Errorf("removed = %v, want %v", removed, tt.removed)
			}
		})
	}
}
