package application

import (
	"strings"
	"testing"

	"shelfmark/internal/domain"
)

func TestWriteDashboard(t *testing.T) {
	root := &domain.Node{ID: domain.RootID, Kind: domain.KindFolder, Children: []*domain.Node{
		{ID: domain.ToolbarID, Kind: domain.KindFolder, Children: []*domain.Node{
			{ID: "work", Kind: domain.KindFolder, Title: "Work", Children: []*domain.Node{
				{ID: "a", Kind: domain.KindBookmark, Title: "A", URL: "https://a.example"},
				{ID: "sub", Kind: domain.KindFolder, Title: "Sub"},
			}},
		}},
	}}

	var b strings.Builder
	if err := WriteDashboard(&b, domain.ProjectTree(root)); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"Work  [work]",
		"  A  https://a.example  [a]",
		"Sub  [sub]  (in Work)",
		"  (empty)",
		"Uncategorized",
		"  (empty)",
		"",
	}, "\n")
	if b.String() != want {
		t.Errorf("WriteDashboard() =\n%s\nwant\n%s", b.String(), want)
	}
}

func TestFormatNode(t *testing.T) {
	tests := []struct {
		name string
		node *domain.Node
		want string
	}{
		{
			name: "folder",
			node: &domain.Node{ID: "f1", Kind: domain.KindFolder, Title: "Work", ParentID: domain.ToolbarID},
			want: `f1  folder  "Work"  parent=toolbar_____`,
		},
		{
			name: "bookmark",
			node: &domain.Node{ID: "b1", Kind: domain.KindBookmark, Title: "Go", URL: "https://go.dev", ParentID: "f1"},
			want: `b1  bookmark  "Go"  https://go.dev  parent=f1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatNode(tt.node); got != tt.want {
				t.Errorf("FormatNode() = %q, want %q", got, tt.want)
			}
		})
	}
}
