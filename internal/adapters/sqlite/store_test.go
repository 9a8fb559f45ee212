package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"shelfmark/internal/application"
	"shelfmark/internal/application/commands"
	"shelfmark/internal/domain"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s := NewStore()
	if err := s.Open(path); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return openTestStore(t, filepath.Join(t.TempDir(), "bookmarks.db"))
}

func mustCreate(t *testing.T, s *Store, parent string, kind domain.NodeKind, title, url string) *domain.Node {
	t.Helper()
	n, err := s.Create(context.Background(), domain.CreateProps{ParentID: parent, Kind: kind, Title: title, URL: url})
	if err != nil {
		t.Fatalf("Create(%s) failed: %v", title, err)
	}
	return n
}

func titles(nodes []*domain.Node) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.Title)
	}
	return out
}

func TestOpen_SeedsBuiltins(t *testing.T) {
	s := newTestStore(t)

	root, err := s.GetTree(context.Background())
	if err != nil {
		t.Fatalf("GetTree failed: %v", err)
	}
	if root.ID != domain.RootID {
		t.Fatalf("root ID = %q", root.ID)
	}
	if len(root.Children) != len(domain.BuiltinContainers) {
		t.Fatalf("root has %d children, want %d", len(root.Children), len(domain.BuiltinContainers))
	}
	for i, b := range domain.BuiltinContainers {
		if root.Children[i].ID != b.ID || root.Children[i].Title != b.Title {
			t.Errorf("child %d = %s %q, want %s %q", i, root.Children[i].ID, root.Children[i].Title, b.ID, b.Title)
		}
	}
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.db")

	first := NewStore()
	if err := first.Open(path); err != nil {
		t.Fatal(err)
	}
	f := mustCreate(t, first, domain.MenuID, domain.KindFolder, "Kept", "")
	first.Close()

	second := openTestStore(t, path)
	got, err := second.Get(context.Background(), f.ID)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if got.Title != "Kept" {
		t.Errorf("Title = %q", got.Title)
	}

	root, _ := second.GetTree(context.Background())
	if len(root.Children) != len(domain.BuiltinContainers) {
		t.Errorf("reopen duplicated built-ins: %v", titles(root.Children))
	}
}

func TestStore_CreateAppendsInOrder(t *testing.T) {
	s := newTestStore(t)
	work := mustCreate(t, s, domain.ToolbarID, domain.KindFolder, "Work", "")
	a := mustCreate(t, s, work.ID, domain.KindBookmark, "A", "https://a.example")
	mustCreate(t, s, work.ID, domain.KindBookmark, "B", "https://b.example")

	if len(a.ID) != 12 {
		t.Errorf("ID %q should be 12 characters", a.ID)
	}
	if a.Index != 0 {
		t.Errorf("first child Index = %d", a.Index)
	}

	root, err := s.GetTree(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	got := titles(root.Find(work.ID).Children)
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("children = %v, want [A B]", got)
	}
	if root.Find(a.ID).URL != "https://a.example" {
		t.Errorf("URL not stored")
	}
}

func TestStore_CreateRejectsBadParent(t *testing.T) {
	s := newTestStore(t)
	b := mustCreate(t, s, domain.MenuID, domain.KindBookmark, "B", "https://b.example")
	ctx := context.Background()

	tests := []struct {
		name   string
		parent string
		want   error
	}{
		{"missing parent", "nope", application.ErrNotFound},
		{"bookmark parent", b.ID, application.ErrInvalidOperation},
		{"store root", domain.RootID, application.ErrProtectedRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(ctx, domain.CreateProps{ParentID: tt.parent, Kind: domain.KindFolder, Title: "x"})
			if !errors.Is(err, tt.want) {
				t.Errorf("Create() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestStore_Update(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := mustCreate(t, s, domain.MenuID, domain.KindFolder, "Old", "")
	name := "New"

	got, err := s.Update(ctx, f.ID, domain.UpdateProps{Title: &name})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Title != "New" {
		t.Errorf("Title = %q", got.Title)
	}
	if _, err := s.Update(ctx, domain.ToolbarID, domain.UpdateProps{Title: &name}); !errors.Is(err, application.ErrProtectedRoot) {
		t.Errorf("renaming a built-in: error = %v", err)
	}
	if _, err := s.Update(ctx, "missing", domain.UpdateProps{Title: &name}); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("renaming a missing node: error = %v", err)
	}
}

func TestStore_RemoveAndRemoveTree(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := mustCreate(t, s, domain.MenuID, domain.KindFolder, "F", "")
	sub := mustCreate(t, s, f.ID, domain.KindFolder, "Sub", "")
	deep := mustCreate(t, s, sub.ID, domain.KindBookmark, "deep", "https://deep.example")
	after := mustCreate(t, s, domain.MenuID, domain.KindBookmark, "after", "https://after.example")

	if err := s.Remove(ctx, f.ID); !errors.Is(err, application.ErrNotEmpty) {
		t.Fatalf("Remove(non-empty) error = %v, want ErrNotEmpty", err)
	}
	if err := s.RemoveTree(ctx, f.ID); err != nil {
		t.Fatalf("RemoveTree failed: %v", err)
	}
	for _, id := range []string{f.ID, sub.ID, deep.ID} {
		if _, err := s.Get(ctx, id); !errors.Is(err, application.ErrNotFound) {
			t.Errorf("%s still present: %v", id, err)
		}
	}

	got, err := s.Get(ctx, after.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Index != 0 {
		t.Errorf("sibling Index = %d after removal, want 0", got.Index)
	}

	if err := s.Remove(ctx, after.ID); err != nil {
		t.Errorf("Remove(bookmark) failed: %v", err)
	}
	if err := s.RemoveTree(ctx, domain.MenuID); !errors.Is(err, application.ErrProtectedRoot) {
		t.Errorf("RemoveTree(built-in) error = %v", err)
	}
}

func TestStore_MoveAppendsAndCompacts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	work := mustCreate(t, s, domain.ToolbarID, domain.KindFolder, "Work", "")
	a := mustCreate(t, s, work.ID, domain.KindBookmark, "A", "https://a.example")
	mustCreate(t, s, work.ID, domain.KindBookmark, "C", "https://c.example")
	b := mustCreate(t, s, domain.ToolbarID, domain.KindBookmark, "B", "https://b.example")
	mustCreate(t, s, domain.ToolbarID, domain.KindBookmark, "D", "https://d.example")

	moved, err := s.Move(ctx, b.ID, domain.MoveDestination{ParentID: work.ID})
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if moved.ParentID != work.ID || moved.Index != 2 {
		t.Errorf("moved = parent %s index %d, want %s 2", moved.ParentID, moved.Index, work.ID)
	}

	root, _ := s.GetTree(ctx)
	if got := titles(root.Find(work.ID).Children); len(got) != 3 || got[2] != "B" {
		t.Errorf("Work children = %v, want [A C B]", got)
	}
	toolbar := root.Find(domain.ToolbarID)
	if got := titles(toolbar.Children); len(got) != 2 || got[1] != "D" {
		t.Errorf("toolbar children = %v, want [Work D]", got)
	}
	if toolbar.Children[1].Index != 1 {
		t.Errorf("D Index = %d, want 1", toolbar.Children[1].Index)
	}

	if _, err := s.Move(ctx, work.ID, domain.MoveDestination{ParentID: a.ID}); !errors.Is(err, application.ErrInvalidOperation) {
		t.Errorf("Move onto bookmark error = %v", err)
	}
	if _, err := s.Move(ctx, domain.MenuID, domain.MoveDestination{ParentID: work.ID}); !errors.Is(err, application.ErrProtectedRoot) {
		t.Errorf("Move(built-in) error = %v", err)
	}
}

func TestStore_MoveWithinSameParent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := mustCreate(t, s, domain.MenuID, domain.KindBookmark, "A", "https://a.example")
	mustCreate(t, s, domain.MenuID, domain.KindBookmark, "B", "https://b.example")

	if _, err := s.Move(ctx, a.ID, domain.MoveDestination{ParentID: domain.MenuID}); err != nil {
		t.Fatal(err)
	}
	root, _ := s.GetTree(ctx)
	menu := root.Find(domain.MenuID)
	if got := titles(menu.Children); len(got) != 2 || got[0] != "B" || got[1] != "A" {
		t.Errorf("menu children = %v, want [B A]", got)
	}
	for i, c := range menu.Children {
		if c.Index != i {
			t.Errorf("%s Index = %d, want %d", c.Title, c.Index, i)
		}
	}
}

func TestStore_PublishesChanges(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := s.Subscribe(ctx)

	f := mustCreate(t, s, domain.MenuID, domain.KindFolder, "F", "")

	select {
	case ev := <-events:
		if ev.Kind != domain.ChangeCreated || ev.ID != f.ID {
			t.Errorf("event = %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no change event")
	}
}

func TestStore_WatchSeesOtherConnections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.db")
	watcher := openTestStore(t, path)
	writer := openTestStore(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := watcher.Subscribe(ctx)

	done := make(chan error, 1)
	go func() { done <- watcher.Watch(ctx, 20*time.Millisecond) }()

	// Give Watch time to read its baseline version
	time.Sleep(60 * time.Millisecond)
	mustCreate(t, writer, domain.MenuID, domain.KindFolder, "From elsewhere", "")

	select {
	case ev := <-events:
		if ev.Kind != domain.ChangeExternal {
			t.Errorf("event kind = %s, want external", ev.Kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not notice the external write")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestGateway_OverSQLite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	gw := commands.NewGateway(s)

	work, err := gw.CreateFolder(ctx, "Work", "")
	if err != nil {
		t.Fatal(err)
	}
	sub, err := gw.CreateFolder(ctx, "Sub", work.Folder.ID)
	if err != nil {
		t.Fatal(err)
	}

	_, err = gw.MoveNode(ctx, work.Folder.ID, sub.Folder.ID)
	var cycle *application.CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("MoveNode into descendant error = %v, want CycleError", err)
	}

	root, _ := s.GetTree(ctx)
	p := domain.ProjectTree(root)
	ids := p.FolderIDs()
	if len(ids) != 2 || ids[0] != work.Folder.ID || ids[1] != sub.Folder.ID {
		t.Errorf("FolderIDs() = %v", ids)
	}
}
