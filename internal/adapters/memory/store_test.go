package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"shelfmark/internal/application"
	"shelfmark/internal/domain"
)

func TestStore_CreateAndTree(t *testing.T) {
	ctx := context.Background()
	s := New()

	f, err := s.Create(ctx, domain.CreateProps{ParentID: domain.ToolbarID, Kind: domain.KindFolder, Title: "Work"})
	if err != nil {
		t.Fatalf("Create folder failed: %v", err)
	}
	if _, err := s.Create(ctx, domain.CreateProps{ParentID: f.ID, Kind: domain.KindBookmark, Title: "A", URL: "https://a.example"}); err != nil {
		t.Fatalf("Create bookmark failed: %v", err)
	}

	root, err := s.GetTree(ctx)
	if err != nil {
		t.Fatalf("GetTree failed: %v", err)
	}
	work := root.Find(f.ID)
	if work == nil || len(work.Children) != 1 || work.Children[0].Title != "A" {
		t.Fatalf("unexpected tree: %+v", work)
	}

	if got := s.MutationCalls(); !reflect.DeepEqual(got, []string{"create", "create"}) {
		t.Errorf("MutationCalls() = %v", got)
	}
}

func TestStore_RemoveNonEmptyFolder(t *testing.T) {
	ctx := context.Background()
	s := New()
	f := s.SeedFolder(domain.MenuID, "F")
	s.SeedBookmark(f, "x", "https://x.example")

	if err := s.Remove(ctx, f); !errors.Is(err, application.ErrNotEmpty) {
		t.Fatalf("Remove() error = %v, want ErrNotEmpty", err)
	}
	if err := s.RemoveTree(ctx, f); err != nil {
		t.Fatalf("RemoveTree failed: %v", err)
	}
	if _, err := s.Get(ctx, f); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("folder still present after RemoveTree: %v", err)
	}
}

func TestStore_ProtectsBuiltins(t *testing.T) {
	ctx := context.Background()
	s := New()
	title := "x"

	if _, err := s.Update(ctx, domain.ToolbarID, domain.UpdateProps{Title: &title}); !errors.Is(err, application.ErrProtectedRoot) {
		t.Errorf("Update builtin error = %v", err)
	}
	if err := s.RemoveTree(ctx, domain.MenuID); !errors.Is(err, application.ErrProtectedRoot) {
		t.Errorf("RemoveTree builtin error = %v", err)
	}
	if _, err := s.Move(ctx, domain.MenuID, domain.MoveDestination{ParentID: domain.ToolbarID}); !errors.Is(err, application.ErrProtectedRoot) {
		t.Errorf("Move builtin error = %v", err)
	}
}

func TestStore_MoveReindexes(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := s.SeedBookmark(domain.ToolbarID, "a", "u")
	b := s.SeedBookmark(domain.ToolbarID, "b", "u")
	f := s.SeedFolder(domain.MenuID, "F")

	if _, err := s.Move(ctx, a, domain.MoveDestination{ParentID: f}); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	nb, _ := s.Get(ctx, b)
	if nb.Index != 0 {
		t.Errorf("b.Index = %d, want 0 after a left", nb.Index)
	}
	na, _ := s.Get(ctx, a)
	if na.ParentID != f || na.Index != 0 {
		t.Errorf("a = %+v, want parent %s index 0", na, f)
	}
}

func TestStore_PublishesChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := New()
	events := s.Subscribe(ctx)

	if _, err := s.Create(ctx, domain.CreateProps{ParentID: domain.MenuID, Kind: domain.KindFolder, Title: "F"}); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		if ev.Kind != domain.ChangeCreated {
			t.Errorf("event kind = %v, want created", ev.Kind)
		}
	default:
		t.Fatal("expected a change event")
	}
}

func TestNewDemo_Projects(t *testing.T) {
	s := NewDemo()
	root, err := s.GetTree(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	p := domain.ProjectTree(root)
	if len(p.Folders) != 4 {
		t.Errorf("expected 4 folders, got %v", p.FolderIDs())
	}
	if len(p.Uncategorized) != 1 {
		t.Errorf("expected 1 uncategorized bookmark, got %d", len(p.Uncategorized))
	}
}
