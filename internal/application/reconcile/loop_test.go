package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shelfmark/internal/adapters/memory"
	"shelfmark/internal/application/commands"
	"shelfmark/internal/domain"
)

type render struct {
	projection *domain.Projection
	collapsed  domain.CollapsedSet
}

type recordingRenderer struct {
	mu      sync.Mutex
	renders []render
	signal  chan struct{}
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{signal: make(chan struct{}, 64)}
}

func (r *recordingRenderer) Render(p *domain.Projection, collapsed domain.CollapsedSet) {
	r.mu.Lock()
	r.renders = append(r.renders, render{p, collapsed})
	r.mu.Unlock()
	r.signal <- struct{}{}
}

func (r *recordingRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.renders)
}

func (r *recordingRenderer) last() render {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renders[len(r.renders)-1]
}

func (r *recordingRenderer) await(t *testing.T) render {
	t.Helper()
	select {
	case <-r.signal:
		return r.last()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a render")
		return render{}
	}
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(message string, isErr bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

// gatedStore blocks the first GetTree until the gate is opened
type gatedStore struct {
	*memory.Store
	entered chan struct{}
	gate    chan struct{}

	mu      sync.Mutex
	fetches int
}

func (g *gatedStore) GetTree(ctx context.Context) (*domain.Node, error) {
	g.mu.Lock()
	g.fetches++
	n := g.fetches
	g.mu.Unlock()

	if n == 1 {
		g.entered <- struct{}{}
		<-g.gate
	}
	return g.Store.GetTree(ctx)
}

func (g *gatedStore) fetchCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fetches
}

type failingStore struct {
	*memory.Store
}

func (failingStore) GetTree(context.Context) (*domain.Node, error) {
	return nil, errors.New("store unreachable")
}

func waitIdle(t *testing.T, l *Loop) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := l.WaitIdle(ctx); err != nil {
		t.Fatalf("loop did not become idle: %v", err)
	}
}

func TestLoop_AtMostOneInFlight(t *testing.T) {
	store := &gatedStore{
		Store:   memory.NewDemo(),
		entered: make(chan struct{}, 1),
		gate:    make(chan struct{}),
	}
	renderer := newRecordingRenderer()
	loop := NewLoop(store, renderer)
	ctx := context.Background()

	loop.Trigger(ctx)
	<-store.entered

	for i := 0; i < 5; i++ {
		loop.Trigger(ctx)
	}
	if got := loop.Stats().Started; got != 1 {
		t.Fatalf("Started = %d while first cycle in flight, want 1", got)
	}

	close(store.gate)
	waitIdle(t, loop)

	if got := store.fetchCount(); got != 2 {
		t.Errorf("fetches = %d, want 2 (the blocked cycle plus one coalesced)", got)
	}
	stats := loop.Stats()
	if stats.Started != 2 || stats.Superseded != 1 || stats.Rendered != 1 {
		t.Errorf("Stats() = %+v, want 2 started, 1 superseded, 1 rendered", stats)
	}
	if renderer.count() != 1 {
		t.Errorf("renders = %d, want 1 (superseded result discarded)", renderer.count())
	}
	if loop.Epoch() != 6 {
		t.Errorf("Epoch() = %d, want 6", loop.Epoch())
	}
}

func TestLoop_CollapsedStateSurvivesUnrelatedChange(t *testing.T) {
	store := memory.New()
	keep := store.SeedFolder(domain.ToolbarID, "Keep")
	other := store.SeedFolder(domain.ToolbarID, "Other")
	renderer := newRecordingRenderer()
	loop := NewLoop(store, renderer)
	ctx := context.Background()

	loop.Trigger(ctx)
	waitIdle(t, loop)

	if !loop.ToggleCollapsed(keep) {
		t.Fatal("ToggleCollapsed should report collapsed")
	}

	gw := commands.NewGateway(store, commands.WithTrigger(loop))
	if _, err := gw.AddItem(ctx, other, "https://x.example", "X"); err != nil {
		t.Fatal(err)
	}
	waitIdle(t, loop)

	last := renderer.last()
	if !last.collapsed.Has(keep) {
		t.Error("folder should stay collapsed after an unrelated change")
	}
	f, _ := last.projection.Folder(other)
	if len(f.Items) != 1 {
		t.Errorf("expected the new bookmark to be rendered, got %d items", len(f.Items))
	}
}

func TestLoop_CollapsedStatePrunedWhenFolderDisappears(t *testing.T) {
	store := memory.New()
	gone := store.SeedFolder(domain.MenuID, "Gone")
	renderer := newRecordingRenderer()
	loop := NewLoop(store, renderer)
	ctx := context.Background()

	loop.SetCollapsed(gone, true)
	if err := store.RemoveTree(ctx, gone); err != nil {
		t.Fatal(err)
	}
	loop.Trigger(ctx)
	waitIdle(t, loop)

	if renderer.last().collapsed.Has(gone) {
		t.Error("rendered collapsed set should not include a removed folder")
	}
	if loop.Collapsed().Has(gone) {
		t.Error("loop should forget collapsed state of removed folders")
	}
}

func TestLoop_RunReconcilesOnNotifications(t *testing.T) {
	store := memory.New()
	renderer := newRecordingRenderer()
	loop := NewLoop(store, renderer)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		loop.Run(ctx, store.Subscribe(ctx))
		close(done)
	}()

	first := renderer.await(t)
	if len(first.projection.Folders) != 0 {
		t.Fatalf("expected empty dashboard, got %v", first.projection.FolderIDs())
	}

	// An external writer: no gateway, only the store notification
	if _, err := store.Create(ctx, domain.CreateProps{ParentID: domain.MenuID, Kind: domain.KindFolder, Title: "Synced"}); err != nil {
		t.Fatal(err)
	}

	next := renderer.await(t)
	if len(next.projection.Folders) != 1 || next.projection.Folders[0].Title != "Synced" {
		t.Errorf("expected synced folder to be rendered, got %+v", next.projection.Folders)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestLoop_FetchFailureIsReported(t *testing.T) {
	renderer := newRecordingRenderer()
	notifier := &recordingNotifier{}
	loop := NewLoop(failingStore{memory.New()}, renderer, WithNotifier(notifier))

	loop.Trigger(context.Background())
	waitIdle(t, loop)

	if renderer.count() != 0 {
		t.Error("failed fetch should not render")
	}
	if loop.Stats().Failed != 1 {
		t.Errorf("Failed = %d, want 1", loop.Stats().Failed)
	}
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.messages) != 1 {
		t.Fatalf("expected one notice, got %v", notifier.messages)
	}
}

func TestLoop_IdleInitially(t *testing.T) {
	loop := NewLoop(memory.New(), newRecordingRenderer())
	waitIdle(t, loop)
	if loop.Stats().Started != 0 {
		t.Error("no cycle should start without a trigger")
	}
}
