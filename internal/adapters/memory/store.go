// Package memory provides an in-process bookmark store. It backs the demo
// mode of the dashboard and the tests of packages that need a live store.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"shelfmark/internal/adapters/changefeed"
	"shelfmark/internal/application"
	"shelfmark/internal/domain"
	"shelfmark/internal/ports"
)

type entry struct {
	node     domain.Node
	children []string
}

// Store implements ports.BookmarkStore in memory
type Store struct {
	mu     sync.Mutex
	nodes  map[string]*entry
	calls  []string
	nextID int
	feed   *changefeed.Feed
	now    func() time.Time
}

// Ensure Store implements BookmarkStore
var _ ports.BookmarkStore = (*Store)(nil)

// New creates a store holding only the built-in containers
func New() *Store {
	s := &Store{
		nodes: make(map[string]*entry),
		feed:  changefeed.New(),
		now:   time.Now,
	}
	s.nodes[domain.RootID] = &entry{node: domain.Node{ID: domain.RootID, Kind: domain.KindFolder}}
	for _, b := range domain.BuiltinContainers {
		s.insert(domain.Node{ID: b.ID, ParentID: domain.RootID, Kind: domain.KindFolder, Title: b.Title})
	}
	return s
}

// Calls returns the operations issued against the store, in order
func (s *Store) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

// MutationCalls returns only the mutating operations issued against the store
func (s *Store) MutationCalls() []string {
	var out []string
	for _, c := range s.Calls() {
		switch c {
		case "get", "getTree":
			continue
		}
		out = append(out, c)
	}
	return out
}

// ResetCalls clears the call log
func (s *Store) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *Store) record(op string) {
	s.calls = append(s.calls, op)
}

// insert must be called with mu held
func (s *Store) insert(n domain.Node) *entry {
	parent := s.nodes[n.ParentID]
	n.Index = len(parent.children)
	if n.DateAdded.IsZero() && s.now != nil {
		n.DateAdded = s.now()
	}
	e := &entry{node: n}
	s.nodes[n.ID] = e
	parent.children = append(parent.children, n.ID)
	return e
}

// detach must be called with mu held
func (s *Store) detach(e *entry) {
	parent := s.nodes[e.node.ParentID]
	parent.children = slices.DeleteFunc(parent.children, func(id string) bool { return id == e.node.ID })
	s.reindex(parent)
}

func (s *Store) reindex(parent *entry) {
	for i, id := range parent.children {
		s.nodes[id].node.Index = i
	}
}

func (s *Store) lookup(id string) (*entry, error) {
	e, ok := s.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", application.ErrNotFound, id)
	}
	return e, nil
}

func (s *Store) build(id string) *domain.Node {
	e := s.nodes[id]
	n := e.node
	n.Children = nil
	if n.Kind == domain.KindFolder {
		n.Children = make([]*domain.Node, 0, len(e.children))
		for _, child := range e.children {
			n.Children = append(n.Children, s.build(child))
		}
	}
	return &n
}

// GetTree returns the full tree rooted at domain.RootID
func (s *Store) GetTree(ctx context.Context) (*domain.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("getTree")
	return s.build(domain.RootID), nil
}

// Get returns a single node without its children
func (s *Store) Get(ctx context.Context, id string) (*domain.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("get")
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	n := e.node
	return &n, nil
}

// Create adds a folder or bookmark at the end of its parent
func (s *Store) Create(ctx context.Context, props domain.CreateProps) (*domain.Node, error) {
	s.mu.Lock()
	s.record("create")
	parent, err := s.lookup(props.ParentID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if parent.node.Kind != domain.KindFolder {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: parent %s is not a folder", application.ErrInvalidOperation, props.ParentID)
	}
	if props.ParentID == domain.RootID {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: cannot create under the root", application.ErrProtectedRoot)
	}

	s.nextID++
	e := s.insert(domain.Node{
		ID:       fmt.Sprintf("n%04d", s.nextID),
		ParentID: props.ParentID,
		Kind:     props.Kind,
		Title:    props.Title,
		URL:      props.URL,
	})
	n := e.node
	s.mu.Unlock()

	s.feed.Publish(domain.ChangeEvent{Kind: domain.ChangeCreated, ID: n.ID})
	return &n, nil
}

// Update changes the title or URL of a node
func (s *Store) Update(ctx context.Context, id string, props domain.UpdateProps) (*domain.Node, error) {
	s.mu.Lock()
	s.record("update")
	if domain.IsBuiltin(id) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", application.ErrProtectedRoot, id)
	}
	e, err := s.lookup(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if props.Title != nil {
		e.node.Title = *props.Title
	}
	if props.URL != nil && e.node.Kind == domain.KindBookmark {
		e.node.URL = *props.URL
	}
	n := e.node
	s.mu.Unlock()

	s.feed.Publish(domain.ChangeEvent{Kind: domain.ChangeChanged, ID: id})
	return &n, nil
}

// Remove deletes a bookmark or an empty folder
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	s.record("remove")
	e, err := s.removable(id)
	if err == nil && len(e.children) > 0 {
		err = fmt.Errorf("%w: %s", application.ErrNotEmpty, id)
	}
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.detach(e)
	delete(s.nodes, id)
	s.mu.Unlock()

	s.feed.Publish(domain.ChangeEvent{Kind: domain.ChangeRemoved, ID: id})
	return nil
}

// RemoveTree deletes a node and its whole subtree
func (s *Store) RemoveTree(ctx context.Context, id string) error {
	s.mu.Lock()
	s.record("removeTree")
	e, err := s.removable(id)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.detach(e)
	s.drop(id)
	s.mu.Unlock()

	s.feed.Publish(domain.ChangeEvent{Kind: domain.ChangeRemoved, ID: id})
	return nil
}

func (s *Store) removable(id string) (*entry, error) {
	if domain.IsBuiltin(id) {
		return nil, fmt.Errorf("%w: %s", application.ErrProtectedRoot, id)
	}
	return s.lookup(id)
}

func (s *Store) drop(id string) {
	e := s.nodes[id]
	for _, child := range e.children {
		s.drop(child)
	}
	delete(s.nodes, id)
}

// Move appends a node to the end of another folder. Like the browser
// primitive it imitates, it does not guard against cycles.
func (s *Store) Move(ctx context.Context, id string, dest domain.MoveDestination) (*domain.Node, error) {
	s.mu.Lock()
	s.record("move")
	if domain.IsBuiltin(id) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", application.ErrProtectedRoot, id)
	}
	e, err := s.lookup(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	parent, err := s.lookup(dest.ParentID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if parent.node.Kind != domain.KindFolder {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s is not a folder", application.ErrInvalidOperation, dest.ParentID)
	}

	s.detach(e)
	e.node.ParentID = dest.ParentID
	e.node.Index = len(parent.children)
	parent.children = append(parent.children, id)
	n := e.node
	s.mu.Unlock()

	s.feed.Publish(domain.ChangeEvent{Kind: domain.ChangeMoved, ID: id})
	return &n, nil
}

// Subscribe returns the store's change stream
func (s *Store) Subscribe(ctx context.Context) <-chan domain.ChangeEvent {
	return s.feed.Subscribe(ctx)
}

// Close ends all subscriptions
func (s *Store) Close() error {
	s.feed.Close()
	return nil
}
