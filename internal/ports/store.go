package ports

import (
	"context"

	"shelfmark/internal/domain"
)

// TreeReader provides read access to the bookmark store
type TreeReader interface {
	// GetTree returns the full tree rooted at domain.RootID
	GetTree(ctx context.Context) (*domain.Node, error)

	// Get returns a single node without its children
	Get(ctx context.Context, id string) (*domain.Node, error)
}

// BookmarkStore defines the interface for the hierarchical bookmark store.
// Only the mutation gateway calls the mutating operations.
type BookmarkStore interface {
	TreeReader

	// Mutations
	Create(ctx context.Context, props domain.CreateProps) (*domain.Node, error)
	Update(ctx context.Context, id string, props domain.UpdateProps) (*domain.Node, error)
	Remove(ctx context.Context, id string) error
	RemoveTree(ctx context.Context, id string) error
	Move(ctx context.Context, id string, dest domain.MoveDestination) (*domain.Node, error)

	// Subscribe returns a stream of change notifications. The channel is
	// closed once ctx is done. Events may be coalesced.
	Subscribe(ctx context.Context) <-chan domain.ChangeEvent
}
