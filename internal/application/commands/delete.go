package commands

import (
	"context"
	"fmt"

	"shelfmark/internal/application"
	"shelfmark/internal/domain"
	"shelfmark/internal/ports"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedID string
	Message   string
}

// DeleteCommand removes a folder with its whole subtree, or a single bookmark.
// Both require the user's confirmation before the store is touched.
type DeleteCommand struct {
	store   ports.BookmarkStore
	confirm ports.Confirmer
	ID      string
	Kind    domain.NodeKind
}

// NewRemoveFolderCommand creates a DeleteCommand for a folder and its contents
func NewRemoveFolderCommand(store ports.BookmarkStore, confirm ports.Confirmer, id string) *DeleteCommand {
	return &DeleteCommand{store: store, confirm: confirm, ID: id, Kind: domain.KindFolder}
}

// NewRemoveItemCommand creates a DeleteCommand for a single bookmark
func NewRemoveItemCommand(store ports.BookmarkStore, confirm ports.Confirmer, id string) *DeleteCommand {
	return &DeleteCommand{store: store, confirm: confirm, ID: id, Kind: domain.KindBookmark}
}

func (c *DeleteCommand) field() string {
	if c.Kind == domain.KindFolder {
		return "folderID"
	}
	return "itemID"
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	if err := application.ValidateRequired(c.field(), c.ID); err != nil {
		return err
	}
	return application.ValidateNotBuiltin(c.field(), c.ID)
}

// Execute asks for confirmation and runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	node, err := c.store.Get(ctx, c.ID)
	if err != nil {
		return nil, &application.StoreError{Op: "get", ID: c.ID, Err: err}
	}
	if err := application.ValidateKind(c.field(), node, c.Kind); err != nil {
		return nil, err
	}

	ok, err := c.ask(ctx, node)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("remove %s: %w", node.Title, application.ErrCancelled)
	}

	if c.Kind == domain.KindFolder {
		err = c.store.RemoveTree(ctx, c.ID)
	} else {
		err = c.store.Remove(ctx, c.ID)
	}
	if err != nil {
		return nil, &application.StoreError{Op: "remove", ID: c.ID, Err: err}
	}

	return &DeleteResult{
		DeletedID: c.ID,
		Message:   fmt.Sprintf("Removed %s %s", c.Kind, node.Title),
	}, nil
}

func (c *DeleteCommand) ask(ctx context.Context, node *domain.Node) (bool, error) {
	if c.confirm == nil {
		return false, nil
	}
	prompt := fmt.Sprintf("Remove bookmark %q?", node.Title)
	if c.Kind == domain.KindFolder {
		prompt = fmt.Sprintf("Remove folder %q and all its bookmarks?", node.Title)
	}
	ok, err := c.confirm.Confirm(ctx, prompt)
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	return ok, nil
}

// AutoConfirm answers every confirmation with its own value. It backs
// non-interactive surfaces where consent was given up front (--yes flags,
// explicit tool arguments).
type AutoConfirm bool

// Confirm implements ports.Confirmer
func (a AutoConfirm) Confirm(context.Context, string) (bool, error) {
	return bool(a), nil
}
