package commands

import (
	"context"
	"errors"

	"github.com/golang/glog"

	"shelfmark/internal/application"
	"shelfmark/internal/domain"
	"shelfmark/internal/ports"
)

// Trigger schedules a reconciliation of the displayed view
type Trigger interface {
	Trigger(ctx context.Context)
}

// Gateway is the only path from user gestures to the store's mutating
// operations. It never patches view state itself: after each call that
// reached the store it asks the reconciliation loop to refresh.
type Gateway struct {
	store         ports.BookmarkStore
	confirm       ports.Confirmer
	refresh       Trigger
	defaultParent string
}

// GatewayOption configures a Gateway
type GatewayOption func(*Gateway)

// WithConfirmer sets the confirmer consulted before destructive operations
func WithConfirmer(c ports.Confirmer) GatewayOption {
	return func(g *Gateway) { g.confirm = c }
}

// WithTrigger sets the reconciliation trigger fired after store calls
func WithTrigger(t Trigger) GatewayOption {
	return func(g *Gateway) { g.refresh = t }
}

// WithDefaultParent sets the container used when no parent is given
func WithDefaultParent(id string) GatewayOption {
	return func(g *Gateway) {
		if id != "" {
			g.defaultParent = id
		}
	}
}

// NewGateway creates a Gateway over store. Without a confirmer, destructive
// operations are always cancelled.
func NewGateway(store ports.BookmarkStore, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		store:         store,
		defaultParent: domain.ToolbarID,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Confirming returns a copy of the gateway that consults c before
// destructive operations
func (g *Gateway) Confirming(c ports.Confirmer) *Gateway {
	cp := *g
	cp.confirm = c
	return &cp
}

// DefaultParent returns the container used when no parent is given
func (g *Gateway) DefaultParent() string {
	return g.defaultParent
}

func (g *Gateway) parentOr(id string) string {
	if id == "" {
		return g.defaultParent
	}
	return id
}

// CreateFolder creates a folder under parentID, or the default container
func (g *Gateway) CreateFolder(ctx context.Context, name, parentID string) (*CreateFolderResult, error) {
	res, err := NewCreateFolderCommand(g.store, name, g.parentOr(parentID)).Execute(ctx)
	g.finish(ctx, "create folder", err == nil, err)
	return res, err
}

// RenameFolder renames a folder
func (g *Gateway) RenameFolder(ctx context.Context, id, newName string) (*RenameResult, error) {
	res, err := NewRenameFolderCommand(g.store, id, newName).Execute(ctx)
	g.finish(ctx, "rename folder", err == nil && res.Changed, err)
	return res, err
}

// RemoveFolder removes a folder and everything in it after confirmation
func (g *Gateway) RemoveFolder(ctx context.Context, id string) (*DeleteResult, error) {
	res, err := NewRemoveFolderCommand(g.store, g.confirm, id).Execute(ctx)
	g.finish(ctx, "remove folder", err == nil, err)
	return res, err
}

// RemoveItem removes a single bookmark after confirmation
func (g *Gateway) RemoveItem(ctx context.Context, id string) (*DeleteResult, error) {
	res, err := NewRemoveItemCommand(g.store, g.confirm, id).Execute(ctx)
	g.finish(ctx, "remove bookmark", err == nil, err)
	return res, err
}

// Remove dispatches to RemoveFolder or RemoveItem depending on the node kind
func (g *Gateway) Remove(ctx context.Context, id string) (*DeleteResult, error) {
	node, err := g.store.Get(ctx, id)
	if err != nil {
		err = &application.StoreError{Op: "get", ID: id, Err: err}
		g.finish(ctx, "remove", false, err)
		return nil, err
	}
	if node.IsFolder() {
		return g.RemoveFolder(ctx, id)
	}
	return g.RemoveItem(ctx, id)
}

// AddItem adds a bookmark to folderID, or the default container
func (g *Gateway) AddItem(ctx context.Context, folderID, url, title string) (*AddItemResult, error) {
	res, err := NewAddItemCommand(g.store, g.parentOr(folderID), url, title).Execute(ctx)
	g.finish(ctx, "add bookmark", err == nil, err)
	return res, err
}

// MoveNode moves a folder or bookmark into destID
func (g *Gateway) MoveNode(ctx context.Context, sourceID, destID string) (*MoveNodeResult, error) {
	res, err := NewMoveNodeCommand(g.store, sourceID, destID).Execute(ctx)
	g.finish(ctx, "move", err == nil && res.Moved, err)
	return res, err
}

// CheckMove reports whether sourceID may be dropped onto destID without
// touching the store
func (g *Gateway) CheckMove(ctx context.Context, sourceID, destID string) error {
	_, err := NewMoveNodeCommand(g.store, sourceID, destID).Check(ctx)
	return err
}

// finish logs the outcome and resynchronizes the view when the store was
// changed or reported a failure.
func (g *Gateway) finish(ctx context.Context, op string, changed bool, err error) {
	var storeErr *application.StoreError
	isStoreErr := errors.As(err, &storeErr)

	switch {
	case err == nil:
		glog.V(1).Infof("gateway: %s ok (changed=%t)", op, changed)
	case isStoreErr:
		glog.Warningf("gateway: %s failed: %v", op, err)
	default:
		glog.V(1).Infof("gateway: %s rejected: %v", op, err)
	}

	if g.refresh != nil && (changed || isStoreErr) {
		g.refresh.Trigger(ctx)
	}
}
