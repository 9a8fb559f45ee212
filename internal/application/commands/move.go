package commands

import (
	"context"
	"fmt"

	"shelfmark/internal/application"
	"shelfmark/internal/domain"
	"shelfmark/internal/ports"
)

// maxAncestry bounds the parent-chain walk used by the cycle guard. A chain
// longer than this is treated as already cyclic.
const maxAncestry = 1024

// MoveNodeResult contains the result of moving a node
type MoveNodeResult struct {
	SourceID      string
	DestinationID string
	Moved         bool
	Message       string
}

// MoveNodeCommand moves a folder or bookmark into another folder
type MoveNodeCommand struct {
	store         ports.BookmarkStore
	SourceID      string
	DestinationID string
}

// NewMoveNodeCommand creates a new MoveNodeCommand
func NewMoveNodeCommand(store ports.BookmarkStore, sourceID, destID string) *MoveNodeCommand {
	return &MoveNodeCommand{
		store:         store,
		SourceID:      sourceID,
		DestinationID: destID,
	}
}

// Validate checks the move without consulting the store
func (c *MoveNodeCommand) Validate() error {
	if err := application.ValidateRequired("sourceID", c.SourceID); err != nil {
		return err
	}
	if err := application.ValidateRequired("destinationID", c.DestinationID); err != nil {
		return err
	}

	if c.SourceID == c.DestinationID {
		return &application.CycleError{SourceID: c.SourceID, DestID: c.DestinationID}
	}

	if domain.IsBuiltin(c.SourceID) {
		return &application.MoveError{
			SourceID: c.SourceID,
			DestID:   c.DestinationID,
			Reason:   "built-in containers cannot be moved",
		}
	}

	return nil
}

// Check validates the move against the current store state using reads only.
// It reports noop when the source already sits in the destination.
func (c *MoveNodeCommand) Check(ctx context.Context) (noop bool, err error) {
	if err := c.Validate(); err != nil {
		return false, err
	}

	src, err := c.store.Get(ctx, c.SourceID)
	if err != nil {
		return false, &application.StoreError{Op: "get", ID: c.SourceID, Err: err}
	}
	dst, err := c.store.Get(ctx, c.DestinationID)
	if err != nil {
		return false, &application.StoreError{Op: "get", ID: c.DestinationID, Err: err}
	}

	if !dst.IsFolder() {
		return false, &application.MoveError{
			SourceID: c.SourceID,
			DestID:   c.DestinationID,
			Reason:   "drop target is not a folder",
		}
	}

	if src.ParentID == dst.ID {
		return true, nil
	}

	if src.IsFolder() {
		if err := c.checkAncestry(ctx, dst); err != nil {
			return false, err
		}
	}

	return false, nil
}

// checkAncestry walks from dst up to the store root and fails if the source
// folder is on the way.
func (c *MoveNodeCommand) checkAncestry(ctx context.Context, dst *domain.Node) error {
	id := dst.ParentID
	for depth := 0; id != ""; depth++ {
		if id == c.SourceID || depth >= maxAncestry {
			return &application.CycleError{SourceID: c.SourceID, DestID: c.DestinationID}
		}
		parent, err := c.store.Get(ctx, id)
		if err != nil {
			return &application.StoreError{Op: "get", ID: id, Err: err}
		}
		id = parent.ParentID
	}
	return nil
}

// Execute runs the move command
func (c *MoveNodeCommand) Execute(ctx context.Context) (*MoveNodeResult, error) {
	noop, err := c.Check(ctx)
	if err != nil {
		return nil, err
	}

	if noop {
		return &MoveNodeResult{
			SourceID:      c.SourceID,
			DestinationID: c.DestinationID,
			Message:       fmt.Sprintf("%s is already in %s", c.SourceID, c.DestinationID),
		}, nil
	}

	moved, err := c.store.Move(ctx, c.SourceID, domain.MoveDestination{ParentID: c.DestinationID})
	if err != nil {
		return nil, &application.StoreError{Op: "move", ID: c.SourceID, Err: err}
	}

	return &MoveNodeResult{
		SourceID:      c.SourceID,
		DestinationID: c.DestinationID,
		Moved:         true,
		Message:       fmt.Sprintf("Moved %s", moved.Title),
	}, nil
}
