package commands

import (
	"context"

	"shelfmark/internal/application"
	"shelfmark/internal/domain"
)

// DragDrop tracks a single drag gesture and turns the drop into a move.
// The presentation layer forwards its drag-start, drag-over and drop events
// here verbatim. A DragDrop is not safe for concurrent use; hand a Detach
// copy to other goroutines.
type DragDrop struct {
	gw     *Gateway
	source string
}

// NewDragDrop creates a drag-and-drop session bound to gw
func NewDragDrop(gw *Gateway) *DragDrop {
	return &DragDrop{gw: gw}
}

// Start begins dragging the node with the given identity
func (d *DragDrop) Start(id string) error {
	if err := application.ValidateRequired("sourceID", id); err != nil {
		return err
	}
	if domain.IsBuiltin(id) {
		return &application.MoveError{SourceID: id, Reason: "built-in containers cannot be moved"}
	}
	d.source = id
	return nil
}

// Active reports whether a drag is in progress
func (d *DragDrop) Active() bool {
	return d.source != ""
}

// Source returns the identity being dragged
func (d *DragDrop) Source() string {
	return d.source
}

// Detach returns a copy of the gesture that no longer shares state with d,
// so d can be cancelled while the copy is still evaluated or dropped.
func (d *DragDrop) Detach() *DragDrop {
	cp := *d
	return &cp
}

// Over reports whether dropping on targetID would be accepted
func (d *DragDrop) Over(ctx context.Context, targetID string) bool {
	if !d.Active() || targetID == "" {
		return false
	}
	return d.gw.CheckMove(ctx, d.source, targetID) == nil
}

// Drop ends the drag by moving the source into targetID
func (d *DragDrop) Drop(ctx context.Context, targetID string) (*MoveNodeResult, error) {
	source := d.source
	d.source = ""
	if source == "" {
		return nil, &application.ValidationError{Field: "sourceID", Message: "nothing is being dragged"}
	}
	return d.gw.MoveNode(ctx, source, targetID)
}

// Cancel abandons the drag without touching the store
func (d *DragDrop) Cancel() {
	d.source = ""
}
