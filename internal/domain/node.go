package domain

import (
	"slices"
	"time"
)

// NodeKind represents the type of a bookmark store node
type NodeKind int

const (
	KindUnknown  NodeKind = iota
	KindFolder            // container, holds children
	KindBookmark          // item, carries a URL
)

func (k NodeKind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindBookmark:
		return "bookmark"
	default:
		return "unknown"
	}
}

// ParseNodeKind is the inverse of NodeKind.String
func ParseNodeKind(s string) NodeKind {
	switch s {
	case "folder":
		return KindFolder
	case "bookmark":
		return KindBookmark
	default:
		return KindUnknown
	}
}

// Well-known container identities. They mirror the identifiers browsers use
// for their built-in bookmark roots.
const (
	RootID    = "root________"
	MenuID    = "menu________"
	ToolbarID = "toolbar_____"
	UnfiledID = "unfiled_____"
)

// BuiltinContainers lists the built-in containers in their canonical order
// under RootID. RootID itself is not included.
var BuiltinContainers = []struct {
	ID    string
	Title string
}{
	{MenuID, "Bookmarks Menu"},
	{ToolbarID, "Bookmarks Toolbar"},
	{UnfiledID, "Other Bookmarks"},
}

// IsScanRoot reports whether id is one of the two containers the dashboard scans.
func IsScanRoot(id string) bool {
	return id == MenuID || id == ToolbarID
}

// IsBuiltin reports whether id names a container the user cannot rename,
// move or remove.
func IsBuiltin(id string) bool {
	switch id {
	case RootID, MenuID, ToolbarID, UnfiledID:
		return true
	}
	return false
}

// Node is a single entry of the bookmark store
type Node struct {
	ID        string
	ParentID  string // empty for RootID
	Kind      NodeKind
	Title     string
	URL       string // bookmarks only
	Index     int    // position within the parent
	DateAdded time.Time
	Children  []*Node // folders only, ordered by Index
}

// IsFolder reports whether the node can hold children
func (n *Node) IsFolder() bool {
	return n != nil && n.Kind == KindFolder
}

// Find returns the node with the given id in the subtree rooted at n
func (n *Node) Find(id string) *Node {
	if n == nil {
		return nil
	}
	if n.ID == id {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits every node of the subtree rooted at n in depth-first order.
// Returning false from fn stops descent into that node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// SortChildren orders children by Index in ascending order
func SortChildren(nodes []*Node) {
	slices.SortStableFunc(nodes, func(a, b *Node) int {
		return a.Index - b.Index
	})
}

// CreateProps holds the properties of a node to create
type CreateProps struct {
	ParentID string
	Kind     NodeKind
	Title    string
	URL      string
}

// UpdateProps holds the mutable properties of a node. Nil fields are left unchanged.
type UpdateProps struct {
	Title *string
	URL   *string
}

// MoveDestination names the container a node is moved into
type MoveDestination struct {
	ParentID string
}
