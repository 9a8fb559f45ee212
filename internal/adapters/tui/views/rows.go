package views

import (
	"strings"

	"shelfmark/internal/domain"
)

// RowKind identifies what a dashboard line shows
type RowKind int

const (
	RowFolder        RowKind = iota // folder header
	RowItem                         // bookmark
	RowEmpty                        // placeholder under a folder with no bookmarks
	RowUncategorized                // header of the Uncategorized section
)

// Row is one selectable line of the dashboard
type Row struct {
	Kind     RowKind
	FolderID string // owning folder; empty inside Uncategorized
	Title    string
	Path     string // ancestor folder titles for nested folders
	Count    int    // bookmarks in the folder, for headers
	Item     domain.ItemView
}

// IsHeader reports whether the row heads a folder or the Uncategorized section
func (r Row) IsHeader() bool {
	return r.Kind == RowFolder || r.Kind == RowUncategorized
}

// NodeID returns the store identity the row stands for, or "" for rows
// without one
func (r Row) NodeID() string {
	switch r.Kind {
	case RowFolder:
		return r.FolderID
	case RowItem:
		return r.Item.ID
	}
	return ""
}

// BuildRows lays a projection out as dashboard lines: every folder in
// projection order with its bookmarks unless collapsed, then Uncategorized.
func BuildRows(p *domain.Projection, collapsed domain.CollapsedSet, hideEmpty bool) []Row {
	if p == nil {
		return nil
	}

	var rows []Row
	for _, f := range p.Folders {
		if hideEmpty && len(f.Items) == 0 {
			continue
		}
		rows = append(rows, Row{
			Kind:     RowFolder,
			FolderID: f.ID,
			Title:    f.Title,
			Path:     folderPath(p, f),
			Count:    len(f.Items),
		})
		if collapsed.Has(f.ID) {
			continue
		}
		if len(f.Items) == 0 {
			rows = append(rows, Row{Kind: RowEmpty, FolderID: f.ID})
			continue
		}
		for _, it := range f.Items {
			rows = append(rows, Row{Kind: RowItem, FolderID: f.ID, Title: it.DisplayTitle(), Item: it})
		}
	}

	rows = append(rows, Row{Kind: RowUncategorized, Title: "Uncategorized", Count: len(p.Uncategorized)})
	if len(p.Uncategorized) == 0 {
		rows = append(rows, Row{Kind: RowEmpty})
	}
	for _, it := range p.Uncategorized {
		rows = append(rows, Row{Kind: RowItem, Title: it.DisplayTitle(), Item: it})
	}
	return rows
}

// folderPath returns "Outer › Inner" for the ancestors of a nested folder
func folderPath(p *domain.Projection, f *domain.FolderView) string {
	var parts []string
	seen := map[string]bool{f.ID: true}
	for id := f.ParentID; id != "" && !seen[id]; {
		seen[id] = true
		parent, ok := p.Folder(id)
		if !ok {
			break
		}
		parts = append([]string{parent.Title}, parts...)
		id = parent.ParentID
	}
	return strings.Join(parts, " › ")
}

// FindRow returns the index of the row standing for id, or -1
func FindRow(rows []Row, id string) int {
	if id == "" {
		return -1
	}
	for i, r := range rows {
		if r.NodeID() == id {
			return i
		}
	}
	return -1
}
