package domain

// ItemView is a bookmark as shown on the dashboard
type ItemView struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// DisplayTitle returns the title, falling back to the URL for untitled bookmarks
func (i ItemView) DisplayTitle() string {
	if i.Title == "" {
		return i.URL
	}
	return i.Title
}

// FolderView is a store folder flattened to a single dashboard level.
// ParentID records the containing folder for nested folders and is empty
// for folders placed directly under a scan root.
type FolderView struct {
	ID       string     `json:"id" yaml:"id"`
	Title    string     `json:"title" yaml:"title"`
	ParentID string     `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	Items    []ItemView `json:"items" yaml:"items"`
}

// Projection is the dashboard view model computed from one store snapshot
type Projection struct {
	Folders       []*FolderView `json:"folders" yaml:"folders"`
	Uncategorized []ItemView    `json:"uncategorized" yaml:"uncategorized"`

	index map[string]int
}

// NewProjection returns an empty projection
func NewProjection() *Projection {
	return &Projection{
		Folders:       []*FolderView{},
		Uncategorized: []ItemView{},
		index:         make(map[string]int),
	}
}

// Folder returns the folder view with the given identity
func (p *Projection) Folder(id string) (*FolderView, bool) {
	if p == nil {
		return nil, false
	}
	i, ok := p.index[id]
	if !ok {
		return nil, false
	}
	return p.Folders[i], true
}

// Has reports whether the projection contains a folder with the given identity
func (p *Projection) Has(id string) bool {
	_, ok := p.Folder(id)
	return ok
}

// FolderIDs returns folder identities in rendering order
func (p *Projection) FolderIDs() []string {
	if p == nil {
		return nil
	}
	ids := make([]string, 0, len(p.Folders))
	for _, f := range p.Folders {
		ids = append(ids, f.ID)
	}
	return ids
}

// ItemCount returns the number of bookmarks across all folders and the
// uncategorized bucket
func (p *Projection) ItemCount() int {
	if p == nil {
		return 0
	}
	n := len(p.Uncategorized)
	for _, f := range p.Folders {
		n += len(f.Items)
	}
	return n
}

func (p *Projection) addFolder(n *Node, parent string) *FolderView {
	f := &FolderView{ID: n.ID, Title: n.Title, ParentID: parent, Items: []ItemView{}}
	p.index[n.ID] = len(p.Folders)
	p.Folders = append(p.Folders, f)
	return f
}

// ProjectTree projects a full store tree rooted at RootID
func ProjectTree(root *Node) *Projection {
	if root == nil {
		return NewProjection()
	}
	return Project(root.Children)
}

// Project converts the children of the store root into the dashboard view model.
//
// Only the menu and toolbar roots are scanned. Bookmarks directly under a scan
// root land in Uncategorized; every non-builtin folder below them becomes a
// FolderView in first-encounter order, including nested folders, which are
// listed as additional entries rather than merged into their parent. Builtin
// containers met during the walk are transparent.
func Project(rootChildren []*Node) *Projection {
	p := NewProjection()
	w := &projector{p: p, seen: make(map[string]bool)}
	for _, child := range rootChildren {
		if child == nil || !IsScanRoot(child.ID) {
			continue
		}
		w.walkChildren(child, "")
	}
	return p
}

type projector struct {
	p    *Projection
	seen map[string]bool
}

// walkChildren walks n's children with folder as the walk-parent; an empty
// folder identity means the walk-parent is a scan root.
func (w *projector) walkChildren(n *Node, folder string) {
	for _, child := range n.Children {
		w.walk(child, folder)
	}
}

func (w *projector) walk(n *Node, folder string) {
	if n == nil || w.seen[n.ID] {
		return
	}
	w.seen[n.ID] = true

	switch {
	case n.Kind == KindBookmark:
		item := ItemView{ID: n.ID, Title: n.Title, URL: n.URL}
		if folder == "" {
			w.p.Uncategorized = append(w.p.Uncategorized, item)
			return
		}
		f, _ := w.p.Folder(folder)
		f.Items = append(f.Items, item)

	case n.Kind == KindFolder && !IsBuiltin(n.ID):
		w.p.addFolder(n, folder)
		w.walkChildren(n, n.ID)

	default:
		w.walkChildren(n, folder)
	}
}
