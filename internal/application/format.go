package application

import (
	"fmt"
	"io"

	"shelfmark/internal/domain"
)

// WriteDashboard writes a plain-text rendering of p: each folder with its
// bookmarks, then the Uncategorized section.
func WriteDashboard(w io.Writer, p *domain.Projection) error {
	ew := &errWriter{w: w}
	for _, f := range p.Folders {
		ew.printf("%s  [%s]", f.Title, f.ID)
		if f.ParentID != "" {
			if parent, ok := p.Folder(f.ParentID); ok {
				ew.printf("  (in %s)", parent.Title)
			}
		}
		ew.printf("\n")
		if len(f.Items) == 0 {
			ew.printf("  (empty)\n")
		}
		for _, it := range f.Items {
			writeItem(ew, it)
		}
	}

	ew.printf("Uncategorized\n")
	if len(p.Uncategorized) == 0 {
		ew.printf("  (empty)\n")
	}
	for _, it := range p.Uncategorized {
		writeItem(ew, it)
	}
	return ew.err
}

func writeItem(ew *errWriter, it domain.ItemView) {
	ew.printf("  %s  %s  [%s]\n", it.DisplayTitle(), it.URL, it.ID)
}

// FormatNode returns a one-line description of a store node
func FormatNode(n *domain.Node) string {
	if n.Kind == domain.KindBookmark {
		return fmt.Sprintf("%s  bookmark  %q  %s  parent=%s", n.ID, n.Title, n.URL, n.ParentID)
	}
	return fmt.Sprintf("%s  folder  %q  parent=%s", n.ID, n.Title, n.ParentID)
}

// errWriter keeps the first write error and skips later writes
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
