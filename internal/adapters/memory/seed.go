package memory

import (
	"fmt"

	"shelfmark/internal/domain"
)

// SeedFolder adds a folder without recording a call or publishing an event.
// It returns the new folder's identity.
func (s *Store) SeedFolder(parentID, title string) string {
	return s.seed(parentID, domain.KindFolder, title, "")
}

// SeedBookmark adds a bookmark without recording a call or publishing an event
func (s *Store) SeedBookmark(parentID, title, url string) string {
	return s.seed(parentID, domain.KindBookmark, title, url)
}

func (s *Store) seed(parentID string, kind domain.NodeKind, title, url string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := fmt.Sprintf("n%04d", s.nextID)
	s.insert(domain.Node{ID: id, ParentID: parentID, Kind: kind, Title: title, URL: url})
	return id
}

// NewDemo returns a store populated with a small sample collection
func NewDemo() *Store {
	s := New()

	work := s.SeedFolder(domain.ToolbarID, "Work")
	s.SeedBookmark(work, "Go Documentation", "https://go.dev/doc/")
	s.SeedBookmark(work, "pkg.go.dev", "https://pkg.go.dev/")
	tools := s.SeedFolder(work, "Tools")
	s.SeedBookmark(tools, "Bubble Tea", "https://github.com/charmbracelet/bubbletea")

	reading := s.SeedFolder(domain.MenuID, "Reading")
	s.SeedBookmark(reading, "The Go Blog", "https://go.dev/blog/")
	s.SeedFolder(domain.MenuID, "Later")

	s.SeedBookmark(domain.ToolbarID, "Go Playground", "https://go.dev/play/")
	s.SeedBookmark(domain.UnfiledID, "Not on the dashboard", "https://example.com/")

	return s
}
