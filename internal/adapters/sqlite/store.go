// Package sqlite provides a durable bookmark store backed by a SQLite file.
// Several processes may share one database; each notices the others' writes
// through Watch.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"shelfmark/internal/adapters/changefeed"
	"shelfmark/internal/application"
	"shelfmark/internal/config"
	"shelfmark/internal/domain"
	"shelfmark/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Store implements ports.BookmarkStore using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
	feed   *changefeed.Feed
	now    func() time.Time
	newID  func() string
}

// Ensure Store implements BookmarkStore
var _ ports.BookmarkStore = (*Store)(nil)

// NewStore creates a store; call Open before use
func NewStore() *Store {
	return &Store{
		feed:  changefeed.New(),
		now:   time.Now,
		newID: newNodeID,
	}
}

// Open opens or creates the database at path and seeds the built-in containers
func (s *Store) Open(path string) error {
	path, err := config.ExpandHome(path)
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	s.dbPath = path

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// busy_timeout goes in the DSN so every pooled connection gets it
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			parent_id TEXT,
			kind TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL,
			date_added INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent_id, position);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if err := s.seed(); err != nil {
		db.Close()
		return fmt.Errorf("failed to seed database: %w", err)
	}
	return nil
}

// seed inserts the root and built-in containers when missing
func (s *Store) seed() error {
	added := s.now().UnixMilli()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO nodes (id, parent_id, kind, title, url, position, date_added)
		VALUES (?, ?, 'folder', ?, '', ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(domain.RootID, nil, "", 0, added); err != nil {
		return err
	}
	for i, b := range domain.BuiltinContainers {
		if _, err := stmt.Exec(b.ID, domain.RootID, b.Title, i, added); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.dbPath
}

// Close ends all subscriptions and closes the database connection
func (s *Store) Close() error {
	s.feed.Close()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetTree returns the full tree rooted at domain.RootID. Rows whose parent
// chain does not reach the root are left out.
func (s *Store) GetTree(ctx context.Context) (*domain.Node, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+nodeColumns+` FROM nodes ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*domain.Node)
	var order []*domain.Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		if n.Kind == domain.KindFolder {
			n.Children = []*domain.Node{}
		}
		byID[n.ID] = n
		order = append(order, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	root, ok := byID[domain.RootID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", application.ErrNotFound, domain.RootID)
	}
	for _, n := range order {
		if n.ID == domain.RootID {
			continue
		}
		if parent, ok := byID[n.ParentID]; ok && parent.Kind == domain.KindFolder {
			parent.Children = append(parent.Children, n)
		}
	}
	return root, nil
}

// Get returns a single node without its children
func (s *Store) Get(ctx context.Context, id string) (*domain.Node, error) {
	var n *domain.Node
	err := s.withTx(ctx, func(tx *nodeTx) error {
		var err error
		n, err = tx.lookup(ctx, id)
		return err
	})
	return n, err
}

// Create adds a folder or bookmark at the end of its parent
func (s *Store) Create(ctx context.Context, props domain.CreateProps) (*domain.Node, error) {
	if props.Kind != domain.KindFolder && props.Kind != domain.KindBookmark {
		return nil, fmt.Errorf("%w: unknown node kind", application.ErrInvalidOperation)
	}

	n := &domain.Node{
		ID:        s.newID(),
		ParentID:  props.ParentID,
		Kind:      props.Kind,
		Title:     props.Title,
		DateAdded: s.now().Truncate(time.Millisecond),
	}
	if props.Kind == domain.KindBookmark {
		n.URL = props.URL
	}

	err := s.withTx(ctx, func(tx *nodeTx) error {
		if _, err := tx.folder(ctx, props.ParentID); err != nil {
			return err
		}
		pos, err := tx.nextPosition(ctx, props.ParentID)
		if err != nil {
			return err
		}
		n.Index = pos
		return tx.insert(ctx, n)
	})
	if err != nil {
		return nil, err
	}

	s.feed.Publish(domain.ChangeEvent{Kind: domain.ChangeCreated, ID: n.ID})
	return n, nil
}

// Update changes the title or URL of a node
func (s *Store) Update(ctx context.Context, id string, props domain.UpdateProps) (*domain.Node, error) {
	if domain.IsBuiltin(id) {
		return nil, fmt.Errorf("%w: %s", application.ErrProtectedRoot, id)
	}

	var n *domain.Node
	err := s.withTx(ctx, func(tx *nodeTx) error {
		var err error
		if n, err = tx.lookup(ctx, id); err != nil {
			return err
		}
		if props.Title != nil {
			n.Title = *props.Title
		}
		if props.URL != nil && n.Kind == domain.KindBookmark {
			n.URL = *props.URL
		}
		_, err = tx.tx.ExecContext(ctx, `UPDATE nodes SET title = ?, url = ? WHERE id = ?`, n.Title, n.URL, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.feed.Publish(domain.ChangeEvent{Kind: domain.ChangeChanged, ID: id})
	return n, nil
}

// Remove deletes a bookmark or an empty folder
func (s *Store) Remove(ctx context.Context, id string) error {
	if domain.IsBuiltin(id) {
		return fmt.Errorf("%w: %s", application.ErrProtectedRoot, id)
	}

	err := s.withTx(ctx, func(tx *nodeTx) error {
		n, err := tx.lookup(ctx, id)
		if err != nil {
			return err
		}
		count, err := tx.childCount(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", application.ErrNotEmpty, id)
		}
		if _, err := tx.tx.ExecContext(ctx, `DELETE FROM nodes WHERE id = ?`, id); err != nil {
			return err
		}
		return tx.compact(ctx, n.ParentID, n.Index)
	})
	if err != nil {
		return err
	}

	s.feed.Publish(domain.ChangeEvent{Kind: domain.ChangeRemoved, ID: id})
	return nil
}

// RemoveTree deletes a node and its whole subtree
func (s *Store) RemoveTree(ctx context.Context, id string) error {
	if domain.IsBuiltin(id) {
		return fmt.Errorf("%w: %s", application.ErrProtectedRoot, id)
	}

	err := s.withTx(ctx, func(tx *nodeTx) error {
		n, err := tx.lookup(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.deleteSubtree(ctx, id); err != nil {
			return err
		}
		return tx.compact(ctx, n.ParentID, n.Index)
	})
	if err != nil {
		return err
	}

	s.feed.Publish(domain.ChangeEvent{Kind: domain.ChangeRemoved, ID: id})
	return nil
}

// Move appends a node to the end of another folder. It does not guard
// against cycles; callers check ancestry first.
func (s *Store) Move(ctx context.Context, id string, dest domain.MoveDestination) (*domain.Node, error) {
	if domain.IsBuiltin(id) {
		return nil, fmt.Errorf("%w: %s", application.ErrProtectedRoot, id)
	}

	var n *domain.Node
	err := s.withTx(ctx, func(tx *nodeTx) error {
		var err error
		if n, err = tx.lookup(ctx, id); err != nil {
			return err
		}
		if _, err := tx.folder(ctx, dest.ParentID); err != nil {
			return err
		}
		if err := tx.compact(ctx, n.ParentID, n.Index); err != nil {
			return err
		}
		// Park the node outside any sibling list before measuring the destination
		if err := tx.reparent(ctx, id, "", -1); err != nil {
			return err
		}
		pos, err := tx.nextPosition(ctx, dest.ParentID)
		if err != nil {
			return err
		}
		n.ParentID = dest.ParentID
		n.Index = pos
		return tx.reparent(ctx, id, dest.ParentID, pos)
	})
	if err != nil {
		return nil, err
	}

	s.feed.Publish(domain.ChangeEvent{Kind: domain.ChangeMoved, ID: id})
	return n, nil
}

// Subscribe returns the store's change stream. Writes by other processes
// appear on it only while Watch runs.
func (s *Store) Subscribe(ctx context.Context) <-chan domain.ChangeEvent {
	return s.feed.Subscribe(ctx)
}

// newNodeID returns a 12 character identifier, the same width as the
// built-in container ids
func newNodeID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func unixMilli(ms int64) time.Time {
	return time.UnixMilli(ms)
}
