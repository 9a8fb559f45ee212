package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shelfmark/internal/application"
	"shelfmark/internal/domain"
)

const nodeColumns = `id, COALESCE(parent_id, ''), kind, title, url, position, date_added`

// nodeTx wraps a transaction with the node-level statements mutations share
type nodeTx struct {
	tx *sql.Tx
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNode(row rowScanner) (*domain.Node, error) {
	var n domain.Node
	var kind string
	var added int64
	if err := row.Scan(&n.ID, &n.ParentID, &kind, &n.Title, &n.URL, &n.Index, &added); err != nil {
		return nil, err
	}
	n.Kind = domain.ParseNodeKind(kind)
	n.DateAdded = unixMilli(added)
	return &n, nil
}

// withTx runs fn in a transaction, committing on success
func (s *Store) withTx(ctx context.Context, fn func(*nodeTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(&nodeTx{tx: tx}); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// lookup returns a node by id, or ErrNotFound
func (t *nodeTx) lookup(ctx context.Context, id string) (*domain.Node, error) {
	n, err := scanNode(t.tx.QueryRowContext(ctx, `SELECT `+nodeColumns+` FROM nodes WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", application.ErrNotFound, id)
	}
	return n, err
}

// folder returns a node that must be a folder other than the store root
func (t *nodeTx) folder(ctx context.Context, id string) (*domain.Node, error) {
	n, err := t.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.Kind != domain.KindFolder {
		return nil, fmt.Errorf("%w: %s is not a folder", application.ErrInvalidOperation, id)
	}
	if n.ID == domain.RootID {
		return nil, fmt.Errorf("%w: cannot add children to the root", application.ErrProtectedRoot)
	}
	return n, nil
}

// nextPosition returns the position after the last child of parentID
func (t *nodeTx) nextPosition(ctx context.Context, parentID string) (int, error) {
	var pos int
	err := t.tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM nodes WHERE parent_id = ?`, parentID,
	).Scan(&pos)
	return pos, err
}

// childCount returns the number of direct children of id
func (t *nodeTx) childCount(ctx context.Context, id string) (int, error) {
	var n int
	err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM nodes WHERE parent_id = ?`, id).Scan(&n)
	return n, err
}

// insert adds a node row
func (t *nodeTx) insert(ctx context.Context, n *domain.Node) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO nodes (id, parent_id, kind, title, url, position, date_added)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, n.ID, n.ParentID, n.Kind.String(), n.Title, n.URL, n.Index, n.DateAdded.UnixMilli())
	return err
}

// compact closes the gap a departing child left at position
func (t *nodeTx) compact(ctx context.Context, parentID string, position int) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE nodes SET position = position - 1
		WHERE parent_id = ? AND position > ?
	`, parentID, position)
	return err
}

// deleteSubtree removes id and every node below it
func (t *nodeTx) deleteSubtree(ctx context.Context, id string) error {
	_, err := t.tx.ExecContext(ctx, `
		WITH RECURSIVE subtree(id) AS (
			SELECT ?
			UNION
			SELECT n.id FROM nodes n JOIN subtree s ON n.parent_id = s.id
		)
		DELETE FROM nodes WHERE id IN (SELECT id FROM subtree)
	`, id)
	return err
}

// reparent moves id under parentID at position
func (t *nodeTx) reparent(ctx context.Context, id, parentID string, position int) error {
	_, err := t.tx.ExecContext(ctx,
		`UPDATE nodes SET parent_id = ?, position = ? WHERE id = ?`, parentID, position, id)
	return err
}
