package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"

	"shelfmark/internal/domain"
)

// Watch polls the database for commits made through other connections and
// publishes a ChangeExternal event for each one it sees. It blocks until ctx
// is done.
//
// PRAGMA data_version is per connection and only moves when someone else
// commits, so Watch holds its own connection for its whole lifetime.
func (s *Store) Watch(ctx context.Context, interval time.Duration) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire watch connection: %w", err)
	}
	defer conn.Close()

	var last int64
	if err := conn.QueryRowContext(ctx, "PRAGMA data_version").Scan(&last); err != nil {
		return fmt.Errorf("failed to read data version: %w", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		var version int64
		if err := conn.QueryRowContext(ctx, "PRAGMA data_version").Scan(&version); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			glog.Warningf("sqlite: data_version poll failed: %v", err)
			continue
		}
		if version != last {
			last = version
			glog.V(2).Infof("sqlite: database changed (data_version %d)", version)
			s.feed.Publish(domain.ChangeEvent{Kind: domain.ChangeExternal})
		}
	}
}
