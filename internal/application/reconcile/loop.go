// Package reconcile keeps the rendered dashboard in step with the bookmark
// store. Every trigger, whether a store notification or a finished local
// mutation, funnels into one single-flight fetch, project and render cycle.
package reconcile

import (
	"context"
	"sync"

	"github.com/golang/glog"

	"shelfmark/internal/application"
	"shelfmark/internal/domain"
	"shelfmark/internal/ports"
)

// Stats counts reconciliation cycles since the loop was created
type Stats struct {
	Started    int
	Rendered   int
	Superseded int
	Failed     int
}

// Loop is the reconciliation state machine. It is Idle until triggered,
// then Reconciling until no newer trigger is pending.
type Loop struct {
	store    ports.TreeReader
	renderer ports.Renderer
	notifier ports.Notifier

	mu        sync.Mutex
	epoch     uint64
	running   bool
	pending   bool
	idle      chan struct{}
	collapsed domain.CollapsedSet
	stats     Stats
}

// Option configures a Loop
type Option func(*Loop)

// WithNotifier sets where fetch failures are reported
func WithNotifier(n ports.Notifier) Option {
	return func(l *Loop) { l.notifier = n }
}

// NewLoop creates an idle loop
func NewLoop(store ports.TreeReader, renderer ports.Renderer, opts ...Option) *Loop {
	idle := make(chan struct{})
	close(idle)
	l := &Loop{
		store:     store,
		renderer:  renderer,
		idle:      idle,
		collapsed: make(domain.CollapsedSet),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Trigger requests a reconciliation. When a cycle is already in flight the
// request only marks it superseded; the newest request runs once that cycle
// finishes, however many requests arrived meanwhile.
func (l *Loop) Trigger(ctx context.Context) {
	l.mu.Lock()
	l.epoch++
	if l.running {
		l.pending = true
		l.mu.Unlock()
		return
	}
	l.running = true
	l.idle = make(chan struct{})
	l.mu.Unlock()

	go l.drain(context.WithoutCancel(ctx))
}

// Epoch returns the number of reconciliations requested so far
func (l *Loop) Epoch() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.epoch
}

func (l *Loop) drain(ctx context.Context) {
	for {
		l.mu.Lock()
		epoch := l.epoch
		l.pending = false
		l.stats.Started++
		l.mu.Unlock()

		l.cycle(ctx, epoch)

		l.mu.Lock()
		if !l.pending {
			l.running = false
			close(l.idle)
			l.mu.Unlock()
			return
		}
		l.mu.Unlock()
	}
}

func (l *Loop) cycle(ctx context.Context, epoch uint64) {
	glog.V(2).Infof("reconcile: cycle %d started", epoch)

	root, err := l.store.GetTree(ctx)
	if err != nil {
		l.mu.Lock()
		l.stats.Failed++
		l.mu.Unlock()
		glog.Warningf("reconcile: cycle %d fetch failed: %v", epoch, err)
		if l.notifier != nil {
			l.notifier.Notify((&application.StoreError{Op: "getTree", Err: err}).Error(), true)
		}
		return
	}

	projection := domain.ProjectTree(root)

	l.mu.Lock()
	if epoch != l.epoch {
		l.stats.Superseded++
		l.mu.Unlock()
		glog.V(2).Infof("reconcile: cycle %d superseded by %d", epoch, l.Epoch())
		return
	}
	l.collapsed.Prune(projection)
	collapsed := l.collapsed.Clone()
	l.stats.Rendered++
	l.mu.Unlock()

	// Rendering happens outside the lock; only this goroutine renders while
	// running is set, so renders never interleave.
	l.renderer.Render(projection, collapsed)
	glog.V(2).Infof("reconcile: cycle %d rendered %d folders, %d bookmarks",
		epoch, len(projection.Folders), projection.ItemCount())
}

// WaitIdle blocks until no cycle is in flight or ctx is done
func (l *Loop) WaitIdle(ctx context.Context) error {
	l.mu.Lock()
	idle := l.idle
	l.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run subscribes to store notifications and reconciles on each one until
// ctx is done. It starts with an initial reconciliation.
func (l *Loop) Run(ctx context.Context, events <-chan domain.ChangeEvent) {
	l.Trigger(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			glog.V(2).Infof("reconcile: store %s %s", ev.Kind, ev.ID)
			l.Trigger(ctx)
		}
	}
}

// SetCollapsed records whether a folder is collapsed
func (l *Loop) SetCollapsed(id string, collapsed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if collapsed {
		l.collapsed[id] = true
	} else {
		delete(l.collapsed, id)
	}
}

// ToggleCollapsed flips a folder's collapsed state and returns the new state
func (l *Loop) ToggleCollapsed(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.collapsed[id] {
		delete(l.collapsed, id)
		return false
	}
	l.collapsed[id] = true
	return true
}

// Collapsed returns a snapshot of the collapsed folders
func (l *Loop) Collapsed() domain.CollapsedSet {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.collapsed.Clone()
}

// Stats returns a snapshot of the cycle counters
func (l *Loop) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}
