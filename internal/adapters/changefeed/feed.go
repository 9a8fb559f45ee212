package changefeed

import (
	"context"
	"sync"

	"shelfmark/internal/domain"
)

// Feed fans store change notifications out to subscribers. Each subscriber
// channel holds at most one undelivered event: since any event means
// "invalidate", a full channel already carries everything the reader needs.
type Feed struct {
	mu     sync.Mutex
	subs   map[chan domain.ChangeEvent]struct{}
	closed bool
}

// New creates an empty feed
func New() *Feed {
	return &Feed{subs: make(map[chan domain.ChangeEvent]struct{})}
}

// Subscribe registers a subscriber until ctx is done
func (f *Feed) Subscribe(ctx context.Context) <-chan domain.ChangeEvent {
	ch := make(chan domain.ChangeEvent, 1)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		close(ch)
		return ch
	}
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.subs[ch]; ok {
			delete(f.subs, ch)
			close(ch)
		}
	}()

	return ch
}

// Publish delivers ev to every subscriber without blocking
func (f *Feed) Publish(ev domain.ChangeEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribers returns the number of live subscribers
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Close closes every subscriber channel; later subscriptions get a closed channel
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		delete(f.subs, ch)
		close(ch)
	}
	f.closed = true
}
