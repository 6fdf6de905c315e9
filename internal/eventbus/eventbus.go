// Package eventbus provides a small type-safe publish/subscribe bus used to
// decouple the sweep runner from progress reporting.
package eventbus

import "sync"

// Bus fans events of type T out to all subscribers. Delivery is
// non-blocking: a subscriber that stops draining its channel loses events
// instead of stalling publishers.
type Bus[T any] struct {
	mu     sync.RWMutex
	buffer int
	subs   []chan T
	closed bool
}

// New creates a Bus whose subscriber channels hold up to buffer events.
// A non-positive buffer defaults to 16.
func New[T any](buffer int) *Bus[T] {
	if buffer <= 0 {
		buffer = 16
	}
	return &Bus[T]{buffer: buffer}
}

// Publish delivers e to every subscriber and reports how many received it.
func (b *Bus[T]) Publish(e T) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return 0
	}
	delivered := 0
	for _, ch := range b.subs {
		select {
		case ch <- e:
			delivered++
		default:
		}
	}
	return delivered
}

// Subscribe registers a subscriber and returns its receive channel. The
// channel is closed when the subscriber is removed or the bus closes.
func (b *Bus[T]) Subscribe() <-chan T {
	ch := make(chan T, b.buffer)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, ch)
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *Bus[T]) Unsubscribe(sub <-chan T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ch := range b.subs {
		if ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			if !b.closed {
				close(ch)
			}
			return
		}
	}
}

// Close closes every subscriber channel. Publishing after Close is a no-op.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
