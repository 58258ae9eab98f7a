// Package notify fans out value updates to channel subscribers.
package notify

import (
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"
)

// DefaultBuffer is the channel buffer size used when New is given a size below 1.
const DefaultBuffer = 4

// Broadcaster delivers the latest value of S to any number of subscribers.
//
// Publishing never blocks: a subscriber whose buffer is full misses the
// update and only sees later ones. Broadcaster is safe for concurrent use.
type Broadcaster[S any] struct {
	mu      sync.RWMutex
	current S
	closed  bool

	buffer      int
	subscribers *xsync.Map[uint64, *subscriber[S]]
	nextID      atomic.Uint64
	dropped     atomic.Uint64
}

// New creates a broadcaster holding initial as its current value.
//
// Parameters:
//   - initial: Value sent to every new subscriber
//   - buffer: Per-subscriber channel buffer (DefaultBuffer when < 1)
func New[S any](initial S, buffer int) *Broadcaster[S] {
	if buffer < 1 {
		buffer = DefaultBuffer
	}

	return &Broadcaster[S]{
		current:     initial,
		buffer:      buffer,
		subscribers: xsync.NewMap[uint64, *subscriber[S]](),
	}
}

// Subscribe returns a channel that receives published values.
//
// The subscriber receives the current value immediately. Subscribing to a
// closed broadcaster returns an already closed channel.
//
// Returns:
//   - <-chan S: Channel that receives updates
//   - func(): Unsubscribe function, safe to call more than once
//
// Example:
//
//	ch, unsubscribe := b.Subscribe()
//	defer unsubscribe()
//	for s := range ch {
//	    fmt.Println(s)
//	}
func (b *Broadcaster[S]) Subscribe() (<-chan S, func()) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	sub := &subscriber[S]{ch: make(chan S, b.buffer)}
	if b.closed {
		sub.close()
		return sub.ch, func() {}
	}

	id := b.nextID.Add(1)
	b.subscribers.Store(id, sub)
	if !sub.trySend(b.current) {
		b.dropped.Add(1)
	}

	return sub.ch, func() { b.remove(id) }
}

// Publish stores value as current and sends it to every subscriber.
// It is a no-op after Close.
func (b *Broadcaster[S]) Publish(value S) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.current = value
	b.mu.Unlock()

	b.subscribers.Range(func(_ uint64, sub *subscriber[S]) bool {
		if !sub.trySend(value) {
			b.dropped.Add(1)
		}

		return true
	})
}

// Current returns the last published value.
func (b *Broadcaster[S]) Current() S {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.current
}

// Len returns the number of active subscribers.
func (b *Broadcaster[S]) Len() int {
	return b.subscribers.Size()
}

// Dropped returns how many updates were not delivered because a subscriber's buffer was full.
func (b *Broadcaster[S]) Dropped() uint64 {
	return b.dropped.Load()
}

// Close closes every subscriber channel. Further Publish calls are ignored.
func (b *Broadcaster[S]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	b.subscribers.Range(func(id uint64, sub *subscriber[S]) bool {
		b.subscribers.Delete(id)
		sub.close()

		return true
	})
}

func (b *Broadcaster[S]) remove(id uint64) {
	if sub, ok := b.subscribers.LoadAndDelete(id); ok {
		sub.close()
	}
}
