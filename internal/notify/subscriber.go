package notify

import "sync"

type subscriber[S any] struct {
	ch     chan S
	mu     sync.Mutex
	closed bool
}

// trySend sends value without blocking and reports whether it was delivered.
func (s *subscriber[S]) trySend(value S) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}

	select {
	case s.ch <- value:
		return true
	default:
		// Slow subscriber; it will get the next update.
		return false
	}
}

func (s *subscriber[S]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
