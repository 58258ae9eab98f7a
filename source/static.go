package source

import (
	"context"
	"slices"
	"sync"

	"github.com/arloliu/pagination/types"
)

// Static is a record source with a fixed list of records.
type Static[T any] struct {
	mu      sync.RWMutex
	records []T
}

var _ Loader[int] = (*Static[int])(nil)

// NewStatic creates a static record source.
//
// Useful for tests and for data sets that are known up front.
//
// Parameters:
//   - records: Records to load (copied)
//
// Returns:
//   - *Static[T]: Initialized static source
//
// Example:
//
//	src := source.NewStatic(records)
//	if err := src.Load(ctx, full); err != nil { /* handle */ }
func NewStatic[T any](records []T) *Static[T] {
	return &Static[T]{records: slices.Clone(records)}
}

// Records returns a copy of the current record list.
func (s *Static[T]) Records() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.records)
}

// Load resets c to the record list.
//
// Returns:
//   - error: The context error, types.ErrNilCollection for a nil container,
//     otherwise the error of c.Reset (duplicate keys, handler errors)
func (s *Static[T]) Load(ctx context.Context, c types.Container[T]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c == nil {
		return types.ErrNilCollection
	}

	return c.Reset(s.Records())
}

// Update replaces the record list. The next Load uses the new list.
//
// Example:
//
//	src.Update(refreshed)
//	_ = src.Load(ctx, full)
func (s *Static[T]) Update(records []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = slices.Clone(records)
}
