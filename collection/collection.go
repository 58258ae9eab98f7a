package collection

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/pagination/internal/dispatch"
	"github.com/arloliu/pagination/types"
)

// Collection is an ordered sequence of unique items with change notification.
//
// Collection is not safe for concurrent use.
type Collection[T any] struct {
	key    types.KeyFunc[T]
	cmp    types.Comparator[T]
	items  []T
	index  map[string]T
	events *dispatch.Dispatcher[T]
}

var _ types.Container[int] = (*Collection[int])(nil)

// Option configures a Collection.
type Option[T any] func(*Collection[T])

// WithComparator attaches a comparator. The initial items are sorted with it,
// inserts without an explicit position go to their sorted position and Sort
// reorders with it.
func WithComparator[T any](cmp types.Comparator[T]) Option[T] {
	return func(c *Collection[T]) {
		c.cmp = cmp
	}
}

// New creates a collection holding a copy of items.
//
// Parameters:
//   - key: Identity function (required)
//   - items: Initial contents (may be nil)
//   - opts: Optional configuration (WithComparator)
//
// Returns:
//   - *Collection[T]: Initialized collection
//   - error: types.ErrNilKeyFunc, or types.ErrDuplicateItem if two items share a key
func New[T any](key types.KeyFunc[T], items []T, opts ...Option[T]) (*Collection[T], error) {
	if key == nil {
		return nil, types.ErrNilKeyFunc
	}

	c := &Collection[T]{
		key:    key,
		events: dispatch.New[T](),
	}
	for _, opt := range opts {
		opt(c)
	}

	index, err := c.buildIndex(items)
	if err != nil {
		return nil, err
	}
	c.items = slices.Clone(items)
	c.index = index
	if c.cmp != nil {
		slices.SortStableFunc(c.items, c.cmp)
	}

	return c, nil
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// At returns the item at index i.
func (c *Collection[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(c.items) {
		var zero T
		return zero, false
	}

	return c.items[i], true
}

// Get returns the item with the given key.
func (c *Collection[T]) Get(key string) (T, bool) {
	item, ok := c.index[key]
	return item, ok
}

// Has reports whether an item with the given key exists.
func (c *Collection[T]) Has(key string) bool {
	_, ok := c.index[key]
	return ok
}

// IndexOf returns the position of the item with the given key, or -1.
func (c *Collection[T]) IndexOf(key string) int {
	if !c.Has(key) {
		return -1
	}

	return slices.IndexFunc(c.items, func(item T) bool { return c.key(item) == key })
}

// Items returns a copy of the contents.
func (c *Collection[T]) Items() []T {
	return slices.Clone(c.items)
}

// Slice returns a copy of the items in [start, end), clamped to the collection bounds.
func (c *Collection[T]) Slice(start, end int) []T {
	start = max(0, start)
	end = min(len(c.items), end)
	if start >= end {
		return []T{}
	}

	return slices.Clone(c.items[start:end])
}

// All iterates over index and item pairs of a snapshot of the contents.
func (c *Collection[T]) All() iter.Seq2[int, T] {
	items := c.Items()

	return slices.All(items)
}

// Key returns the identity of item.
func (c *Collection[T]) Key(item T) string {
	return c.key(item)
}

// Comparator returns the attached comparator, or nil.
func (c *Collection[T]) Comparator() types.Comparator[T] {
	return c.cmp
}

// SetComparator attaches (or with nil, detaches) a comparator. It does not reorder
// the current contents; call Sort for that.
func (c *Collection[T]) SetComparator(cmp types.Comparator[T]) {
	c.cmp = cmp
}

// Insert adds item and emits types.EventInsert.
//
// Position: types.At(i) inserts at i (0 <= i <= Len); without it the item goes to
// its sorted position when a comparator is attached, or to the end.
//
// Returns:
//   - error: types.ErrDuplicateItem or types.ErrRange before any change, otherwise
//     the joined errors of the event handlers
func (c *Collection[T]) Insert(item T, opts ...types.MutationOption) error {
	o := types.ApplyMutationOptions(opts...)
	k := c.key(item)
	if c.Has(k) {
		return fmt.Errorf("%w: %q", types.ErrDuplicateItem, k)
	}

	pos := len(c.items)
	switch {
	case o.HasAt:
		if o.At < 0 || o.At > len(c.items) {
			return fmt.Errorf("%w: insert position %d outside [0, %d]", types.ErrRange, o.At, len(c.items))
		}
		pos = o.At
	case c.cmp != nil:
		pos = c.sortedPosition(item)
	}

	c.items = slices.Insert(c.items, pos, item)
	c.index[k] = item

	return c.events.Dispatch(types.Event[T]{
		Kind:     types.EventInsert,
		Source:   c,
		Item:     item,
		Index:    pos,
		At:       o.At,
		Absolute: o.Absolute,
		Origin:   o.Origin,
	})
}

// Push appends item, ignoring any comparator.
func (c *Collection[T]) Push(item T, opts ...types.MutationOption) error {
	return c.Insert(item, append(opts, types.At(len(c.items)))...)
}

// Remove deletes the item with the given key and emits types.EventRemove.
//
// Returns:
//   - T: The removed item
//   - bool: false when no item had the key (nothing is emitted)
//   - error: Joined errors of the event handlers
func (c *Collection[T]) Remove(key string, opts ...types.MutationOption) (T, bool, error) {
	idx := c.IndexOf(key)
	if idx < 0 {
		var zero T
		return zero, false, nil
	}

	o := types.ApplyMutationOptions(opts...)
	item := c.items[idx]
	c.items = slices.Delete(c.items, idx, idx+1)
	delete(c.index, key)

	err := c.events.Dispatch(types.Event[T]{
		Kind:     types.EventRemove,
		Source:   c,
		Item:     item,
		Index:    idx,
		At:       -1,
		Absolute: -1,
		Origin:   o.Origin,
	})

	return item, true, err
}

// Reset replaces the contents with a copy of items and emits types.EventReset.
//
// External resets are sorted when a comparator is attached; resets tagged with a
// derived origin (navigation, mirror) keep the given order.
//
// Returns:
//   - error: types.ErrDuplicateItem before any change, otherwise the joined
//     errors of the event handlers
func (c *Collection[T]) Reset(items []T, opts ...types.MutationOption) error {
	index, err := c.buildIndex(items)
	if err != nil {
		return err
	}

	o := types.ApplyMutationOptions(opts...)
	prev := c.items
	c.items = slices.Clone(items)
	c.index = index
	if c.cmp != nil && !o.Origin.Derived() {
		slices.SortStableFunc(c.items, c.cmp)
	}

	ev := types.Event[T]{
		Kind:     types.EventReset,
		Source:   c,
		Index:    -1,
		At:       -1,
		Absolute: -1,
		Items:    slices.Clone(c.items),
		Previous: prev,
		Origin:   o.Origin,
	}
	if o.Navigation {
		ev.Navigation = true
		ev.From = o.From
		ev.To = o.To
	}

	return c.events.Dispatch(ev)
}

// Sort reorders the contents with the attached comparator (stable) and emits
// types.EventSort. Without a comparator it does nothing.
func (c *Collection[T]) Sort(opts ...types.MutationOption) error {
	if c.cmp == nil {
		return nil
	}

	o := types.ApplyMutationOptions(opts...)
	prev := slices.Clone(c.items)
	slices.SortStableFunc(c.items, c.cmp)

	return c.events.Dispatch(types.Event[T]{
		Kind:     types.EventSort,
		Source:   c,
		Index:    -1,
		At:       -1,
		Absolute: -1,
		Items:    slices.Clone(c.items),
		Previous: prev,
		Origin:   o.Origin,
	})
}

// On registers handler for kind. See types.InPhase for ordering.
func (c *Collection[T]) On(kind types.EventKind, handler types.Handler[T], opts ...types.SubscribeOption) types.Subscription {
	return c.events.On(kind, handler, opts...)
}

// Off removes a handler.
func (c *Collection[T]) Off(sub types.Subscription) {
	c.events.Off(sub)
}

// Defer runs fn after the last handler of the event this collection is currently
// dispatching, or immediately when it is idle.
func (c *Collection[T]) Defer(fn func() error) error {
	return c.events.Defer(fn)
}

// HandlerCount returns the number of handlers registered for kind.
func (c *Collection[T]) HandlerCount(kind types.EventKind) int {
	return c.events.Count(kind)
}

// sortedPosition returns the insertion index after every item that does not sort after item.
func (c *Collection[T]) sortedPosition(item T) int {
	pos, _ := slices.BinarySearchFunc(c.items, item, func(e, target T) int {
		if c.cmp(e, target) <= 0 {
			return -1
		}

		return 1
	})

	return pos
}

func (c *Collection[T]) buildIndex(items []T) (map[string]T, error) {
	index := make(map[string]T, len(items))
	var errs []error
	for _, item := range items {
		k := c.key(item)
		if _, dup := index[k]; dup {
			errs = append(errs, fmt.Errorf("%w: %q", types.ErrDuplicateItem, k))
			continue
		}
		index[k] = item
	}

	return index, errors.Join(errs...)
}
