package types

// KeyFunc returns the identity of an item. Two items with the same key are the
// same record.
type KeyFunc[T any] func(item T) string

// Comparator orders two items: negative when a sorts before b, positive when
// after, zero when equal.
type Comparator[T any] func(a, b T) int

// Container is an ordered mutable sequence of items with change notification.
//
// Both the full collection and the window of a pager satisfy Container, and
// so does the pager itself, which makes a pager usable wherever a plain
// ordered collection is expected (for example a table renderer).
//
// Containers are not safe for concurrent mutation. Every mutation dispatches
// its event synchronously, including nested mutations made by handlers, and
// returns only after the whole cascade has settled.
type Container[T any] interface {
	// Len returns the number of items.
	Len() int

	// At returns the item at index i.
	At(i int) (T, bool)

	// Get returns the item with the given key.
	Get(key string) (T, bool)

	// Has reports whether an item with the given key exists.
	Has(key string) bool

	// IndexOf returns the index of the item with the given key, or -1.
	IndexOf(key string) int

	// Items returns a snapshot copy of the contents.
	Items() []T

	// Slice returns a copy of the contents in [start, end), clamped to the container bounds.
	Slice(start, end int) []T

	// Key returns the identity of item.
	Key(item T) string

	// Insert adds item at the requested position (see At), at its sorted position
	// when a comparator is attached, or at the end.
	Insert(item T, opts ...MutationOption) error

	// Push appends item.
	Push(item T, opts ...MutationOption) error

	// Remove deletes the item with the given key.
	//
	// Returns:
	//   - T: The removed item
	//   - bool: false if no item had the key
	//   - error: Joined handler errors
	Remove(key string, opts ...MutationOption) (T, bool, error)

	// Reset replaces the whole contents.
	Reset(items []T, opts ...MutationOption) error

	// Sort reorders the contents with the attached comparator.
	Sort(opts ...MutationOption) error

	// On registers a handler for an event kind.
	On(kind EventKind, handler Handler[T], opts ...SubscribeOption) Subscription

	// Off removes a handler.
	Off(sub Subscription)

	// Defer schedules fn to run after the last handler of the event currently being
	// dispatched by this container, or runs it immediately when no event is in flight.
	// A queued fn's error is joined into the error of the in-flight mutation; an
	// immediately run fn's error is returned.
	Defer(fn func() error) error
}

// MutationOptions holds per-mutation settings carried into the emitted event.
type MutationOptions struct {
	At          int
	HasAt       bool
	Absolute    int
	HasAbsolute bool
	Navigation  bool
	From        int
	To          int
	Origin      Origin
}

// MutationOption configures a single mutation.
type MutationOption func(*MutationOptions)

// At inserts at position i of the container being mutated.
func At(i int) MutationOption {
	return func(o *MutationOptions) {
		o.At = i
		o.HasAt = true
	}
}

// AtAbsolute asks the pager to mirror a window insert at absolute index i of the
// full collection instead of at the window's own offset.
func AtAbsolute(i int) MutationOption {
	return func(o *MutationOptions) {
		o.Absolute = i
		o.HasAbsolute = true
	}
}

// Navigate marks a reset as page navigation from page `from` to page `to`.
func Navigate(from, to int) MutationOption {
	return func(o *MutationOptions) {
		o.Navigation = true
		o.From = from
		o.To = to
		o.Origin = OriginNavigation
	}
}

// WithOrigin tags the mutation with an origin.
func WithOrigin(origin Origin) MutationOption {
	return func(o *MutationOptions) {
		o.Origin = origin
	}
}

// ApplyMutationOptions resolves mutation options.
func ApplyMutationOptions(opts ...MutationOption) MutationOptions {
	o := MutationOptions{At: -1, Absolute: -1}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
