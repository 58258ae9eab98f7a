package types

// EventKind identifies a structural change on a Container.
type EventKind int

const (
	// EventInsert is emitted after an item was inserted.
	EventInsert EventKind = iota + 1

	// EventRemove is emitted after an item was removed.
	EventRemove

	// EventReset is emitted after the whole contents were replaced.
	EventReset

	// EventSort is emitted after the contents were reordered by the comparator.
	EventSort
)

// EventKinds lists every structural event kind in dispatch-table order.
var EventKinds = []EventKind{EventInsert, EventRemove, EventReset, EventSort}

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventInsert:
		return "insert"
	case EventRemove:
		return "remove"
	case EventReset:
		return "reset"
	case EventSort:
		return "sort"
	default:
		return "Unknown"
	}
}

// Origin tags who caused a mutation.
//
// Mutations issued by the pager on behalf of a change on the other container
// carry a derived origin so observers (and the pager's bookkeeping) can tell a
// compensating mutation from a net change of the data set.
type Origin int

const (
	// OriginExternal is a mutation made by application code.
	OriginExternal Origin = iota

	// OriginMirror is a copy of a change made on the other container.
	OriginMirror

	// OriginDerivedFromAdd is the eviction of the overflowing window item after an insert.
	// It is not a net removal and does not change the record count.
	OriginDerivedFromAdd

	// OriginDerivedFromRemove is the refill of the window after a remove.
	// It is not a net insert and does not change the record count.
	OriginDerivedFromRemove

	// OriginNavigation is a window reset caused by page navigation or a re-slice.
	OriginNavigation
)

// String returns the string representation of the origin.
func (o Origin) String() string {
	switch o {
	case OriginExternal:
		return "external"
	case OriginMirror:
		return "mirror"
	case OriginDerivedFromAdd:
		return "derived_from_add"
	case OriginDerivedFromRemove:
		return "derived_from_remove"
	case OriginNavigation:
		return "navigation"
	default:
		return "Unknown"
	}
}

// Derived reports whether the origin is a compensating mutation issued by the pager.
func (o Origin) Derived() bool {
	return o != OriginExternal
}

// Event describes one structural change of a Container.
//
// Field usage per kind:
//   - EventInsert: Item, Index (position after insert), At/Absolute (requested positions, -1 if none)
//   - EventRemove: Item, Index (position before removal)
//   - EventReset: Items (new contents), Previous (old contents), From/To when Navigation is set
//   - EventSort: Items (new order), Previous (old order)
type Event[T any] struct {
	Kind   EventKind
	Source Container[T]

	Item  T
	Index int

	// At is the caller-requested position inside Source, -1 when not supplied.
	At int
	// Absolute is the caller-requested position inside the other container, -1 when not supplied.
	Absolute int

	Items    []T
	Previous []T

	// Navigation marks a reset produced by page navigation; From and To are the old and new page.
	Navigation bool
	From       int
	To         int

	Origin Origin
}

// Handler receives container events. A returned error is propagated to the
// caller of the mutation that triggered the event.
type Handler[T any] func(ev Event[T]) error

// Phase orders handlers of the same event kind.
//
// Handlers run phase by phase (pre, normal, post) and in registration order
// within a phase.
type Phase int

const (
	// PhasePre runs before observers. Used by the pager's synchronization handler.
	PhasePre Phase = iota

	// PhaseNormal is the default phase for observers.
	PhaseNormal

	// PhasePost runs after every observer of the event.
	PhasePost
)

// Subscription identifies a registered handler.
type Subscription struct {
	Kind  EventKind
	Phase Phase
	ID    uint64
}

// SubscribeOption configures a handler registration.
type SubscribeOption func(*SubscribeOptions)

// SubscribeOptions holds handler registration settings.
type SubscribeOptions struct {
	Phase Phase
}

// InPhase registers the handler in the given phase.
func InPhase(phase Phase) SubscribeOption {
	return func(o *SubscribeOptions) {
		o.Phase = phase
	}
}

// ApplySubscribeOptions resolves registration options onto the defaults.
func ApplySubscribeOptions(opts ...SubscribeOption) SubscribeOptions {
	o := SubscribeOptions{Phase: PhaseNormal}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
