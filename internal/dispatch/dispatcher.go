// Package dispatch provides ordered, phased, synchronous event dispatch for containers.
package dispatch

import (
	"errors"
	"slices"

	"github.com/arloliu/pagination/types"
)

// Dispatcher delivers container events to registered handlers.
//
// Handlers of one event kind form an ordered list sorted by phase (pre, normal,
// post) and by registration order within a phase. Every dispatch pushes a frame
// with its own post stage: functions passed to Defer while the frame is on top
// run after the frame's last handler and before Dispatch returns.
//
// Dispatcher is not safe for concurrent use.
type Dispatcher[T any] struct {
	handlers map[types.EventKind][]entry[T]
	nextID   uint64
	frames   []*frame
}

type entry[T any] struct {
	id      uint64
	phase   types.Phase
	handler types.Handler[T]
}

type frame struct {
	deferred []func() error
}

// New creates an empty dispatcher.
func New[T any]() *Dispatcher[T] {
	return &Dispatcher[T]{handlers: make(map[types.EventKind][]entry[T])}
}

// On registers handler for kind.
//
// Parameters:
//   - kind: Event kind to listen to
//   - handler: Callback; a nil handler is ignored
//   - opts: types.InPhase to select the phase (default types.PhaseNormal)
//
// Returns:
//   - types.Subscription: Handle for Off
func (d *Dispatcher[T]) On(kind types.EventKind, handler types.Handler[T], opts ...types.SubscribeOption) types.Subscription {
	o := types.ApplySubscribeOptions(opts...)
	d.nextID++
	sub := types.Subscription{Kind: kind, Phase: o.Phase, ID: d.nextID}
	if handler == nil {
		return sub
	}

	list := d.handlers[kind]
	// Insert after the last entry of the same or an earlier phase.
	pos := len(list)
	for pos > 0 && list[pos-1].phase > o.Phase {
		pos--
	}
	d.handlers[kind] = slices.Insert(slices.Clip(list), pos, entry[T]{id: sub.ID, phase: o.Phase, handler: handler})

	return sub
}

// Off removes a handler. Removing an unknown subscription is a no-op.
// A dispatch already in flight still calls the handler if it had not been reached.
func (d *Dispatcher[T]) Off(sub types.Subscription) {
	list := d.handlers[sub.Kind]
	idx := slices.IndexFunc(list, func(e entry[T]) bool { return e.id == sub.ID })
	if idx < 0 {
		return
	}
	d.handlers[sub.Kind] = slices.Delete(slices.Clone(list), idx, idx+1)
}

// Count returns the number of handlers registered for kind.
func (d *Dispatcher[T]) Count(kind types.EventKind) int {
	return len(d.handlers[kind])
}

// Dispatching reports whether an event is currently being dispatched.
func (d *Dispatcher[T]) Dispatching() bool {
	return len(d.frames) > 0
}

// Dispatch delivers ev to every handler of ev.Kind, then runs the deferred
// functions queued during the dispatch.
//
// Every handler runs even if an earlier one failed.
//
// Returns:
//   - error: Joined handler and deferred function errors, nil if all succeeded
func (d *Dispatcher[T]) Dispatch(ev types.Event[T]) error {
	list := d.handlers[ev.Kind]
	f := &frame{}
	d.frames = append(d.frames, f)
	defer func() {
		d.frames = d.frames[:len(d.frames)-1]
	}()

	var errs []error
	for _, e := range list {
		if err := e.handler(ev); err != nil {
			errs = append(errs, err)
		}
	}

	// Deferred functions may queue more work on the same frame.
	for i := 0; i < len(f.deferred); i++ {
		if err := f.deferred[i](); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Defer queues fn on the post stage of the innermost dispatch in flight, or runs
// it immediately when nothing is being dispatched.
//
// Returns:
//   - error: fn's error when run immediately, nil when queued
func (d *Dispatcher[T]) Defer(fn func() error) error {
	if len(d.frames) == 0 {
		return fn()
	}
	top := d.frames[len(d.frames)-1]
	top.deferred = append(top.deferred, fn)

	return nil
}
