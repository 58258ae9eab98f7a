package pagination

import (
	"errors"
	"fmt"
	"slices"

	"github.com/arloliu/pagination/internal/state"
	"github.com/arloliu/pagination/types"
)

// handle is the pre-phase handler the pager registers for every event kind on
// both the full collection and the window.
//
// While one event is being synchronized the pager ignores events, including
// the ones caused by its own compensating mutations. Follow-up work that must
// run after the source event's observers (eviction, refill, re-slicing) is
// deferred on the source container and takes the same guard while it runs.
func (p *Pager[T]) handle(ev types.Event[T]) error {
	if p.busy || p.closed {
		return nil
	}

	p.busy = true
	defer func() { p.busy = false }()

	prev := p.state
	fromFull := p.isFull(ev.Source)

	var err error
	switch ev.Kind {
	case types.EventInsert:
		err = p.syncInsert(ev, fromFull)
	case types.EventRemove:
		err = p.syncRemove(ev, fromFull)
	case types.EventReset:
		err = p.syncReset(ev, fromFull)
	case types.EventSort:
		err = p.syncSort(ev, fromFull)
	}

	p.metrics.RecordSync(ev.Kind.String(), sourceName(fromFull))
	if err != nil {
		p.reportError("synchronization failed", err)
	}

	deferErr := ev.Source.Defer(func() error {
		p.settle(prev)
		return nil
	})
	if err != nil {
		return err
	}

	return deferErr
}

// syncInsert mirrors an insert and evicts the window overflow.
func (p *Pager[T]) syncInsert(ev types.Event[T], fromFull bool) error {
	cur := p.state
	start, end := state.Bounds(cur)
	key := p.full.Key(ev.Item)

	candidate := cur
	if ev.Origin != types.OriginDerivedFromRemove {
		candidate = state.Recount(cur, cur.TotalRecords+1)
	}

	if fromFull {
		next, err := p.validate(candidate, "insert")
		if err != nil {
			return err
		}
		p.state = next

		// A mirrored mutation that returns handler errors has still been
		// applied, so the compensation is scheduled either way.
		var mirrorErr error
		switch {
		case ev.Index >= start && ev.Index < end:
			p.logger.Debug("mirroring full insert into window", "key", key, "index", ev.Index, "windowIndex", ev.Index-start)
			mirrorErr = p.window.Insert(ev.Item, types.At(ev.Index-start), types.WithOrigin(types.OriginMirror))
		case ev.Index < start:
			// Everything from the insert point on moved right by one; the item
			// now at start enters the window at the front.
			entering, ok := p.full.At(start)
			if !ok {
				return nil
			}
			p.logger.Debug("shifting window after insert before page", "key", key, "entering", p.full.Key(entering))
			mirrorErr = p.window.Insert(entering, types.At(0), types.WithOrigin(types.OriginMirror))
		default:
			return nil
		}

		return errors.Join(mirrorErr, p.deferEviction(ev.Source))
	}

	at := start + ev.Index
	if ev.Absolute >= 0 {
		at = ev.Absolute
	}

	if p.full.Has(key) {
		return p.rejectWindowInsert(ev, fmt.Errorf("%w: %q is already in the full collection", types.ErrDuplicateItem, key))
	}
	if at < 0 || at > p.full.Len() {
		return p.rejectWindowInsert(ev, fmt.Errorf("%w: absolute position %d outside [0, %d]", types.ErrRange, at, p.full.Len()))
	}

	next, err := p.validate(candidate, "insert")
	if err != nil {
		return p.rejectWindowInsert(ev, err)
	}
	p.state = next

	p.logger.Debug("mirroring window insert into full collection", "key", key, "windowIndex", ev.Index, "index", at)
	mirrorErr := p.full.Insert(ev.Item, types.At(at), types.WithOrigin(types.OriginMirror))

	if at != start+ev.Index {
		// The item went somewhere else in the full collection; show the
		// page as it now is.
		return errors.Join(mirrorErr, p.deferReslice(ev.Source))
	}

	return errors.Join(mirrorErr, p.deferEviction(ev.Source))
}

// rejectWindowInsert takes a window insert back after it could not be mirrored.
func (p *Pager[T]) rejectWindowInsert(ev types.Event[T], err error) error {
	key := p.window.Key(ev.Item)
	p.logger.Warn("window insert rejected", "key", key, "error", err)

	_ = p.deferGuarded(ev.Source, func() error {
		_, _, rmErr := p.window.Remove(key, types.WithOrigin(types.OriginDerivedFromAdd))
		return rmErr
	})

	return err
}

// syncRemove mirrors a remove and refills the window.
func (p *Pager[T]) syncRemove(ev types.Event[T], fromFull bool) error {
	if ev.Origin == types.OriginDerivedFromAdd {
		return nil
	}

	cur := p.state
	start, end := state.Bounds(cur)
	key := p.full.Key(ev.Item)

	next, err := p.validate(state.Recount(cur, cur.TotalRecords-1), "remove")
	if err != nil {
		return err
	}
	p.state = next

	if !fromFull {
		p.logger.Debug("mirroring window remove into full collection", "key", key)
		_, _, mirrorErr := p.full.Remove(key, types.WithOrigin(types.OriginMirror))

		return errors.Join(mirrorErr, p.deferRefill(ev.Source, cur))
	}

	var mirrorErr error
	switch {
	case ev.Index >= start && ev.Index < end:
		p.logger.Debug("mirroring full remove into window", "key", key, "index", ev.Index)
		_, _, mirrorErr = p.window.Remove(key, types.WithOrigin(types.OriginMirror))
	case ev.Index < start:
		// Everything after the removed item moved left by one; the first
		// window item now belongs to the previous page.
		leaving, ok := p.window.At(0)
		if !ok {
			return nil
		}
		p.logger.Debug("shifting window after remove before page", "key", key, "leaving", p.window.Key(leaving))
		_, _, mirrorErr = p.window.Remove(p.window.Key(leaving), types.WithOrigin(types.OriginMirror))
	default:
		return nil
	}

	return errors.Join(mirrorErr, p.deferRefill(ev.Source, cur))
}

// syncReset handles replace-all on either side.
func (p *Pager[T]) syncReset(ev types.Event[T], fromFull bool) error {
	if !fromFull {
		if ev.Navigation {
			return nil
		}

		return p.writeBack(ev, len(ev.Previous), "reset")
	}

	cur := p.state
	candidate := cur
	candidate.TotalRecords = p.full.Len()
	candidate.CurrentPage = cur.FirstPage
	candidate.LastPage = cur.FirstPage

	next, err := p.validate(candidate, "reset")
	if err != nil {
		return err
	}
	p.state = next

	p.logger.Debug("full collection reset, showing first page", "records", next.TotalRecords)

	return p.reslice(types.Navigate(cur.CurrentPage, next.CurrentPage))
}

// syncSort re-slices the window after the full collection was reordered, or
// writes a window reorder back into the full collection.
func (p *Pager[T]) syncSort(ev types.Event[T], fromFull bool) error {
	if fromFull {
		p.logger.Debug("full collection reordered, re-slicing window")
		return p.reslice(types.Navigate(p.state.CurrentPage, p.state.CurrentPage))
	}

	if ev.Origin.Derived() {
		return nil
	}

	return p.writeBack(ev, len(ev.Items), "sort")
}

// writeBack splices the window contents into the full collection in place of
// the span [start, start+replaced) and re-slices the window when it no longer
// matches the page.
func (p *Pager[T]) writeBack(ev types.Event[T], replaced int, op string) error {
	cur := p.state
	start, _ := state.Bounds(cur)

	items := p.full.Items()
	head := items[:min(start, len(items))]
	tail := items[min(start+replaced, len(items)):]
	merged := slices.Concat(head, ev.Items, tail)

	if dup, ok := duplicateKey(p.full.Key, merged); ok {
		err := fmt.Errorf("%w: %q is already in the full collection", types.ErrDuplicateItem, dup)
		p.logger.Warn("window "+op+" rejected", "error", err)
		_ = p.deferGuarded(ev.Source, func() error {
			return p.window.Reset(ev.Previous, types.Navigate(cur.CurrentPage, cur.CurrentPage))
		})

		return err
	}

	next, err := p.validate(state.Recount(cur, len(merged)), op)
	if err != nil {
		return err
	}
	p.state = next

	p.logger.Debug("writing window back into full collection", "op", op, "start", start, "replaced", replaced, "items", len(ev.Items))
	mirrorErr := p.full.Reset(merged, types.WithOrigin(types.OriginMirror))

	nextStart, nextEnd := state.Bounds(next)
	if !sameKeys(p.full.Key, p.window.Items(), p.full.Slice(nextStart, nextEnd)) {
		return errors.Join(mirrorErr, p.deferReslice(ev.Source))
	}

	return mirrorErr
}

// deferEviction trims the window back to PageSize by removing items from the
// end once the source event's observers have run.
func (p *Pager[T]) deferEviction(source types.Container[T]) error {
	return p.deferGuarded(source, func() error {
		for p.window.Len() > p.state.PageSize {
			last, _ := p.window.At(p.window.Len() - 1)
			key := p.window.Key(last)
			p.logger.Debug("evicting window overflow", "key", key)
			p.metrics.RecordEviction()
			if _, _, err := p.window.Remove(key, types.WithOrigin(types.OriginDerivedFromAdd)); err != nil {
				return err
			}
		}

		return nil
	})
}

// deferRefill tops the window up from the full collection once the source
// event's observers have run. If the window is left empty while records
// remain (the remove emptied the last page), it steps back one page from the
// page that was shown before the remove (prev).
func (p *Pager[T]) deferRefill(source types.Container[T], prev types.State) error {
	return p.deferGuarded(source, func() error {
		start, _ := state.Bounds(p.state)
		for p.state.CurrentPage == prev.CurrentPage && p.window.Len() < p.state.PageSize {
			item, ok := p.full.At(start + p.window.Len())
			if !ok || p.window.Has(p.full.Key(item)) {
				break
			}
			p.logger.Debug("refilling window", "key", p.full.Key(item))
			p.metrics.RecordRefill()
			if err := p.window.Push(item, types.WithOrigin(types.OriginDerivedFromRemove)); err != nil {
				return err
			}
		}

		if p.window.Len() > 0 || p.state.TotalRecords == 0 {
			return nil
		}

		prevStart, prevEnd := state.Bounds(prev)
		p.logger.Debug("window emptied, stepping back one page", "from", prev.CurrentPage, "to", p.state.CurrentPage)

		return p.window.Reset(
			p.full.Slice(prevStart-prev.PageSize, prevEnd-prev.PageSize),
			types.Navigate(prev.CurrentPage, p.state.CurrentPage),
		)
	})
}

// deferReslice replaces the window with the committed page once the source
// event's observers have run.
func (p *Pager[T]) deferReslice(source types.Container[T]) error {
	return p.deferGuarded(source, func() error {
		return p.reslice(types.Navigate(p.state.CurrentPage, p.state.CurrentPage))
	})
}

// deferGuarded queues fn on source and runs it with the reentrancy guard held.
func (p *Pager[T]) deferGuarded(source types.Container[T], fn func() error) error {
	return source.Defer(func() error {
		if p.closed {
			return nil
		}
		if p.busy {
			return fn()
		}

		p.busy = true
		defer func() { p.busy = false }()

		return fn()
	})
}

func (p *Pager[T]) isFull(c types.Container[T]) bool {
	return c == types.Container[T](p.full)
}

func sourceName(fromFull bool) string {
	if fromFull {
		return "full"
	}

	return "window"
}

func sameKeys[T any](key types.KeyFunc[T], a, b []T) bool {
	return slices.EqualFunc(a, b, func(x, y T) bool { return key(x) == key(y) })
}

func duplicateKey[T any](key types.KeyFunc[T], items []T) (string, bool) {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			return k, true
		}
		seen[k] = struct{}{}
	}

	return "", false
}
