// Package pagination keeps a fixed-size window (one page) over a larger
// ordered in-memory collection and keeps both sides consistent as either one
// changes.
//
// A Pager is built over a full collection. Its window always holds the slice
// [start, start+PageSize) of the full collection, with
// start = (CurrentPage-FirstPage)*PageSize. Inserting, removing, resetting or
// sorting either the window or the full collection is mirrored onto the other
// side, and the window is evicted or refilled so that it never grows beyond a
// page or shows a gap.
//
// # Quick Start
//
//	import (
//	    "github.com/arloliu/pagination"
//	    "github.com/arloliu/pagination/collection"
//	)
//
//	full, err := collection.New(func(r Record) string { return r.ID }, records)
//	if err != nil {
//	    return err
//	}
//
//	pager, err := pagination.New(full, pagination.WithConfig(pagination.Config{PageSize: 10}))
//	if err != nil {
//	    return err
//	}
//	defer pager.Close()
//
//	for _, r := range pager.Items() {
//	    fmt.Println(r)
//	}
//	if pager.HasNextPage() {
//	    _ = pager.NextPage()
//	}
//
// # Events
//
// Both collections emit insert, remove, reset and sort events. The pager
// handles them in the pre phase, ahead of application observers; the follow-up
// mutations it makes (eviction, refill, re-slicing) run after every observer
// of the triggering event and are tagged with an Origin so observers can tell
// them apart from application changes. Navigation resets carry the old and the
// new page number.
//
// # Errors
//
// Invalid pages, sizes and offsets fail with ErrRange, non-integer input (for
// example ParseTarget("abc") or a YAML string where a number is expected)
// with ErrType. A failed validation never changes the state.
//
// # Sources
//
// The source package fills and maintains a full collection from a static
// slice or a NATS JetStream key-value bucket.
//
// See the examples/ directory for complete working examples.
package pagination
