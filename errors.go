package pagination

import "github.com/arloliu/pagination/types"

// Sentinel errors returned by the pager, re-exported from the types package.
// Check them with errors.Is.
var (
	// ErrType is returned when a page number, size or offset arrives in a form
	// that is not an integer (target strings, YAML values).
	ErrType = types.ErrType

	// ErrRange is returned when a candidate state or argument is outside its valid range.
	ErrRange = types.ErrRange

	// ErrDuplicateItem is returned when a mutation would store two items with the same key.
	ErrDuplicateItem = types.ErrDuplicateItem

	// ErrNilCollection is returned when New is given a nil full collection.
	ErrNilCollection = types.ErrNilCollection

	// ErrNilKeyFunc is returned when a collection is created without a key function.
	ErrNilKeyFunc = types.ErrNilKeyFunc

	// ErrClosed is returned by navigation on a closed pager.
	ErrClosed = types.ErrClosed
)
