package types

import "errors"

// Sentinel errors for the pagination library.
//
// These errors provide type-safe error checking using errors.Is().
// Components wrap them with context using fmt.Errorf("%w: detail", ErrX).
//
// ErrType and ErrRange form the validation taxonomy: ErrType reports a value
// that is not an integer where one is required, ErrRange reports an integer
// that violates its bound.

// Validation errors - returned when a candidate state or argument is rejected.
var (
	// ErrType is returned when a page number, page size or offset is not a finite integer.
	ErrType = errors.New("value must be a finite integer")

	// ErrRange is returned when a page number, page size, page origin or offset is out of bounds.
	ErrRange = errors.New("value out of range")
)

// Container errors - returned by collection mutations.
var (
	// ErrDuplicateItem is returned when an item with an existing key is added to a container.
	ErrDuplicateItem = errors.New("item with the same key already exists")

	// ErrNilKeyFunc is returned when a collection is created without a key function.
	ErrNilKeyFunc = errors.New("key function is required")
)

// Pager errors - returned by the pager constructor and lifecycle.
var (
	// ErrNilCollection is returned when a pager is created without a full collection.
	ErrNilCollection = errors.New("full collection is required")

	// ErrClosed is returned when navigation is attempted on a closed pager.
	ErrClosed = errors.New("pager closed")
)
