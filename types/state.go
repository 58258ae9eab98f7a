package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// State is the pagination state of a pager.
//
// A State is a value: the pager replaces it on every successful validation and
// never mutates a committed State in place. The zero State is the absent
// (uninitialized) state; it never passes validation, so a pager never holds it.
//
// Derived fields (TotalPages, LastPage) are recomputed by validation; values
// supplied for them in a candidate state are ignored.
type State struct {
	// FirstPage is the page numbering origin, 0 or 1. Fixed at construction.
	FirstPage int `json:"firstPage" yaml:"firstPage"`

	// CurrentPage is the page currently materialized in the window.
	CurrentPage int `json:"currentPage" yaml:"currentPage"`

	// LastPage is the highest valid page number (derived).
	LastPage int `json:"lastPage" yaml:"lastPage"`

	// PageSize is the target window length, >= 1.
	PageSize int `json:"pageSize" yaml:"pageSize"`

	// TotalPages is ceil(TotalRecords / PageSize) (derived).
	TotalPages int `json:"totalPages" yaml:"totalPages"`

	// TotalRecords is the length of the full collection.
	TotalRecords int `json:"totalRecords" yaml:"totalRecords"`

	// SortKey names the attribute the full collection is sorted by. Informational only.
	SortKey string `json:"sortKey,omitempty" yaml:"sortKey,omitempty"`

	// Order is the sort direction. Informational only.
	Order Order `json:"order" yaml:"order"`
}

// IsZero reports whether s is the absent state.
func (s State) IsZero() bool {
	return s == State{}
}

// Order is the sort direction descriptor carried in State.
type Order int

const (
	// OrderAscending sorts from smallest to largest.
	OrderAscending Order = -1

	// OrderNone disables ordering.
	OrderNone Order = 0

	// OrderDescending sorts from largest to smallest. This is the default.
	OrderDescending Order = 1
)

// String returns the string representation of the order.
func (o Order) String() string {
	switch o {
	case OrderAscending:
		return "asc"
	case OrderNone:
		return "none"
	case OrderDescending:
		return "desc"
	default:
		return "Unknown"
	}
}

// ParseOrder parses "asc", "desc", "none" or the numeric forms -1, 1, 0.
//
// Parameters:
//   - s: Order name or number (case-insensitive)
//
// Returns:
//   - Order: Parsed order
//   - error: ErrRange for an unknown name or number
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending", "-1":
		return OrderAscending, nil
	case "desc", "descending", "1":
		return OrderDescending, nil
	case "none", "0":
		return OrderNone, nil
	default:
		return OrderNone, fmt.Errorf("%w: unknown order %q", ErrRange, s)
	}
}

// MarshalYAML encodes the order by name.
func (o Order) MarshalYAML() (any, error) {
	return o.String(), nil
}

// UnmarshalYAML decodes the order from a name or a number.
func (o *Order) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: order must be a scalar", ErrType)
	}

	parsed, err := ParseOrder(value.Value)
	if err != nil {
		return err
	}
	*o = parsed

	return nil
}

// MarshalText encodes the order by name.
func (o Order) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes the order from a name or a number.
func (o *Order) UnmarshalText(text []byte) error {
	parsed, err := ParseOrder(string(text))
	if err != nil {
		return err
	}
	*o = parsed

	return nil
}

// String renders the state for logs.
func (s State) String() string {
	return fmt.Sprintf("page %d/%d size=%d records=%d", s.CurrentPage, s.LastPage, s.PageSize, s.TotalRecords)
}
