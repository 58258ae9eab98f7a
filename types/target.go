package types

import (
	"fmt"
	"strconv"
	"strings"
)

// TargetKind selects how a navigation Target resolves to a page number.
type TargetKind int

const (
	// TargetPage is an absolute page number.
	TargetPage TargetKind = iota

	// TargetFirst resolves to the first page.
	TargetFirst

	// TargetPrevious resolves to the current page minus one.
	TargetPrevious

	// TargetNext resolves to the current page plus one.
	TargetNext

	// TargetLast resolves to the last page.
	TargetLast
)

// Target is a navigation target: an absolute page or a symbolic position.
type Target struct {
	Kind TargetKind
	Page int
}

// Symbolic targets.
var (
	First    = Target{Kind: TargetFirst}
	Previous = Target{Kind: TargetPrevious}
	Next     = Target{Kind: TargetNext}
	Last     = Target{Kind: TargetLast}
)

// Page returns a target for the absolute page n.
func Page(n int) Target {
	return Target{Kind: TargetPage, Page: n}
}

// Resolve returns the concrete page number for the target against state s.
func (t Target) Resolve(s State) int {
	switch t.Kind {
	case TargetFirst:
		return s.FirstPage
	case TargetPrevious:
		return s.CurrentPage - 1
	case TargetNext:
		return s.CurrentPage + 1
	case TargetLast:
		return s.LastPage
	default:
		return t.Page
	}
}

// String returns the string representation of the target.
func (t Target) String() string {
	switch t.Kind {
	case TargetFirst:
		return "first"
	case TargetPrevious:
		return "prev"
	case TargetNext:
		return "next"
	case TargetLast:
		return "last"
	default:
		return strconv.Itoa(t.Page)
	}
}

// ParseTarget parses "first", "prev", "next", "last" or a decimal page number.
//
// Parameters:
//   - s: Target text (case-insensitive, surrounding spaces ignored)
//
// Returns:
//   - Target: Parsed target
//   - error: ErrType when s is neither a symbolic name nor an integer
//
// Example:
//
//	t, err := types.ParseTarget(r.URL.Query().Get("page"))
//	if err != nil { /* 400 */ }
//	err = pager.GoToPage(t)
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first":
		return First, nil
	case "prev", "previous":
		return Previous, nil
	case "next":
		return Next, nil
	case "last":
		return Last, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Target{}, fmt.Errorf("%w: page %q", ErrType, s)
	}

	return Page(n), nil
}
