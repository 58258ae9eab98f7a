// Package state implements the pagination state algebra.
//
// All functions are pure: they never modify their arguments and have no side
// effects, so a rejected candidate leaves the caller's committed state intact.
package state

import (
	"fmt"

	"github.com/arloliu/pagination/types"
)

// Validate computes the derived fields of a candidate state and checks its invariants.
//
// Every candidate is checked, the zero state included: a pager never commits
// the absent state.
//
// Checks, in order:
//   - PageSize >= 1
//   - FirstPage is 0 or 1
//   - FirstPage <= CurrentPage <= LastPage, which is CurrentPage < TotalPages for
//     0-based and CurrentPage <= TotalPages for 1-based numbering; an empty
//     collection only has the first page
//
// Parameters:
//   - s: Candidate state
//
// Returns:
//   - types.State: s with TotalPages and LastPage recomputed
//   - error: types.ErrRange wrapped with the offending field, nil if valid
func Validate(s types.State) (types.State, error) {
	if s.PageSize < 1 {
		return s, fmt.Errorf("%w: pageSize must be >= 1, got %d", types.ErrRange, s.PageSize)
	}
	if s.TotalRecords < 0 {
		return s, fmt.Errorf("%w: totalRecords must be >= 0, got %d", types.ErrRange, s.TotalRecords)
	}
	if s.FirstPage != 0 && s.FirstPage != 1 {
		return s, fmt.Errorf("%w: firstPage must be 0 or 1, got %d", types.ErrRange, s.FirstPage)
	}

	s.TotalPages = TotalPages(s.TotalRecords, s.PageSize)
	s.LastPage = LastPage(s.FirstPage, s.TotalPages)

	if s.CurrentPage < s.FirstPage || s.CurrentPage > s.LastPage {
		op := ">="
		if s.FirstPage == 1 {
			op = ">"
		}

		return s, fmt.Errorf("%w: currentPage must be firstPage <= currentPage and totalPages %s currentPage if %d-based, got %d",
			types.ErrRange, op, s.FirstPage, s.CurrentPage)
	}

	return s, nil
}

// ValidateOffset checks a record offset.
//
// Returns:
//   - error: types.ErrRange when offset is negative
func ValidateOffset(offset int) error {
	if offset < 0 {
		return fmt.Errorf("%w: offset must be >= 0, got %d", types.ErrRange, offset)
	}

	return nil
}

// TotalPages returns ceil(records / size). Size must be >= 1.
func TotalPages(records, size int) int {
	if records <= 0 {
		return 0
	}

	return (records + size - 1) / size
}

// LastPage returns the highest valid page number for the given origin and page count.
//
// For 0-based numbering it is max(0, totalPages-1). For 1-based numbering it is
// totalPages, or 1 when there are no pages.
func LastPage(firstPage, totalPages int) int {
	if firstPage == 0 {
		return max(0, totalPages-1)
	}
	if totalPages == 0 {
		return firstPage
	}

	return totalPages
}

// Bounds returns the absolute window bounds [start, end) of the current page.
func Bounds(s types.State) (start, end int) {
	start = (s.CurrentPage - s.FirstPage) * s.PageSize

	return start, start + s.PageSize
}

// PageStart returns the absolute index of the first record on page.
func PageStart(s types.State, page int) int {
	return (page - s.FirstPage) * s.PageSize
}

// PageForOffset returns the page containing the record at offset, clamped to LastPage.
func PageForOffset(s types.State, offset int) int {
	page := offset/s.PageSize + s.FirstPage

	return min(page, s.LastPage)
}

// Recount returns s with a new record count, TotalPages and LastPage recomputed and
// CurrentPage clamped to the new LastPage. The result still needs Validate.
func Recount(s types.State, records int) types.State {
	s.TotalRecords = records
	if s.PageSize < 1 {
		return s
	}

	s.TotalPages = TotalPages(records, s.PageSize)
	s.LastPage = LastPage(s.FirstPage, s.TotalPages)
	if s.CurrentPage > s.LastPage {
		s.CurrentPage = s.LastPage
	}

	return s
}

// Resize returns s with a new page size, keeping the current page's position
// proportional: floor(newTotalPages * currentPage / oldTotalPages), never below
// FirstPage. With resetToFirst, or when there are no pages, CurrentPage becomes
// FirstPage. The result still needs Validate.
func Resize(s types.State, size int, resetToFirst bool) types.State {
	oldTotal := s.TotalPages
	s.PageSize = size
	if size < 1 {
		return s
	}
	s.TotalPages = TotalPages(s.TotalRecords, size)

	switch {
	case resetToFirst || s.TotalPages == 0 || oldTotal == 0:
		s.CurrentPage = s.FirstPage
	default:
		s.CurrentPage = max(s.FirstPage, s.TotalPages*s.CurrentPage/oldTotal)
	}

	return s
}
