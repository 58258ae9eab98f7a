package state

import (
	"testing"
	"testing/quick"

	"github.com/arloliu/pagination/types"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("rejects the absent state", func(t *testing.T) {
		_, err := Validate(types.State{})
		require.ErrorIs(t, err, types.ErrRange)
	})

	t.Run("rejects a resize to zero of an empty 0-based state", func(t *testing.T) {
		committed, err := Validate(types.State{FirstPage: 0, CurrentPage: 0, PageSize: 4, Order: types.OrderNone})
		require.NoError(t, err)

		candidate := Resize(committed, 0, false)
		require.True(t, candidate.IsZero())

		_, err = Validate(candidate)
		require.ErrorIs(t, err, types.ErrRange)
	})

	t.Run("derives totalPages and lastPage for 0-based pages", func(t *testing.T) {
		got, err := Validate(types.State{FirstPage: 0, CurrentPage: 3, PageSize: 4, TotalRecords: 15})
		require.NoError(t, err)
		require.Equal(t, 4, got.TotalPages)
		require.Equal(t, 3, got.LastPage)
	})

	t.Run("derives totalPages and lastPage for 1-based pages", func(t *testing.T) {
		got, err := Validate(types.State{FirstPage: 1, CurrentPage: 4, PageSize: 4, TotalRecords: 15})
		require.NoError(t, err)
		require.Equal(t, 4, got.TotalPages)
		require.Equal(t, 4, got.LastPage)
	})

	t.Run("accepts the first page of an empty collection", func(t *testing.T) {
		got, err := Validate(types.State{FirstPage: 1, CurrentPage: 1, PageSize: 25})
		require.NoError(t, err)
		require.Equal(t, 0, got.TotalPages)
		require.Equal(t, 1, got.LastPage)

		got, err = Validate(types.State{FirstPage: 0, CurrentPage: 0, PageSize: 25, Order: types.OrderDescending})
		require.NoError(t, err)
		require.Equal(t, 0, got.LastPage)
	})

	t.Run("ignores supplied derived fields", func(t *testing.T) {
		got, err := Validate(types.State{FirstPage: 1, CurrentPage: 1, PageSize: 10, TotalRecords: 11, TotalPages: 99, LastPage: 42})
		require.NoError(t, err)
		require.Equal(t, 2, got.TotalPages)
		require.Equal(t, 2, got.LastPage)
	})

	rangeCases := []struct {
		name  string
		state types.State
	}{
		{"page size below one", types.State{FirstPage: 1, CurrentPage: 1, PageSize: 0, TotalRecords: 3}},
		{"negative page size", types.State{FirstPage: 1, CurrentPage: 1, PageSize: -5, TotalRecords: 3}},
		{"first page of two", types.State{FirstPage: 2, CurrentPage: 2, PageSize: 5, TotalRecords: 3}},
		{"negative first page", types.State{FirstPage: -1, CurrentPage: 0, PageSize: 5, TotalRecords: 3}},
		{"current page below first page", types.State{FirstPage: 1, CurrentPage: 0, PageSize: 5, TotalRecords: 3}},
		{"0-based current page equal to total pages", types.State{FirstPage: 0, CurrentPage: 4, PageSize: 4, TotalRecords: 15}},
		{"1-based current page above total pages", types.State{FirstPage: 1, CurrentPage: 5, PageSize: 4, TotalRecords: 15}},
		{"second page of an empty collection", types.State{FirstPage: 1, CurrentPage: 2, PageSize: 4}},
		{"negative total records", types.State{FirstPage: 1, CurrentPage: 1, PageSize: 4, TotalRecords: -1}},
	}
	for _, tc := range rangeCases {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			_, err := Validate(tc.state)
			require.ErrorIs(t, err, types.ErrRange)
		})
	}
}

func TestValidateOffset(t *testing.T) {
	require.NoError(t, ValidateOffset(0))
	require.NoError(t, ValidateOffset(1000))
	require.ErrorIs(t, ValidateOffset(-1), types.ErrRange)
}

func TestBounds(t *testing.T) {
	start, end := Bounds(types.State{FirstPage: 0, CurrentPage: 3, PageSize: 4})
	require.Equal(t, 12, start)
	require.Equal(t, 16, end)

	start, end = Bounds(types.State{FirstPage: 1, CurrentPage: 1, PageSize: 25})
	require.Equal(t, 0, start)
	require.Equal(t, 25, end)

	require.Equal(t, 50, PageStart(types.State{FirstPage: 1, PageSize: 25}, 3))
}

func TestPageForOffset(t *testing.T) {
	s, err := Validate(types.State{FirstPage: 1, CurrentPage: 1, PageSize: 10, TotalRecords: 35})
	require.NoError(t, err)

	require.Equal(t, 1, PageForOffset(s, 0))
	require.Equal(t, 1, PageForOffset(s, 9))
	require.Equal(t, 2, PageForOffset(s, 10))
	require.Equal(t, 4, PageForOffset(s, 34))
	require.Equal(t, 4, PageForOffset(s, 500), "clamped to the last page")

	s, err = Validate(types.State{FirstPage: 0, CurrentPage: 0, PageSize: 10, TotalRecords: 35})
	require.NoError(t, err)
	require.Equal(t, 2, PageForOffset(s, 25))
	require.Equal(t, 3, PageForOffset(s, 99))
}

func TestRecount(t *testing.T) {
	t.Run("clamps the current page to the new last page", func(t *testing.T) {
		s := Recount(types.State{FirstPage: 1, CurrentPage: 3, PageSize: 5, TotalRecords: 11}, 10)
		require.Equal(t, 2, s.TotalPages)
		require.Equal(t, 2, s.LastPage)
		require.Equal(t, 2, s.CurrentPage)
	})

	t.Run("keeps the first page when the collection empties", func(t *testing.T) {
		s := Recount(types.State{FirstPage: 0, CurrentPage: 0, PageSize: 5, TotalRecords: 1}, 0)
		require.Equal(t, 0, s.TotalPages)
		require.Equal(t, 0, s.LastPage)
		require.Equal(t, 0, s.CurrentPage)

		_, err := Validate(s)
		require.NoError(t, err)
	})
}

func TestResize(t *testing.T) {
	t.Run("keeps the proportional position", func(t *testing.T) {
		s, err := Validate(types.State{FirstPage: 1, CurrentPage: 3, PageSize: 10, TotalRecords: 50})
		require.NoError(t, err)

		s = Resize(s, 5, false)
		require.Equal(t, 10, s.TotalPages)
		require.Equal(t, 6, s.CurrentPage)

		_, err = Validate(s)
		require.NoError(t, err)
	})

	t.Run("never drops below the first page", func(t *testing.T) {
		s, err := Validate(types.State{FirstPage: 1, CurrentPage: 1, PageSize: 10, TotalRecords: 50})
		require.NoError(t, err)

		s = Resize(s, 50, false)
		require.Equal(t, 1, s.CurrentPage)
	})

	t.Run("resets to the first page on request", func(t *testing.T) {
		s, err := Validate(types.State{FirstPage: 0, CurrentPage: 4, PageSize: 10, TotalRecords: 50})
		require.NoError(t, err)

		s = Resize(s, 3, true)
		require.Equal(t, 0, s.CurrentPage)
	})

	t.Run("is idempotent for the same size", func(t *testing.T) {
		s, err := Validate(types.State{FirstPage: 0, CurrentPage: 2, PageSize: 7, TotalRecords: 40})
		require.NoError(t, err)

		again, err := Validate(Resize(s, 7, false))
		require.NoError(t, err)
		require.Equal(t, s, again)
	})

	t.Run("leaves invalid sizes for validation", func(t *testing.T) {
		s, err := Validate(types.State{FirstPage: 1, CurrentPage: 1, PageSize: 7, TotalRecords: 40})
		require.NoError(t, err)

		_, err = Validate(Resize(s, 0, false))
		require.ErrorIs(t, err, types.ErrRange)
	})
}

// TestPropertyDerivedFields verifies that every valid state satisfies the
// totalPages and lastPage formulas.
func TestPropertyDerivedFields(t *testing.T) {
	f := func(records uint16, size uint8, firstPage bool, page uint16) bool {
		s := types.State{
			TotalRecords: int(records),
			PageSize:     int(size)%50 + 1,
			CurrentPage:  int(page),
		}
		if firstPage {
			s.FirstPage = 1
		}

		got, err := Validate(s)
		if err != nil {
			// Rejection is only allowed for a current page outside [firstPage, lastPage].
			return s.CurrentPage < s.FirstPage || s.CurrentPage > LastPage(s.FirstPage, TotalPages(s.TotalRecords, s.PageSize))
		}

		wantPages := (s.TotalRecords + s.PageSize - 1) / s.PageSize
		if got.TotalPages != wantPages {
			return false
		}

		wantLast := max(0, wantPages-1)
		if s.FirstPage == 1 {
			wantLast = wantPages
			if wantPages == 0 {
				wantLast = 1
			}
		}

		return got.LastPage == wantLast && got.CurrentPage >= got.FirstPage
	}

	cfg := &quick.Config{MaxCount: 1000}
	if err := quick.Check(f, cfg); err != nil {
		t.Error(err)
	}
}

// TestPropertyOffsetRoundTrip verifies that the page returned for an in-range
// offset contains that offset.
func TestPropertyOffsetRoundTrip(t *testing.T) {
	f := func(records uint16, size uint8, offset uint16, firstPage bool) bool {
		s := types.State{TotalRecords: int(records) + 1, PageSize: int(size)%50 + 1, CurrentPage: 1, FirstPage: 1}
		if !firstPage {
			s.FirstPage, s.CurrentPage = 0, 0
		}

		s, err := Validate(s)
		if err != nil {
			return false
		}

		off := int(offset) % s.TotalRecords
		s.CurrentPage = PageForOffset(s, off)
		start, end := Bounds(s)

		return start <= off && off < end
	}

	cfg := &quick.Config{MaxCount: 1000}
	if err := quick.Check(f, cfg); err != nil {
		t.Error(err)
	}
}
