package pagination

import (
	"fmt"

	"github.com/arloliu/pagination/internal/state"
	"github.com/arloliu/pagination/types"
)

// GoToPage moves the window to the page the target resolves to.
//
// The candidate state is validated before anything changes: on failure the
// state and the window are left untouched. On success the window is reset to
// the new page with an event carrying From (old page) and To (new page).
//
// Parameters:
//   - target: Page(n), First, Previous, Next or Last
//
// Returns:
//   - error: ErrRange when the page is outside [FirstPage, LastPage],
//     ErrClosed after Close, otherwise the window reset's handler errors
//
// Example:
//
//	if err := pager.GoToPage(pagination.Page(3)); errors.Is(err, pagination.ErrRange) {
//	    // no such page
//	}
func (p *Pager[T]) GoToPage(target Target) error {
	label := "page"
	if target.Kind != types.TargetPage {
		label = target.String()
	}

	return p.goTo(target, label)
}

// FirstPage moves to the first page.
func (p *Pager[T]) FirstPage() error {
	return p.GoToPage(First)
}

// PreviousPage moves one page back. It fails with ErrRange on the first page.
func (p *Pager[T]) PreviousPage() error {
	return p.GoToPage(Previous)
}

// NextPage moves one page forward. It fails with ErrRange on the last page.
func (p *Pager[T]) NextPage() error {
	return p.GoToPage(Next)
}

// LastPage moves to the last page.
func (p *Pager[T]) LastPage() error {
	return p.GoToPage(Last)
}

// GoToOffset moves to the page containing the record at offset. Offsets past
// the end land on the last page.
//
// Returns:
//   - error: ErrRange for a negative offset, otherwise as GoToPage
func (p *Pager[T]) GoToOffset(offset int) error {
	if p.closed {
		return ErrClosed
	}

	if err := state.ValidateOffset(offset); err != nil {
		p.metrics.RecordValidationFailure(validationKind(err))
		p.metrics.RecordNavigation("offset", false)
		p.logger.Warn("navigation rejected", "offset", offset, "error", err)

		return fmt.Errorf("go to offset %d: %w", offset, err)
	}

	return p.goTo(Page(state.PageForOffset(p.state, offset)), "offset")
}

// HasPreviousPage reports whether a page exists before the current one.
func (p *Pager[T]) HasPreviousPage() bool {
	return p.state.CurrentPage > p.state.FirstPage
}

// HasNextPage reports whether a page exists after the current one.
func (p *Pager[T]) HasNextPage() bool {
	return p.state.CurrentPage < p.state.LastPage
}

// SetPageSize changes the page size.
//
// By default the current page becomes floor(newTotalPages*currentPage/oldTotalPages)
// (never before the first page), which keeps roughly the same records in
// view. With ResetToFirst the pager moves to the first page. Setting the
// current size again leaves the page and the window contents unchanged.
//
// Parameters:
//   - size: New page size, >= 1
//   - opts: ResetToFirst()
//
// Returns:
//   - error: ErrRange when size < 1, ErrClosed after Close
func (p *Pager[T]) SetPageSize(size int, opts ...PageSizeOption) error {
	if p.closed {
		return ErrClosed
	}

	if size < 1 {
		p.metrics.RecordValidationFailure("range")
		p.metrics.RecordNavigation("page_size", false)
		p.logger.Warn("page size rejected", "size", size)

		return fmt.Errorf("set page size %d: %w: pageSize must be >= 1", size, ErrRange)
	}

	o := &pageSizeOptions{}
	for _, opt := range opts {
		opt(o)
	}

	prev := p.state
	next, err := p.validate(state.Resize(prev, size, o.resetToFirst), "set_page_size")
	if err != nil {
		p.metrics.RecordNavigation("page_size", false)
		return fmt.Errorf("set page size %d: %w", size, err)
	}

	p.state = next
	p.logger.Debug("page size changed", "from", prev.PageSize, "to", next.PageSize, "page", next.CurrentPage)

	err = p.reslice(types.Navigate(prev.CurrentPage, next.CurrentPage))
	p.metrics.RecordNavigation("page_size", true)
	p.settle(prev)

	return err
}

func (p *Pager[T]) goTo(target Target, label string) error {
	if p.closed {
		return ErrClosed
	}

	prev := p.state
	candidate := prev
	candidate.CurrentPage = target.Resolve(prev)

	next, err := p.validate(candidate, "navigate")
	if err != nil {
		p.metrics.RecordNavigation(label, false)
		return fmt.Errorf("go to page %s: %w", target, err)
	}

	p.state = next
	p.logger.Debug("navigating", "from", prev.CurrentPage, "to", next.CurrentPage)

	err = p.reslice(types.Navigate(prev.CurrentPage, next.CurrentPage))
	p.metrics.RecordNavigation(label, true)
	p.settle(prev)

	return err
}
