// Package hooks provides default pager hook callbacks.
package hooks

import "github.com/arloliu/pagination/types"

// NopHooks implements Hooks with no-op callbacks.
//
// This is the default implementation used when no custom hooks are provided,
// eliminating the need for nil checks throughout the pager.
type NopHooks struct{}

var (
	_ func(int, int) error                 = (*NopHooks)(nil).OnPageChanged
	_ func(types.State, types.State) error = (*NopHooks)(nil).OnStateChanged
	_ func(error) error                    = (*NopHooks)(nil).OnError
)

// NewNop creates a new no-op hooks implementation.
//
// Returns:
//   - *types.Hooks: Hooks with every callback set to a no-op
func NewNop() *types.Hooks {
	h := &NopHooks{}

	return &types.Hooks{
		OnPageChanged:  h.OnPageChanged,
		OnStateChanged: h.OnStateChanged,
		OnError:        h.OnError,
	}
}

// Complete returns a copy of h where every nil callback is replaced by a no-op.
// A nil h yields NewNop().
func Complete(h *types.Hooks) *types.Hooks {
	nop := NewNop()
	if h == nil {
		return nop
	}

	out := *h
	if out.OnPageChanged == nil {
		out.OnPageChanged = nop.OnPageChanged
	}
	if out.OnStateChanged == nil {
		out.OnStateChanged = nop.OnStateChanged
	}
	if out.OnError == nil {
		out.OnError = nop.OnError
	}

	return &out
}

// OnPageChanged is a no-op implementation.
func (h *NopHooks) OnPageChanged(_, _ int) error {
	return nil
}

// OnStateChanged is a no-op implementation.
func (h *NopHooks) OnStateChanged(_, _ types.State) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(_ error) error {
	return nil
}
