package types

// Hooks defines callbacks for pager lifecycle events.
//
// All hooks are optional. Unlike container event handlers, hooks are called
// once per settled cascade, after both the full collection and the window have
// reached their final state, so they always observe a coherent pager.
//
// Hook execution behavior:
//   - Hooks run synchronously on the goroutine that triggered the change
//   - Hook errors are logged and passed to OnError, they never fail the operation
//   - Hooks must not assume which operation caused the change
//
// Example:
//
//	hooks := &pagination.Hooks{
//	    OnPageChanged: func(from, to int) error {
//	        log.Printf("page %d -> %d", from, to)
//	        return nil
//	    },
//	}
type Hooks struct {
	// OnPageChanged is called when the current page number changes.
	OnPageChanged func(from, to int) error

	// OnStateChanged is called when any pagination state field changes.
	OnStateChanged func(prev, next State) error

	// OnError is called when a hook fails or a synchronization step reports an error.
	OnError func(err error) error
}
