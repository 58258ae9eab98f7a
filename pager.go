package pagination

import (
	"errors"
	"fmt"

	"github.com/arloliu/pagination/collection"
	"github.com/arloliu/pagination/internal/digest"
	"github.com/arloliu/pagination/internal/hooks"
	"github.com/arloliu/pagination/internal/logging"
	"github.com/arloliu/pagination/internal/metrics"
	"github.com/arloliu/pagination/internal/notify"
	"github.com/arloliu/pagination/internal/state"
	"github.com/arloliu/pagination/types"
)

// Pager keeps a one-page window over a full collection in sync with it.
//
// Pager embeds the window collection, so it is itself a Container: reading it
// yields the current page, and mutating it (Insert, Push, Remove, Reset, Sort)
// writes through to the full collection. Mutations of the full collection are
// reflected into the window. After every change the window is again the slice
// [start, start+PageSize) of the full collection, where start is
// (CurrentPage-FirstPage)*PageSize.
//
// Thread Safety:
//   - Pager, its window and the full collection are not safe for concurrent use
//   - All synchronization happens synchronously inside the mutating call
//   - Subscribe channels may be consumed from any goroutine
//
// Lifecycle:
//   - Create with New()
//   - Mutate either side and navigate with GoToPage and friends
//   - Call Close() to detach the pager from the full collection
type Pager[T any] struct {
	*collection.Collection[T]

	full   *collection.Collection[T]
	window *collection.Collection[T]
	cfg    Config

	state  types.State
	busy   bool
	closed bool

	fullSubs   []types.Subscription
	windowSubs []types.Subscription

	hooks    *Hooks
	metrics  MetricsCollector
	logger   Logger
	notifier *notify.Broadcaster[State]
}

// Snapshot is a point-in-time copy of a pager's page.
type Snapshot[T any] struct {
	State State
	Items []T

	// Digest fingerprints the page position and the item keys in order.
	Digest uint64
}

// New creates a pager over full.
//
// The initial state is built from the configuration (WithConfig, defaults
// otherwise) and the length of full, validated, and the window is filled with
// the current page.
//
// Parameters:
//   - full: The full collection; the pager subscribes to its events
//   - opts: Optional configuration (config, comparator, hooks, metrics, logger)
//
// Returns:
//   - *Pager[T]: Initialized pager
//   - error: ErrNilCollection, ErrRange for an invalid configuration or initial
//     page, ErrType for a comparator of the wrong item type
//
// Example:
//
//	full, _ := collection.New(func(r Record) string { return r.ID }, records)
//	pager, err := pagination.New(full, pagination.WithConfig(pagination.Config{PageSize: 10}))
//	if err != nil {
//	    return err
//	}
//	defer pager.Close()
func New[T any](full *collection.Collection[T], opts ...Option) (*Pager[T], error) {
	if full == nil {
		return nil, ErrNilCollection
	}

	options := defaultPagerOptions()
	for _, opt := range opts {
		opt(options)
	}

	cfg := DefaultConfig()
	if options.config != nil {
		cfg = *options.config
	}
	SetDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logging.NewNop()
	}

	cfg.ValidateWithWarnings(loggerInstance)

	window, err := collection.New(full.Key, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if options.comparator != nil {
		cmp, ok := options.comparator.(types.Comparator[T])
		if !ok {
			return nil, fmt.Errorf("%w: comparator item type %T does not match the collection", ErrType, options.comparator)
		}

		if options.fullComparator {
			full.SetComparator(cmp)
			if err := full.Sort(); err != nil {
				return nil, fmt.Errorf("failed to sort full collection: %w", err)
			}
		} else {
			window.SetComparator(cmp)
		}
	}

	initial, err := state.Validate(cfg.initialState(full.Len()))
	if err != nil {
		metricsCollector.RecordValidationFailure(validationKind(err))
		return nil, fmt.Errorf("invalid initial state: %w", err)
	}

	p := &Pager[T]{
		Collection: window,
		full:       full,
		window:     window,
		cfg:        cfg,
		state:      initial,
		hooks:      hooks.Complete(options.hooks),
		metrics:    metricsCollector,
		logger:     loggerInstance,
		notifier:   notify.New(initial, options.subscriberBuffer),
	}

	p.bind()

	if err := p.reslice(types.Navigate(initial.CurrentPage, initial.CurrentPage)); err != nil {
		p.unbind()
		return nil, fmt.Errorf("failed to fill window: %w", err)
	}

	p.metrics.RecordWindowSize(window.Len())
	p.metrics.RecordTotalRecords(initial.TotalRecords)
	p.logger.Debug("pager created", "state", initial.String(), "window", window.Len())

	return p, nil
}

// State returns the current pagination state.
func (p *Pager[T]) State() State {
	return p.state
}

// Config returns the effective configuration the pager was created with.
func (p *Pager[T]) Config() Config {
	return p.cfg
}

// Full returns the full collection.
func (p *Pager[T]) Full() *collection.Collection[T] {
	return p.full
}

// Window returns the window collection. It is the same collection the pager embeds.
func (p *Pager[T]) Window() *collection.Collection[T] {
	return p.window
}

// Snapshot returns a copy of the current page with its state and digest.
func (p *Pager[T]) Snapshot() Snapshot[T] {
	items := p.window.Items()
	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = p.window.Key(item)
	}

	return Snapshot[T]{
		State:  p.state,
		Items:  items,
		Digest: digest.Page(p.state, keys),
	}
}

// Subscribe returns a channel that receives the pagination state after every
// settled change.
//
// The channel is buffered and receives the current state immediately. Sends
// never block the pager: a subscriber that falls behind misses intermediate
// states but always sees a later one. The channel is closed by the returned
// unsubscribe function or by Close.
//
// Returns:
//   - <-chan State: Channel that receives state updates
//   - func(): Unsubscribe function
//
// Example:
//
//	ch, unsubscribe := pager.Subscribe()
//	defer unsubscribe()
//	go func() {
//	    for s := range ch {
//	        fmt.Println(s)
//	    }
//	}()
func (p *Pager[T]) Subscribe() (<-chan State, func()) {
	return p.notifier.Subscribe()
}

// Close detaches the pager from both collections and closes every Subscribe
// channel. The window keeps its last contents. Navigation afterwards fails
// with ErrClosed. Close is idempotent.
func (p *Pager[T]) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	p.unbind()
	p.notifier.Close()
	p.logger.Debug("pager closed", "state", p.state.String())

	return nil
}

func (p *Pager[T]) bind() {
	for _, kind := range types.EventKinds {
		p.fullSubs = append(p.fullSubs, p.full.On(kind, p.handle, types.InPhase(types.PhasePre)))
		p.windowSubs = append(p.windowSubs, p.window.On(kind, p.handle, types.InPhase(types.PhasePre)))
	}
}

func (p *Pager[T]) unbind() {
	for _, sub := range p.fullSubs {
		p.full.Off(sub)
	}
	for _, sub := range p.windowSubs {
		p.window.Off(sub)
	}
	p.fullSubs = nil
	p.windowSubs = nil
}

// validate checks a candidate state. On failure the committed state is
// returned unchanged together with the error.
func (p *Pager[T]) validate(candidate types.State, op string) (types.State, error) {
	next, err := state.Validate(candidate)
	if err != nil {
		p.metrics.RecordValidationFailure(validationKind(err))
		p.logger.Warn("pagination state rejected", "op", op, "candidate", candidate.String(), "error", err)

		return p.state, err
	}

	return next, nil
}

// reslice replaces the window with the full collection's slice for the
// committed state.
func (p *Pager[T]) reslice(opts ...types.MutationOption) error {
	start, end := state.Bounds(p.state)
	return p.window.Reset(p.full.Slice(start, end), opts...)
}

// settle publishes a state change to subscribers, hooks and metrics.
func (p *Pager[T]) settle(prev types.State) {
	cur := p.state
	p.metrics.RecordWindowSize(p.window.Len())
	p.metrics.RecordTotalRecords(cur.TotalRecords)

	if cur == prev {
		return
	}

	p.logger.Debug("pagination state changed", "from", prev.String(), "to", cur.String())
	p.notifier.Publish(cur)

	if err := p.hooks.OnStateChanged(prev, cur); err != nil {
		p.reportError("OnStateChanged hook failed", err)
	}
	if prev.CurrentPage != cur.CurrentPage {
		if err := p.hooks.OnPageChanged(prev.CurrentPage, cur.CurrentPage); err != nil {
			p.reportError("OnPageChanged hook failed", err)
		}
	}
}

func (p *Pager[T]) reportError(msg string, err error) {
	p.logger.Error(msg, "error", err)
	if hookErr := p.hooks.OnError(fmt.Errorf("%s: %w", msg, err)); hookErr != nil {
		p.logger.Error("OnError hook failed", "error", hookErr)
	}
}

func validationKind(err error) string {
	if errors.Is(err, types.ErrType) {
		return "type"
	}

	return "range"
}
