package pagination

// Option configures a Pager with optional dependencies.
type Option func(*pagerOptions)

// pagerOptions holds optional Pager configuration.
type pagerOptions struct {
	config           *Config
	comparator       any
	fullComparator   bool
	hooks            *Hooks
	metrics          MetricsCollector
	logger           Logger
	subscriberBuffer int
}

func defaultPagerOptions() *pagerOptions {
	return &pagerOptions{fullComparator: true}
}

// WithConfig sets the initial pagination settings. Unset fields take defaults.
//
// Parameters:
//   - cfg: Configuration (copied)
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	cfg := pagination.Config{FirstPage: pagination.Ptr(0), PageSize: 4}
//	pager, err := pagination.New(full, pagination.WithConfig(cfg))
func WithConfig(cfg Config) Option {
	return func(o *pagerOptions) {
		o.config = &cfg
	}
}

// WithComparator attaches an ordering to the pager.
//
// By default the comparator is attached to the full collection, which is sorted
// once at construction; the window then always shows a slice of the sorted
// data. With WithFullComparator(false) it is attached to the window instead and
// only orders the current page.
//
// The comparator's item type must match the pager's, otherwise New fails with ErrType.
//
// Parameters:
//   - cmp: Comparator returning <0, 0 or >0
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	byScore := func(a, b Record) int { return cmp.Compare(b.Score, a.Score) }
//	pager, err := pagination.New(full, pagination.WithComparator(byScore))
func WithComparator[T any](cmp Comparator[T]) Option {
	return func(o *pagerOptions) {
		o.comparator = cmp
	}
}

// WithFullComparator selects where the comparator from WithComparator is attached:
// the full collection (true, the default) or the window (false).
func WithFullComparator(full bool) Option {
	return func(o *pagerOptions) {
		o.fullComparator = full
	}
}

// WithHooks sets lifecycle callbacks. Nil callbacks are ignored.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	hooks := &pagination.Hooks{
//	    OnPageChanged: func(from, to int) error {
//	        return render(to)
//	    },
//	}
//	pager, err := pagination.New(full, pagination.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *pagerOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	collector := pagination.NewPrometheusMetrics(prometheus.DefaultRegisterer, "shop")
//	pager, err := pagination.New(full, pagination.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *pagerOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	logger := zap.NewExample().Sugar()
//	pager, err := pagination.New(full, pagination.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *pagerOptions) {
		o.logger = logger
	}
}

// WithSubscriberBuffer sets the channel buffer of each Subscribe channel (default 4).
func WithSubscriberBuffer(n int) Option {
	return func(o *pagerOptions) {
		o.subscriberBuffer = n
	}
}

// PageSizeOption configures SetPageSize.
type PageSizeOption func(*pageSizeOptions)

type pageSizeOptions struct {
	resetToFirst bool
}

// ResetToFirst makes SetPageSize move to the first page instead of keeping the
// current page's records in view.
func ResetToFirst() PageSizeOption {
	return func(o *pageSizeOptions) {
		o.resetToFirst = true
	}
}
