package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/arloliu/pagination/internal/logging"
	"github.com/arloliu/pagination/internal/metrics"
	"github.com/arloliu/pagination/types"
)

// Re-export types from the types package.
//
// The types subpackage holds the shared definitions so that collection and
// internal packages can use them without importing the root package; the
// aliases below give users a flat pagination.State, pagination.Logger, etc.
type (
	State            = types.State
	Order            = types.Order
	Target           = types.Target
	EventKind        = types.EventKind
	Origin           = types.Origin
	Phase            = types.Phase
	Subscription     = types.Subscription
	MutationOption   = types.MutationOption
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
	Hooks            = types.Hooks
)

// Generic re-exports.
type (
	Event[T any]      = types.Event[T]
	Handler[T any]    = types.Handler[T]
	Container[T any]  = types.Container[T]
	KeyFunc[T any]    = types.KeyFunc[T]
	Comparator[T any] = types.Comparator[T]
)

// Re-export constants.
const (
	OrderAscending  = types.OrderAscending
	OrderNone       = types.OrderNone
	OrderDescending = types.OrderDescending

	EventInsert = types.EventInsert
	EventRemove = types.EventRemove
	EventReset  = types.EventReset
	EventSort   = types.EventSort

	OriginExternal          = types.OriginExternal
	OriginMirror            = types.OriginMirror
	OriginDerivedFromAdd    = types.OriginDerivedFromAdd
	OriginDerivedFromRemove = types.OriginDerivedFromRemove
	OriginNavigation        = types.OriginNavigation

	PhasePre    = types.PhasePre
	PhaseNormal = types.PhaseNormal
	PhasePost   = types.PhasePost
)

// Navigation targets.
var (
	First    = types.First
	Previous = types.Previous
	Next     = types.Next
	Last     = types.Last
)

// Mutation and subscription options, so callers can position an insert or
// tag a change without importing the types package.
var (
	At         = types.At
	AtAbsolute = types.AtAbsolute
	Navigate   = types.Navigate
	WithOrigin = types.WithOrigin
	InPhase    = types.InPhase
)

// Page returns a navigation target for the absolute page n.
func Page(n int) Target {
	return types.Page(n)
}

// ParseTarget parses "first", "prev", "next", "last" or a decimal page number.
// Anything else fails with ErrType.
func ParseTarget(s string) (Target, error) {
	return types.ParseTarget(s)
}

// NewSlogLogger adapts the default log/slog logger.
func NewSlogLogger() Logger {
	return logging.NewSlogDefault()
}

// NewZapLogger adapts a zap.Logger (zap.NewNop() when nil).
func NewZapLogger(logger *zap.Logger) Logger {
	return logging.NewZap(logger)
}

// NewPrometheusMetrics returns a MetricsCollector registering its metrics on reg
// (prometheus.DefaultRegisterer when nil) under namespace ("pagination" when empty).
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) MetricsCollector {
	return metrics.NewPrometheus(reg, namespace)
}
