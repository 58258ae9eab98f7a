// Package metrics provides pager metrics collectors.
package metrics

import "github.com/arloliu/pagination/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. It is the pager's default collector.
type NopMetrics struct{}

var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Example:
//
//	pager, err := pagination.New(full, pagination.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// NavigationMetrics implementation

// RecordNavigation discards the navigation metric.
func (n *NopMetrics) RecordNavigation(_ /* target */ string, _ /* success */ bool) {}

// RecordValidationFailure discards the validation failure metric.
func (n *NopMetrics) RecordValidationFailure(_ /* kind */ string) {}

// SyncMetrics implementation

// RecordSync discards the sync metric.
func (n *NopMetrics) RecordSync(_ /* kind */, _ /* source */ string) {}

// RecordEviction discards the eviction metric.
func (n *NopMetrics) RecordEviction() {}

// RecordRefill discards the refill metric.
func (n *NopMetrics) RecordRefill() {}

// RecordWindowSize discards the window size metric.
func (n *NopMetrics) RecordWindowSize(_ /* n */ int) {}

// RecordTotalRecords discards the total records metric.
func (n *NopMetrics) RecordTotalRecords(_ /* n */ int) {}
