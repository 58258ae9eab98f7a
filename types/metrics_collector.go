package types

// MetricsCollector defines methods for recording pager metrics.
//
// Implementations should be non-blocking. Pagers are single-threaded, but one
// collector may be shared by many pagers running on different goroutines, so
// implementations must be safe for concurrent use.
//
// This interface composes smaller, domain-focused interfaces.
type MetricsCollector interface {
	NavigationMetrics
	SyncMetrics
}

// NavigationMetrics defines metrics for page navigation.
type NavigationMetrics interface {
	// RecordNavigation records a navigation attempt.
	//
	// Parameters:
	//   - target: Target name ("first", "prev", "next", "last", "page", "offset", "page_size")
	//   - success: true if the navigation was committed
	RecordNavigation(target string, success bool)

	// RecordValidationFailure records a rejected candidate state.
	//
	// Parameters:
	//   - kind: "type" or "range"
	RecordValidationFailure(kind string)
}

// SyncMetrics defines metrics for window/full synchronization.
type SyncMetrics interface {
	// RecordSync records a processed structural event.
	//
	// Parameters:
	//   - kind: Event kind ("insert", "remove", "reset", "sort")
	//   - source: "full" or "window"
	RecordSync(kind, source string)

	// RecordEviction records the eviction of an overflowing window item.
	RecordEviction()

	// RecordRefill records a window refill after a remove.
	RecordRefill()

	// RecordWindowSize sets the current window length (gauge metric).
	RecordWindowSize(n int)

	// RecordTotalRecords sets the current full collection length (gauge metric).
	RecordTotalRecords(n int)
}
