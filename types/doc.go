// Package types provides core type definitions and interfaces for the pagination library.
//
// This package contains shared types that are used across multiple packages in the
// library. By keeping these types in a separate package, we avoid import cycles
// between the main pagination package, the collection package and the internal
// implementations.
//
// Key types:
//   - State: Pagination state (page numbering origin, current page, page size, counts)
//   - Container: Ordered mutable container with change notification
//   - Event: Structural change notification (insert, remove, reset, sort)
//   - Target: Navigation target (absolute page or first/previous/next/last)
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
