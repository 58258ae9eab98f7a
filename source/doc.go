// Package source provides built-in record sources that fill a full
// collection.
//
// Sources load records into any types.Container, usually the full collection
// a pager is built on. The pager picks the changes up through the
// collection's events like any other mutation. The package includes:
//
//   - Static: Fixed list of records
//   - KV: Records mirrored from a NATS JetStream KeyValue bucket
//
// Custom sources can be implemented by satisfying the Loader interface.
package source

import (
	"context"

	"github.com/arloliu/pagination/types"
)

// Loader replaces the contents of a container with the records of a source.
type Loader[T any] interface {
	Load(ctx context.Context, c types.Container[T]) error
}
