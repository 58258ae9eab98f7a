// Package testing provides test utilities for the pagination module.
//
// This package offers helpers for setting up test environments, particularly
// an embedded NATS server for exercising the JetStream KV record source. It
// follows Go's convention of providing testing utilities in a dedicated
// package (similar to net/http/httptest).
//
// Key utilities:
//   - StartEmbeddedNATS: Single NATS server with JetStream
//   - CreateJetStreamKV: Convenience wrapper for KV bucket creation
//   - NewTestLogger: types.Logger writing to t.Logf
//
// Example usage:
//
//	import (
//	    "testing"
//	    pagetest "github.com/arloliu/pagination/testing"
//	)
//
//	func TestRecordFeed(t *testing.T) {
//	    _, nc := pagetest.StartEmbeddedNATS(t)
//	    kv := pagetest.CreateJetStreamKV(t, nc, "records")
//	    // Put records into kv and load them into a collection
//	}
package testing
