package testing

import (
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const readyTimeout = 5 * time.Second

// StartEmbeddedNATS runs an in-process NATS server with JetStream on a random
// local port and connects a client to it. Both are shut down by t.Cleanup.
//
// Returns:
//   - *server.Server: The embedded server
//   - *nats.Conn: A client connected to it
//
// Example:
//
//	_, nc := pagetest.StartEmbeddedNATS(t)
//	kv := pagetest.CreateJetStreamKV(t, nc, "records")
func StartEmbeddedNATS(t testing.TB) (*server.Server, *nats.Conn) {
	t.Helper()

	ns, err := server.NewServer(&server.Options{
		Host:      "127.0.0.1",
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
		NoLog:     true,
		NoSigs:    true,
	})
	if err != nil {
		t.Fatalf("embedded nats: %v", err)
	}

	go ns.Start()
	if !ns.ReadyForConnections(readyTimeout) {
		ns.Shutdown()
		t.Fatalf("embedded nats: not ready after %s", readyTimeout)
	}

	nc, err := nats.Connect(ns.ClientURL(), nats.Name(t.Name()), nats.Timeout(2*time.Second))
	if err != nil {
		ns.Shutdown()
		t.Fatalf("embedded nats: connect: %v", err)
	}

	t.Cleanup(func() {
		nc.Close()
		ns.Shutdown()
		ns.WaitForShutdown()
	})

	return ns, nc
}

// CreateJetStreamKV creates a memory-backed record bucket that keeps one
// revision per key, the layout source.KV expects.
func CreateJetStreamKV(t testing.TB, nc *nats.Conn, bucket string) jetstream.KeyValue {
	t.Helper()

	js, err := jetstream.New(nc)
	if err != nil {
		t.Fatalf("jetstream: %v", err)
	}

	kv, err := js.CreateKeyValue(t.Context(), jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "test records",
		History:     1,
		Storage:     jetstream.MemoryStorage,
	})
	if err != nil {
		t.Fatalf("create bucket %s: %v", bucket, err)
	}

	return kv
}

// PutRecords writes key/value pairs into kv and fails the test on the first
// error. Keys are written in the order given.
func PutRecords(t testing.TB, kv jetstream.KeyValue, pairs ...string) {
	t.Helper()

	if len(pairs)%2 != 0 {
		t.Fatalf("PutRecords: odd number of arguments (%d)", len(pairs))
	}

	for i := 0; i < len(pairs); i += 2 {
		if _, err := kv.PutString(t.Context(), pairs[i], pairs[i+1]); err != nil {
			t.Fatalf("put %s: %v", pairs[i], err)
		}
	}
}
