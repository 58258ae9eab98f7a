package kvutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"
)

func TestIsConnectivityError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "timeout", err: nats.ErrTimeout, want: true},
		{name: "wrapped disconnect", err: fmt.Errorf("watch: %w", nats.ErrDisconnected), want: true},
		{name: "closed connection", err: nats.ErrConnectionClosed, want: true},
		{name: "no stream response", err: jetstream.ErrNoStreamResponse, want: true},
		{name: "dial failure text", err: errors.New("dial tcp 127.0.0.1:4222: connect: connection refused"), want: true},
		{name: "bucket exists", err: jetstream.ErrBucketExists, want: false},
		{name: "invalid bucket name", err: jetstream.ErrInvalidBucketName, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsConnectivityError(tt.err))
		})
	}
}
