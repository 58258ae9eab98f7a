package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/pagination/collection"
	"github.com/arloliu/pagination/types"
)

type record struct {
	ID    string
	Score int
}

func recordKey(r record) string { return r.ID }

func recordIDs(items []record) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.ID
	}

	return out
}

func TestStatic_Load(t *testing.T) {
	t.Run("replaces the container contents", func(t *testing.T) {
		full, err := collection.New(recordKey, []record{{ID: "old"}})
		require.NoError(t, err)

		src := NewStatic([]record{{ID: "a"}, {ID: "b"}, {ID: "c"}})
		require.NoError(t, src.Load(t.Context(), full))

		require.Equal(t, []string{"a", "b", "c"}, recordIDs(full.Items()))
	})

	t.Run("empty source", func(t *testing.T) {
		full, err := collection.New(recordKey, []record{{ID: "old"}})
		require.NoError(t, err)

		require.NoError(t, NewStatic[record](nil).Load(t.Context(), full))
		require.Zero(t, full.Len())
	})

	t.Run("duplicate keys are rejected", func(t *testing.T) {
		full, err := collection.New(recordKey, []record{{ID: "old"}})
		require.NoError(t, err)

		err = NewStatic([]record{{ID: "a"}, {ID: "a"}}).Load(t.Context(), full)
		require.ErrorIs(t, err, types.ErrDuplicateItem)
		require.Equal(t, []string{"old"}, recordIDs(full.Items()))
	})

	t.Run("cancelled context", func(t *testing.T) {
		full, err := collection.New(recordKey, nil)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		require.ErrorIs(t, NewStatic([]record{{ID: "a"}}).Load(ctx, full), context.Canceled)
		require.Zero(t, full.Len())
	})

	t.Run("nil container", func(t *testing.T) {
		require.ErrorIs(t, NewStatic([]record{{ID: "a"}}).Load(t.Context(), nil), types.ErrNilCollection)
	})
}

func TestStatic_Update(t *testing.T) {
	initial := []record{{ID: "a", Score: 1}}
	src := NewStatic(initial)

	// The source keeps its own copy.
	initial[0].Score = 99
	require.Equal(t, 1, src.Records()[0].Score)

	src.Update([]record{{ID: "b"}, {ID: "c"}})

	full, err := collection.New(recordKey, nil)
	require.NoError(t, err)
	require.NoError(t, src.Load(t.Context(), full))
	require.Equal(t, []string{"b", "c"}, recordIDs(full.Items()))
}
