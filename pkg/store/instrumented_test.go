package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedObservesEveryOperation(t *testing.T) {
	type observation struct {
		op  string
		key string
	}
	var seen []observation
	wrapped := NewInstrumented(NewMemory(), func(op, key string, duration time.Duration) {
		seen = append(seen, observation{op: op, key: key})
	})
	ctx := context.Background()

	require.NoError(t, wrapped.Put(ctx, KeyIncidents, []string{"a"}))

	var got []string
	require.NoError(t, wrapped.Get(ctx, KeyIncidents, &got))
	assert.Equal(t, []string{"a"}, got)

	// Misses are observed as well.
	var missing []string
	err := wrapped.Get(ctx, KeyStudents, &missing)
	assert.ErrorIs(t, err, ErrNotFound)

	require.Len(t, seen, 3)
	assert.Equal(t, observation{op: "put", key: KeyIncidents}, seen[0])
	assert.Equal(t, observation{op: "get", key: KeyIncidents}, seen[1])
	assert.Equal(t, observation{op: "get", key: KeyStudents}, seen[2])
}
