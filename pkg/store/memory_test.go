package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	var missing []string
	err := mem.Get(ctx, KeyIncidents, &missing)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mem.Put(ctx, KeyIncidents, []string{"a", "b"}))

	var got []string
	require.NoError(t, mem.Get(ctx, KeyIncidents, &got))
	assert.Equal(t, []string{"a", "b"}, got)

	require.NoError(t, mem.Put(ctx, KeyIncidents, []string{"c"}))
	require.NoError(t, mem.Get(ctx, KeyIncidents, &got))
	assert.Equal(t, []string{"c"}, got)
}
