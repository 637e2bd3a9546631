package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("get returns nil for absent key", func(t *testing.T) {
		m := NewMemory()
		defer func() { _ = m.Close() }()

		v, err := m.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		m := NewMemory()
		defer func() { _ = m.Close() }()

		require.NoError(t, m.Set(ctx, "trip_1", []byte(`{"id":1}`), time.Minute))

		v, err := m.Get(ctx, "trip_1")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"id":1}`), v)
	})

	t.Run("expired entry reads as a miss", func(t *testing.T) {
		m := NewMemory()
		defer func() { _ = m.Close() }()

		require.NoError(t, m.Set(ctx, "trip_1", []byte("x"), time.Nanosecond))
		time.Sleep(5 * time.Millisecond)

		v, err := m.Get(ctx, "trip_1")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("del removes multiple keys and tolerates absent ones", func(t *testing.T) {
		m := NewMemory()
		defer func() { _ = m.Close() }()

		require.NoError(t, m.Set(ctx, "a", []byte("1"), time.Minute))
		require.NoError(t, m.Set(ctx, "b", []byte("2"), time.Minute))

		require.NoError(t, m.Del(ctx, "a", "b", "never-existed"))
		assert.Equal(t, 0, m.Len())
	})

	t.Run("set overwrites an existing entry", func(t *testing.T) {
		m := NewMemory()
		defer func() { _ = m.Close() }()

		require.NoError(t, m.Set(ctx, "k", []byte("old"), time.Minute))
		require.NoError(t, m.Set(ctx, "k", []byte("new"), time.Minute))

		v, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), v)
	})

	t.Run("ping and double close are safe", func(t *testing.T) {
		m := NewMemory()
		assert.NoError(t, m.Ping(ctx))
		assert.NoError(t, m.Close())
		assert.NoError(t, m.Close())
	})

	t.Run("cleanup removes expired entries", func(t *testing.T) {
		m := NewMemory()
		defer func() { _ = m.Close() }()

		require.NoError(t, m.Set(ctx, "stale", []byte("x"), time.Nanosecond))
		require.NoError(t, m.Set(ctx, "fresh", []byte("y"), time.Minute))
		time.Sleep(5 * time.Millisecond)

		m.cleanup()

		assert.Equal(t, 1, m.Len())
	})
}
