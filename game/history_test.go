package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistory(t *testing.T) {
	t.Run("counts repeated keys", func(t *testing.T) {
		h := NewHistory(10)
		key := NewBoard().Key()

		for i := 0; i < 3; i++ {
			h.Add(key)
		}

		require.Equal(t, 3, h.Count(key), "Key should be remembered once per add")
		require.Zero(t, h.Count(EmptyBoard().Key()))
	})

	t.Run("evicts the oldest key when full", func(t *testing.T) {
		h := NewHistory(3)

		for _, key := range []string{"a", "b", "c", "d"} {
			h.Add(key)
		}

		require.Equal(t, 3, h.Len())
		require.Equal(t, []string{"b", "c", "d"}, h.Keys())
		require.Zero(t, h.Count("a"), "Oldest key should be evicted")
	})

	t.Run("nil history remembers nothing", func(t *testing.T) {
		var h *History

		require.Zero(t, h.Count("a"))
		require.Zero(t, h.Len())
		require.Nil(t, h.Keys())
	})

	t.Run("capacity must be positive", func(t *testing.T) {
		require.Panics(t, func() { NewHistory(0) })
	})
}
