package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHex(t *testing.T) {
	t.Run("neighbors are adjacent and distinct", func(t *testing.T) {
		h := Hex{Q: 2, R: -3}
		seen := map[Hex]bool{}
		for _, n := range h.Neighbors() {
			require.True(t, h.IsAdjacent(n))
			require.Equal(t, 1, Distance(h, n))
			seen[n] = true
		}
		require.Len(t, seen, 6)
	})

	t.Run("directions wrap around", func(t *testing.T) {
		require.Equal(t, Origin.Neighbor(5), Origin.Neighbor(-1))
		require.Equal(t, Origin.Neighbor(0), Origin.Neighbor(6))
		require.Equal(t, Hex{Q: 0, R: -1}, Origin.Neighbor(2))
	})

	t.Run("flanks touch both ends of the edge", func(t *testing.T) {
		h := Hex{Q: -1, R: 4}
		for dir := range Directions {
			left, right := h.Flanks(dir)
			to := h.Neighbor(dir)
			require.True(t, left.IsAdjacent(h))
			require.True(t, left.IsAdjacent(to))
			require.True(t, right.IsAdjacent(h))
			require.True(t, right.IsAdjacent(to))
			require.NotEqual(t, left, right)
		}
	})

	t.Run("distance counts steps", func(t *testing.T) {
		require.Equal(t, 0, Distance(Origin, Origin))
		require.Equal(t, 3, Distance(Origin, Hex{Q: 3, R: 0}))
		require.Equal(t, 3, Distance(Origin, Hex{Q: 1, R: 2}))
		require.Equal(t, 2, Distance(Hex{Q: 0, R: -1}, Hex{Q: 1, R: 0}))
		require.False(t, Origin.IsAdjacent(Origin))
	})

	t.Run("cube coordinates sum to zero", func(t *testing.T) {
		h := Hex{Q: 4, R: -7}
		require.Equal(t, 0, h.Q+h.R+h.S())
		require.Equal(t, Hex{Q: 8, R: -14}, h.Scale(2))
		require.Equal(t, "(4,-7)", h.String())
	})
}
