package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueenMoves(t *testing.T) {
	t.Run("slides along its only neighbor", func(t *testing.T) {
		h := board(at(0, 0, Queen, White), at(1, 0, Ant, Black))
		require.Equal(t, []Hex{{Q: 0, R: 1}, {Q: 1, R: -1}}, h.destinations(Origin))
	})

	t.Run("cannot squeeze through a gate", func(t *testing.T) {
		h := board(at(0, 0, Queen, White), at(1, -1, Ant, Black), at(0, 1, Ant, Black))

		destinations := h.destinations(Origin)
		require.NotContains(t, destinations, Hex{Q: 1, R: 0})
		require.Equal(t, []Hex{{Q: -1, R: 1}, {Q: 0, R: -1}}, destinations)
	})
}

func TestGrasshopperMoves(t *testing.T) {
	t.Run("jumps over every adjacent line", func(t *testing.T) {
		h := board(
			at(0, 0, Grasshopper, White),
			at(1, 0, Ant, Black),
			at(2, 0, Ant, Black),
			at(0, 1, Queen, White),
		)
		require.Equal(t, []Hex{{Q: 0, R: 2}, {Q: 3, R: 0}}, h.destinations(Origin))
	})

	t.Run("never lands next to itself", func(t *testing.T) {
		h := board(at(0, 0, Grasshopper, White), at(1, 0, Ant, Black))
		require.Equal(t, []Hex{{Q: 2, R: 0}}, h.destinations(Origin))
	})
}

func TestSpiderMoves(t *testing.T) {
	t.Run("walks exactly three steps", func(t *testing.T) {
		h := board(at(0, 0, Spider, White), at(1, 0, Ant, Black))
		require.Equal(t, []Hex{{Q: 2, R: 0}}, h.destinations(Origin))
	})

	t.Run("does not stop early or double back", func(t *testing.T) {
		h := board(at(0, 0, Spider, White), at(1, 0, Ant, Black), at(2, 0, Ant, Black))

		for _, hex := range h.destinations(Origin) {
			require.NotEqual(t, Origin, hex)
			require.NotEqual(t, Hex{Q: 1, R: -1}, hex, "one step away")
			require.NotEqual(t, Hex{Q: 0, R: 1}, hex, "one step away")
		}
	})
}

func TestSpiderDistance(t *testing.T) {
	t.Run("never ends next to where it could have slid directly", func(t *testing.T) {
		// A C-shaped wall leaves a rhombus of empty hexes around the spider,
		// so three slides can loop back to a neighbor of (0,0).
		h := board(
			at(0, 0, Spider, White),
			at(0, -1, Ant, Black), at(1, -2, Ant, Black), at(2, -2, Ant, Black),
			at(3, -2, Ant, Black), at(3, -1, Ant, Black), at(2, 0, Ant, Black),
			at(1, 1, Ant, Black), at(0, 1, Ant, Black),
		)

		destinations := h.destinations(Origin)
		require.Contains(t, destinations, Hex{Q: 0, R: -2})
		require.NotContains(t, destinations, Hex{Q: 1, R: 0})
		require.NotContains(t, destinations, Hex{Q: 1, R: -1})
		require.NotContains(t, destinations, Hex{Q: 2, R: -1})
	})

	t.Run("every spider move in play is three slides away", func(t *testing.T) {
		for seed := uint64(1); seed <= 4; seed++ {
			policy := NewRandomPolicy(seed)
			s := NewGameState(NewStandardRules())
			for i := 0; i < 120 && !s.IsTerminal(); i++ {
				for _, action := range s.LegalActions() {
					move, ok := action.(Move)
					if !ok {
						continue
					}
					if top, _ := s.hive.Top(move.Origin); top.Insect != Spider {
						continue
					}
					without := s.Hive()
					_, err := without.RemoveTop(move.Origin)
					require.NoError(t, err)

					d, reached := without.distances(move.Origin, -1)[move.Destination]
					require.True(t, reached, "seed %d turn %d %s", seed, s.Turn(), move)
					require.Equal(t, spiderSteps, d, "seed %d turn %d %s", seed, s.Turn(), move)
				}
				next, err := s.Advance(policy)
				require.NoError(t, err)
				s = next
			}
		}
	})
}

func TestAntMoves(t *testing.T) {
	t.Run("reaches the whole perimeter", func(t *testing.T) {
		h := board(at(0, 0, Ant, White), at(1, 0, Queen, Black))

		destinations := h.destinations(Origin)
		require.Len(t, destinations, 5)
		for _, hex := range destinations {
			require.True(t, hex.IsAdjacent(Hex{Q: 1, R: 0}))
		}
	})

	t.Run("cannot enter an enclosed hole", func(t *testing.T) {
		// Ring around (0,0) with the ant outside.
		stones := []placed{at(3, -1, Ant, White)}
		for _, n := range Origin.Neighbors() {
			stones = append(stones, placed{hex: n, stone: Stone{Insect: Spider, Team: Black}})
		}
		stones = append(stones, at(2, -1, Queen, Black))
		h := board(stones...)

		destinations := h.destinations(Hex{Q: 3, R: -1})
		require.NotEmpty(t, destinations)
		require.NotContains(t, destinations, Origin)
	})
}

func TestBeetleMoves(t *testing.T) {
	t.Run("climbs onto a neighbor or walks around it", func(t *testing.T) {
		h := board(at(0, 0, Beetle, White), at(1, 0, Ant, Black))
		require.Equal(t, []Hex{{Q: 0, R: 1}, {Q: 1, R: -1}, {Q: 1, R: 0}}, h.destinations(Origin))
	})

	t.Run("moves freely on top of the hive", func(t *testing.T) {
		h := board(at(0, 0, Ant, Black), at(1, 0, Ant, Black), at(1, 0, Beetle, White))

		destinations := h.destinations(Hex{Q: 1, R: 0})
		require.Len(t, destinations, 6)
		require.Contains(t, destinations, Origin)
	})

	t.Run("is stopped by a gate of higher stacks", func(t *testing.T) {
		h := board(
			at(0, 0, Ant, Black), at(0, 0, Beetle, White),
			at(0, 1, Ant, Black), at(0, 1, Beetle, Black),
			at(1, -1, Ant, Black), at(1, -1, Beetle, Black),
		)
		require.NotContains(t, h.destinations(Origin), Hex{Q: 1, R: 0})
	})
}

func TestGenerateMoves(t *testing.T) {
	t.Run("a stone holding the hive together is pinned", func(t *testing.T) {
		h := board(at(-1, 0, Ant, White), at(0, 0, Queen, White), at(1, 0, Queen, Black))

		for _, move := range h.GenerateMoves(White) {
			require.Equal(t, Hex{Q: -1, R: 0}, move.Origin)
		}
		require.NotEmpty(t, h.GenerateMoves(White))
	})

	t.Run("only stones on top can move", func(t *testing.T) {
		h := board(at(0, 0, Queen, White), at(0, 0, Beetle, Black), at(1, 0, Queen, Black))

		require.Empty(t, h.GenerateMoves(White))
		require.NotEmpty(t, h.GenerateMoves(Black))
	})

	t.Run("moves keep the hive connected", func(t *testing.T) {
		h := board(
			at(0, 0, Queen, White), at(1, 0, Queen, Black),
			at(-1, 0, Ant, White), at(2, 0, Spider, Black),
			at(-1, 1, Grasshopper, White), at(2, -1, Beetle, Black),
		)
		for _, team := range []Team{White, Black} {
			for _, move := range h.GenerateMoves(team) {
				next := h.Clone()
				stone, err := next.RemoveTop(move.Origin)
				require.NoError(t, err)
				require.NoError(t, next.Place(move.Destination, stone))
				require.True(t, next.IsConnected(), "%s", move)
				require.NotEqual(t, move.Origin, move.Destination)
			}
		}
	})
}
