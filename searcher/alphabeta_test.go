package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"hive/game"
)

// minimax is the unpruned reference search.
func minimax(state game.State, depth int, maximizer game.Team) (float64, game.Action) {
	switch result := state.Result(); result {
	case game.Ongoing:
	case game.Draw:
		return 0, nil
	default:
		if winner, _ := result.Winner(); winner == maximizer {
			return WinScore, nil
		}
		return LossScore, nil
	}

	actions := state.LegalActions()
	if depth == 0 || len(actions) == 0 {
		return mockEvaluate(state, maximizer), nil
	}

	maximizing := state.Player() == maximizer
	var best game.Action
	var value float64
	for _, action := range actions {
		child, _ := state.Play(action)
		score, _ := minimax(child, depth-1, maximizer)
		if best == nil || (maximizing && score > value) || (!maximizing && score < value) {
			value, best = score, action
		}
	}
	return value, best
}

func TestAlphaBetaSearch(t *testing.T) {
	t.Run("matches exhaustive minimax on random trees", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2024))
		searcher := NewAlphaBeta(3, mockEvaluate)

		for i := 0; i < 300; i++ {
			root := randomTree(rng, 3, 4, game.Team(i%2))
			root.result = game.Ongoing
			for depth := 1; depth <= 3; depth++ {
				for _, maximizer := range []game.Team{game.White, game.Black} {
					wantScore, wantAction := minimax(root, depth, maximizer)
					gotScore, gotAction := searcher.Search(root, depth, math.Inf(-1), math.Inf(1), maximizer)

					require.Equal(t, wantScore, gotScore, "tree %d depth %d", i, depth)
					require.Equal(t, wantAction, gotAction, "tree %d depth %d", i, depth)
				}
			}
		}
	})

	t.Run("prefers the first of equal actions", func(t *testing.T) {
		root := &mockState{player: game.White}
		root.branch(mockAction(0), &mockState{score: 2})
		root.branch(mockAction(1), &mockState{score: 5})
		root.branch(mockAction(2), &mockState{score: 5})

		score, action := NewAlphaBeta(1, mockEvaluate).Search(root, 1, math.Inf(-1), math.Inf(1), game.White)
		require.Equal(t, 5.0, score)
		require.Equal(t, mockAction(1), action)
	})

	t.Run("scores decided games beyond any heuristic", func(t *testing.T) {
		searcher := NewAlphaBeta(2, mockEvaluate)

		score, action := searcher.Search(terminal(game.WhiteWins), 2, math.Inf(-1), math.Inf(1), game.White)
		require.Equal(t, WinScore, score)
		require.Nil(t, action)

		score, _ = searcher.Search(terminal(game.WhiteWins), 2, math.Inf(-1), math.Inf(1), game.Black)
		require.Equal(t, LossScore, score)

		score, _ = searcher.Search(terminal(game.Draw), 2, math.Inf(-1), math.Inf(1), game.Black)
		require.Equal(t, 0.0, score)
	})

	t.Run("finds the immediate win", func(t *testing.T) {
		root, win := nearWin()

		action, score := NewAlphaBeta(2, mockEvaluate).BestAction(root)
		require.Equal(t, win, action)
		require.Equal(t, WinScore, score)
	})

	t.Run("falls back to the first legal action at depth zero", func(t *testing.T) {
		root, _ := nearWin()
		searcher := &AlphaBeta{depth: 0, evaluate: mockEvaluate}

		action, _ := searcher.BestAction(root)
		require.Equal(t, mockAction(0), action)
	})
}

func TestAlphaBetaHivePosition(t *testing.T) {
	t.Run("closes the ring around the black queen", func(t *testing.T) {
		state := nearWinPosition(t)

		action, score := NewAlphaBeta(1, nil).BestAction(state)
		require.Equal(t, WinScore, score)

		next, err := state.Apply(action)
		require.NoError(t, err)
		require.Equal(t, game.WhiteWins, next.Result())
	})
}
