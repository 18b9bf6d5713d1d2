package searcher

import (
	"fmt"

	"golang.org/x/exp/rand"

	"hive/game"
)

// mockAction builds distinct comparable actions out of synthetic moves.
func mockAction(id int) game.Action {
	return game.Move{Origin: game.Hex{Q: id}, Destination: game.Hex{Q: id, R: 1}}
}

// mockState is a node of a hand-built game tree.
type mockState struct {
	player   game.Team
	actions  []game.Action
	children map[game.Action]*mockState
	result   game.Result
	score    float64 // Leaf evaluation from white's perspective
	hash     game.StateHash
}

func (m *mockState) Player() game.Team {
	return m.player
}

func (m *mockState) LegalActions() []game.Action {
	return append([]game.Action(nil), m.actions...)
}

func (m *mockState) Play(action game.Action) (game.State, error) {
	child, ok := m.children[action]
	if !ok {
		return nil, fmt.Errorf("%w: %v", game.ErrIllegalAction, action)
	}
	return child, nil
}

func (m *mockState) Result() game.Result {
	return m.result
}

func (m *mockState) Hash() game.StateHash {
	return m.hash
}

// branch adds a child reached by action and returns it.
func (m *mockState) branch(action game.Action, child *mockState) *mockState {
	if m.children == nil {
		m.children = make(map[game.Action]*mockState)
	}
	m.actions = append(m.actions, action)
	m.children[action] = child
	return child
}

func terminal(result game.Result) *mockState {
	return &mockState{result: result}
}

// randomTree builds a tree of the given depth where roughly one in eight
// inner nodes is already decided.
func randomTree(rng *rand.Rand, depth, branching int, player game.Team) *mockState {
	state := &mockState{player: player, score: float64(rng.Intn(21) - 10)}
	if depth == 0 {
		return state
	}
	if rng.Intn(8) == 0 {
		state.result = game.Result(1 + rng.Intn(3))
		return state
	}
	for i := 0; i < 1+rng.Intn(branching); i++ {
		state.branch(mockAction(i), randomTree(rng, depth-1, branching, player.Opponent()))
	}
	return state
}

func mockEvaluate(state game.State, team game.Team) float64 {
	score := state.(*mockState).score
	if team == game.Black {
		return -score
	}
	return score
}

// nearWin gives white one immediately winning action among four; the others
// hand black the choice between winning and drawing.
func nearWin() (*mockState, game.Action) {
	root := &mockState{player: game.White}
	for i := 0; i < 4; i++ {
		if i == 1 {
			root.branch(mockAction(i), terminal(game.WhiteWins))
			continue
		}
		reply := root.branch(mockAction(i), &mockState{player: game.Black})
		reply.branch(mockAction(10), terminal(game.BlackWins))
		reply.branch(mockAction(11), terminal(game.Draw))
	}
	return root, mockAction(1)
}
