package searcher

import (
	"math"

	"github.com/rs/zerolog/log"

	"hive/game"
)

// AlphaBeta is a depth-bounded minimax searcher with alpha-beta pruning.
type AlphaBeta struct {
	depth    int
	evaluate game.Evaluate
}

// NewAlphaBeta searches depth plies and scores the leaves with evaluate,
// defaulting to queen pressure.
func NewAlphaBeta(depth int, evaluate game.Evaluate) *AlphaBeta {
	if evaluate == nil {
		evaluate = game.EvaluateQueenPressure
	}
	return &AlphaBeta{depth: max(depth, 1), evaluate: evaluate}
}

// BestAction searches state to the configured depth for the team to act.
// It falls back to the first legal action when the search returns none.
func (a *AlphaBeta) BestAction(state game.State) (game.Action, float64) {
	score, action := a.Search(state, a.depth, math.Inf(-1), math.Inf(1), state.Player())
	if action == nil {
		if actions := state.LegalActions(); len(actions) > 0 {
			action = game.FirstPolicy(actions)
		}
	}
	return action, score
}

// Search returns the minimax score of state for maximizer within
// [alpha, beta] and the first action reaching it. Decided games score
// WinScore, LossScore or zero for a draw.
func (a *AlphaBeta) Search(state game.State, depth int, alpha, beta float64, maximizer game.Team) (float64, game.Action) {
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
	if depth <= 0 || len(actions) == 0 {
		return a.evaluate(state, maximizer), nil
	}

	maximizing := state.Player() == maximizer
	value := math.Inf(1)
	if maximizing {
		value = math.Inf(-1)
	}

	var best game.Action
	for _, action := range actions {
		child, err := state.Play(action)
		if err != nil {
			log.Warn().Err(err).Msgf("skipping unplayable action %v", action)
			continue
		}
		score, _ := a.Search(child, depth-1, alpha, beta, maximizer)

		if maximizing {
			if best == nil || score > value {
				value, best = score, action
			}
			alpha = math.Max(alpha, value)
		} else {
			if best == nil || score < value {
				value, best = score, action
			}
			beta = math.Min(beta, value)
		}
		if alpha >= beta {
			break
		}
	}
	return value, best
}
