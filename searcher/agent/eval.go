package agent

import (
	"context"

	"hive/experiments/metrics"
	"hive/game"
	"hive/searcher"
	"hive/utils"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindAction(ctx context.Context, state game.State) (game.Action, metrics.SearchMetric, error) {
	policy, metric, err := a.mcts.Simulate(ctx, state)
	if err != nil {
		return fallback(state), metric, err
	}
	if action := findMax(policy); action != nil {
		return action, metric, nil
	}
	return fallback(state), metric, nil
}

// findMax returns the most visited action, the first one on ties.
func findMax(policy []searcher.Visit) game.Action {
	best := utils.ArgMax(policy, func(v searcher.Visit) float64 { return float64(v.Visits) })
	if best < 0 || policy[best].Visits == 0 {
		return nil
	}
	return policy[best].Action
}

func fallback(state game.State) game.Action {
	actions := state.LegalActions()
	if len(actions) == 0 {
		return nil
	}
	return game.FirstPolicy(actions)
}
