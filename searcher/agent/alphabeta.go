package agent

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"hive/experiments/metrics"
	"hive/game"
	"hive/searcher"
)

type alphaBetaAgent struct {
	searcher *searcher.AlphaBeta
}

// NewAlphaBetaAgent returns an agent playing the minimax choice of searcher.
func NewAlphaBetaAgent(searcher *searcher.AlphaBeta) Agent {
	return alphaBetaAgent{searcher: searcher}
}

func (a alphaBetaAgent) FindAction(ctx context.Context, state game.State) (game.Action, metrics.SearchMetric, error) {
	if err := ctx.Err(); err != nil {
		return fallback(state), metrics.SearchMetric{}, err
	}
	start := time.Now()
	action, score := a.searcher.BestAction(state)
	log.Debug().Float64("score", score).Stringer("action", action).Msg("alpha-beta")
	return action, metrics.SearchMetric{Goroutines: 1, Duration: time.Since(start)}, nil
}

type randomAgent struct {
	policy game.Policy
}

// NewRandomAgent returns an agent playing uniformly random legal actions.
func NewRandomAgent(seed uint64) Agent {
	return randomAgent{policy: game.NewRandomPolicy(seed)}
}

func (a randomAgent) FindAction(ctx context.Context, state game.State) (game.Action, metrics.SearchMetric, error) {
	actions := state.LegalActions()
	if len(actions) == 0 {
		return nil, metrics.SearchMetric{}, nil
	}
	return a.policy(actions), metrics.SearchMetric{}, nil
}
