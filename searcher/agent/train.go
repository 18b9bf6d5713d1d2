package agent

import (
	"context"
	"math"

	"golang.org/x/exp/rand"

	"hive/experiments/metrics"
	"hive/game"
	"hive/searcher"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play during training. It
// samples actions in proportion to visits^(1/temperature).
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		temperature = 1.0
	}
	return &trainingAgent{mcts: mcts, temperature: temperature, rng: rand.New(rand.NewSource(seed))}
}

func (a *trainingAgent) FindAction(ctx context.Context, state game.State) (game.Action, metrics.SearchMetric, error) {
	policy, metric, err := a.mcts.Simulate(ctx, state)
	if err != nil {
		return fallback(state), metric, err
	}
	probabilities := adjustTemperature(policy, a.temperature)
	if action := sample(probabilities, policy, a.rng.Float64()); action != nil {
		return action, metric, nil
	}
	return fallback(state), metric, nil
}

// adjustTemperature turns visit counts into probabilities aligned with policy.
func adjustTemperature(policy []searcher.Visit, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]float64, len(policy))
	for i, visit := range policy {
		prob := math.Pow(float64(visit.Visits), exponent)
		sum += prob
		adjusted[i] = prob
	}
	if sum == 0 {
		return adjusted
	}
	// Normalize
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}

func sample(probabilities []float64, policy []searcher.Visit, sampled float64) game.Action {
	cumulative := 0.0
	var last game.Action
	for i, prob := range probabilities {
		if prob == 0 {
			continue
		}
		last = policy[i].Action
		cumulative += prob
		if sampled < cumulative {
			return last
		}
	}
	return last // Fallback in case of rounding errors
}
