package experiments

import (
	"time"

	"hive/meta"
)

// ThroughputConfig builds an experiment measuring how many episodes MCTS
// completes within a fixed time budget as goroutines are added.
func ThroughputConfig(duration time.Duration, games int, goroutines ...int) meta.Config {
	if len(goroutines) == 0 {
		goroutines = []int{1, 2, 4, 8}
	}

	c := meta.Config{
		Name:     "throughput",
		Games:    games,
		Parallel: 1, // Games must not compete for cores
	}
	for i, n := range goroutines {
		id := i + 1
		c.Agents = append(c.Agents, meta.AgentConfig{
			ID:         id,
			Kind:       meta.MCTSAgent,
			Goroutines: n,
			Duration:   duration,
			Seed:       uint64(id),
		})
		// Same config for both players for the same playing strength
		// and similar game length
		c.MatchUps = append(c.MatchUps, meta.MatchUp{White: id, Black: id})
	}
	return c.WithDefaults()
}

// CutoffConfig builds an experiment pitting MCTS agents that truncate
// rollouts at different depths against each other and against the
// untruncated baseline.
func CutoffConfig(episodes, games int, cutoffs ...int) meta.Config {
	if len(cutoffs) == 0 {
		cutoffs = []int{10, 25, 50}
	}

	c := meta.Config{
		Name:     "cutoff",
		Games:    games,
		Parallel: 2,
		Agents: []meta.AgentConfig{
			{ID: 1, Kind: meta.MCTSAgent, Episodes: episodes, Cutoff: meta.MaxTurns},
		},
	}
	for i, cutoff := range cutoffs {
		id := i + 2
		c.Agents = append(c.Agents, meta.AgentConfig{
			ID:       id,
			Kind:     meta.MCTSAgent,
			Episodes: episodes,
			Cutoff:   cutoff,
			Seed:     uint64(id),
		})
		c.MatchUps = append(c.MatchUps, meta.MatchUp{White: 1, Black: id}, meta.MatchUp{White: id, Black: 1})
	}
	return c.WithDefaults()
}

// Throughput reports the mean episodes per move of each agent in summary.
func Throughput(summary Summary) map[int]float64 {
	agents := make(map[string]int, len(summary.Games))
	for _, g := range summary.Games {
		agents[g.ID+"/white"] = g.White
		agents[g.ID+"/black"] = g.Black
	}

	episodes := map[int]int{}
	moves := map[int]int{}
	for _, m := range summary.Moves {
		id := agents[m.Game+"/"+m.Player.String()]
		episodes[id] += m.Episodes
		moves[id]++
	}

	throughput := make(map[int]float64, len(moves))
	for id, n := range moves {
		throughput[id] = float64(episodes[id]) / float64(n)
	}
	return throughput
}
