package searcher

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"hive/experiments/metrics"
	"hive/game"
)

type Option func(mcts *MCTS)

// PolicyFactory builds a rollout policy for one search goroutine.
type PolicyFactory func(seed uint64) game.Policy

type MCTS struct {
	goroutines  int
	duration    time.Duration
	episodes    int
	cutoff      int
	exploration float64
	rng         *rand.Rand
	rollout     PolicyFactory
	metrics     metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

// WithSeed makes searches reproducible for a fixed number of episodes.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRolloutPolicy(factory PolicyFactory) Option {
	return func(m *MCTS) {
		if factory != nil {
			m.rollout = factory
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

// NewMCTS returns a searcher running one independent tree per goroutine.
// Either episodes or a duration must be given.
func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines:  max(goroutines, 1),
		cutoff:      MaxCutoff,
		exploration: Exploration,
		rng:         rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		rollout:     game.NewRandomPolicy,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches state and returns the summed root statistics of all
// trees. Episodes are shared out between the goroutines; with a duration
// every goroutine searches until it runs out.
func (m *MCTS) Simulate(ctx context.Context, state game.State) ([]Visit, metrics.SearchMetric, error) {
	m.metrics.Start(m.goroutines, m.cutoff, m.exploration)

	search := ctx
	if m.duration > 0 {
		var cancel context.CancelFunc
		search, cancel = context.WithTimeout(ctx, m.duration)
		defer cancel()
	}

	trees := make([]*Tree, m.goroutines)
	g, gctx := errgroup.WithContext(search)
	for i := range trees {
		tree := NewTree(state, m.rollout(m.rng.Uint64()), m.cutoff, m.exploration)
		tree.metrics = m.metrics
		trees[i] = tree

		budget := m.budget(i)
		g.Go(func() error {
			if m.episodes > 0 {
				_, err := tree.Run(gctx, budget)
				return err
			}
			for {
				if _, err := tree.Run(gctx, 1); err != nil {
					return err
				}
			}
		})
	}

	err := g.Wait()
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		err = nil // Time budget used up
	}

	policies := make([][]Visit, len(trees))
	for i, tree := range trees {
		policies[i] = tree.Policy()
	}
	metric := m.metrics.Complete()

	log.Debug().
		Int("goroutines", m.goroutines).
		Int("episodes", metric.Episodes).
		Dur("duration", metric.Duration).
		Msg("search-complete")

	return merge(policies), metric, err
}

// BestAction searches state and picks the most visited root action.
func (m *MCTS) BestAction(ctx context.Context, state game.State) (game.Action, metrics.SearchMetric, error) {
	policy, metric, err := m.Simulate(ctx, state)
	return robustChild(policy, state), metric, err
}

func (m *MCTS) budget(i int) int {
	budget := m.episodes / m.goroutines
	if i < m.episodes%m.goroutines {
		budget++
	}
	return budget
}

// merge sums the visits of equal root actions across trees, keeping the order
// in which actions first appear.
func merge(policies [][]Visit) []Visit {
	index := make(map[game.Action]int)
	var merged []Visit
	var sums []float64
	for _, policy := range policies {
		for _, visit := range policy {
			i, ok := index[visit.Action]
			if !ok {
				i = len(merged)
				index[visit.Action] = i
				merged = append(merged, Visit{Action: visit.Action})
				sums = append(sums, 0)
			}
			merged[i].Visits += visit.Visits
			sums[i] += visit.Value * float64(visit.Visits)
		}
	}
	for i := range merged {
		if merged[i].Visits > 0 {
			merged[i].Value = sums[i] / float64(merged[i].Visits)
		}
	}
	return merged
}
