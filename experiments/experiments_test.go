package experiments

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hive/game"
	"hive/meta"
	"hive/searcher/agent"
)

func randomConfig(t *testing.T) meta.Config {
	t.Helper()
	return meta.Config{
		Name:      "random",
		Games:     3,
		Parallel:  2,
		MaxTurns:  40,
		OutputDir: t.TempDir(),
		Agents: []meta.AgentConfig{
			{ID: 1, Kind: meta.RandomAgent, Seed: 1},
			{ID: 2, Kind: meta.RandomAgent, Seed: 2},
		},
		MatchUps: []meta.MatchUp{{White: 1, Black: 2}, {White: 2, Black: 1}},
	}.WithDefaults()
}

func TestRun(t *testing.T) {
	t.Run("plays every game of every matchup", func(t *testing.T) {
		summary, err := Run(context.Background(), randomConfig(t), true)
		require.NoError(t, err)

		require.Len(t, summary.Games, 6)
		require.Len(t, summary.Scores, 2)
		for _, score := range summary.Scores {
			require.Equal(t, 3, score.WhiteWins+score.BlackWins+score.Draws)
		}
		require.Empty(t, summary.Dir, "a dry run writes nothing")
	})

	t.Run("records moves within the turn limit", func(t *testing.T) {
		summary, err := Run(context.Background(), randomConfig(t), true)
		require.NoError(t, err)

		ids := map[string]bool{}
		for _, g := range summary.Games {
			require.NotEmpty(t, g.ID)
			require.False(t, ids[g.ID], "game ids are unique")
			ids[g.ID] = true
			require.LessOrEqual(t, g.TotalMoves, 40)
			require.NotEqual(t, game.Ongoing, g.Result)
		}
		for _, m := range summary.Moves {
			require.True(t, ids[m.Game])
			require.NotNil(t, m.Action)
		}
	})

	t.Run("writes the records to disk", func(t *testing.T) {
		config := randomConfig(t)
		config.Games = 1

		summary, err := Run(context.Background(), config, false)
		require.NoError(t, err)

		require.Equal(t, filepath.Join(config.OutputDir, "random"), filepath.Dir(summary.Dir))
		require.FileExists(t, filepath.Join(summary.Dir, "agent_configs.csv"))
		require.FileExists(t, filepath.Join(summary.Dir, "game_records.csv"))
		require.FileExists(t, filepath.Join(summary.Dir, "move_records.csv"))
	})

	t.Run("rejects an invalid config", func(t *testing.T) {
		config := randomConfig(t)
		config.MatchUps = []meta.MatchUp{{White: 1, Black: 7}}

		_, err := Run(context.Background(), config, true)
		require.Error(t, err)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		config := randomConfig(t)
		config.Agents[0] = meta.AgentConfig{ID: 1, Kind: meta.MCTSAgent, Goroutines: 1, Episodes: 10, Cutoff: 5}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Run(ctx, config, true)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewAgent(t *testing.T) {
	state := game.NewGameState(game.NewStandardRules())

	kinds := []meta.AgentKind{meta.MCTSAgent, meta.TrainingAgent, meta.AlphaBetaAgent, meta.RandomAgent}
	for _, kind := range kinds {
		t.Run("builds a legal "+string(kind)+" agent", func(t *testing.T) {
			config := meta.Config{
				Agents:   []meta.AgentConfig{{ID: 1, Kind: kind, Episodes: 20, Cutoff: 10, Depth: 1}},
				MatchUps: []meta.MatchUp{{White: 1, Black: 1}},
			}.WithDefaults()

			var a agent.Agent = NewAgent(config.Agents[0], 0)
			action, _, err := a.FindAction(context.Background(), state)
			require.NoError(t, err)

			_, err = state.Apply(action)
			require.NoError(t, err)
		})
	}
}

func TestNewAgentOptions(t *testing.T) {
	state := game.NewGameState(game.NewStandardRules())

	t.Run("alpha-beta searches with the mobility evaluation", func(t *testing.T) {
		config := meta.AgentConfig{ID: 1, Kind: meta.AlphaBetaAgent, Depth: 1, Evaluation: meta.MobilityEvaluation}

		action, _, err := NewAgent(config, 0).FindAction(context.Background(), state)
		require.NoError(t, err)
		_, err = state.Apply(action)
		require.NoError(t, err)
	})

	t.Run("mcts plays with zero exploration", func(t *testing.T) {
		config := meta.AgentConfig{ID: 1, Kind: meta.MCTSAgent, Goroutines: 1, Episodes: 10, Cutoff: 5, Exploration: meta.Float64(0)}

		action, _, err := NewAgent(config, 0).FindAction(context.Background(), state)
		require.NoError(t, err)
		_, err = state.Apply(action)
		require.NoError(t, err)
	})
}

func TestPresets(t *testing.T) {
	t.Run("throughput mirrors each agent", func(t *testing.T) {
		c := ThroughputConfig(10*time.Millisecond, 1, 1, 2)
		require.NoError(t, c.Validate())

		require.Len(t, c.Agents, 2)
		require.Equal(t, []meta.MatchUp{{White: 1, Black: 1}, {White: 2, Black: 2}}, c.MatchUps)
		require.Equal(t, 2, c.Agents[1].Goroutines)
		require.Equal(t, 0, c.Agents[1].Episodes)
	})

	t.Run("cutoff plays both colours against the baseline", func(t *testing.T) {
		c := CutoffConfig(50, 2, 10)
		require.NoError(t, c.Validate())

		require.Equal(t, []meta.MatchUp{{White: 1, Black: 2}, {White: 2, Black: 1}}, c.MatchUps)
		require.Equal(t, 10, c.Agents[1].Cutoff)
		require.Equal(t, meta.MaxTurns, c.Agents[0].Cutoff)
	})

	t.Run("throughput averages episodes per move", func(t *testing.T) {
		c := meta.Config{
			Games:    1,
			MaxTurns: 4,
			Agents: []meta.AgentConfig{
				{ID: 1, Kind: meta.MCTSAgent, Episodes: 8, Cutoff: 5},
			},
			MatchUps: []meta.MatchUp{{White: 1, Black: 1}},
		}.WithDefaults()

		summary, err := Run(context.Background(), c, true)
		require.NoError(t, err)

		throughput := Throughput(summary)
		require.InDelta(t, 8.0, throughput[1], 1e-9)
	})
}
