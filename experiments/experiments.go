package experiments

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hive/engine"
	"hive/experiments/metrics"
	"hive/game"
	"hive/gamemaster"
	"hive/meta"
	"hive/searcher"
	"hive/searcher/agent"
)

// Score tallies the games of one matchup.
type Score struct {
	MatchUp   meta.MatchUp
	WhiteWins int
	BlackWins int
	Draws     int
}

type Summary struct {
	Dir    string
	Scores []Score
	Games  []metrics.GameRecord
	Moves  []metrics.MoveRecord
}

type job struct {
	matchUp int
	round   int
}

type outcome struct {
	game  metrics.GameRecord
	moves []metrics.MoveRecord
}

// Run plays every matchup of config Games times, up to Parallel games at
// once, and writes the records below config.OutputDir unless dryRun is set.
func Run(ctx context.Context, config meta.Config, dryRun bool) (Summary, error) {
	if err := config.Validate(); err != nil {
		return Summary{}, err
	}

	var jobs []job
	for mi := range config.MatchUps {
		for round := 0; round < config.Games; round++ {
			jobs = append(jobs, job{matchUp: mi, round: round})
		}
	}

	log.Info().Msgf("starting %s experiment with %s games...", config.Name, humanize.Comma(int64(len(jobs))))
	start := time.Now()

	outcomes := make([]outcome, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Parallel)
	for i, j := range jobs {
		matchUp := config.MatchUps[j.matchUp]
		white, _ := config.Agent(matchUp.White)
		black, _ := config.Agent(matchUp.Black)

		g.Go(func() error {
			log.Info().Msgf("starting matchup %d of %d game %d of %d...", j.matchUp+1, len(config.MatchUps), j.round+1, config.Games)

			record, moves, err := PlayGame(gctx, white, black, config.Rules(), config.MaxTurns, uint64(j.round))
			if err != nil {
				return fmt.Errorf("matchup %d game %d: %w", j.matchUp+1, j.round+1, err)
			}
			outcomes[i] = outcome{game: record, moves: moves}

			log.Info().Msgf("completed matchup %d of %d game %d with result: %s", j.matchUp+1, len(config.MatchUps), j.round+1, record.Result)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := summarize(config, jobs, outcomes)
	log.Info().Msgf("completed %s experiment: %s moves in %s", config.Name, humanize.Comma(int64(len(summary.Moves))), time.Since(start).Round(time.Millisecond))

	if dryRun {
		return summary, nil
	}
	dir, err := store(config, summary)
	if err != nil {
		return Summary{}, err
	}
	summary.Dir = dir
	return summary, nil
}

func summarize(config meta.Config, jobs []job, outcomes []outcome) Summary {
	summary := Summary{Scores: make([]Score, len(config.MatchUps))}
	for mi, matchUp := range config.MatchUps {
		summary.Scores[mi].MatchUp = matchUp
	}
	for i, o := range outcomes {
		score := &summary.Scores[jobs[i].matchUp]
		switch o.game.Result {
		case game.WhiteWins:
			score.WhiteWins++
		case game.BlackWins:
			score.BlackWins++
		default:
			score.Draws++
		}
		summary.Games = append(summary.Games, o.game)
		summary.Moves = append(summary.Moves, o.moves...)
	}
	return summary
}

func store(config meta.Config, summary Summary) (string, error) {
	writer, err := metrics.NewWriter(config.OutputDir, config.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(config.Agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(summary.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(summary.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// PlayGame executes a single game between two agents. The round number is
// mixed into the agents' seeds so that repeated games differ.
func PlayGame(ctx context.Context, white, black meta.AgentConfig, rules game.Rules, maxTurns int, round uint64) (metrics.GameRecord, []metrics.MoveRecord, error) {
	e := engine.LocalEngine(
		NewAgent(white, round),
		NewAgent(black, round),
		gamemaster.NewLocalEngine(rules),
		maxTurns,
	)

	result, gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}

	record := metrics.GameRecord{
		ID:         uuid.NewString(),
		White:      white.ID,
		Black:      black.ID,
		GameMetric: gameMetric,
	}
	record.Result = result

	moves := make([]metrics.MoveRecord, 0, len(moveMetrics))
	for _, mm := range moveMetrics {
		moves = append(moves, metrics.MoveRecord{Game: record.ID, MoveMetric: mm})
	}
	return record, moves, nil
}

// NewAgent builds the agent described by config.
func NewAgent(config meta.AgentConfig, round uint64) agent.Agent {
	seed := config.Seed + round
	switch config.Kind {
	case meta.RandomAgent:
		return agent.NewRandomAgent(seed)
	case meta.AlphaBetaAgent:
		return agent.NewAlphaBetaAgent(searcher.NewAlphaBeta(config.Depth, config.Evaluation.Heuristic()))
	case meta.TrainingAgent:
		return agent.NewTrainingAgent(createMCTS(config, seed), config.Temperature, seed)
	default:
		return agent.NewEvaluationAgent(createMCTS(config, seed))
	}
}

func createMCTS(config meta.AgentConfig, seed uint64) *searcher.MCTS {
	options := []searcher.Option{searcher.WithSeed(seed), searcher.WithMetrics()}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if config.Exploration != nil {
		options = append(options, searcher.WithExploration(*config.Exploration))
	}

	return searcher.NewMCTS(config.Goroutines, options...)
}
