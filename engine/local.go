package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hive/experiments/metrics"
	"hive/game"
	"hive/gamemaster"
	"hive/meta"
	"hive/searcher/agent"
)

type localEngine struct {
	master   gamemaster.Engine
	agents   [game.NumTeams]agent.Agent
	maxTurns int
}

// LocalEngine pits two agents against each other, white first. A maxTurns
// of zero or less uses meta.MaxTurns.
func LocalEngine(white, black agent.Agent, master gamemaster.Engine, maxTurns int) Engine {
	if white == nil || black == nil {
		panic("need an agent for each team")
	}
	if maxTurns <= 0 {
		maxTurns = meta.MaxTurns
	}
	return &localEngine{
		master:   master,
		agents:   [game.NumTeams]agent.Agent{game.White: white, game.Black: black},
		maxTurns: maxTurns,
	}
}

// Run executes the entire game loop until the game is decided.
func (e *localEngine) Run(ctx context.Context) (game.Result, metrics.GameMetric, []metrics.MoveMetric, error) {
	state, nextUpdate := e.master.Init()
	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", state.Player())

	for turns := 0; !state.IsTerminal() && turns < e.maxTurns; turns++ {
		team := state.Player()
		action, search, err := e.agents[team].FindAction(ctx, state)
		if err != nil {
			return game.Ongoing, gameMetric, moveMetrics, fmt.Errorf("%s agent on turn %d: %w", team, state.Turn(), err)
		}
		if err := e.master.Play(action); err != nil {
			return game.Ongoing, gameMetric, moveMetrics, fmt.Errorf("%s agent on turn %d: %w", team, state.Turn(), err)
		}

		update, ok := nextUpdate()
		if !ok {
			panic("played action produced no update")
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turns + 1,
			Player:       team,
			Action:       action,
			SearchMetric: search,
		})
		state = update.State
	}

	result := state.Result()
	if result == game.Ongoing {
		log.Info().Msgf("stopped after %d turns without a winner", e.maxTurns)
		result = game.Draw
	}

	gameMetric.Result = result
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	return result, gameMetric, moveMetrics, nil
}
