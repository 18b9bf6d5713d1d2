package agent

import (
	"context"

	"hive/experiments/metrics"
	"hive/game"
)

type Agent interface {
	// FindAction returns the action to play and performance metrics (if collected) from the search
	FindAction(ctx context.Context, state game.State) (game.Action, metrics.SearchMetric, error)
}
