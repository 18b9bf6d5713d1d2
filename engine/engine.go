package engine

import (
	"context"

	"hive/experiments/metrics"
	"hive/game"
)

type Engine interface {
	// Run plays a game till it is decided or the turn limit is reached, which counts as a draw
	Run(ctx context.Context) (result game.Result, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
