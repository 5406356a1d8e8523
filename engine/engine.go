package engine

import (
	"jaguar/experiments/metrics"
	"jaguar/game"
)

type Engine interface {
	// Run plays a game till there's a winner or the turn limit is reached. A draw has no winner.
	Run() (winner game.Side, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
