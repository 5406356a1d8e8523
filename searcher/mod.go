package searcher

import (
	"jaguar/experiments/metrics"
	"jaguar/game"
)

// Fixed values for positions that are decided or cycling, from the jaguar's point of view.
const (
	TERMINAL_VALUE = 50000
	CYCLE_VALUE    = 50000
)

type Result struct {
	Value   float64
	Move    game.Move
	HasMove bool
}

type Searcher interface {
	Search(board game.Board, side game.Side) (Result, metrics.SearchMetric)
}
