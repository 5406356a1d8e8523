package agent

import (
	"jaguar/experiments/metrics"
	"jaguar/game"
)

type Agent interface {
	// FindMove returns the move to play for side, false when side has to pass, and the
	// performance metrics (if collected) of the search
	FindMove(board game.Board, side game.Side) (game.Move, bool, metrics.SearchMetric)
	// Played tells the agent it has moved on board
	Played(board game.Board)
}
