package agent

import (
	"jaguar/experiments/metrics"
	"jaguar/game"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	inner       Agent
	exploration float64
	rand        *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play. With probability exploration it
// plays a uniformly random legal move instead of asking inner. A nil inner always explores.
func NewTrainingAgent(inner Agent, exploration float64, r *rand.Rand) Agent {
	if r == nil {
		panic("training agent needs a random source")
	}
	return &trainingAgent{inner: inner, exploration: exploration, rand: r}
}

// NewRandomAgent returns an agent playing uniformly random legal moves.
func NewRandomAgent(r *rand.Rand) Agent {
	return NewTrainingAgent(nil, 1, r)
}

func (a *trainingAgent) FindMove(board game.Board, side game.Side) (game.Move, bool, metrics.SearchMetric) {
	if a.inner != nil && a.rand.Float64() >= a.exploration {
		return a.inner.FindMove(board, side)
	}
	moves := game.LegalMoves(board, side)
	if len(moves) == 0 {
		return game.Move{}, false, metrics.SearchMetric{}
	}
	return moves[a.rand.Intn(len(moves))], true, metrics.SearchMetric{}
}

func (a *trainingAgent) Played(board game.Board) {
	if a.inner != nil {
		a.inner.Played(board)
	}
}
