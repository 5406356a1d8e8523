package agent

import (
	"jaguar/experiments/metrics"
	"jaguar/game"
	"jaguar/searcher"
)

type evaluationAgent struct {
	searcher searcher.Searcher
	history  *game.History
}

// NewEvaluationAgent returns a new agent for actual game play. It remembers the boards it
// moved on in history so the search steers away from repeating them.
func NewEvaluationAgent(history *game.History, options ...searcher.Option) Agent {
	options = append(options, searcher.WithHistory(history))
	return &evaluationAgent{searcher: searcher.NewMinimax(options...), history: history}
}

// NewMCTSAgent returns an agent searching with MCTS. It keeps no history.
func NewMCTSAgent(goroutines int, options ...searcher.MCTSOption) Agent {
	return &evaluationAgent{searcher: searcher.NewMCTS(goroutines, options...)}
}

func (a *evaluationAgent) FindMove(board game.Board, side game.Side) (game.Move, bool, metrics.SearchMetric) {
	if len(game.LegalMoves(board, side)) == 0 {
		return game.Move{}, false, metrics.SearchMetric{}
	}
	result, metric := a.searcher.Search(board, side)
	if result.HasMove {
		if err := game.Validate(board, side, result.Move); err != nil {
			panic(err)
		}
	}
	return result.Move, result.HasMove, metric
}

func (a *evaluationAgent) Played(board game.Board) {
	if a.history != nil {
		a.history.Add(board.Key())
	}
}
