package searcher

import (
	"jaguar/experiments/metrics"
	"jaguar/game"
	"jaguar/meta"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

type Option func(m *Minimax)

// Minimax is a depth-limited alpha-beta search. The jaguar maximizes and the dogs minimize.
// One search runs on the calling goroutine and keeps no state between calls besides the
// random source.
type Minimax struct {
	depth        int
	dogThreshold int
	history      *game.History
	rand         *rand.Rand
	evaluator    *game.Evaluator
	metrics      metrics.Collector
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth >= 0 {
			m.depth = depth
		}
	}
}

// WithHistory makes the evaluator penalize positions already played.
func WithHistory(history *game.History) Option {
	return func(m *Minimax) {
		m.history = history
	}
}

// WithRand sets the source used to shuffle jaguar moves and break ties.
func WithRand(r *rand.Rand) Option {
	return func(m *Minimax) {
		if r != nil {
			m.rand = r
		}
	}
}

func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		depth:        meta.SEARCH_DEPTH,
		dogThreshold: meta.DOG_THRESHOLD,
		metrics:      metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rand == nil {
		m.rand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	m.evaluator = game.NewEvaluator(m.history, m.rand)
	return m
}

func (m *Minimax) Depth() int {
	return m.depth
}

// Search returns the best value for side to move on board and the move reaching it. At
// depth 0 or on a decided position there is no move.
func (m *Minimax) Search(board game.Board, side game.Side) (Result, metrics.SearchMetric) {
	m.metrics.Start(m.depth)
	value, move := m.search(board, m.depth, side == game.JaguarSide, math.Inf(-1), math.Inf(1), nil)
	metric := m.metrics.Complete(value)

	log.Debug().Msgf("searched %s to depth %d: value=%.1f move=%v", side, m.depth, value, move)
	return Result{Value: value, Move: move, HasMove: !move.IsZero()}, metric
}

func (m *Minimax) search(board game.Board, depth int, maximizing bool, alpha, beta float64, path []string) (float64, game.Move) {
	m.metrics.AddNode()

	key := board.Key()
	if lo.Count(path, key) >= 2 {
		m.metrics.AddCycle()
		if maximizing {
			return -CYCLE_VALUE, game.Move{}
		}
		return CYCLE_VALUE, game.Move{}
	}

	// Covers a missing jaguar as well as a trapped one
	jaguarMoves := game.JaguarMoves(board)
	if len(jaguarMoves) == 0 {
		m.metrics.AddTerminal()
		return -TERMINAL_VALUE, game.Move{}
	}
	if _, dogs := board.Count(); dogs <= m.dogThreshold {
		m.metrics.AddTerminal()
		return TERMINAL_VALUE, game.Move{}
	}

	if depth == 0 {
		m.metrics.AddLeaf()
		side := game.DogSide
		if maximizing {
			side = game.JaguarSide
		}
		return m.evaluator.Evaluate(board, side), game.Move{}
	}

	path = append(path[:len(path):len(path)], key)
	if maximizing {
		return m.maximize(board, depth, alpha, beta, path, jaguarMoves)
	}
	return m.minimize(board, depth, alpha, beta, path)
}

func (m *Minimax) maximize(board game.Board, depth int, alpha, beta float64, path []string, moves []game.Move) (float64, game.Move) {
	best, bestMove := math.Inf(-1), game.Move{}
	for _, move := range m.orderJaguarMoves(moves) {
		value, _ := m.search(board.Apply(move), depth-1, false, alpha, beta, path)
		if value > best {
			best, bestMove = value, move
		}
		alpha = max(alpha, value)
		if beta <= alpha {
			m.metrics.AddCutoff()
			break
		}
	}
	return best, bestMove
}

func (m *Minimax) minimize(board game.Board, depth int, alpha, beta float64, path []string) (float64, game.Move) {
	moves := game.DogMoves(board)
	if len(moves) == 0 {
		m.metrics.AddTerminal()
		return TERMINAL_VALUE, game.Move{}
	}
	moves = orderDogMoves(board, moves, path, m.rand)

	best, bestMove := math.Inf(1), game.Move{}
	for _, move := range moves {
		value, _ := m.search(board.Apply(move), depth-1, true, alpha, beta, path)
		if value < best {
			best, bestMove = value, move
		}
		beta = min(beta, value)
		if beta <= alpha {
			m.metrics.AddCutoff()
			break
		}
	}
	if bestMove.IsZero() {
		bestMove = moves[0]
	}
	return best, bestMove
}

// orderJaguarMoves puts capture chains before steps, each group in random order.
func (m *Minimax) orderJaguarMoves(moves []game.Move) []game.Move {
	chains := lo.Filter(moves, func(move game.Move, _ int) bool { return move.Kind == game.Jump })
	steps := lo.Filter(moves, func(move game.Move, _ int) bool { return move.Kind != game.Jump })
	m.rand.Shuffle(len(chains), func(i, j int) { chains[i], chains[j] = chains[j], chains[i] })
	m.rand.Shuffle(len(steps), func(i, j int) { steps[i], steps[j] = steps[j], steps[i] })
	return append(chains, steps...)
}
