package searcher

import (
	"jaguar/experiments/metrics"
	"jaguar/game"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type MCTSOption func(m *MCTS)

// MCTS is a tree search with random playouts run by a pool of goroutines sharing one tree.
// Playouts stop at a decided game or after cutoff plies, where the evaluator's score relative
// to the root board estimates the jaguar's chance.
type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	seed       uint64
	evaluator  *game.Evaluator
	baseline   float64 // Evaluator score of the root board
	root       *decision
	metrics    metrics.Collector
}

func WithDuration(duration time.Duration) MCTSOption {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) MCTSOption {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) MCTSOption {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

// WithPlayoutSeed seeds the playout policy. Searches with one goroutine and a number of
// episodes are then reproducible.
func WithPlayoutSeed(seed uint64) MCTSOption {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func NewMCTS(goroutines int, options ...MCTSOption) *MCTS {
	m := &MCTS{ // Default values
		goroutines: max(goroutines, 1),
		cutoff:     MAX_CUTOFF,
		seed:       uint64(time.Now().UnixNano()),
		evaluator:  game.NewEvaluator(nil, nil),
		metrics:    metrics.NewCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Search returns the most visited move for side and its estimated chance of winning.
func (m *MCTS) Search(board game.Board, side game.Side) (Result, metrics.SearchMetric) {
	m.root = newDecision(nil, board, side)
	m.metrics.Start(m.cutoff)
	m.baseline = m.evaluator.Evaluate(board, game.JaguarSide)

	if len(m.root.moves) == 0 || m.root.moves[0].IsZero() { // Nothing to choose
		return Result{}, m.metrics.Complete(0)
	}

	if m.episodes > 0 {
		m.iterate(board)
	} else {
		m.countdown(board)
	}
	m.seed += uint64(m.goroutines)

	move, value := m.root.bestMove()
	metric := m.metrics.Complete(value)

	log.Debug().Msgf("simulated %s %d episodes: value=%.3f move=%v", side, metric.Leaves, value, move)
	return Result{Value: value, Move: move, HasMove: true}, metric
}

func (m *MCTS) iterate(board game.Board) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		r := rand.New(rand.NewSource(m.seed + uint64(i)))
		go func() {
			defer wg.Done()

			for range task {
				m.simulate(board, r)
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) countdown(board game.Board) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		r := rand.New(rand.NewSource(m.seed + uint64(i)))
		go func() {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					m.simulate(board, r)
				}
			}
		}()
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

func (m *MCTS) simulate(board game.Board, r *rand.Rand) {
	node, board := selectThenExpand(m.root, board)
	m.metrics.AddNode()
	reward := m.rollout(board, node.side, r)
	backup(node, reward)
	m.metrics.AddLeaf()
}

func selectThenExpand(root *decision, board game.Board) (*decision, game.Board) {
	node := root
	for {
		child, childBoard, expanded := node.SelectOrExpand(board)
		if expanded || child == node {
			return child, childBoard
		}
		node, board = child, childBoard
	}
}

// rollout plays random moves from board with side to move.
func (m *MCTS) rollout(board game.Board, side game.Side, r *rand.Rand) func(game.Side) float64 {
	for depth := 0; ; depth++ {
		if winner, over := outcome(board); over {
			m.metrics.AddTerminal()
			if winner == game.JaguarSide {
				return rewarder(WIN)
			}
			return rewarder(LOSS)
		}
		if depth >= m.cutoff {
			break
		}

		// A side without moves passes
		if moves := game.LegalMoves(board, side); len(moves) > 0 {
			board = board.Apply(moves[r.Intn(len(moves))])
		}
		side = side.Opponent()
	}

	m.metrics.AddCutoff()
	score := m.evaluator.Evaluate(board, game.JaguarSide)
	return rewarder(jaguarChance(score - m.baseline))
}

func backup(node *decision, reward func(game.Side) float64) {
	for node != nil {
		node = node.Backup(reward)
	}
}
