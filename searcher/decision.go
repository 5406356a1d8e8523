package searcher

import (
	"jaguar/game"
	"math"
	"sync"
)

// decision is a tree node for a board with side to move. Its rewards are counted for the
// side that moved into it, so a parent picks the child best for itself.
type decision struct {
	sync.RWMutex
	parent   *decision
	side     game.Side
	moves    []game.Move
	children []*decision
	rewards  float64
	visits   float64
}

func newDecision(parent *decision, board game.Board, side game.Side) *decision {
	var moves []game.Move
	if _, over := outcome(board); !over {
		moves = game.LegalMoves(board, side)
		if len(moves) == 0 {
			moves = []game.Move{{}} // Pass
		}
	}
	return &decision{
		parent:   parent,
		side:     side,
		moves:    moves,
		children: make([]*decision, 0, len(moves)),
	}
}

// mover is the side whose move led to d.
func (d *decision) mover() game.Side {
	return d.side.Opponent()
}

// SelectOrExpand returns the child to descend to and its board. expanded is true when
// the child was just added. A terminal node returns itself.
func (d *decision) SelectOrExpand(board game.Board) (child *decision, childBoard game.Board, expanded bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.moves) == 0 { // Terminal node
		return d, board, false
	}

	if len(d.moves) > len(d.children) { // Expandable node
		next := board.Apply(d.moves[len(d.children)])
		child := newDecision(d, next, d.side.Opponent())
		d.children = append(d.children, child)
		child.applyLoss()
		return child, next, true
	}

	// Fully expanded node
	ith := d.pickChild()
	child = d.children[ith]
	child.applyLoss()
	return child, board.Apply(d.moves[ith]), false
}

func (d *decision) pickChild() int {
	if d.visits == 0 {
		panic("node has children but no visits")
	}

	c2LnN := C_SQUARED * math.Log(d.visits)

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		if score := child.score(c2LnN); score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

// applyLoss counts a visit in progress as a loss so concurrent episodes spread out.
func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += LOSS
	d.visits++
}

func (d *decision) score(c2LnN float64) float64 {
	d.RLock()
	defer d.RUnlock()

	return uct(d.rewards, d.visits, c2LnN)
}

// Backup records an episode's reward and returns the parent to continue with.
func (d *decision) Backup(reward func(game.Side) float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}

	d.rewards += reward(d.mover())
	d.visits++

	return d.parent
}

func (d *decision) reverseLoss() {
	d.rewards -= LOSS
	d.visits--
}

func (d *decision) Visits() float64 {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

// bestMove returns the most visited move and its mean reward.
func (d *decision) bestMove() (game.Move, float64) {
	d.RLock()
	defer d.RUnlock()

	if len(d.children) == 0 {
		panic("node has no children")
	}

	best := 0
	for i, child := range d.children {
		if child.Visits() > d.children[best].Visits() {
			best = i
		}
	}
	child := d.children[best]
	child.RLock()
	defer child.RUnlock()
	return d.moves[best], child.rewards / child.visits
}
