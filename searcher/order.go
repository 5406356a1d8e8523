package searcher

import (
	"cmp"
	"jaguar/game"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

// SafetyKey ranks a dog move by how safe the moved dog is afterwards. Fields are listed in
// priority order and Compare sorts the safest move first.
type SafetyKey struct {
	Repetitions     int     // Times the resulting position already occurs on the search path
	DiagonalThreat  bool    // The jaguar can take the dog along a diagonal
	Threatened      bool    // The jaguar can take the dog at all
	Threats         int     // Chains taking the dog
	Exposure        int     // Exposed diagonals, plus two when poorly protected
	DiagonalRisk    float64 // Distance-banded diagonal risk, scaled down by 100
	DiagonalSupport int     // Diagonal neighbours, more first
	Support         int     // Neighbours in all eight directions, more first
	Isolated        bool
	Backward        bool    // Moves to a lower row
	GroupDistance   float64 // Manhattan distance to the centroid of the pack
	DiagonalChain   bool    // At least two diagonal neighbours, preferred
	RowBonus        int     // -1 when landing on row 3 or 4
	Jitter          float64
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

// Compare orders k before o when k is the safer move.
func (k SafetyKey) Compare(o SafetyKey) int {
	return cmp.Or(
		cmp.Compare(k.Repetitions, o.Repetitions),
		compareBool(k.DiagonalThreat, o.DiagonalThreat),
		compareBool(k.Threatened, o.Threatened),
		cmp.Compare(k.Threats, o.Threats),
		cmp.Compare(k.Exposure, o.Exposure),
		cmp.Compare(k.DiagonalRisk, o.DiagonalRisk),
		cmp.Compare(o.DiagonalSupport, k.DiagonalSupport),
		cmp.Compare(o.Support, k.Support),
		compareBool(k.Isolated, o.Isolated),
		compareBool(k.Backward, o.Backward),
		cmp.Compare(k.GroupDistance, o.GroupDistance),
		compareBool(o.DiagonalChain, k.DiagonalChain),
		cmp.Compare(k.RowBonus, o.RowBonus),
		cmp.Compare(k.Jitter, o.Jitter),
	)
}

// NewSafetyKey scores the dog move on board. path holds the keys of the line searched so far.
func NewSafetyKey(board game.Board, move game.Move, path []string, r *rand.Rand) SafetyKey {
	from, to := move.From(), move.To()
	next := board.Apply(move)
	key := SafetyKey{
		Repetitions: lo.Count(path, next.Key()),
		Backward:    to.Row < from.Row,
	}

	exposure := game.Exposure{Protected: true}
	if jaguar, ok := next.JaguarAt(); ok {
		exposure = game.Vulnerability(next, to, jaguar)
	}
	key.Exposure = len(exposure.Exposed)
	if !exposure.Protected {
		key.Exposure += 2
	}
	key.DiagonalRisk = float64(exposure.Risk) / 100

	for _, chain := range game.Jumps(next) {
		for i, captured := range chain.Captured() {
			if captured != to {
				continue
			}
			a, b := chain.Path[i], chain.Path[i+1]
			key.Threatened = true
			key.Threats++
			if abs(a.Row-b.Row) == 2 && abs(a.Col-b.Col) == 2 {
				key.DiagonalThreat = true
			}
			break
		}
	}

	key.Support, key.DiagonalSupport = game.Neighbours(next, to)
	key.Isolated = key.Support == 0
	key.DiagonalChain = key.DiagonalSupport >= 2
	if dogs := next.Find(game.Dog); len(dogs) > 0 {
		row, col := game.Centroid(dogs)
		key.GroupDistance = absf(float64(to.Row)-row) + absf(float64(to.Col)-col)
	}
	if to.Row == 3 || to.Row == 4 {
		key.RowBonus = -1
	}
	if r != nil {
		key.Jitter = r.Float64() * 0.01
	}
	return key
}

// orderDogMoves sorts moves safest first. Moves with equal keys keep their order.
func orderDogMoves(board game.Board, moves []game.Move, path []string, r *rand.Rand) []game.Move {
	type ranked struct {
		move game.Move
		key  SafetyKey
	}
	ranking := lo.Map(moves, func(move game.Move, _ int) ranked {
		return ranked{move: move, key: NewSafetyKey(board, move, path, r)}
	})
	slices.SortStableFunc(ranking, func(a, b ranked) int { return a.key.Compare(b.key) })
	return lo.Map(ranking, func(r ranked, _ int) game.Move { return r.move })
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
