package game

import (
	"golang.org/x/exp/rand"

	"github.com/samber/lo"
)

const (
	wCapture          = 2000000
	wJaguarMobility   = 25
	wAvailableCapture = 150
	wCentrality       = 5
	wDogsAtRisk       = -1500
	wExposedDiagonals = -1800
	wDiagonalRisk     = -1500
	wIsolated         = wDogsAtRisk * 0.8
	wSupported        = -180
	wProtected        = -400
	wFormation        = -500
	wBlockEscape      = -250
	wEncircle         = -200
	wAdvance          = -8
	wDiagonalChain    = -300
	wLineControl      = -150
	wCenterControl    = -200
	wWall             = -150
	wPreventRetreat   = -300
	wRepeat           = -1000000
	wJitter           = 20

	// NoJaguarScore is returned for a board the jaguar has been removed from, negated for the dog side.
	NoJaguarScore = -99999
)

// Exposure describes how open a dog is to diagonal captures.
type Exposure struct {
	Risk      int         // Sum of the distance bands of the exposed directions
	Exposed   []direction // Diagonals a jaguar could jump the dog along
	Protected bool        // At least two diagonals are covered by an orthogonal neighbour
}

// Vulnerability inspects the four diagonals of the dog at dog. A diagonal is open when the
// cell beyond the dog is empty and the cell before it is empty or holds the jaguar. An open
// diagonal is covered when a dog sits on either orthogonal cell next to dog on that side,
// otherwise it is exposed and adds risk by the jaguar's distance to the attacking square.
func Vulnerability(b Board, dog, jaguar Position) Exposure {
	var e Exposure
	covered := 0
	for _, d := range diagonals {
		landing := dog.add(d)
		attack := dog.add(direction{-d.dr, -d.dc})
		if !landing.Valid() || !attack.Valid() {
			continue
		}
		if b.At(landing) != Empty {
			continue
		}
		if cell := b.At(attack); cell != Empty && cell != Jaguar {
			continue
		}

		if isDog(b, dog.add(direction{d.dr, 0})) || isDog(b, dog.add(direction{0, d.dc})) {
			covered++
			continue
		}
		e.Exposed = append(e.Exposed, d)
		switch dist := jaguar.Distance(attack); {
		case dist == 0:
			e.Risk += 1000
		case dist <= 1:
			e.Risk += 500
		case dist <= 2:
			e.Risk += 200
		case dist <= 3:
			e.Risk += 50
		}
	}
	e.Protected = covered >= 2
	return e
}

func isDog(b Board, p Position) bool {
	return p.Valid() && b.At(p) == Dog
}

// Neighbours counts the dogs around p, returning all eight directions and the diagonals alone.
func Neighbours(b Board, p Position) (all, diagonal int) {
	for _, d := range orthogonals {
		if isDog(b, p.add(d)) {
			all++
		}
	}
	for _, d := range diagonals {
		if isDog(b, p.add(d)) {
			all++
			diagonal++
		}
	}
	return all, diagonal
}

// Features holds every deterministic term of the evaluation, from the jaguar's point of view
// before weighting.
type Features struct {
	Captured          int
	JaguarMoves       int
	AvailableCaptures int
	Centrality        int
	DogsAtRisk        int
	ExposedDiagonals  int
	DiagonalRisk      int
	Isolated          int
	Supported         int
	Protected         int
	Formation         float64
	Escapes           int
	Advancement       int
	DiagonalChain     int
	LineControl       int
	CenterControl     int
	Wall              int
	PreventRetreat    int
	Repetitions       int
}

// Extract computes the features of b. It reports false when the jaguar is not on the board.
func Extract(b Board, history *History) (Features, bool) {
	jaguar, ok := b.JaguarAt()
	if !ok {
		return Features{}, false
	}
	dogs := b.Find(Dog)
	moves := JaguarMoves(b)
	chains := lo.Filter(moves, func(m Move, _ int) bool { return m.Kind == Jump })
	threatened := map[Position]bool{}
	for _, m := range chains {
		for _, mid := range m.Captured() {
			threatened[mid] = true
		}
	}

	f := Features{
		Captured:          MaxDogs - len(dogs),
		JaguarMoves:       len(moves),
		AvailableCaptures: lo.SumBy(chains, func(m Move) int { return m.Captures() }),
		Centrality:        max(0, 6-jaguar.Distance(Position{Row: 4, Col: 3})),
		Repetitions:       history.Count(b.Key()),
	}

	rowCounts := map[int]int{}
	for _, dog := range dogs {
		e := Vulnerability(b, dog, jaguar)
		f.DiagonalRisk += e.Risk
		f.ExposedDiagonals += len(e.Exposed)
		if e.Protected {
			f.Protected++
		}
		if threatened[dog] {
			f.DogsAtRisk++
		}

		all, diagonal := Neighbours(b, dog)
		switch {
		case all >= 3:
			f.Supported++
		case all == 0:
			f.Isolated++
		}
		f.DiagonalChain += 10 * diagonal

		switch dog.Col {
		case 3:
			f.CenterControl += 10
		case 2, 4:
			f.CenterControl += 5
		}
		f.Advancement += dog.Row
		rowCounts[dog.Row]++
	}
	f.Formation = formation(dogs)

	for row := 2; row <= 4; row++ {
		f.LineControl += rowCounts[row] * (5 - abs(row-3))
	}
	for row := 2; row <= 5; row++ {
		if n := rowCounts[row]; n >= 3 {
			f.Wall += 20 * n
		}
	}
	if jaguar.Row <= 3 {
		f.PreventRetreat = (4 - jaguar.Row) * 30
	}
	f.Escapes = escapes(b, jaguar)
	return f, true
}

// formation rewards a tight pack near the middle rows: the negated spread around the centroid,
// plus bonuses for a small spread and for an average row between 3 and 4.5.
func formation(dogs []Position) float64 {
	if len(dogs) == 0 {
		return 0
	}
	row, col := Centroid(dogs)
	spread := lo.SumBy(dogs, func(p Position) float64 {
		return absf(float64(p.Row)-row) + absf(float64(p.Col)-col)
	})
	score := -spread
	if spread < 8 {
		score += 200
	}
	if row >= 3.0 && row <= 4.5 {
		score += 50
	}
	return score
}

// Centroid is the mean row and column of dogs, which must not be empty.
func Centroid(dogs []Position) (row, col float64) {
	n := float64(len(dogs))
	row = float64(lo.SumBy(dogs, func(p Position) int { return p.Row })) / n
	col = float64(lo.SumBy(dogs, func(p Position) int { return p.Col })) / n
	return row, col
}

// escapes counts the empty squares around the jaguar that no dog borders orthogonally.
func escapes(b Board, jaguar Position) int {
	return lo.CountBy(jaguarSteps, func(d direction) bool {
		p := jaguar.add(d)
		if !p.Valid() || b.At(p) != Empty {
			return false
		}
		for _, o := range orthogonals {
			if isDog(b, p.add(o)) {
				return false
			}
		}
		return true
	})
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Score weights the features into a single value favouring the jaguar.
func (f Features) Score() float64 {
	score := float64(f.Captured * wCapture)
	score += float64(f.JaguarMoves * wJaguarMobility)
	score += float64(f.AvailableCaptures * wAvailableCapture)
	score += float64(f.Centrality * wCentrality)
	score += float64(f.DogsAtRisk * wDogsAtRisk)
	score += float64(f.ExposedDiagonals * wExposedDiagonals)
	score += float64(f.DiagonalRisk * wDiagonalRisk)
	score += float64(f.Isolated) * wIsolated
	score += float64(f.Supported * wSupported)
	score += float64(f.Protected * wProtected)
	score += f.Formation * wFormation
	score += float64(-f.Escapes * wBlockEscape)
	score += float64((MaxDogs - f.JaguarMoves) * wEncircle)
	score += float64(f.Advancement * wAdvance)
	score += float64(f.DiagonalChain * wDiagonalChain)
	score += float64(f.LineControl * wLineControl)
	score += float64(f.CenterControl * wCenterControl)
	score += float64(f.Wall * wWall)
	score += float64(f.PreventRetreat * wPreventRetreat)
	score += float64(f.Repetitions * wRepeat)
	return score
}

// Evaluator scores boards against the boards a player has already seen. The random source
// only adds a small jitter to separate otherwise equal positions; without one evaluation is
// deterministic.
type Evaluator struct {
	history *History
	rand    *rand.Rand
}

func NewEvaluator(history *History, r *rand.Rand) *Evaluator {
	return &Evaluator{history: history, rand: r}
}

// Evaluate returns the score of b for side: positive is good for the jaguar and the value
// is negated when side is the dogs.
func (e *Evaluator) Evaluate(b Board, side Side) float64 {
	f, ok := Extract(b, e.history)
	if !ok {
		if side == JaguarSide {
			return NoJaguarScore
		}
		return -NoJaguarScore
	}
	score := f.Score()
	if e.rand != nil {
		score += (e.rand.Float64()*2 - 1) * wJitter
	}
	if side == DogSide {
		return -score
	}
	return score
}
