package game

// direction is a (row, column) displacement.
type direction struct {
	dr, dc int
}

var (
	// jaguarSteps are the eight compass directions.
	jaguarSteps = []direction{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
	// jaguarJumps land two cells away in each compass direction.
	jaguarJumps = []direction{
		{-2, 0}, {2, 0}, {0, -2}, {0, 2},
		{-2, -2}, {-2, 2}, {2, -2}, {2, 2},
	}
	// bottomJumps bridge the two missing cells of the bottom row.
	bottomJumps = []direction{{0, -4}, {0, 4}}
	// dogSteps never go backward: forward, sideways, forward diagonals.
	dogSteps = []direction{{1, 0}, {0, -1}, {0, 1}, {1, -1}, {1, 1}}

	orthogonals = []direction{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonals   = []direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// IsValid reports whether (row, col) is a playable cell. Row 6 lacks columns 1 and 5,
// row 7 only has columns 1, 3 and 5.
func IsValid(row, col int) bool {
	if row < 1 || row > Rows || col < 1 || col > Cols {
		return false
	}
	if row == 6 && (col == 1 || col == 5) {
		return false
	}
	if row == 7 && (col == 2 || col == 4) {
		return false
	}
	return true
}

// MovePossible reports whether the board's lines connect from and to for a move of the
// given kind. It does not look at pieces.
func MovePossible(kind Kind, from, to Position) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	distR := abs(from.Row - to.Row)
	distC := abs(from.Col - to.Col)
	if distR+distC == 0 {
		return false
	}
	odd := (from.Row+from.Col)%2 != 0

	switch kind {
	case Step:
		if from.Row == 7 && distR == 0 {
			return distC == 2
		}
		if distR > 1 || distC > 1 {
			return false
		}
		// Diagonal lines only leave even cells
		if odd && distR+distC > 1 {
			return false
		}
		if from.Row == 5 && to.Row == 6 && from.Col != 3 {
			return false
		}
		if from.Row == 6 && from.Col%2 == 0 {
			if to.Row == 5 && to.Col != 3 {
				return false
			}
			if to.Row == 7 && to.Col == 3 {
				return false
			}
		}
		return true
	case Jump:
		if from.Row == 7 && distR == 0 {
			return distC == 4
		}
		if distR == 1 || distC == 1 || distR+distC > 4 {
			return false
		}
		if odd && distR+distC > 2 {
			return false
		}
		if from.Row == 5 && to.Row == 7 && from.Col != 3 {
			return false
		}
		if from.Row == 6 && to.Row == 4 &&
			((from.Col == 2 && to.Col != 4) || (from.Col == 4 && to.Col != 2)) {
			return false
		}
		if from.Row == 7 && to.Col != 3 {
			return false
		}
		return true
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
