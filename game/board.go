package game

import (
	"fmt"
	"strings"
)

// Cell is the content of one board square, using the wire alphabet.
type Cell byte

const (
	Empty    Cell = '-'
	Jaguar   Cell = 'o'
	Dog      Cell = 'c'
	OffBoard Cell = '#'
)

// BoardMarker starts every board line of the text format.
const BoardMarker = '#'

// Position addresses a cell by 1-based row and column.
type Position struct {
	Row int
	Col int
}

func (p Position) Valid() bool {
	return IsValid(p.Row, p.Col)
}

func (p Position) add(d direction) Position {
	return Position{Row: p.Row + d.dr, Col: p.Col + d.dc}
}

func (p Position) Distance(o Position) int {
	return abs(p.Row-o.Row) + abs(p.Col-o.Col)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Board is the grid including its one-cell border. It is a value: assigning or passing a
// Board copies it, and Apply returns a new Board, so search branches never share state.
type Board [Rows + 2][Cols + 2]Cell

// EmptyBoard returns a board with every playable cell empty.
func EmptyBoard() Board {
	var b Board
	for r := range b {
		for c := range b[r] {
			if IsValid(r, c) {
				b[r][c] = Empty
			} else {
				b[r][c] = OffBoard
			}
		}
	}
	return b
}

// NewBoard returns the opening position: the jaguar in the middle of row 3 and fourteen
// dogs filling rows 1 and 2 and the rest of row 3.
func NewBoard() Board {
	b := EmptyBoard()
	for r := 1; r <= 3; r++ {
		for c := 1; c <= Cols; c++ {
			b[r][c] = Dog
		}
	}
	b[3][3] = Jaguar
	return b
}

// ParseBoard builds a board from the lines of a message that start with BoardMarker.
// Line i is grid row i (row 0 being the top border) and character j is column j.
// Characters other than the cell alphabet are stored as OffBoard.
func ParseBoard(lines []string) (Board, error) {
	var b Board
	for r := range b {
		for c := range b[r] {
			b[r][c] = OffBoard
		}
	}

	row := 0
	for _, line := range lines {
		line = strings.TrimRight(line, "\r\n")
		if len(line) == 0 || line[0] != BoardMarker {
			continue
		}
		if row < len(b) {
			for c := 0; c < len(line) && c < len(b[row]); c++ {
				switch cell := Cell(line[c]); cell {
				case Empty, Jaguar, Dog:
					b[row][c] = cell
				}
			}
		}
		row++
	}
	if row == 0 {
		return b, ErrNoBoard
	}
	return b, nil
}

// At returns the cell at p, or OffBoard outside the grid. It does not check playability.
func (b Board) At(p Position) Cell {
	if p.Row < 0 || p.Row >= len(b) || p.Col < 0 || p.Col >= len(b[0]) {
		return OffBoard
	}
	return b[p.Row][p.Col]
}

func (b *Board) set(p Position, cell Cell) {
	if p.Row < 0 || p.Row >= len(b) || p.Col < 0 || p.Col >= len(b[0]) {
		return
	}
	b[p.Row][p.Col] = cell
}

// With returns a copy of b with cell placed at p.
func (b Board) With(p Position, cell Cell) Board {
	b.set(p, cell)
	return b
}

// Find returns the playable positions holding cell, in row-major order.
func (b Board) Find(cell Cell) []Position {
	var positions []Position
	for r := 1; r <= Rows; r++ {
		for c := 1; c <= Cols; c++ {
			if IsValid(r, c) && b[r][c] == cell {
				positions = append(positions, Position{Row: r, Col: c})
			}
		}
	}
	return positions
}

// JaguarAt returns the jaguar's position, if the jaguar is on the board.
func (b Board) JaguarAt() (Position, bool) {
	for r := 1; r <= Rows; r++ {
		for c := 1; c <= Cols; c++ {
			if IsValid(r, c) && b[r][c] == Jaguar {
				return Position{Row: r, Col: c}, true
			}
		}
	}
	return Position{}, false
}

// Count returns the number of jaguars and dogs on playable cells.
func (b Board) Count() (jaguars, dogs int) {
	for r := 1; r <= Rows; r++ {
		for c := 1; c <= Cols; c++ {
			if !IsValid(r, c) {
				continue
			}
			switch b[r][c] {
			case Jaguar:
				jaguars++
			case Dog:
				dogs++
			}
		}
	}
	return jaguars, dogs
}

// Apply returns the board after m. A jump clears its origin and every captured midpoint
// and puts the jaguar on the last square of the path in one step.
func (b Board) Apply(m Move) Board {
	if len(m.Path) < 2 {
		return b
	}
	from, to := m.From(), m.To()
	switch m.Kind {
	case Jump:
		b.set(from, Empty)
		for _, captured := range m.Captured() {
			b.set(captured, Empty)
		}
		b.set(to, Jaguar)
	default:
		piece := b.At(from)
		b.set(to, piece)
		b.set(from, Empty)
	}
	return b
}

// Key encodes the playable area as a string, one character per cell.
func (b Board) Key() string {
	var sb strings.Builder
	sb.Grow(Rows * Cols)
	for r := 1; r <= Rows; r++ {
		for c := 1; c <= Cols; c++ {
			sb.WriteByte(byte(b[r][c]))
		}
	}
	return sb.String()
}

// String renders the board in the text format, non-playable cells as spaces.
func (b Board) String() string {
	var sb strings.Builder
	for r := range b {
		for c := range b[r] {
			switch {
			case r == 0 || r == len(b)-1 || c == 0 || c == len(b[r])-1:
				sb.WriteByte(BoardMarker)
			case !IsValid(r, c):
				sb.WriteByte(' ')
			default:
				sb.WriteByte(byte(b[r][c]))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
