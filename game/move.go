package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tells a one-square step from a capture chain. Its value is the wire command letter.
type Kind byte

const (
	Step Kind = 'm'
	Jump Kind = 's'
	pass      = 'n'
)

// Move is either a Step (a path of two positions) or a Jump, the path of a capture chain.
// Each consecutive pair of a Jump's path captures the dog on their midpoint, so a path of
// k+1 positions captures k dogs.
type Move struct {
	Kind Kind
	Path []Position
}

func NewStep(from, to Position) Move {
	return Move{Kind: Step, Path: []Position{from, to}}
}

func NewJump(path ...Position) Move {
	return Move{Kind: Jump, Path: append([]Position(nil), path...)}
}

func (m Move) IsZero() bool {
	return len(m.Path) == 0
}

func (m Move) From() Position {
	return m.Path[0]
}

func (m Move) To() Position {
	return m.Path[len(m.Path)-1]
}

// Captures is the number of dogs a Jump removes.
func (m Move) Captures() int {
	if m.Kind != Jump || len(m.Path) < 2 {
		return 0
	}
	return len(m.Path) - 1
}

// Captured returns the midpoints of every link of a Jump.
func (m Move) Captured() []Position {
	if m.Kind != Jump {
		return nil
	}
	mids := make([]Position, 0, m.Captures())
	for i := 0; i+1 < len(m.Path); i++ {
		mids = append(mids, midpoint(m.Path[i], m.Path[i+1]))
	}
	return mids
}

func (m Move) Equal(o Move) bool {
	if m.Kind != o.Kind || len(m.Path) != len(o.Path) {
		return false
	}
	for i := range m.Path {
		if m.Path[i] != o.Path[i] {
			return false
		}
	}
	return true
}

func (m Move) String() string {
	if m.IsZero() {
		return "pass"
	}
	parts := make([]string, len(m.Path))
	for i, p := range m.Path {
		parts[i] = p.String()
	}
	return string(m.Kind) + " " + strings.Join(parts, "-")
}

// Encode renders m as a controller command for side:
//
//	<side> m r1 c1 r2 c2
//	<side> s k r0 c0 ... rk ck
//
// A zero move encodes as "<side> n".
func (m Move) Encode(side Side) string {
	if m.IsZero() {
		return EncodePass(side)
	}
	var sb strings.Builder
	sb.WriteByte(byte(side))
	sb.WriteByte(' ')
	sb.WriteByte(byte(m.Kind))
	if m.Kind == Jump {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(m.Captures()))
	}
	for _, p := range m.Path {
		fmt.Fprintf(&sb, " %d %d", p.Row, p.Col)
	}
	sb.WriteByte('\n')
	return sb.String()
}

// EncodePass is the command sent when side has no legal move.
func EncodePass(side Side) string {
	return string([]byte{byte(side), ' ', pass, '\n'})
}

// ParseMove reads a command produced by Encode or EncodePass. A pass yields a zero Move.
func ParseMove(cmd string) (Side, Move, error) {
	fields := strings.Fields(cmd)
	if len(fields) < 2 || len(fields[0]) != 1 || len(fields[1]) != 1 {
		return 0, Move{}, fmt.Errorf("%w: %q", ErrBadCommand, cmd)
	}
	side := Side(fields[0][0])
	args, err := atoiAll(fields[2:])
	if err != nil {
		return side, Move{}, fmt.Errorf("%w: %q: %v", ErrBadCommand, cmd, err)
	}

	switch fields[1][0] {
	case pass:
		if len(args) != 0 {
			return side, Move{}, fmt.Errorf("%w: %q", ErrBadCommand, cmd)
		}
		return side, Move{}, nil
	case byte(Step):
		if len(args) != 4 {
			return side, Move{}, fmt.Errorf("%w: step needs 4 coordinates: %q", ErrBadCommand, cmd)
		}
		return side, NewStep(Position{args[0], args[1]}, Position{args[2], args[3]}), nil
	case byte(Jump):
		if len(args) < 1 || args[0] < 1 || len(args) != 1+2*(args[0]+1) {
			return side, Move{}, fmt.Errorf("%w: jump length mismatch: %q", ErrBadCommand, cmd)
		}
		path := make([]Position, 0, args[0]+1)
		for i := 1; i < len(args); i += 2 {
			path = append(path, Position{Row: args[i], Col: args[i+1]})
		}
		return side, Move{Kind: Jump, Path: path}, nil
	}
	return side, Move{}, fmt.Errorf("%w: unknown kind %q", ErrBadCommand, fields[1])
}

func atoiAll(fields []string) ([]int, error) {
	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func midpoint(a, b Position) Position {
	return Position{Row: (a.Row + b.Row) / 2, Col: (a.Col + b.Col) / 2}
}
