package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestDogMoves(t *testing.T) {
	t.Run("opening position", func(t *testing.T) {
		moves := DogMoves(NewBoard())

		require.ElementsMatch(t, []Move{
			NewStep(Position{3, 1}, Position{4, 1}),
			NewStep(Position{3, 1}, Position{4, 2}),
			NewStep(Position{3, 2}, Position{4, 2}),
			NewStep(Position{3, 4}, Position{4, 4}),
			NewStep(Position{3, 5}, Position{4, 5}),
			NewStep(Position{3, 5}, Position{4, 4}),
		}, moves, "Only the front row can advance")
	})

	t.Run("dogs never step backward", func(t *testing.T) {
		b := boardOf(Position{1, 1}, Position{4, 2})

		for _, m := range DogMoves(b) {
			require.GreaterOrEqual(t, m.To().Row, m.From().Row, "%v goes backward", m)
		}
		require.Len(t, DogMoves(b), 5, "Dog on an even cell has five lines")
	})

	t.Run("bottom row", func(t *testing.T) {
		b := boardOf(Position{1, 1}, Position{7, 3})

		require.Empty(t, DogMoves(b), "Bottom row dog has no single-cell neighbour")
	})
}

func TestJaguarMoves(t *testing.T) {
	t.Run("opening position", func(t *testing.T) {
		moves := JaguarMoves(NewBoard())

		require.ElementsMatch(t, []Move{
			NewStep(Position{3, 3}, Position{4, 2}),
			NewStep(Position{3, 3}, Position{4, 3}),
			NewStep(Position{3, 3}, Position{4, 4}),
		}, moves)
	})

	t.Run("single capture", func(t *testing.T) {
		b := boardOf(Position{4, 3}, Position{3, 3})

		moves := JaguarMoves(b)

		require.Len(t, moves, 4, "Three steps and one capture")
		require.Equal(t, []Move{NewJump(Position{4, 3}, Position{2, 3})}, Jumps(b))
	})

	t.Run("chain is reported only at its full length", func(t *testing.T) {
		b := boardOf(Position{5, 3}, Position{4, 3}, Position{2, 3})

		require.Equal(t, []Move{NewJump(Position{5, 3}, Position{3, 3}, Position{1, 3})}, Jumps(b))
	})

	t.Run("chain branches", func(t *testing.T) {
		b := boardOf(Position{5, 3}, Position{4, 3}, Position{3, 2}, Position{3, 4})

		require.ElementsMatch(t, []Move{
			NewJump(Position{5, 3}, Position{3, 3}, Position{3, 1}),
			NewJump(Position{5, 3}, Position{3, 3}, Position{3, 5}),
		}, Jumps(b))
	})

	t.Run("bridged bottom row jump", func(t *testing.T) {
		b := boardOf(Position{7, 1}, Position{7, 3})

		require.ElementsMatch(t, []Move{
			NewStep(Position{7, 1}, Position{6, 2}),
			NewJump(Position{7, 1}, Position{7, 5}),
		}, JaguarMoves(b))
	})

	t.Run("chain never lands on a square it captured", func(t *testing.T) {
		b := boardOf(Position{7, 5}, Position{7, 3}, Position{6, 2}, Position{6, 3})

		require.Equal(t, []Move{NewJump(Position{7, 5}, Position{7, 1}, Position{5, 3})}, Jumps(b))
	})

	t.Run("no jaguar", func(t *testing.T) {
		require.Empty(t, JaguarMoves(EmptyBoard().With(Position{2, 2}, Dog)))
	})
}

// randomBoards plays random legal moves from the opening and returns every board reached.
func randomBoards(seed uint64, plies int) []Board {
	r := rand.New(rand.NewSource(seed))
	b, side := NewBoard(), JaguarSide
	boards := []Board{b}
	for i := 0; i < plies; i++ {
		moves := LegalMoves(b, side)
		_, dogs := b.Count()
		if len(moves) == 0 || dogs <= 5 {
			b, side = NewBoard(), JaguarSide
			continue
		}
		b = b.Apply(moves[r.Intn(len(moves))])
		side = side.Opponent()
		boards = append(boards, b)
	}
	return boards
}

func TestLegalMovesProperties(t *testing.T) {
	boards := randomBoards(7, 600)

	for _, b := range boards {
		for _, side := range []Side{JaguarSide, DogSide} {
			_, before := b.Count()
			for _, m := range LegalMoves(b, side) {
				for i := 0; i+1 < len(m.Path); i++ {
					require.True(t, MovePossible(m.Kind, m.Path[i], m.Path[i+1]),
						"%v link %d fails the board lines on\n%v", m, i, b)
				}
				for _, p := range m.Path {
					require.True(t, p.Valid(), "%v visits %v", m, p)
				}

				next := b.Apply(m)
				_, after := next.Count()
				if m.Kind == Step {
					require.Equal(t, before, after, "Step %v changed the dog count", m)
					continue
				}

				require.Equal(t, before-m.Captures(), after, "Chain %v removed the wrong number of dogs", m)
				require.Equal(t, Jaguar, next.At(m.To()))
				captured := m.Captured()
				seen := map[Position]bool{}
				for _, mid := range captured {
					require.False(t, seen[mid], "Chain %v captures %v twice", m, mid)
					seen[mid] = true
					require.Equal(t, Dog, b.At(mid), "Chain %v jumps an empty square", m)
					require.Equal(t, Empty, next.At(mid), "Chain %v leaves %v occupied", m, mid)
				}
				for _, p := range m.Path {
					require.False(t, seen[p], "Chain %v lands on captured %v", m, p)
				}
			}
		}
	}
}

func TestValidate(t *testing.T) {
	b := NewBoard()

	require.NoError(t, Validate(b, DogSide, NewStep(Position{3, 1}, Position{4, 1})))
	require.ErrorIs(t, Validate(b, DogSide, NewStep(Position{3, 1}, Position{2, 1})), ErrBadMove)
	require.ErrorIs(t, Validate(b, JaguarSide, NewStep(Position{3, 1}, Position{4, 1})), ErrBadMove,
		"Jaguar cannot move a dog")
	require.ErrorIs(t, Validate(b, JaguarSide, Move{}), ErrBadMove, "Pass with moves available")
	require.NoError(t, Validate(boardOf(Position{1, 1}, Position{7, 3}), DogSide, Move{}),
		"Pass without moves is legal")
}
