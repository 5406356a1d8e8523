package searcher

import (
	"jaguar/game"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/*
- cutoffs: repeated position, missing or trapped jaguar, dog threshold, depth 0
- jaguar: never invents a capture, takes an available capture
- dogs: move a threatened dog away, no dog moves
- reproducible under a seed
*/

func boardOf(jaguar game.Position, dogs ...game.Position) game.Board {
	b := game.EmptyBoard().With(jaguar, game.Jaguar)
	for _, d := range dogs {
		b = b.With(d, game.Dog)
	}
	return b
}

func pos(row, col int) game.Position {
	return game.Position{Row: row, Col: col}
}

func TestMinimaxCutoffs(t *testing.T) {
	t.Run("depth 0 returns the evaluation", func(t *testing.T) {
		for _, side := range []game.Side{game.JaguarSide, game.DogSide} {
			b := game.NewBoard()
			evaluator := game.NewEvaluator(nil, rand.New(rand.NewSource(5)))
			m := NewMinimax(WithDepth(0), WithSeed(5))

			result, _ := m.Search(b, side)

			require.Equal(t, evaluator.Evaluate(b, side), result.Value, "Depth 0 should score the board for %v", side)
			require.False(t, result.HasMove, "Depth 0 should not pick a move")
		}
	})

	t.Run("trapped jaguar loses before the dog count is checked", func(t *testing.T) {
		b := boardOf(pos(7, 1), pos(6, 2), pos(5, 3), pos(7, 3), pos(7, 5))
		require.Empty(t, game.JaguarMoves(b))

		result, _ := NewMinimax(WithDepth(2), WithSeed(1)).Search(b, game.JaguarSide)

		require.Equal(t, float64(-TERMINAL_VALUE), result.Value)
		require.False(t, result.HasMove)
	})

	t.Run("missing jaguar", func(t *testing.T) {
		b := game.EmptyBoard().With(pos(2, 2), game.Dog)

		result, _ := NewMinimax(WithSeed(1)).Search(b, game.DogSide)

		require.Equal(t, float64(-TERMINAL_VALUE), result.Value)
	})

	t.Run("dog threshold", func(t *testing.T) {
		b := boardOf(pos(4, 3), pos(1, 1), pos(1, 2), pos(1, 3), pos(1, 4), pos(1, 5))

		result, _ := NewMinimax(WithDepth(3), WithSeed(1)).Search(b, game.DogSide)

		require.Equal(t, float64(TERMINAL_VALUE), result.Value, "Five dogs left is a jaguar win")
		require.False(t, result.HasMove)
	})

	t.Run("repeated position on the search path", func(t *testing.T) {
		m := NewMinimax(WithDepth(2), WithSeed(1))
		b := game.NewBoard()
		path := []string{b.Key(), "other", b.Key()}

		maxValue, maxMove := m.search(b, 2, true, math.Inf(-1), math.Inf(1), path)
		minValue, _ := m.search(b, 2, false, math.Inf(-1), math.Inf(1), path)

		require.Equal(t, float64(-CYCLE_VALUE), maxValue, "Cycle should count against the jaguar")
		require.True(t, maxMove.IsZero())
		require.Equal(t, float64(CYCLE_VALUE), minValue, "Cycle should count against the dogs")
	})

	t.Run("dogs without moves", func(t *testing.T) {
		b := boardOf(pos(1, 1), pos(6, 2), pos(6, 3), pos(6, 4), pos(7, 1), pos(7, 3), pos(7, 5))
		require.Empty(t, game.DogMoves(b))

		result, _ := NewMinimax(WithDepth(2), WithSeed(1)).Search(b, game.DogSide)

		require.Equal(t, float64(TERMINAL_VALUE), result.Value)
		require.False(t, result.HasMove)
	})
}

func TestMinimaxJaguar(t *testing.T) {
	t.Run("no capture when none is available", func(t *testing.T) {
		b := boardOf(pos(4, 3), pos(1, 1), pos(1, 5), pos(1, 2), pos(1, 4), pos(2, 1), pos(2, 5))
		require.Empty(t, game.Jumps(b))

		result, _ := NewMinimax(WithDepth(2), WithSeed(3)).Search(b, game.JaguarSide)

		require.True(t, result.HasMove)
		require.Equal(t, game.Step, result.Move.Kind, "Search should not invent a capture")
		require.NoError(t, game.Validate(b, game.JaguarSide, result.Move))
	})

	t.Run("takes the capture", func(t *testing.T) {
		b := boardOf(pos(4, 3), pos(3, 3), pos(1, 1), pos(1, 2), pos(1, 4), pos(1, 5), pos(2, 1), pos(2, 5))

		for seed := uint64(0); seed < 5; seed++ {
			result, _ := NewMinimax(WithDepth(2), WithSeed(seed)).Search(b, game.JaguarSide)

			require.True(t, game.NewJump(pos(4, 3), pos(2, 3)).Equal(result.Move),
				"Seed %d: expected the capture, got %v", seed, result.Move)
		}
	})
}

func TestMinimaxDogs(t *testing.T) {
	t.Run("moves the threatened dog aside", func(t *testing.T) {
		b := boardOf(pos(5, 3), pos(4, 3), pos(2, 3), pos(1, 1), pos(1, 2), pos(1, 4), pos(1, 5), pos(2, 1))

		for _, depth := range []int{2, 4} {
			result, _ := NewMinimax(WithDepth(depth), WithSeed(2)).Search(b, game.DogSide)

			require.True(t, result.HasMove)
			require.Equal(t, pos(4, 3), result.Move.From(), "Depth %d moved %v", depth, result.Move)
			require.Equal(t, 4, result.Move.To().Row)
			require.Less(t, result.Value, 0.0, "Dogs should expect a good position")
		}
	})

	t.Run("history makes repeating a position costly", func(t *testing.T) {
		b := game.NewBoard()
		history := game.NewHistory(10)
		m := NewMinimax(WithDepth(0), WithHistory(history))

		before, _ := m.Search(b, game.JaguarSide)
		history.Add(b.Key())
		after, _ := m.Search(b, game.JaguarSide)

		require.InDelta(t, before.Value-1000000, after.Value, 40, "One repetition should cost a million")
	})
}

func TestMinimaxDeterminism(t *testing.T) {
	b := game.NewBoard().Apply(game.NewStep(pos(3, 3), pos(4, 3)))

	first, _ := NewMinimax(WithDepth(3), WithSeed(11)).Search(b, game.DogSide)
	second, _ := NewMinimax(WithDepth(3), WithSeed(11)).Search(b, game.DogSide)

	require.Equal(t, first.Value, second.Value)
	require.True(t, first.Move.Equal(second.Move), "Same seed should give the same move")
}

func TestMinimaxMetrics(t *testing.T) {
	result, metric := NewMinimax(WithDepth(2), WithSeed(1), WithMetrics()).Search(game.NewBoard(), game.JaguarSide)

	require.Equal(t, 2, metric.Depth)
	require.Equal(t, result.Value, metric.Value)
	require.Greater(t, metric.Nodes, metric.Leaves, "Inner nodes should be counted")
	require.Positive(t, metric.Leaves)
}
