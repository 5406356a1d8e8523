package searcher

import (
	"jaguar/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSafetyKeyCompare(t *testing.T) {
	tests := []struct {
		name        string
		safer, less SafetyKey
	}{
		{"fewer repetitions beat every other field", SafetyKey{DiagonalThreat: true}, SafetyKey{Repetitions: 1}},
		{"diagonal threat before any threat", SafetyKey{Threatened: true}, SafetyKey{DiagonalThreat: true}},
		{"unthreatened first", SafetyKey{Threats: 0, Exposure: 6}, SafetyKey{Threatened: true}},
		{"fewer threats", SafetyKey{Threats: 1, Exposure: 9}, SafetyKey{Threats: 2}},
		{"less exposure", SafetyKey{Exposure: 1, DiagonalRisk: 15}, SafetyKey{Exposure: 2}},
		{"lower diagonal risk", SafetyKey{DiagonalRisk: 0.5}, SafetyKey{DiagonalRisk: 2}},
		{"more diagonal support", SafetyKey{DiagonalSupport: 2}, SafetyKey{DiagonalSupport: 1, Support: 4}},
		{"more support", SafetyKey{Support: 3, Isolated: true}, SafetyKey{Support: 1}},
		{"not isolated", SafetyKey{Backward: true}, SafetyKey{Isolated: true}},
		{"forward before backward", SafetyKey{GroupDistance: 5}, SafetyKey{Backward: true}},
		{"closer to the pack", SafetyKey{GroupDistance: 1}, SafetyKey{GroupDistance: 1.5}},
		{"diagonal chain preferred", SafetyKey{DiagonalChain: true, RowBonus: 0}, SafetyKey{RowBonus: -1}},
		{"row bonus", SafetyKey{RowBonus: -1, Jitter: 0.009}, SafetyKey{}},
		{"jitter breaks ties", SafetyKey{Jitter: 0.001}, SafetyKey{Jitter: 0.002}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Negative(t, tt.safer.Compare(tt.less))
			require.Positive(t, tt.less.Compare(tt.safer))
		})
	}

	t.Run("equal keys", func(t *testing.T) {
		k := SafetyKey{Threats: 1, Support: 2, GroupDistance: 1.25}

		require.Zero(t, k.Compare(k))
	})
}

func TestNewSafetyKey(t *testing.T) {
	// Jaguar below a dog with an open square behind it
	b := boardOf(pos(5, 3), pos(4, 3), pos(2, 3), pos(1, 1), pos(1, 2), pos(1, 4), pos(1, 5), pos(2, 1))

	t.Run("dog stepping into a diagonal capture", func(t *testing.T) {
		k := NewSafetyKey(b, game.NewStep(pos(1, 1), pos(2, 2)), nil, nil)

		require.True(t, k.Threatened)
		require.True(t, k.DiagonalThreat, "Jaguar reaches (1,1) over (2,2) diagonally")
		require.Positive(t, k.Threats)
		require.False(t, k.Backward)
		require.Zero(t, k.Jitter, "No random source means no jitter")
	})

	t.Run("dog blocking the landing square", func(t *testing.T) {
		k := NewSafetyKey(b, game.NewStep(pos(2, 3), pos(3, 3)), nil, nil)

		require.False(t, k.Threatened)
		require.Zero(t, k.Threats)
		require.Equal(t, -1, k.RowBonus, "Row 3 earns the bonus")
		require.Equal(t, 1, k.Support, "Only the dog on (4,3) touches (3,3)")
	})

	t.Run("repetitions on the search path", func(t *testing.T) {
		move := game.NewStep(pos(2, 3), pos(3, 3))
		key := b.Apply(move).Key()

		k := NewSafetyKey(b, move, []string{key, "other", key}, nil)

		require.Equal(t, 2, k.Repetitions)
	})

	t.Run("backward step", func(t *testing.T) {
		k := NewSafetyKey(b, game.NewStep(pos(4, 3), pos(3, 3)), nil, nil)

		require.True(t, k.Backward)
	})

	t.Run("no jaguar", func(t *testing.T) {
		board := game.EmptyBoard().With(pos(2, 2), game.Dog)

		k := NewSafetyKey(board, game.NewStep(pos(2, 2), pos(3, 2)), nil, nil)

		require.Zero(t, k.Exposure, "Missing jaguar leaves the dog protected")
		require.False(t, k.Threatened)
		require.True(t, k.Isolated)
	})
}

func TestOrderDogMoves(t *testing.T) {
	b := boardOf(pos(5, 3), pos(4, 3), pos(2, 3), pos(1, 1), pos(1, 2), pos(1, 4), pos(1, 5), pos(2, 1))
	moves := game.DogMoves(b)

	ordered := orderDogMoves(b, moves, nil, nil)

	require.ElementsMatch(t, moves, ordered, "Ordering should keep every move")
	for i := 0; i+1 < len(ordered); i++ {
		prev := NewSafetyKey(b, ordered[i], nil, nil)
		next := NewSafetyKey(b, ordered[i+1], nil, nil)
		require.LessOrEqual(t, prev.Compare(next), 0, "%v should not come before %v", ordered[i], ordered[i+1])
	}
	require.False(t, NewSafetyKey(b, ordered[0], nil, nil).Threatened, "Safest move should not hang a dog")
}
