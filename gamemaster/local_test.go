package gamemaster

import (
	"jaguar/game"
	"testing"

	"github.com/stretchr/testify/require"
)

/*
Test cases:
- Init starts from the opening with the jaguar to move and no update
- Valid moves alternate sides and publish updates
- Moves out of turn, illegal moves and illegal passes are rejected
- Turn limit ends the game as a draw, closing the updates
- A trapped jaguar ends the game before any move
- Forfeit hands the game to the opponent
*/

func pos(row, col int) game.Position {
	return game.Position{Row: row, Col: col}
}

func TestLocalEngineInit(t *testing.T) {
	engine := NewLocalEngine()
	board, getUpdate := engine.Init()

	require.Equal(t, game.NewBoard(), board, "Game should start from the opening")
	require.Equal(t, game.JaguarSide, engine.ToMove())
	require.False(t, engine.GameOver())

	_, _, _, ok := getUpdate()
	require.False(t, ok, "No update before the first move")
}

func TestLocalEnginePlay(t *testing.T) {
	t.Run("valid moves", func(t *testing.T) {
		engine := NewLocalEngine()
		_, getUpdate := engine.Init()

		err := engine.Play(game.JaguarSide, game.NewStep(pos(3, 3), pos(4, 3)))
		require.NoError(t, err)
		require.Equal(t, game.DogSide, engine.ToMove())
		require.Equal(t, 1, engine.Turns())

		side, move, board, ok := getUpdate()
		require.True(t, ok)
		require.Equal(t, game.JaguarSide, side)
		require.Equal(t, "o m 3 3 4 3\n", move.Encode(side))
		require.Equal(t, game.Jaguar, board.At(pos(4, 3)))
		require.Equal(t, board, engine.Board())

		err = engine.Play(game.DogSide, game.NewStep(pos(3, 1), pos(4, 1)))
		require.NoError(t, err)
		require.Equal(t, game.JaguarSide, engine.ToMove())
	})

	t.Run("wrong player", func(t *testing.T) {
		engine := NewLocalEngine()
		engine.Init()

		err := engine.Play(game.DogSide, game.NewStep(pos(3, 1), pos(4, 1)))
		require.ErrorIs(t, err, game.ErrWrongPlayer)
		require.Zero(t, engine.Turns())
	})

	t.Run("illegal move", func(t *testing.T) {
		engine := NewLocalEngine()
		engine.Init()

		err := engine.Play(game.JaguarSide, game.NewStep(pos(3, 3), pos(5, 3)))
		require.ErrorIs(t, err, game.ErrBadMove)

		err = engine.Play(game.JaguarSide, game.Move{})
		require.ErrorIs(t, err, game.ErrBadMove, "Passing with moves available is illegal")
		require.Equal(t, game.NewBoard(), engine.Board(), "Rejected moves should not change the board")
	})
}

func TestLocalEngineGameOver(t *testing.T) {
	t.Run("turn limit", func(t *testing.T) {
		engine := NewLocalEngine(WithMaxTurns(2))
		_, getUpdate := engine.Init()

		require.NoError(t, engine.Play(game.JaguarSide, game.NewStep(pos(3, 3), pos(4, 3))))
		require.NoError(t, engine.Play(game.DogSide, game.NewStep(pos(2, 3), pos(3, 3))))

		require.True(t, engine.GameOver())
		require.Zero(t, engine.Winner(), "Turn limit should be a draw")
		require.ErrorIs(t, engine.Play(game.JaguarSide, game.NewStep(pos(4, 3), pos(5, 3))), game.ErrGameOver)

		_, _, _, ok := getUpdate()
		require.True(t, ok, "Last update should still be delivered")
		_, _, _, ok = getUpdate()
		require.False(t, ok)
	})

	t.Run("trapped jaguar", func(t *testing.T) {
		board := game.EmptyBoard().With(pos(1, 1), game.Jaguar)
		for _, p := range []game.Position{
			pos(1, 2), pos(1, 3), pos(2, 1), pos(2, 2), pos(3, 1), pos(3, 3),
			pos(6, 2), pos(6, 4), pos(7, 1), pos(7, 3), pos(7, 5),
		} {
			board = board.With(p, game.Dog)
		}
		engine := NewLocalEngine(WithBoard(board))
		engine.Init()

		require.True(t, engine.GameOver())
		require.Equal(t, game.DogSide, engine.Winner())
	})

	t.Run("forfeit", func(t *testing.T) {
		engine := NewLocalEngine(WithStartingSide(game.DogSide))
		engine.Init()
		require.Equal(t, game.DogSide, engine.ToMove())

		engine.Forfeit(game.DogSide)

		require.True(t, engine.GameOver())
		require.Equal(t, game.JaguarSide, engine.Winner())
		require.NotPanics(t, func() { engine.Forfeit(game.JaguarSide) }, "Forfeit after the end is a no-op")
		require.Equal(t, game.JaguarSide, engine.Winner())
	})
}
