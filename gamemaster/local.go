package gamemaster

import (
	"fmt"
	"jaguar/game"
	"jaguar/meta"
)

// UpdateGetter returns the latest played move and the board after it, or ok=false when
// no move was played since the last call.
type UpdateGetter func() (side game.Side, move game.Move, board game.Board, ok bool)

type Engine interface {
	Init() (game.Board, UpdateGetter)
	Play(side game.Side, move game.Move) error
}

type update struct {
	side  game.Side
	move  game.Move
	board game.Board
}

type Option func(e *localEngine)

// WithBoard starts the game from board instead of the opening position.
func WithBoard(board game.Board) Option {
	return func(e *localEngine) {
		e.start = board
	}
}

func WithStartingSide(side game.Side) Option {
	return func(e *localEngine) {
		if side.Valid() {
			e.first = side
		}
	}
}

func WithMaxTurns(turns int) Option {
	return func(e *localEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// localEngine referees one game: it checks every move against the rules, applies it and
// decides when the game ends. The jaguar wins once at most meta.JAGUAR_WIN_DOGS dogs are
// left, the dogs win when the jaguar cannot move, and the game is drawn after maxTurns.
type localEngine struct {
	start    game.Board
	first    game.Side
	maxTurns int

	board    game.Board
	toMove   game.Side
	turns    int
	winner   game.Side
	gameOver bool
	updateCh chan update
}

func NewLocalEngine(options ...Option) *localEngine {
	e := &localEngine{ // Default values
		start:    game.NewBoard(),
		first:    game.JaguarSide,
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *localEngine) Init() (game.Board, UpdateGetter) {
	e.board = e.start
	e.toMove = e.first
	e.turns = 0
	e.winner = 0
	e.gameOver = false
	e.updateCh = make(chan update, 1)
	e.checkGameOver()

	return e.board, func() (game.Side, game.Move, game.Board, bool) {
		select {
		case u, ok := <-e.updateCh:
			if !ok { // Game over
				return 0, game.Move{}, game.Board{}, false
			}
			return u.side, u.move, u.board, true
		default:
			// No updates yet
			return 0, game.Move{}, game.Board{}, false
		}
	}
}

// Play applies move for side. A zero move is a pass, legal only without any other move.
func (e *localEngine) Play(side game.Side, move game.Move) error {
	if e.gameOver {
		return game.ErrGameOver
	}
	if side != e.toMove {
		return fmt.Errorf("%w: %v played, %v to move", game.ErrWrongPlayer, side, e.toMove)
	}
	if err := game.Validate(e.board, side, move); err != nil {
		return err
	}

	e.board = e.board.Apply(move)
	e.toMove = side.Opponent()
	e.turns++
	e.checkGameOver()

	// Drop the previous update if nobody read it
	select {
	case <-e.updateCh:
	default:
	}
	e.updateCh <- update{side: side, move: move, board: e.board}
	if e.gameOver {
		close(e.updateCh)
	}
	return nil
}

// Forfeit ends the game in favour of side's opponent.
func (e *localEngine) Forfeit(side game.Side) {
	if e.gameOver {
		return
	}
	e.winner = side.Opponent()
	e.gameOver = true
	close(e.updateCh)
}

func (e *localEngine) checkGameOver() {
	_, dogs := e.board.Count()
	switch {
	case dogs <= meta.JAGUAR_WIN_DOGS:
		e.winner = game.JaguarSide
	case len(game.JaguarMoves(e.board)) == 0:
		e.winner = game.DogSide
	case e.turns >= e.maxTurns:
	default:
		return
	}
	e.gameOver = true
}

func (e *localEngine) Board() game.Board {
	return e.board
}

func (e *localEngine) ToMove() game.Side {
	return e.toMove
}

func (e *localEngine) Turns() int {
	return e.turns
}

// Winner is zero while the game runs and after a draw.
func (e *localEngine) Winner() game.Side {
	return e.winner
}

func (e *localEngine) GameOver() bool {
	return e.gameOver
}
