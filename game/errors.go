package game

import "errors"

var (
	ErrNoBoard     = errors.New("message carries no board")
	ErrNotOurTurn  = errors.New("message is for the other side")
	ErrBadMove     = errors.New("illegal move")
	ErrBadCommand  = errors.New("malformed move command")
	ErrGameOver    = errors.New("game is over")
	ErrWrongPlayer = errors.New("side is not to move")
)
