package gamemaster

import (
	"context"
	"errors"
	"fmt"
	"jaguar/communication"
	"jaguar/game"
	"strings"

	"github.com/rs/zerolog/log"
)

// GameMaster hosts a game between two remote players. It sends the side to move a message
// with the board and the last command played, then waits for that side's command.
type GameMaster struct {
	engine     *localEngine
	transports map[game.Side]communication.Transport
}

// NewGameMaster initializes a new GameMaster. jaguar and dogs carry the messages of each
// side's player.
func NewGameMaster(engine *localEngine, jaguar, dogs communication.Transport) *GameMaster {
	return &GameMaster{
		engine: engine,
		transports: map[game.Side]communication.Transport{
			game.JaguarSide: jaguar,
			game.DogSide:    dogs,
		},
	}
}

// RunGame plays until the game is over and returns the winner, zero for a draw. A side
// sending a malformed or illegal command forfeits.
func (gm *GameMaster) RunGame(ctx context.Context) (game.Side, error) {
	board, _ := gm.engine.Init()
	last := ""
	for !gm.engine.GameOver() {
		side := gm.engine.ToMove()
		transport := gm.transports[side]

		err := transport.Send(ctx, communication.FormatMessage(side, last, board))
		if err != nil {
			return 0, fmt.Errorf("failed to send board to %v: %w", side, err)
		}
		raw, err := transport.Receive(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to receive command from %v: %w", side, err)
		}

		err = gm.play(side, raw)
		if errors.Is(err, game.ErrBadCommand) || errors.Is(err, game.ErrBadMove) || errors.Is(err, game.ErrWrongPlayer) {
			log.Warn().Msgf("%v forfeits: %v", side, err)
			gm.engine.Forfeit(side)
			break
		}
		if err != nil {
			return 0, err
		}
		board = gm.engine.Board()
		last = strings.TrimSpace(raw)
	}

	log.Info().Msgf("game over after %d turns, winner: %v", gm.engine.Turns(), gm.engine.Winner())
	return gm.engine.Winner(), nil
}

func (gm *GameMaster) play(side game.Side, raw string) error {
	played, move, err := game.ParseMove(raw)
	if err != nil {
		return err
	}
	if played != side {
		return fmt.Errorf("%w: got a command for %v", game.ErrWrongPlayer, played)
	}
	return gm.engine.Play(side, move)
}
