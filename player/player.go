package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"jaguar/communication"
	"jaguar/game"
	"jaguar/searcher/agent"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Player answers the controller's messages for one side.
type Player struct {
	Side      game.Side
	Transport communication.Transport
	Agent     agent.Agent
	session   string
	turns     int
}

// NewPlayer creates a new Player instance.
func NewPlayer(side game.Side, transport communication.Transport, a agent.Agent) *Player {
	if !side.Valid() {
		panic(fmt.Sprintf("invalid side %q", byte(side)))
	}
	return &Player{
		Side:      side,
		Transport: transport,
		Agent:     a,
		session:   uuid.NewString(),
	}
}

func (p *Player) Session() string {
	return p.session
}

// Run starts the player's turn loop. It returns nil once ctx is done or the controller
// closes the stream, and the error of a failing transport otherwise.
func (p *Player) Run(ctx context.Context) error {
	log.Info().Str("session", p.session).Msgf("playing %v", p.Side)
	for {
		raw, err := p.Transport.Receive(ctx)
		if ctx.Err() != nil || errors.Is(err, io.EOF) {
			log.Info().Str("session", p.session).Msgf("stopping after %d turns", p.turns)
			return nil
		}
		if err != nil {
			return err
		}

		cmd, err := p.TakeTurn(raw)
		if errors.Is(err, game.ErrNotOurTurn) {
			continue
		}
		if err != nil {
			log.Warn().Str("session", p.session).Msgf("skipping message: %v", err)
			continue
		}

		if err := p.Transport.Send(ctx, cmd); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// TakeTurn decides the command answering a controller message.
func (p *Player) TakeTurn(raw string) (string, error) {
	msg, err := communication.ParseMessage(raw)
	if err != nil {
		return "", err
	}
	if msg.Side != p.Side {
		return "", fmt.Errorf("%w: %v to move", game.ErrNotOurTurn, msg.Side)
	}
	p.turns++

	move, ok, metric := p.Agent.FindMove(msg.Board, p.Side)
	if !ok {
		log.Info().Str("session", p.session).Int("turn", p.turns).Msg("no move, passing")
		return game.EncodePass(p.Side), nil
	}
	p.Agent.Played(msg.Board)

	log.Info().
		Str("session", p.session).
		Int("turn", p.turns).
		Int("depth", metric.Depth).
		Int("nodes", metric.Nodes).
		Float64("value", metric.Value).
		Dur("duration", metric.Duration).
		Msgf("playing %v", move)
	return move.Encode(p.Side), nil
}
