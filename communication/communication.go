package communication

import (
	"context"
	"fmt"
	"jaguar/game"
	"strings"
)

// Transport carries text messages between a player and the game controller. Each call to
// Receive returns one whole message.
type Transport interface {
	Receive(ctx context.Context) (string, error)
	Send(ctx context.Context, msg string) error
	Close() error
}

// Message is what the controller sends a player before each turn.
type Message struct {
	Side     game.Side // Side to move
	LastMove string    // Command of the previous turn, if any
	Board    game.Board
}

// ParseMessage reads a controller message: the first non-empty line starts with the side to
// move, an optional second line holds the last command and the board lines follow.
func ParseMessage(raw string) (Message, error) {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return Message{}, fmt.Errorf("empty message: %w", game.ErrNoBoard)
	}

	msg := Message{Side: game.Side(lines[0][0])}
	if len(lines) > 1 && strings.Contains(lines[1], " ") && len(strings.Fields(lines[1])) >= 2 {
		msg.LastMove = lines[1]
	}
	board, err := game.ParseBoard(strings.Split(raw, "\n"))
	if err != nil {
		return msg, fmt.Errorf("failed to parse message board: %w", err)
	}
	msg.Board = board
	return msg, nil
}

// FormatMessage renders the message ParseMessage reads.
func FormatMessage(side game.Side, lastMove string, board game.Board) string {
	var sb strings.Builder
	sb.WriteString(side.String())
	sb.WriteByte('\n')
	if lastMove = strings.TrimSpace(lastMove); lastMove != "" {
		sb.WriteString(lastMove)
		sb.WriteByte('\n')
	}
	sb.WriteString(board.String())
	return sb.String()
}
