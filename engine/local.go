package engine

import (
	"fmt"
	"jaguar/experiments/metrics"
	"jaguar/game"
	"jaguar/gamemaster"
	"jaguar/searcher/agent"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// referee is the part of the game master's engine a local game drives.
type referee interface {
	Init() (game.Board, gamemaster.UpdateGetter)
	Play(side game.Side, move game.Move) error
	Board() game.Board
	ToMove() game.Side
	Turns() int
	Winner() game.Side
	GameOver() bool
}

// localGame plays two in-process agents against each other.
type localGame struct {
	referee referee
	agents  map[game.Side]agent.Agent
}

// LocalEngine sets up a game between the jaguar and dogs agents. The options configure the
// referee.
func LocalEngine(jaguar, dogs agent.Agent, options ...gamemaster.Option) Engine {
	if jaguar == nil || dogs == nil {
		panic("need an agent for both sides")
	}
	return &localGame{
		referee: gamemaster.NewLocalEngine(options...),
		agents: map[game.Side]agent.Agent{
			game.JaguarSide: jaguar,
			game.DogSide:    dogs,
		},
	}
}

// Run executes the entire game loop until the referee ends the game.
func (e *localGame) Run() (game.Side, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{ID: uuid.NewString(), StartTime: time.Now()}
	board, getUpdate := e.referee.Init()

	log.Debug().Str("game", gameMetric.ID).Msgf("%v is starting", e.referee.ToMove())

	var moveMetrics []metrics.MoveMetric
	for !e.referee.GameOver() {
		side := e.referee.ToMove()
		a := e.agents[side]

		move, ok, searchMetric := a.FindMove(board, side)
		if !ok {
			move = game.Move{}
		}
		err := e.referee.Play(side, move)
		if err != nil {
			panic(fmt.Sprintf("agent for %v played %v: %v", side, move, err))
		}
		if ok {
			a.Played(board)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         e.referee.Turns(),
			Side:         side,
			Move:         strings.TrimSpace(move.Encode(side)),
			SearchMetric: searchMetric,
		})

		if _, _, next, updated := getUpdate(); updated {
			board = next
		} else {
			board = e.referee.Board()
		}
	}

	_, dogs := e.referee.Board().Count()
	gameMetric.Winner = e.referee.Winner()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = e.referee.Turns()
	gameMetric.DogsLeft = dogs

	log.Debug().Str("game", gameMetric.ID).Msgf("winner %v after %d turns", gameMetric.Winner, gameMetric.TotalMoves)
	return gameMetric.Winner, gameMetric, moveMetrics
}
