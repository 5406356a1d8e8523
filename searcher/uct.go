package searcher

import (
	"jaguar/game"
	"jaguar/meta"
	"math"
)

func uct(rewards, visits, c2LnN float64) float64 {
	if visits == 0 { // Prevent division by zero
		panic("cannot compute UCT: 0 visits")
	}
	return rewards/visits + math.Sqrt(c2LnN/visits)
}

// outcome reports the winner of a decided game. The jaguar wins once few enough dogs are
// left and the dogs win when the jaguar cannot move.
func outcome(board game.Board) (game.Side, bool) {
	if _, dogs := board.Count(); dogs <= meta.JAGUAR_WIN_DOGS {
		return game.JaguarSide, true
	}
	if len(game.JaguarMoves(board)) == 0 {
		return game.DogSide, true
	}
	return 0, false
}

// jaguarChance squashes an evaluator score into the jaguar's chance of winning.
func jaguarChance(score float64) float64 {
	return 1 / (1 + math.Exp(-score/EVAL_SCALE))
}

// rewarder splits a playout result between the sides given the jaguar's reward.
func rewarder(jaguar float64) func(game.Side) float64 {
	return func(side game.Side) float64 {
		if side == game.JaguarSide {
			return jaguar
		}
		return WIN + LOSS - jaguar
	}
}
