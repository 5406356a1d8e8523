package game

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// LegalMoves returns every move side can play on b. An empty result means side must pass.
func LegalMoves(b Board, side Side) []Move {
	if side == DogSide {
		return DogMoves(b)
	}
	return JaguarMoves(b)
}

// DogMoves lists one-square steps of every dog along its five forward or sideways lines.
func DogMoves(b Board) []Move {
	var moves []Move
	for _, from := range b.Find(Dog) {
		for _, d := range dogSteps {
			to := from.add(d)
			if !to.Valid() || b.At(to) != Empty {
				continue
			}
			if MovePossible(Step, from, to) {
				moves = append(moves, NewStep(from, to))
			}
		}
	}
	checkMoves(moves)
	return moves
}

// JaguarMoves lists the jaguar's steps followed by its maximal capture chains.
func JaguarMoves(b Board) []Move {
	from, ok := b.JaguarAt()
	if !ok {
		return nil
	}
	var moves []Move
	for _, d := range jaguarSteps {
		to := from.add(d)
		if !to.Valid() || b.At(to) != Empty {
			continue
		}
		if MovePossible(Step, from, to) {
			moves = append(moves, NewStep(from, to))
		}
	}
	moves = append(moves, Jumps(b)...)
	checkMoves(moves)
	return moves
}

// Jumps lists the maximal capture chains available to the jaguar. A chain that can be
// extended is only reported through its extensions.
func Jumps(b Board) []Move {
	from, ok := b.JaguarAt()
	if !ok {
		return nil
	}
	var chains []Move
	for _, path := range chainsFrom(b, from, []Position{from}, nil) {
		chains = append(chains, Move{Kind: Jump, Path: path})
	}
	return chains
}

func chainsFrom(b Board, from Position, path, captured []Position) [][]Position {
	var chains [][]Position
	extend := func(d direction) {
		to := from.add(d)
		mid := from.add(direction{d.dr / 2, d.dc / 2})
		if !to.Valid() || !mid.Valid() {
			return
		}
		if b.At(mid) != Dog || b.At(to) != Empty {
			return
		}
		if lo.Contains(captured, mid) || lo.Contains(captured, to) {
			return
		}
		if !MovePossible(Jump, from, to) {
			return
		}

		next := b
		next.set(mid, Empty)
		next.set(from, Empty)
		next.set(to, Jaguar)
		nextPath := append(path[:len(path):len(path)], to)
		nextCaptured := append(captured[:len(captured):len(captured)], mid)

		if more := chainsFrom(next, to, nextPath, nextCaptured); len(more) > 0 {
			chains = append(chains, more...)
		} else {
			chains = append(chains, nextPath)
		}
	}

	for _, d := range jaguarJumps {
		extend(d)
	}
	if from.Row == Rows {
		for _, d := range bottomJumps {
			extend(d)
		}
	}
	return chains
}

// checkMoves panics when the generator produced a move the board lines do not allow.
func checkMoves(moves []Move) {
	for _, m := range moves {
		for i := 0; i+1 < len(m.Path); i++ {
			if !MovePossible(m.Kind, m.Path[i], m.Path[i+1]) {
				panic(fmt.Sprintf("generated illegal move %v", m))
			}
		}
	}
}

// Validate checks that m is one of side's legal moves on b.
func Validate(b Board, side Side, m Move) error {
	if m.IsZero() {
		if len(LegalMoves(b, side)) > 0 {
			return fmt.Errorf("%w: %v passed with moves available", ErrBadMove, side)
		}
		return nil
	}
	if !slices.ContainsFunc(LegalMoves(b, side), m.Equal) {
		return fmt.Errorf("%w: %v for %v", ErrBadMove, m, side)
	}
	return nil
}
