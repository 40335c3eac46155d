package engine

import (
	"fmt"

	fm "ferrous-engine/ferrousmg"
)

type move struct {
	move  fm.Move
	score uint16
}
type moveList struct {
	moves []move
	// sorted lists are already in final order and skip orderNextMove.
	sorted bool
}

// OrderingMode selects how moves are arranged before they are searched.
type OrderingMode int

const (
	// OrderHeuristic scores promotions, captures (victim/attacker), killers
	// and table improvements, then picks the best remaining move each step.
	OrderHeuristic OrderingMode = iota
	// OrderCapturesFirst keeps generation order but moves captures ahead.
	OrderCapturesFirst
)

func (o OrderingMode) String() string {
	if o == OrderCapturesFirst {
		return "captures"
	}
	return "heuristic"
}

// ParseOrdering reads "heuristic" or "captures".
func ParseOrdering(s string) (OrderingMode, error) {
	switch s {
	case "heuristic":
		return OrderHeuristic, nil
	case "captures":
		return OrderCapturesFirst, nil
	}
	return OrderHeuristic, fmt.Errorf("unknown ordering %q", s)
}

// Offsets keep each class of move above the next; a capture scores at
// most 34 above its offset. Victim tiers are 7 apart so the attacker term
// plus the improvement bonus never reaches the next victim.
var promotionOffset uint16 = 20000
var captureOffset uint16 = 15000
var killerOffset uint16 = 2000

// Victim and attacker rank, pawn lowest.
func orderRank(p fm.Piece) uint16 { return uint16(p.Type()) - 1 }

// Ordering the moves one at a time, at index given
func orderNextMove(currIndex int, moves *moveList) {
	bestIndex := currIndex
	bestScore := moves.moves[bestIndex].score

	for index := bestIndex + 1; index < len(moves.moves); index++ {
		if moves.moves[index].score > bestScore {
			bestIndex = index
			bestScore = moves.moves[index].score
		}
	}

	moves.moves[currIndex], moves.moves[bestIndex] = moves.moves[bestIndex], moves.moves[currIndex]
}

// pick returns the move to search at index i.
func (ml *moveList) pick(i int) fm.Move {
	if !ml.sorted {
		orderNextMove(i, ml)
	}
	return ml.moves[i].move
}

// scoreMove rates a move for OrderHeuristic.
func scoreMove(m fm.Move, ply int, killers *KillerTable) uint16 {
	var score uint16
	switch {
	case m.IsPromotion():
		score = promotionOffset + uint16(PieceValue[m.PromotionPieceType()]/10)
	case m.IsCapture():
		score = captureOffset + orderRank(m.CapturedPiece())*7 + (5 - orderRank(m.MovedPiece()))
	case killers.IsKiller(m, ply):
		score = killerOffset
	}
	if improves(m) {
		score++
	}
	return score
}

// fillMoveList loads moves into ml in the order the given mode wants.
func fillMoveList(ml *moveList, moves []fm.Move, mode OrderingMode, ply int, killers *KillerTable) {
	ml.moves = ml.moves[:0]
	if mode == OrderCapturesFirst {
		for _, m := range moves {
			if m.IsCapture() {
				ml.moves = append(ml.moves, move{move: m, score: 1})
			}
		}
		for _, m := range moves {
			if !m.IsCapture() {
				ml.moves = append(ml.moves, move{move: m})
			}
		}
		ml.sorted = true
		return
	}
	for _, m := range moves {
		ml.moves = append(ml.moves, move{move: m, score: scoreMove(m, ply, killers)})
	}
	ml.sorted = false
}
