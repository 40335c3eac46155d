package engine

import (
	"math/bits"

	fm "ferrous-engine/ferrousmg"
)

// Board indexing for evaluation: FlipView[sq] mirrors sq across the
// horizontal axis so Black reads the White-oriented tables.
var FlipView = [64]int{
	56, 57, 58, 59, 60, 61, 62, 63,
	48, 49, 50, 51, 52, 53, 54, 55,
	40, 41, 42, 43, 44, 45, 46, 47,
	32, 33, 34, 35, 36, 37, 38, 39,
	24, 25, 26, 27, 28, 29, 30, 31,
	16, 17, 18, 19, 20, 21, 22, 23,
	8, 9, 10, 11, 12, 13, 14, 15,
	0, 1, 2, 3, 4, 5, 6, 7,
}

// Piece values in centipawns, indexed by piece type.
var PieceValue = [7]int32{
	fm.PieceTypePawn:   100,
	fm.PieceTypeKnight: 250,
	fm.PieceTypeBishop: 300,
	fm.PieceTypeRook:   500,
	fm.PieceTypeQueen:  900,
	fm.PieceTypeKing:   0,
}

// Piece-square tables from White's point of view, a1 first. The king
// entry is the opening/middlegame table.
var PSQT = [7][64]int32{
	fm.PieceTypePawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		1, 1, 1, 0, 0, 1, 1, 1,
		-1, 0, 2, 1, 1, -7, 0, -1,
		1, -3, 4, 6, 6, 4, -5, 1,
		-1, 1, 3, 4, 4, 3, 1, -1,
		0, 2, 2, 3, 3, 2, 2, 0,
		6, 7, 7, 7, 7, 7, 7, 6,
		9, 10, 10, 10, 10, 10, 10, 9,
	},
	fm.PieceTypeKnight: {
		-10, -7, -5, -2, -2, -5, -7, -10,
		-7, -3, 2, 3, 3, 2, -3, -7,
		-4, 4, 5, 2, 2, 6, 4, -4,
		-3, 2, 4, 7, 7, 4, 2, -3,
		-3, 1, 2, 3, 3, 2, 1, -3,
		-4, 0, 4, 2, 2, 4, 0, -4,
		-7, -3, 1, 2, 2, 1, -3, -7,
		-10, -7, -5, -2, -2, -5, -7, -10,
	},
	fm.PieceTypeBishop: {
		-5, -10, -5, -3, -3, -5, -10, -5,
		-1, 7, 0, 2, 2, 0, 7, -1,
		2, 3, 2, 5, 5, 2, 3, 2,
		-2, 2, 5, 7, 7, 5, 2, -2,
		-2, 2, 4, 6, 6, 4, 2, -2,
		1, 0, -1, 3, 3, -1, 0, 1,
		-6, 5, -3, -1, -1, -3, 5, -6,
		-5, -10, -5, -4, -4, -5, -10, -5,
	},
	fm.PieceTypeRook: {
		1, -3, 2, 4, 4, 2, -3, 1,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 3, 3, 0, 0, 0,
		0, 0, 0, 3, 3, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		3, 4, 4, 4, 4, 4, 4, 3,
		3, 3, 3, 3, 3, 3, 3, 3,
	},
	fm.PieceTypeQueen: {
		0, 0, 0, 0, 0, 0, 0, 0,
		-8, -5, -2, 0, 0, -2, -5, -8,
		-8, -5, -2, 2, 2, -2, -5, -8,
		-10, -8, -2, 3, 3, -2, -8, -10,
		-10, -8, -2, 2, 2, -2, -8, -10,
		-8, -5, -2, 0, 0, -2, -5, -8,
		-5, -3, 0, 0, 0, 0, -3, -5,
		-5, -5, -5, -5, -5, -5, -5, -5,
	},
	fm.PieceTypeKing: {
		5, 10, -10, -5, -5, -10, 10, 5,
		-40, -50, -50, -50, -50, -50, -50, -40,
		-50, -40, -40, -30, -30, -40, -40, -50,
		-30, -25, -20, -15, -15, -20, -25, -30,
		-40, -35, -30, -25, -25, -30, -35, -40,
		-50, -45, -40, -35, -35, -40, -45, -50,
		-60, -55, -50, -45, -45, -50, -55, -60,
		-70, -65, -60, -30, -30, -60, -65, -70,
	},
}

// KingEndgamePSQT replaces the king entry of PSQT once IsEndgame holds.
var KingEndgamePSQT = [64]int32{
	-20, -15, -10, -5, -5, -10, -15, -20,
	-15, -10, -5, 0, 0, -5, -10, -15,
	-10, 20, 25, 30, 30, 25, 20, -10,
	0, 20, 30, 40, 40, 30, 20, 0,
	0, 20, 30, 40, 40, 30, 20, 0,
	-10, 20, 25, 30, 30, 25, 20, -10,
	-15, -10, -5, 0, 0, -5, -10, -15,
	-20, -15, -10, -5, -5, -10, -15, -20,
}

// improvements[color][pieceType][from] holds the destinations whose table
// value beats the value on from.
var improvements = func() (imp [2][7][64]uint64) {
	for pt := fm.PieceTypePawn; pt <= fm.PieceTypeKing; pt++ {
		for from := 0; from < 64; from++ {
			for to := 0; to < 64; to++ {
				if PSQT[pt][to] > PSQT[pt][from] {
					imp[fm.White][pt][from] |= 1 << to
				}
				if PSQT[pt][FlipView[to]] > PSQT[pt][FlipView[from]] {
					imp[fm.Black][pt][from] |= 1 << to
				}
			}
		}
	}
	return imp
}()

// improves reports whether m lands its piece on a better table square.
func improves(m fm.Move) bool {
	p := m.MovedPiece()
	return improvements[p.Color()][p.Type()][m.From()]&(1<<uint(m.To())) != 0
}

// IsEndgame applies the queens-off rule: true when neither side has a
// queen, or every side holding a queen has no rook and at most one minor.
func IsEndgame(b *fm.Board) bool {
	for c := fm.White; c <= fm.Black; c++ {
		if b.Pieces(c, fm.PieceTypeQueen) == 0 {
			continue
		}
		minors := bits.OnesCount64(b.Pieces(c, fm.PieceTypeKnight) | b.Pieces(c, fm.PieceTypeBishop))
		if b.Pieces(c, fm.PieceTypeRook) != 0 || minors > 1 {
			return false
		}
	}
	return true
}

// Evaluate scores the position from White's point of view. A side to move
// that is checkmated scores as a loss of MateScore, a stalemate as DrawScore.
func Evaluate(b *fm.Board) int32 {
	var buf [256]fm.Move
	if len(b.GenerateMovesInto(buf[:0])) == 0 {
		if !b.Check().InCheck() {
			return DrawScore
		}
		if b.SideToMove() == fm.White {
			return -MateScore
		}
		return MateScore
	}
	return material(b)
}

// material sums piece values and table bonuses, White minus Black.
func material(b *fm.Board) int32 {
	endgame := IsEndgame(b)
	var score int32
	for pt := fm.PieceTypePawn; pt <= fm.PieceTypeKing; pt++ {
		table := &PSQT[pt]
		if pt == fm.PieceTypeKing && endgame {
			table = &KingEndgamePSQT
		}
		for x := b.Pieces(fm.White, pt); x != 0; x &= x - 1 {
			score += PieceValue[pt] + table[bits.TrailingZeros64(x)]
		}
		for x := b.Pieces(fm.Black, pt); x != 0; x &= x - 1 {
			score -= PieceValue[pt] + table[FlipView[bits.TrailingZeros64(x)]]
		}
	}
	return score
}
