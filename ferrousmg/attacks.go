package ferrousmg

import (
	"fmt"
	"math/bits"
	"sync"
)

const (
	rookSlots   = 4096
	bishopSlots = 512
)

// AttackTables holds every precomputed table the move generator reads:
// short range attacks, magic sliding tables, between/line masks and the
// zobrist keys. Build it once with Tables and share it freely.
type AttackTables struct {
	knight [64]uint64
	king   [64]uint64
	// pawn[color][sq] gives the squares a pawn of color attacks from sq.
	pawn [2][64]uint64

	rookMask   [64]uint64
	bishopMask [64]uint64
	// Flat slices, one fixed-size slot range per square.
	rook   []uint64
	bishop []uint64

	between [64][64]uint64
	line    [64][64]uint64

	keys zobristKeys
}

var sharedTables = sync.OnceValue(buildAttackTables)

// Tables returns the process wide attack tables, building them on first use.
func Tables() *AttackTables { return sharedTables() }

func buildAttackTables() *AttackTables {
	t := &AttackTables{
		rook:   make([]uint64, 64*rookSlots),
		bishop: make([]uint64, 64*bishopSlots),
	}
	t.initStepAttacks()
	t.initSliders()
	t.initLines()
	t.keys = newZobristKeys()
	return t
}

// initStepAttacks precomputes knight, king and pawn capture masks.
func (t *AttackTables) initStepAttacks() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8
		t.knight[sq] = offsetMask(rank, file, knightOffsets[:])
		t.king[sq] = offsetMask(rank, file, kingOffsets[:])
		t.pawn[White][sq] = offsetMask(rank, file, [][2]int{{1, -1}, {1, 1}})
		t.pawn[Black][sq] = offsetMask(rank, file, [][2]int{{-1, -1}, {-1, 1}})
	}
}

func offsetMask(rank, file int, offsets [][2]int) uint64 {
	var mask uint64
	for _, off := range offsets {
		rf := rank + off[0]
		ff := file + off[1]
		if rf >= 0 && rf < 8 && ff >= 0 && ff < 8 {
			mask |= uint64(1) << (rf*8 + ff)
		}
	}
	return mask
}

// initSliders builds the relevance masks and fills the magic tables from
// every blocker subset of each mask.
func (t *AttackTables) initSliders() {
	for sq := Square(0); sq < 64; sq++ {
		t.rookMask[sq] = RookMask(sq)
		t.bishopMask[sq] = BishopMask(sq)

		for _, occ := range BlockerSubsets(t.rookMask[sq]) {
			idx := int(sq)*rookSlots + int((occ*rookMagics[sq])>>rookShifts[sq])
			att := RookRayAttacks(sq, occ)
			if prev := t.rook[idx]; prev != 0 && prev != att {
				panic(fmt.Sprintf("ferrousmg: rook magic collision on %s", sq))
			}
			t.rook[idx] = att
		}
		for _, occ := range BlockerSubsets(t.bishopMask[sq]) {
			idx := int(sq)*bishopSlots + int((occ*bishopMagics[sq])>>bishopShifts[sq])
			att := BishopRayAttacks(sq, occ)
			if prev := t.bishop[idx]; prev != 0 && prev != att {
				panic(fmt.Sprintf("ferrousmg: bishop magic collision on %s", sq))
			}
			t.bishop[idx] = att
		}
	}
}

// initLines fills between and line masks for every aligned pair.
func (t *AttackTables) initLines() {
	for a := Square(0); a < 64; a++ {
		for b := Square(0); b < 64; b++ {
			if a == b {
				continue
			}
			ends := bb(a) | bb(b)
			switch {
			case t.Rook(a, 0)&bb(b) != 0:
				t.between[a][b] = t.Rook(a, bb(b)) & t.Rook(b, bb(a))
				t.line[a][b] = t.Rook(a, 0)&t.Rook(b, 0) | ends
			case t.Bishop(a, 0)&bb(b) != 0:
				t.between[a][b] = t.Bishop(a, bb(b)) & t.Bishop(b, bb(a))
				t.line[a][b] = t.Bishop(a, 0)&t.Bishop(b, 0) | ends
			}
		}
	}
}

// Knight returns knight attacks from sq.
func (t *AttackTables) Knight(sq Square) uint64 { return t.knight[sq] }

// King returns king attacks from sq.
func (t *AttackTables) King(sq Square) uint64 { return t.king[sq] }

// Pawn returns the capture squares of a pawn of color c on sq.
func (t *AttackTables) Pawn(c Color, sq Square) uint64 { return t.pawn[c][sq] }

// Rook returns rook attacks from sq through occupancy occ.
func (t *AttackTables) Rook(sq Square, occ uint64) uint64 {
	idx := ((occ & t.rookMask[sq]) * rookMagics[sq]) >> rookShifts[sq]
	return t.rook[int(sq)*rookSlots+int(idx)]
}

// Bishop returns bishop attacks from sq through occupancy occ.
func (t *AttackTables) Bishop(sq Square, occ uint64) uint64 {
	idx := ((occ & t.bishopMask[sq]) * bishopMagics[sq]) >> bishopShifts[sq]
	return t.bishop[int(sq)*bishopSlots+int(idx)]
}

// Queen is the union of rook and bishop attacks.
func (t *AttackTables) Queen(sq Square, occ uint64) uint64 {
	return t.Rook(sq, occ) | t.Bishop(sq, occ)
}

// Between returns the squares strictly between a and b, or 0 if they do
// not share a rank, file or diagonal.
func (t *AttackTables) Between(a, b Square) uint64 { return t.between[a][b] }

// Line returns the full board line through a and b, or 0 if unaligned.
func (t *AttackTables) Line(a, b Square) uint64 { return t.line[a][b] }

// RookMask is the rook relevance mask: rays from sq without the board edge
// squares each ray ends on.
func RookMask(sq Square) uint64 {
	file, rank := sq.File(), sq.Rank()
	var m uint64
	for r := rank + 1; r < 7; r++ {
		m |= 1 << uint(r*8+file)
	}
	for r := rank - 1; r > 0; r-- {
		m |= 1 << uint(r*8+file)
	}
	for f := file + 1; f < 7; f++ {
		m |= 1 << uint(rank*8+f)
	}
	for f := file - 1; f > 0; f-- {
		m |= 1 << uint(rank*8+f)
	}
	return m
}

// BishopMask is the bishop relevance mask, edges excluded.
func BishopMask(sq Square) uint64 {
	file, rank := sq.File(), sq.Rank()
	var m uint64
	for r, f := rank+1, file+1; r < 7 && f < 7; r, f = r+1, f+1 {
		m |= 1 << uint(r*8+f)
	}
	for r, f := rank+1, file-1; r < 7 && f > 0; r, f = r+1, f-1 {
		m |= 1 << uint(r*8+f)
	}
	for r, f := rank-1, file+1; r > 0 && f < 7; r, f = r-1, f+1 {
		m |= 1 << uint(r*8+f)
	}
	for r, f := rank-1, file-1; r > 0 && f > 0; r, f = r-1, f-1 {
		m |= 1 << uint(r*8+f)
	}
	return m
}

var (
	rookDirs   = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// RookRayAttacks walks the four rook rays from sq, stopping on (and
// including) the first occupied square of each.
func RookRayAttacks(sq Square, occ uint64) uint64 { return rayAttacks(sq, occ, rookDirs) }

// BishopRayAttacks is RookRayAttacks for the diagonals.
func BishopRayAttacks(sq Square, occ uint64) uint64 { return rayAttacks(sq, occ, bishopDirs) }

func rayAttacks(sq Square, occ uint64, dirs [4][2]int) uint64 {
	var attacks uint64
	for _, d := range dirs {
		r, f := sq.Rank()+d[0], sq.File()+d[1]
		for r >= 0 && r < 8 && f >= 0 && f < 8 {
			bit := uint64(1) << uint(r*8+f)
			attacks |= bit
			if occ&bit != 0 {
				break
			}
			r, f = r+d[0], f+d[1]
		}
	}
	return attacks
}

// BlockerSubsets enumerates all 2^n subsets of mask, where n is its
// population count, in pdep index order.
func BlockerSubsets(mask uint64) []uint64 {
	n := bits.OnesCount64(mask)
	subsets := make([]uint64, 1<<n)
	for idx := range subsets {
		subsets[idx] = pdep(uint64(idx), mask)
	}
	return subsets
}

// software pdep: deposit low bits of x into positions of mask
func pdep(x, mask uint64) uint64 {
	var res uint64
	var idx uint
	m := mask
	for m != 0 {
		bit := uint(bits.TrailingZeros64(m))
		if (x>>idx)&1 != 0 {
			res |= 1 << bit
		}
		idx++
		m &= m - 1
	}
	return res
}
