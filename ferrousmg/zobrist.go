package ferrousmg

import "math/rand"

// zobristKeys hold the random keys for pieces, castling, en passant and side to move.
type zobristKeys struct {
	piece     [15][64]uint64 // indexed by piece code
	castle    [16]uint64     // one per castling rights state
	enPassant [8]uint64      // by en passant file
	side      uint64         // XORed in when Black is to move
}

func newZobristKeys() zobristKeys {
	// Fixed seed so hashes are reproducible across runs
	rnd := rand.New(rand.NewSource(0xC0DE))
	var k zobristKeys
	for p := 0; p < 15; p++ {
		for sq := 0; sq < 64; sq++ {
			k.piece[p][sq] = rnd.Uint64()
		}
	}
	for cr := 0; cr < 16; cr++ {
		k.castle[cr] = rnd.Uint64()
	}
	for f := 0; f < 8; f++ {
		k.enPassant[f] = rnd.Uint64()
	}
	k.side = rnd.Uint64()
	return k
}

// computeHash calculates the Zobrist hash of the current position from scratch.
func (b *Board) computeHash() uint64 {
	keys := &b.tables.keys
	var key uint64
	for sq := 0; sq < 64; sq++ {
		if p := b.pieces[sq]; p != NoPiece {
			key ^= keys.piece[p][sq]
		}
	}
	if b.sideToMove == Black {
		key ^= keys.side
	}
	key ^= keys.castle[b.castlingRights&15]
	if b.enPassant != NoSquare {
		key ^= keys.enPassant[b.enPassant.File()]
	}
	return key
}
