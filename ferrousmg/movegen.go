package ferrousmg

import "math/bits"

// ==========================
// Attack queries
// ==========================

// attackersTo returns the pieces of color by attacking sq through occupancy occ.
func (b *Board) attackersTo(sq Square, by Color, occ uint64) uint64 {
	t := b.tables
	diag := b.bishops[by] | b.queens[by]
	orth := b.rooks[by] | b.queens[by]
	return t.pawn[by.Other()][sq]&b.pawns[by] |
		t.knight[sq]&b.knights[by] |
		t.king[sq]&b.kings[by] |
		t.Bishop(sq, occ)&diag |
		t.Rook(sq, occ)&orth
}

// IsSquareAttacked reports whether the given square is attacked by the given color.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	return b.attackersTo(sq, by, b.all) != 0
}

// InCheck reports whether the side to move is in check, computed from the
// current placement.
func (b *Board) InCheck() bool {
	ks := b.KingSquare(b.sideToMove)
	return ks != NoSquare && b.IsSquareAttacked(ks, b.sideToMove.Other())
}

// InCheckmate reports a checked side to move with no legal move.
func (b *Board) InCheckmate() bool { return b.InCheck() && !b.hasLegalMove() }

// InStalemate reports an unchecked side to move with no legal move.
func (b *Board) InStalemate() bool { return !b.InCheck() && !b.hasLegalMove() }

func (b *Board) hasLegalMove() bool {
	var buf [256]Move
	return len(b.GenerateMovesInto(buf[:0])) > 0
}

// checkInfo lists the checkers of side's king.
func (b *Board) checkInfo(side Color) CheckInfo {
	ks := b.KingSquare(side)
	if ks == NoSquare {
		return noCheck
	}
	attackers := b.attackersTo(ks, side.Other(), b.all)
	if attackers == 0 {
		return noCheck
	}
	ci := noCheck
	ci.King = ks
	ci.Checkers[0] = popLSB(&attackers)
	if attackers != 0 {
		ci.Checkers[1] = popLSB(&attackers)
	}
	ci.Evasions = b.tables.Between(ks, ci.Checkers[0]) | bb(ci.Checkers[0])
	return ci
}

// pinnedPieces returns side's pieces that are the only blocker between
// their king and an enemy slider.
func (b *Board) pinnedPieces(side Color) uint64 {
	ks := b.KingSquare(side)
	if ks == NoSquare {
		return 0
	}
	t := b.tables
	them := side.Other()
	snipers := t.Rook(ks, 0)&(b.rooks[them]|b.queens[them]) |
		t.Bishop(ks, 0)&(b.bishops[them]|b.queens[them])
	var pinned uint64
	for snipers != 0 {
		s := popLSB(&snipers)
		blockers := t.Between(ks, s) & b.all
		if bits.OnesCount64(blockers) == 1 && blockers&b.occupancy[side] != 0 {
			pinned |= blockers
		}
	}
	return pinned
}

// ==========================
// Move generation
// ==========================

// GenerateMoves returns every legal move for the side to move.
func (b *Board) GenerateMoves() []Move { return b.GenerateMovesInto(make([]Move, 0, 128)) }

// GenerateMovesInto appends legal moves to dst[:0] and returns the result.
// Check and pin metadata must be current (see Refresh). Panics with
// ErrNoKing if the side to move has no king.
func (b *Board) GenerateMovesInto(dst []Move) []Move {
	return b.generate(dst[:0], false)
}

// GenerateCaptures returns the legal captures, en passant and capturing
// promotions included.
func (b *Board) GenerateCaptures() []Move { return b.GenerateCapturesInto(make([]Move, 0, 64)) }

// GenerateCapturesInto is GenerateMovesInto restricted to captures.
func (b *Board) GenerateCapturesInto(dst []Move) []Move {
	return b.generate(dst[:0], true)
}

// LegalDestinations returns the squares the piece on sq can legally move to.
func (b *Board) LegalDestinations(sq Square) uint64 {
	if p := b.PieceAt(sq); p == NoPiece || p.Color() != b.sideToMove {
		return 0
	}
	var buf [256]Move
	var dests uint64
	for _, m := range b.GenerateMovesInto(buf[:0]) {
		if m.From() == sq {
			dests |= bb(m.To())
		}
	}
	return dests
}

func (b *Board) generate(moves []Move, capturesOnly bool) []Move {
	t := b.tables
	us := b.sideToMove
	them := us.Other()
	ks := b.KingSquare(us)
	if ks == NoSquare {
		panic(ErrNoKing)
	}
	own := b.occupancy[us]
	opp := b.occupancy[them]
	targets := ^own
	if capturesOnly {
		targets = opp
	}

	// King steps are checked against attacks with the king lifted off the
	// board so sliders see through its origin.
	king := b.pieces[ks]
	occNoKing := b.all &^ bb(ks)
	steps := t.king[ks] & targets
	for steps != 0 {
		to := popLSB(&steps)
		if b.attackersTo(to, them, occNoKing) == 0 {
			moves = append(moves, NewMove(ks, to, king, b.pieces[to], NoPiece, FlagNone))
		}
	}
	if b.check.Double() {
		return moves
	}

	evasions := ^uint64(0)
	inCheck := b.check.InCheck()
	if inCheck {
		evasions = b.check.Evasions
	}
	pinned := b.pins.Pinned[us]

	if !inCheck && !capturesOnly {
		moves = b.appendCastles(moves, us, king)
	}

	// Knights: a pinned knight can never stay on its pin line.
	knights := b.knights[us] &^ pinned
	for knights != 0 {
		from := popLSB(&knights)
		moves = b.appendTargets(moves, from, t.knight[from]&targets&evasions)
	}

	sliders := b.bishops[us] | b.rooks[us] | b.queens[us]
	for sliders != 0 {
		from := popLSB(&sliders)
		var att uint64
		switch b.pieces[from].Type() {
		case PieceTypeBishop:
			att = t.Bishop(from, b.all)
		case PieceTypeRook:
			att = t.Rook(from, b.all)
		default:
			att = t.Queen(from, b.all)
		}
		att &= targets & evasions
		if pinned&bb(from) != 0 {
			att &= t.line[ks][from]
		}
		moves = b.appendTargets(moves, from, att)
	}

	return b.appendPawnMoves(moves, us, ks, evasions, pinned, capturesOnly)
}

func (b *Board) appendTargets(moves []Move, from Square, targets uint64) []Move {
	p := b.pieces[from]
	for targets != 0 {
		to := popLSB(&targets)
		moves = append(moves, NewMove(from, to, p, b.pieces[to], NoPiece, FlagNone))
	}
	return moves
}

// appendCastles adds castling moves. The king may not be in check (the
// caller ensures that), the squares between king and rook must be empty
// and the squares the king crosses and lands on must not be attacked.
func (b *Board) appendCastles(moves []Move, us Color, king Piece) []Move {
	them := us.Other()
	base := Square(0)
	kRight, qRight := CastlingWhiteK, CastlingWhiteQ
	if us == Black {
		base = 56
		kRight, qRight = CastlingBlackK, CastlingBlackQ
	}
	kingSq := base + 4
	rook := PieceFromType(us, PieceTypeRook)
	if b.pieces[kingSq] != king {
		return moves
	}
	safe := func(sq Square) bool { return b.attackersTo(sq, them, b.all) == 0 }

	if b.castlingRights&kRight != 0 && b.pieces[base+7] == rook &&
		b.pieces[base+5] == NoPiece && b.pieces[base+6] == NoPiece &&
		safe(base+5) && safe(base+6) {
		moves = append(moves, NewMove(kingSq, base+6, king, NoPiece, NoPiece, FlagCastle))
	}
	if b.castlingRights&qRight != 0 && b.pieces[base] == rook &&
		b.pieces[base+1] == NoPiece && b.pieces[base+2] == NoPiece && b.pieces[base+3] == NoPiece &&
		safe(base+3) && safe(base+2) {
		moves = append(moves, NewMove(kingSq, base+2, king, NoPiece, NoPiece, FlagCastle))
	}
	return moves
}

// appendPawnMove emits one move per promotion piece in queen, rook,
// bishop, knight order, or the plain move when to is not a last rank.
func appendPawnMove(moves []Move, from, to Square, pawn, captured Piece) []Move {
	if r := to.Rank(); r != 0 && r != 7 {
		return append(moves, NewMove(from, to, pawn, captured, NoPiece, FlagNone))
	}
	c := pawn.Color()
	for _, pt := range [...]PieceType{PieceTypeQueen, PieceTypeRook, PieceTypeBishop, PieceTypeKnight} {
		moves = append(moves, NewMove(from, to, pawn, captured, PieceFromType(c, pt), FlagNone))
	}
	return moves
}

func (b *Board) appendPawnMoves(moves []Move, us Color, ks Square, evasions, pinned uint64, capturesOnly bool) []Move {
	t := b.tables
	them := us.Other()
	forward, startRank, epRank := Square(8), 1, 4
	if us == Black {
		forward, startRank, epRank = -8, 6, 3
	}
	opp := b.occupancy[them]
	enemyPawn := PieceFromType(them, PieceTypePawn)

	pawns := b.pawns[us]
	for pawns != 0 {
		from := popLSB(&pawns)
		pawn := b.pieces[from]
		allowed := evasions
		if pinned&bb(from) != 0 {
			allowed &= t.line[ks][from]
		}

		if !capturesOnly {
			one := from + forward
			if b.all&bb(one) == 0 {
				if allowed&bb(one) != 0 {
					moves = appendPawnMove(moves, from, one, pawn, NoPiece)
				}
				two := one + forward
				if from.Rank() == startRank && b.all&bb(two) == 0 && allowed&bb(two) != 0 {
					moves = append(moves, NewMove(from, two, pawn, NoPiece, NoPiece, FlagNone))
				}
			}
		}

		caps := t.pawn[us][from] & opp & allowed
		for caps != 0 {
			to := popLSB(&caps)
			moves = appendPawnMove(moves, from, to, pawn, b.pieces[to])
		}

		ep := b.enPassant
		if ep == NoSquare || from.Rank() != epRank || t.pawn[us][from]&bb(ep) == 0 {
			continue
		}
		capSq := ep - forward
		if b.pieces[capSq] != enemyPawn || b.pieces[ep] != NoPiece {
			continue
		}
		// The capture may resolve a check either by landing on the
		// evasion mask or by removing the checking pawn.
		if evasions&(bb(ep)|bb(capSq)) == 0 {
			continue
		}
		if pinned&bb(from) != 0 && t.line[ks][from]&bb(ep) == 0 {
			continue
		}
		// Two pawns leave the same rank at once; replay the occupancy to
		// catch a slider behind them.
		occ := b.all&^(bb(from)|bb(capSq)) | bb(ep)
		if b.attackersTo(ks, them, occ)&^bb(capSq) != 0 {
			continue
		}
		moves = append(moves, NewMove(from, ep, pawn, enemyPawn, NoPiece, FlagEnPassant))
	}
	return moves
}
