package ferrousmg

import "fmt"

// undoRecord holds the state needed to reverse one applied move.
type undoRecord struct {
	move       Move
	captured   Piece
	capturedSq Square
	rookFrom   Square // castling only
	rookTo     Square // castling only

	prevSide      Color
	prevCastling  CastlingRights
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevHash      uint64
	prevCheck     CheckInfo
	prevPins      PinInfo
}

// castleClear[sq] lists the rights lost when a move leaves or lands on sq.
var castleClear = func() (m [64]CastlingRights) {
	m[4] = CastlingWhiteK | CastlingWhiteQ
	m[7] = CastlingWhiteK
	m[0] = CastlingWhiteQ
	m[60] = CastlingBlackK | CastlingBlackQ
	m[63] = CastlingBlackK
	m[56] = CastlingBlackQ
	return m
}()

// castleRook returns the rook's origin and destination for a castling
// king landing on kingTo.
func castleRook(kingTo Square) (from, to Square) {
	switch kingTo {
	case 6: // g1
		return 7, 5
	case 2: // c1
		return 0, 3
	case 62: // g8
		return 63, 61
	case 58: // c8
		return 56, 59
	}
	return NoSquare, NoSquare
}

// Apply moves a piece and pushes an undo record. It does not change the
// side to move or recompute check and pin metadata: call ToggleTurn and
// Refresh after it, or use PlayMove. Legality is not checked.
func (b *Board) Apply(m Move) error {
	from, to := m.From(), m.To()
	p := b.pieces[from]
	if p == NoPiece {
		return fmt.Errorf("%w: %s", ErrEmptyOrigin, m)
	}
	if p.Type() == PieceTypePawn && (to.Rank() == 0 || to.Rank() == 7) && !m.IsPromotion() {
		return fmt.Errorf("%w: %s", ErrPromotionRequired, m)
	}
	b.apply(m)
	return nil
}

func (b *Board) apply(m Move) {
	from, to := m.From(), m.To()
	moved := b.pieces[from]
	us := moved.Color()
	keys := &b.tables.keys

	u := undoRecord{
		move:          m,
		captured:      NoPiece,
		capturedSq:    NoSquare,
		rookFrom:      NoSquare,
		rookTo:        NoSquare,
		prevSide:      b.sideToMove,
		prevCastling:  b.castlingRights,
		prevEnPassant: b.enPassant,
		prevHalfmove:  b.halfmoveClock,
		prevFullmove:  b.fullmoveNumber,
		prevHash:      b.hash,
		prevCheck:     b.check,
		prevPins:      b.pins,
	}

	if b.enPassant != NoSquare {
		b.hash ^= keys.enPassant[b.enPassant.File()]
	}
	b.enPassant = NoSquare

	// Capture, including the pawn behind an en passant destination
	capSq := to
	if m.Flags() == FlagEnPassant {
		if us == White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
	}
	if captured := b.removePiece(capSq); captured != NoPiece {
		u.captured, u.capturedSq = captured, capSq
	}

	b.removePiece(from)
	if promo := m.PromotionPiece(); promo != NoPiece {
		b.addPiece(to, PieceFromType(us, promo.Type()))
	} else {
		b.addPiece(to, moved)
	}

	if m.Flags() == FlagCastle {
		rf, rt := castleRook(to)
		if rf != NoSquare {
			b.addPiece(rt, b.removePiece(rf))
			u.rookFrom, u.rookTo = rf, rt
		}
	}

	if cr := b.castlingRights &^ (castleClear[from] | castleClear[to]); cr != b.castlingRights {
		b.hash ^= keys.castle[b.castlingRights&15] ^ keys.castle[cr&15]
		b.castlingRights = cr
	}

	if moved.Type() == PieceTypePawn && (to-from == 16 || from-to == 16) {
		b.enPassant = (from + to) / 2
		b.hash ^= keys.enPassant[b.enPassant.File()]
	}

	if moved.Type() == PieceTypePawn || u.captured != NoPiece {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if us == Black {
		b.fullmoveNumber++
	}
	b.plies++

	b.undo = append(b.undo, u)
}

// ToggleTurn passes the move to the other side.
func (b *Board) ToggleTurn() {
	b.sideToMove = b.sideToMove.Other()
	b.hash ^= b.tables.keys.side
}

// Refresh recomputes the pin sets of both colors and the checks against
// the side to move. Move generation trusts this metadata, so call it
// after every change of placement or turn.
func (b *Board) Refresh() {
	b.pins.Kings = [2]Square{b.KingSquare(White), b.KingSquare(Black)}
	b.pins.Pinned[White] = b.pinnedPieces(White)
	b.pins.Pinned[Black] = b.pinnedPieces(Black)
	b.check = b.checkInfo(b.sideToMove)
}

// PlayMove applies m, passes the turn and refreshes metadata.
func (b *Board) PlayMove(m Move) error {
	if err := b.Apply(m); err != nil {
		return err
	}
	b.ToggleTurn()
	b.Refresh()
	return nil
}

// Cancel reverts the most recent Apply, restoring placement and state
// exactly, including the side to move. It does nothing when no move has
// been applied.
func (b *Board) Cancel() {
	n := len(b.undo)
	if n == 0 {
		return
	}
	u := b.undo[n-1]
	b.undo = b.undo[:n-1]

	from, to := u.move.From(), u.move.To()
	if u.rookFrom != NoSquare {
		b.addPiece(u.rookFrom, b.removePiece(u.rookTo))
	}
	p := b.removePiece(to)
	if u.move.IsPromotion() {
		p = PieceFromType(p.Color(), PieceTypePawn)
	}
	b.addPiece(from, p)
	if u.captured != NoPiece {
		b.addPiece(u.capturedSq, u.captured)
	}

	b.sideToMove = u.prevSide
	b.castlingRights = u.prevCastling
	b.enPassant = u.prevEnPassant
	b.halfmoveClock = u.prevHalfmove
	b.fullmoveNumber = u.prevFullmove
	b.hash = u.prevHash
	b.check = u.prevCheck
	b.pins = u.prevPins
	b.plies--
}

// Depth is the number of moves that Cancel can still revert.
func (b *Board) Depth() int { return len(b.undo) }

// LastMove returns the most recently applied move, or NoMove.
func (b *Board) LastMove() Move {
	if len(b.undo) == 0 {
		return NoMove
	}
	return b.undo[len(b.undo)-1].move
}

// RepetitionCount counts earlier positions in the game history equal to
// the current one. Only positions since the last capture or pawn move are
// considered.
func (b *Board) RepetitionCount() int {
	count := 0
	limit := b.halfmoveClock
	for i, steps := len(b.undo)-1, 0; i >= 0 && steps < limit; i, steps = i-1, steps+1 {
		if b.undo[i].prevHash == b.hash {
			count++
		}
	}
	return count
}

// IsDrawBy50 reports the fifty-move rule: one hundred plies without a
// capture or pawn move.
func (b *Board) IsDrawBy50() bool { return b.halfmoveClock >= 100 }

// IsDraw combines the fifty-move rule and threefold repetition.
func (b *Board) IsDraw() bool { return b.IsDrawBy50() || b.RepetitionCount() >= 2 }
