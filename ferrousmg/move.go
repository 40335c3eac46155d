package ferrousmg

import "fmt"

// Move encodes a chess move in a 32-bit value.
type Move uint32

// NoMove is the zero move; no generated move encodes to it.
const NoMove Move = 0

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift    = 0  // 6 bits
	moveToShift      = 6  // 6 bits
	movePieceShift   = 12 // 4 bits
	moveCaptureShift = 16 // 4 bits
	movePromoteShift = 20 // 4 bits
	moveFlagShift    = 24 // 2 bits
)

// Move flags
const (
	FlagNone      = 0
	FlagCastle    = 1
	FlagEnPassant = 2
	// Promotion is indicated by a non-zero promotion piece
)

// NewMove constructs a Move value from components.
func NewMove(from, to Square, piece, captured Piece, promotion Piece, flag uint8) Move {
	m := uint32(from&0x3F) |
		(uint32(to&0x3F) << moveToShift) |
		(uint32(piece&0xF) << movePieceShift) |
		(uint32(captured&0xF) << moveCaptureShift) |
		(uint32(promotion&0xF) << movePromoteShift) |
		(uint32(flag&0x3) << moveFlagShift)
	return Move(m)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square((uint32(m) >> moveFromShift) & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((uint32(m) >> moveToShift) & 0x3F) }

// MovedPiece returns the piece code that is moved.
func (m Move) MovedPiece() Piece { return Piece((uint32(m) >> movePieceShift) & 0xF) }

// CapturedPiece returns the piece code that was captured. En passant
// moves report the captured pawn.
func (m Move) CapturedPiece() Piece { return Piece((uint32(m) >> moveCaptureShift) & 0xF) }

// PromotionPiece returns the promotion piece code (or NoPiece if not a promotion).
func (m Move) PromotionPiece() Piece { return Piece((uint32(m) >> movePromoteShift) & 0xF) }

// PromotionPieceType returns the colorless type of the promoted piece (or PieceTypeNone).
func (m Move) PromotionPieceType() PieceType { return m.PromotionPiece().Type() }

// Flags returns the special move flags.
func (m Move) Flags() uint8 { return uint8((uint32(m) >> moveFlagShift) & 0x3) }

func (m Move) IsCapture() bool   { return m.CapturedPiece() != NoPiece }
func (m Move) IsPromotion() bool { return m.PromotionPiece() != NoPiece }

// String renders the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if promo := m.PromotionPiece(); promo != NoPiece {
		s += string(pieceChars[PieceFromType(Black, promo.Type())])
	}
	return s
}

// pieceChars maps a piece code to its FEN letter.
const pieceChars = " PNBRQK  pnbrqk"

// pieceFromChar converts a FEN character to the corresponding Piece constant.
func pieceFromChar(ch byte) Piece {
	for i := 1; i < len(pieceChars); i++ {
		if pieceChars[i] == ch && ch != ' ' {
			return Piece(i)
		}
	}
	return NoPiece
}

// ParseMove reads coordinate notation ("e2e4", "e7e8q") and returns the
// matching legal move in b.
func (b *Board) ParseMove(text string) (Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, text)
	}
	from, err := ParseSquare(text[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	to, err := ParseSquare(text[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	promo := PieceTypeNone
	if len(text) == 5 {
		promo = pieceFromChar(text[4]).Type()
		if promo == PieceTypeNone || promo == PieceTypePawn || promo == PieceTypeKing {
			return NoMove, fmt.Errorf("%w: bad promotion in %q", ErrIllegalMove, text)
		}
	}
	for _, m := range b.GenerateMoves() {
		if m.From() == from && m.To() == to && m.PromotionPieceType() == promo {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %s in %s", ErrIllegalMove, text, b.ToFEN())
}

// PromotionChooser picks the piece a pawn promotes to when a move is
// entered as a bare origin and destination.
type PromotionChooser interface {
	ChoosePromotion(from, to Square) PieceType
}

// PromotionFunc adapts a plain function to PromotionChooser.
type PromotionFunc func(from, to Square) PieceType

func (f PromotionFunc) ChoosePromotion(from, to Square) PieceType { return f(from, to) }

// ResolveMove finds the legal move from one square to another. When the
// destination is a promotion the chooser is asked for the piece; a nil
// chooser promotes to a queen.
func (b *Board) ResolveMove(from, to Square, chooser PromotionChooser) (Move, error) {
	var candidates []Move
	for _, m := range b.GenerateMoves() {
		if m.From() == from && m.To() == to {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return NoMove, fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
	}
	if !candidates[0].IsPromotion() {
		return candidates[0], nil
	}
	want := PieceTypeQueen
	if chooser != nil {
		want = chooser.ChoosePromotion(from, to)
	}
	for _, m := range candidates {
		if m.PromotionPieceType() == want {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: cannot promote to piece type %d", ErrIllegalMove, want)
}
