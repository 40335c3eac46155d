package ferrousmg

import (
	"fmt"
	"math/bits"
)

// Piece constants and types for pieces and colors
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are encoded as (white piece type | 8):
	// piece & 7 gives the type, piece & 8 marks Black.
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is a colorless representation of a chess piece used for table lookups.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Type returns the colorless type of the piece.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece reports White.
func (p Piece) Color() Color { return Color(p >> 3 & 1) }

// String returns the FEN letter, or a space for NoPiece.
func (p Piece) String() string {
	if int(p) >= len(pieceChars) {
		return "?"
	}
	return pieceChars[p : p+1]
}

// PieceFromType combines a colorless type with a side to produce a concrete Piece.
func PieceFromType(color Color, pt PieceType) Piece {
	if pt == PieceTypeNone || pt > PieceTypeKing {
		return NoPiece
	}
	p := Piece(pt)
	if color == Black {
		p |= 8
	}
	return p
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Castling rights bit flags
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastlingWhiteQ
	// Black king-side castling
	CastlingBlackK
	// Black queen-side castling
	CastlingBlackQ
)

// Square represents a board position (0-63), a1 = 0 and h8 = 63.
type Square int

const NoSquare Square = -1

// NewSquare builds a square from zero based file and rank.
func NewSquare(file, rank int) Square { return Square(rank*8 + file) }

func (s Square) File() int { return int(s) & 7 }
func (s Square) Rank() int { return int(s) >> 3 }

func (s Square) String() string {
	if s < 0 || s > 63 {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// ParseSquare reads algebraic coordinates such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("bad square %q", s)
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}

// Position holds piece placement: one bitboard per piece type and color,
// per color and combined occupancy, and a square-indexed piece array.
type Position struct {
	pawns   [2]uint64
	knights [2]uint64
	bishops [2]uint64
	rooks   [2]uint64
	queens  [2]uint64
	kings   [2]uint64

	occupancy [2]uint64
	all       uint64

	pieces [64]Piece
}

// GameState is everything besides placement needed to continue a game.
type GameState struct {
	sideToMove     Color
	castlingRights CastlingRights
	enPassant      Square
	halfmoveClock  int
	fullmoveNumber int
	plies          int
	hash           uint64

	check CheckInfo
	pins  PinInfo
}

// CheckInfo describes the checks against the side to move.
type CheckInfo struct {
	// King is the checked king's square, NoSquare when not in check.
	King Square
	// Checkers holds up to two checking squares; unused slots are NoSquare.
	Checkers [2]Square
	// Evasions is the checker plus every square strictly between it and
	// the king. Only meaningful for a single check.
	Evasions uint64
}

// InCheck reports whether at least one checker was recorded.
func (c CheckInfo) InCheck() bool { return c.King != NoSquare }

// Double reports a double check.
func (c CheckInfo) Double() bool { return c.Checkers[1] != NoSquare }

var noCheck = CheckInfo{King: NoSquare, Checkers: [2]Square{NoSquare, NoSquare}}

// PinInfo records, per color, the pieces pinned against their own king.
type PinInfo struct {
	Kings  [2]Square
	Pinned [2]uint64
}

// Board is a full game: placement, state, the undo stack and a handle to
// the shared attack tables.
type Board struct {
	Position
	GameState

	undo   []undoRecord
	tables *AttackTables
}

// Snapshot is a comparable copy of a Board without its undo history.
type Snapshot struct {
	Position Position
	State    GameState
}

// NewBoard returns an empty board with White to move. Use SetPiece and
// Refresh, or ParseFEN, to set up a position.
func NewBoard() *Board {
	b := &Board{tables: Tables()}
	b.enPassant = NoSquare
	b.fullmoveNumber = 1
	b.check = noCheck
	b.pins.Kings = [2]Square{NoSquare, NoSquare}
	b.hash = b.computeHash()
	return b
}

// Snapshot captures placement and state for equality checks.
func (b *Board) Snapshot() Snapshot { return Snapshot{Position: b.Position, State: b.GameState} }

// Copy returns an independent board sharing only the attack tables.
func (b *Board) Copy() *Board {
	c := *b
	c.undo = append([]undoRecord(nil), b.undo...)
	return &c
}

// Tables returns the attack tables this board was built with.
func (b *Board) Tables() *AttackTables { return b.tables }

// PieceAt returns the piece on sq or NoPiece.
func (p *Position) PieceAt(sq Square) Piece {
	if sq < 0 || sq > 63 {
		return NoPiece
	}
	return p.pieces[sq]
}

// Occupancy returns all occupied squares.
func (p *Position) Occupancy() uint64 { return p.all }

// ColorOccupancy returns the squares held by color c.
func (p *Position) ColorOccupancy(c Color) uint64 { return p.occupancy[c] }

// Pieces returns the bitboard of one piece type and color.
func (p *Position) Pieces(c Color, pt PieceType) uint64 {
	if bbp := p.bitboard(PieceFromType(c, pt)); bbp != nil {
		return *bbp
	}
	return 0
}

// KingSquare returns the king of color c, or NoSquare if it has none.
func (p *Position) KingSquare(c Color) Square {
	if p.kings[c] == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(p.kings[c]))
}

func (p *Position) bitboard(pc Piece) *uint64 {
	ci := pc.Color()
	switch pc.Type() {
	case PieceTypePawn:
		return &p.pawns[ci]
	case PieceTypeKnight:
		return &p.knights[ci]
	case PieceTypeBishop:
		return &p.bishops[ci]
	case PieceTypeRook:
		return &p.rooks[ci]
	case PieceTypeQueen:
		return &p.queens[ci]
	case PieceTypeKing:
		return &p.kings[ci]
	}
	return nil
}

func (s *GameState) SideToMove() Color              { return s.sideToMove }
func (s *GameState) CastlingRights() CastlingRights { return s.castlingRights }
func (s *GameState) EnPassantSquare() Square        { return s.enPassant }
func (s *GameState) HalfmoveClock() int             { return s.halfmoveClock }
func (s *GameState) FullmoveNumber() int            { return s.fullmoveNumber }
func (s *GameState) Plies() int                     { return s.plies }
func (s *GameState) Hash() uint64                   { return s.hash }
func (s *GameState) Check() CheckInfo               { return s.check }
func (s *GameState) Pins() PinInfo                  { return s.pins }

// addPiece places piece on sq, updating bitboards and the hash.
func (b *Board) addPiece(sq Square, piece Piece) {
	bit := bb(sq)
	*b.bitboard(piece) |= bit
	b.occupancy[piece.Color()] |= bit
	b.all |= bit
	b.pieces[sq] = piece
	b.hash ^= b.tables.keys.piece[piece][sq]
}

// removePiece clears sq and returns what stood there.
func (b *Board) removePiece(sq Square) Piece {
	piece := b.pieces[sq]
	if piece == NoPiece {
		return NoPiece
	}
	bit := bb(sq)
	*b.bitboard(piece) &^= bit
	b.occupancy[piece.Color()] &^= bit
	b.all &^= bit
	b.pieces[sq] = NoPiece
	b.hash ^= b.tables.keys.piece[piece][sq]
	return piece
}

// SetPiece puts piece on sq, replacing anything there. It does not touch
// the undo stack; call Refresh once setup is complete.
func (b *Board) SetPiece(sq Square, piece Piece) {
	b.removePiece(sq)
	if piece != NoPiece {
		b.addPiece(sq, piece)
	}
}

// SetSideToMove changes the side to move during setup.
func (b *Board) SetSideToMove(c Color) {
	if b.sideToMove != c {
		b.ToggleTurn()
	}
}

// Validate checks internal consistency: the piece array agrees with the
// bitboards, no square is claimed twice, each side has one king and the
// derived occupancy and hash match.
func (b *Board) Validate() error {
	var union [2]uint64
	for c := White; c <= Black; c++ {
		sets := [...]uint64{b.pawns[c], b.knights[c], b.bishops[c], b.rooks[c], b.queens[c], b.kings[c]}
		for i, s := range sets {
			for j := i + 1; j < len(sets); j++ {
				if s&sets[j] != 0 {
					return fmt.Errorf("%s piece bitboards overlap", c)
				}
			}
			union[c] |= s
		}
		if union[c] != b.occupancy[c] {
			return fmt.Errorf("%s occupancy mismatch", c)
		}
	}
	for c := White; c <= Black; c++ {
		if n := bits.OnesCount64(b.kings[c]); n != 1 {
			return fmt.Errorf("%s has %d kings", c, n)
		}
	}
	if union[White]&union[Black] != 0 {
		return fmt.Errorf("colors overlap")
	}
	if union[White]|union[Black] != b.all {
		return fmt.Errorf("combined occupancy mismatch")
	}
	for sq := Square(0); sq < 64; sq++ {
		p := b.pieces[sq]
		if p == NoPiece {
			if b.all&bb(sq) != 0 {
				return fmt.Errorf("square %s occupied but piece array empty", sq)
			}
			continue
		}
		if bbp := b.bitboard(p); bbp == nil || *bbp&bb(sq) == 0 {
			return fmt.Errorf("piece array disagrees with bitboards on %s", sq)
		}
	}
	if b.hash != b.computeHash() {
		return fmt.Errorf("hash mismatch")
	}
	return nil
}

func bb(sq Square) uint64 { return 1 << uint(sq) }

func popLSB(bbp *uint64) Square {
	b := *bbp
	idx := bits.TrailingZeros64(b)
	*bbp = b & (b - 1)
	return Square(idx)
}
