package ferrousmg

import "errors"

var (
	// ErrInvalidFEN wraps every FEN parsing failure.
	ErrInvalidFEN = errors.New("invalid FEN")
	// ErrNoKing is the panic value when move generation finds the side to move without a king.
	ErrNoKing = errors.New("side to move has no king")
	// ErrEmptyOrigin is returned by Apply when the origin square is empty.
	ErrEmptyOrigin = errors.New("no piece on origin square")
	// ErrPromotionRequired is returned by Apply for a pawn reaching the last rank without a promotion piece.
	ErrPromotionRequired = errors.New("pawn move to last rank needs a promotion piece")
	// ErrIllegalMove is returned when a requested move is not legal in the position.
	ErrIllegalMove = errors.New("illegal move")
)
