package ferrousmg_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/notnil/chess"

	fm "ferrous-engine/ferrousmg"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		fm.FENStartPos,
		fenKiwipete,
		fenPosition3,
		fenPosition4,
		fenPosition5,
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
	}
	for _, fen := range fens {
		b, err := fm.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := b.ToFEN(); got != fen {
			t.Fatalf("round trip: got %q want %q", got, fen)
		}
		if err := b.Validate(); err != nil {
			t.Fatalf("%q: %v", fen, err)
		}
	}
}

func TestFENRoundTripAfterMoves(t *testing.T) {
	b := fm.MustParseFEN(fm.FENStartPos)
	// Castling, a capture and a closing double push that leaves d3 as target.
	moves := []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6", "e1g1", "f6e4", "d2d4"}
	for _, uci := range moves {
		play(t, b, uci)
		fen := b.ToFEN()
		c, err := fm.ParseFEN(fen)
		if err != nil {
			t.Fatalf("after %s, ParseFEN(%q): %v", uci, fen, err)
		}
		if got := c.ToFEN(); got != fen {
			t.Fatalf("after %s: round trip %q want %q", uci, got, fen)
		}
		if c.Snapshot().Position != b.Snapshot().Position {
			t.Fatalf("after %s: placement differs", uci)
		}
		if c.Hash() != b.Hash() || c.Check() != b.Check() || c.Pins() != b.Pins() {
			t.Fatalf("after %s: hash or check/pin metadata differs", uci)
		}
		if !sameMoves(uciList(c), uciList(b)) {
			t.Fatalf("after %s: legal moves differ: %v vs %v", uci, uciList(c), uciList(b))
		}
	}
	if !strings.HasSuffix(b.ToFEN(), " b kq d3 0 5") {
		t.Fatalf("final FEN %q", b.ToFEN())
	}
}

func TestFENMatchesNotnil(t *testing.T) {
	// notnil/chess renders the same position after the same moves.
	b := fm.MustParseFEN(fm.FENStartPos)
	game := chess.NewGame()
	for _, uci := range []string{"e2e4", "c7c5", "g1f3", "d7d6", "f1b5"} {
		play(t, b, uci)
		mv, err := chess.UCINotation{}.Decode(game.Position(), uci)
		if err != nil {
			t.Fatal(err)
		}
		if err := game.Move(mv); err != nil {
			t.Fatal(err)
		}
	}
	want := game.Position().String()
	got := b.ToFEN()
	// Compare placement, side and castling; the libraries disagree on
	// when to print an en passant target.
	if fieldsPrefix(got, 3) != fieldsPrefix(want, 3) {
		t.Fatalf("got %q want %q", got, want)
	}
}

func fieldsPrefix(fen string, n int) string {
	return strings.Join(strings.Fields(fen)[:n], " ")
}

func TestFENDefaultsCounters(t *testing.T) {
	b, err := fm.ParseFEN("4k3/8/8/8/8/8/8/4K3 b - -")
	if err != nil {
		t.Fatal(err)
	}
	if b.HalfmoveClock() != 0 || b.FullmoveNumber() != 1 {
		t.Fatalf("defaults: halfmove %d fullmove %d", b.HalfmoveClock(), b.FullmoveNumber())
	}
	if b.SideToMove() != fm.Black {
		t.Fatalf("side to move: got %s want black", b.SideToMove())
	}
}

func TestFENMalformed(t *testing.T) {
	bad := []string{
		"",
		"8/8/8/8/8/8/8/8 w - - 0 1",                                       // no kings
		"4k3/8/8/8/8/8/8/4KK2 w - - 0 1",                                  // two white kings
		"4k3/8/8/8/8/8/8 w - - 0 1",                                       // seven ranks
		"4k3/8/8/8/8/8/8/4K4 w - - 0 1",                                   // nine files
		"4k3/8/8/8/8/8/8/4K2 w - - 0 1",                                   // seven files
		"4k3/8/8/8/8/8/8/4X3 w - - 0 1",                                   // bad piece
		"4k3/8/8/8/8/8/8/4K3 x - - 0 1",                                   // bad side
		"4k3/8/8/8/8/8/8/4K3 w KX - 0 1",                                  // bad castling
		"4k3/8/8/8/8/8/8/4K3 w - e4 0 1",                                  // ep on wrong rank
		"4k3/8/8/8/8/8/8/4K3 w - z9 0 1",                                  // ep off board
		"4k3/8/8/8/8/8/8/4K3 w - - x 1",                                   // bad halfmove
		"4k3/8/8/8/8/8/8/4K3 w - - 0 0",                                   // bad fullmove
		"P3k3/8/8/8/8/8/8/4K3 w - - 0 1",                                  // pawn on last rank
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 extra", // too many fields
	}
	for _, fen := range bad {
		if _, err := fm.ParseFEN(fen); !errors.Is(err, fm.ErrInvalidFEN) {
			t.Errorf("ParseFEN(%q): got %v want ErrInvalidFEN", fen, err)
		}
	}
}

func TestFENInitialMetadata(t *testing.T) {
	b := fm.MustParseFEN("4r2k/8/8/8/8/Q2n4/8/4K3 w - - 0 1")
	if !b.Check().Double() {
		t.Fatalf("ParseFEN should compute check info")
	}
	if b.Hash() == 0 {
		t.Fatalf("hash not computed")
	}
	if got := fm.MustParseFEN(fm.FENStartPos).Hash(); got != fm.MustParseFEN(fm.FENStartPos).Hash() {
		t.Fatalf("hash is not deterministic")
	}
}
