package ferrousmg_test

import (
	"testing"

	fm "ferrous-engine/ferrousmg"
)

const (
	fenKiwipete  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	fenPosition3 = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	fenPosition4 = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	fenPosition5 = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
)

var perftCases = []struct {
	name   string
	fen    string
	counts []uint64 // indexed by depth-1
}{
	{"startpos", fm.FENStartPos, []uint64{20, 400, 8902}},
	{"kiwipete", fenKiwipete, []uint64{48, 2039, 97862}},
	{"position3", fenPosition3, []uint64{14, 191, 2812, 43238}},
	{"position4", fenPosition4, []uint64{6, 264, 9467}},
	{"position5", fenPosition5, []uint64{44, 1486, 62379}},
	{"en passant", "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", []uint64{5}},
	{"promotion", "1n5k/P7/8/8/8/8/8/7K w - - 0 1", []uint64{11}},
}

func TestPerft(t *testing.T) {
	for _, tc := range perftCases {
		t.Run(tc.name, func(t *testing.T) {
			board, err := fm.ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN failed: %v", err)
			}
			before := board.Snapshot()
			for i, want := range tc.counts {
				depth := i + 1
				if testing.Short() && want > 10000 {
					t.Skipf("skipping depth %d in short mode", depth)
				}
				if got := fm.Perft(board, depth); got != want {
					t.Fatalf("perft depth%d: got %d want %d", depth, got, want)
				}
			}
			if board.Snapshot() != before {
				t.Fatalf("perft left the board modified")
			}
			if board.Depth() != 0 {
				t.Fatalf("perft left %d undo records", board.Depth())
			}
		})
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	board := fm.MustParseFEN(fenKiwipete)
	div := fm.PerftDivide(board, 2)
	if len(div) != 48 {
		t.Fatalf("divide roots: got %d want 48", len(div))
	}
	var total uint64
	for _, n := range div {
		total += n
	}
	if total != 2039 {
		t.Fatalf("divide total: got %d want 2039", total)
	}
}

func TestPerftDepthZero(t *testing.T) {
	board := fm.MustParseFEN(fm.FENStartPos)
	if got := fm.Perft(board, 0); got != 1 {
		t.Fatalf("perft depth0: got %d want 1", got)
	}
	if got := len(fm.PerftDivide(board, 0)); got != 0 {
		t.Fatalf("divide depth0: got %d entries want 0", got)
	}
}
