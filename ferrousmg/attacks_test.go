package ferrousmg_test

import (
	"math/bits"
	"math/rand"
	"testing"

	fm "ferrous-engine/ferrousmg"
)

func TestMagicMatchesRayWalk(t *testing.T) {
	tables := fm.Tables()
	for sq := fm.Square(0); sq < 64; sq++ {
		for _, occ := range fm.BlockerSubsets(fm.RookMask(sq)) {
			if got, want := tables.Rook(sq, occ), fm.RookRayAttacks(sq, occ); got != want {
				t.Fatalf("rook %s occ %#x: got %#x want %#x", sq, occ, got, want)
			}
		}
		for _, occ := range fm.BlockerSubsets(fm.BishopMask(sq)) {
			if got, want := tables.Bishop(sq, occ), fm.BishopRayAttacks(sq, occ); got != want {
				t.Fatalf("bishop %s occ %#x: got %#x want %#x", sq, occ, got, want)
			}
		}
	}
}

func TestMagicIgnoresIrrelevantOccupancy(t *testing.T) {
	tables := fm.Tables()
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 20000; i++ {
		sq := fm.Square(rnd.Intn(64))
		occ := rnd.Uint64() & rnd.Uint64()
		if got, want := tables.Rook(sq, occ), fm.RookRayAttacks(sq, occ); got != want {
			t.Fatalf("rook %s occ %#x: got %#x want %#x", sq, occ, got, want)
		}
		if got, want := tables.Bishop(sq, occ), fm.BishopRayAttacks(sq, occ); got != want {
			t.Fatalf("bishop %s occ %#x: got %#x want %#x", sq, occ, got, want)
		}
		if got := tables.Queen(sq, occ); got != tables.Rook(sq, occ)|tables.Bishop(sq, occ) {
			t.Fatalf("queen %s is not rook|bishop", sq)
		}
	}
}

func TestBlockerSubsets(t *testing.T) {
	mask := fm.RookMask(0)
	subsets := fm.BlockerSubsets(mask)
	if want := 1 << bits.OnesCount64(mask); len(subsets) != want {
		t.Fatalf("got %d subsets want %d", len(subsets), want)
	}
	seen := make(map[uint64]bool, len(subsets))
	for _, s := range subsets {
		if s&^mask != 0 {
			t.Fatalf("subset %#x escapes mask %#x", s, mask)
		}
		if seen[s] {
			t.Fatalf("duplicate subset %#x", s)
		}
		seen[s] = true
	}
}

func TestMasksExcludeEdges(t *testing.T) {
	// a1 rook mask: b1..g1 and a2..a7
	if got := bits.OnesCount64(fm.RookMask(0)); got != 12 {
		t.Fatalf("a1 rook mask bits: got %d want 12", got)
	}
	// d4 bishop mask has 9 relevant squares
	if got := bits.OnesCount64(fm.BishopMask(27)); got != 9 {
		t.Fatalf("d4 bishop mask bits: got %d want 9", got)
	}
}

func TestStepAttacks(t *testing.T) {
	tables := fm.Tables()
	cases := []struct {
		name string
		got  uint64
		want int
	}{
		{"knight a1", tables.Knight(0), 2},
		{"knight d4", tables.Knight(27), 8},
		{"king h8", tables.King(63), 3},
		{"king e4", tables.King(28), 8},
		{"white pawn a2", tables.Pawn(fm.White, 8), 1},
		{"black pawn e7", tables.Pawn(fm.Black, 52), 2},
	}
	for _, c := range cases {
		if n := bits.OnesCount64(c.got); n != c.want {
			t.Errorf("%s: got %d squares want %d", c.name, n, c.want)
		}
	}
	// e2 pawn hits d3 and f3
	if got, want := tables.Pawn(fm.White, 12), uint64(1)<<19|uint64(1)<<21; got != want {
		t.Fatalf("white pawn e2: got %#x want %#x", got, want)
	}
}

func TestBetweenAndLine(t *testing.T) {
	tables := fm.Tables()
	// a1-h8 diagonal
	if got := bits.OnesCount64(tables.Between(0, 63)); got != 6 {
		t.Fatalf("between a1 h8: got %d squares want 6", got)
	}
	if got := tables.Line(0, 63); got != 0x8040201008040201 {
		t.Fatalf("line a1 h8: got %#x", got)
	}
	// e1-e8 file
	if got := tables.Between(4, 60); got != 0x0010101010101000 {
		t.Fatalf("between e1 e8: got %#x", got)
	}
	// adjacent squares have nothing between them
	if got := tables.Between(4, 5); got != 0 {
		t.Fatalf("between e1 f1: got %#x", got)
	}
	// knight-distance squares are unaligned
	if tables.Between(0, 17) != 0 || tables.Line(0, 17) != 0 {
		t.Fatalf("a1 and b3 should be unaligned")
	}
}

func TestTablesShared(t *testing.T) {
	if fm.Tables() != fm.Tables() {
		t.Fatalf("Tables should return a single shared instance")
	}
	if fm.NewBoard().Tables() != fm.Tables() {
		t.Fatalf("boards should share the process tables")
	}
}
