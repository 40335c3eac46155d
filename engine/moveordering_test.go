package engine

import (
	"testing"

	fm "ferrous-engine/ferrousmg"
)

func square(coord string) fm.Square {
	sq, err := fm.ParseSquare(coord)
	if err != nil {
		panic(err)
	}
	return sq
}

func TestScoreMoveRanksCaptures(t *testing.T) {
	var killers KillerTable
	pxq := fm.NewMove(square("e4"), square("d5"), fm.WhitePawn, fm.BlackQueen, fm.NoPiece, fm.FlagNone)
	kxq := fm.NewMove(square("e4"), square("d5"), fm.WhiteKing, fm.BlackQueen, fm.NoPiece, fm.FlagNone)
	qxp := fm.NewMove(square("e4"), square("d5"), fm.WhiteQueen, fm.BlackPawn, fm.NoPiece, fm.FlagNone)
	quiet := fm.NewMove(square("a2"), square("a3"), fm.WhitePawn, fm.NoPiece, fm.NoPiece, fm.FlagNone)

	sPxQ := scoreMove(pxq, 0, &killers)
	sKxQ := scoreMove(kxq, 0, &killers)
	sQxP := scoreMove(qxp, 0, &killers)
	sQuiet := scoreMove(quiet, 0, &killers)

	if !(sPxQ > sKxQ && sKxQ > sQxP && sQxP > sQuiet) {
		t.Fatalf("capture ordering wrong: PxQ %d KxQ %d QxP %d quiet %d", sPxQ, sKxQ, sQxP, sQuiet)
	}
	if base := sPxQ - captureOffset; base < 33 || base > 34 {
		t.Fatalf("PxQ scored %d above the capture offset, want 33 plus improvement", base)
	}
}

// improvingPawnCapture finds a white pawn capture onto a better square.
func improvingPawnCapture(t *testing.T, victim fm.Piece) fm.Move {
	t.Helper()
	for from := fm.NewSquare(0, 1); from < fm.NewSquare(0, 6); from++ {
		if from.File() == 7 {
			continue
		}
		m := fm.NewMove(from, from+9, fm.WhitePawn, victim, fm.NoPiece, fm.FlagNone)
		if improves(m) {
			return m
		}
	}
	t.Fatalf("no improving pawn capture found")
	return fm.NoMove
}

func TestCaptureTiersDoNotOverlap(t *testing.T) {
	var killers KillerTable
	victims := []fm.Piece{fm.BlackPawn, fm.BlackKnight, fm.BlackBishop, fm.BlackRook, fm.BlackQueen}
	for i := 0; i+1 < len(victims); i++ {
		best := scoreMove(improvingPawnCapture(t, victims[i]), 0, &killers)
		worst := scoreMove(fm.NewMove(square("e4"), square("d5"), fm.WhiteKing, victims[i+1], fm.NoPiece, fm.FlagNone), 0, &killers)
		if best >= worst {
			t.Fatalf("PxV%d (%d) not below KxV%d (%d)", i, best, i+1, worst)
		}
	}
}

func TestScoreMovePromotionAndKiller(t *testing.T) {
	var killers KillerTable
	promo := fm.NewMove(square("a7"), square("a8"), fm.WhitePawn, fm.NoPiece, fm.WhiteQueen, fm.FlagNone)
	capture := fm.NewMove(square("b7"), square("a8"), fm.WhitePawn, fm.BlackRook, fm.NoPiece, fm.FlagNone)
	killer := fm.NewMove(square("g1"), square("f3"), fm.WhiteKnight, fm.NoPiece, fm.NoPiece, fm.FlagNone)
	quiet := fm.NewMove(square("h2"), square("h3"), fm.WhitePawn, fm.NoPiece, fm.NoPiece, fm.FlagNone)

	killers.InsertKiller(killer, 3)
	if got := scoreMove(promo, 3, &killers); got < promotionOffset {
		t.Fatalf("promotion scored %d", got)
	}
	if scoreMove(promo, 3, &killers) <= scoreMove(capture, 3, &killers) {
		t.Fatalf("promotion should outrank a plain capture")
	}
	if got := scoreMove(killer, 3, &killers); got < killerOffset {
		t.Fatalf("killer scored %d at its own ply", got)
	}
	if got := scoreMove(killer, 4, &killers); got >= killerOffset {
		t.Fatalf("killer scored %d at another ply", got)
	}
	if scoreMove(killer, 3, &killers) <= scoreMove(quiet, 3, &killers) {
		t.Fatalf("killer should outrank a quiet move")
	}
}

func TestCapturesFirstIsStable(t *testing.T) {
	var killers KillerTable
	a := fm.NewMove(square("a2"), square("a3"), fm.WhitePawn, fm.NoPiece, fm.NoPiece, fm.FlagNone)
	b := fm.NewMove(square("b2"), square("c3"), fm.WhitePawn, fm.BlackKnight, fm.NoPiece, fm.FlagNone)
	c := fm.NewMove(square("g1"), square("f3"), fm.WhiteKnight, fm.NoPiece, fm.NoPiece, fm.FlagNone)
	d := fm.NewMove(square("d1"), square("d7"), fm.WhiteQueen, fm.BlackPawn, fm.NoPiece, fm.FlagNone)

	var ml moveList
	fillMoveList(&ml, []fm.Move{a, b, c, d}, OrderCapturesFirst, 0, &killers)
	want := []fm.Move{b, d, a, c}
	for i := range want {
		if got := ml.pick(i); got != want[i] {
			t.Fatalf("index %d: got %s, want %s", i, got, want[i])
		}
	}
}

func TestOrderNextMovePicksHighest(t *testing.T) {
	ml := moveList{moves: []move{{move: 1, score: 3}, {move: 2, score: 9}, {move: 3, score: 5}}}
	var order []fm.Move
	for i := range ml.moves {
		order = append(order, ml.pick(i))
	}
	if order[0] != 2 || order[1] != 3 || order[2] != 1 {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestKillerTable(t *testing.T) {
	var k KillerTable
	m1, m2, m3 := fm.Move(11), fm.Move(22), fm.Move(33)
	k.InsertKiller(m1, 2)
	k.InsertKiller(m1, 2)
	if k.KillerMoves[2][1] != fm.NoMove {
		t.Fatalf("duplicate insert shifted the table")
	}
	k.InsertKiller(m2, 2)
	k.InsertKiller(m3, 2)
	if k.KillerMoves[2] != [2]fm.Move{m3, m2} {
		t.Fatalf("unexpected killers %v", k.KillerMoves[2])
	}
	if k.IsKiller(m1, 2) || !k.IsKiller(m2, 2) || k.IsKiller(m3, 1) {
		t.Fatalf("IsKiller disagrees with the table")
	}
	if k.IsKiller(fm.NoMove, 0) {
		t.Fatalf("an empty slot matched NoMove")
	}
	k.ClearKillers()
	if k.IsKiller(m3, 2) {
		t.Fatalf("ClearKillers left moves behind")
	}
}

func TestParseOrdering(t *testing.T) {
	for _, mode := range []OrderingMode{OrderHeuristic, OrderCapturesFirst} {
		got, err := ParseOrdering(mode.String())
		if err != nil || got != mode {
			t.Fatalf("round trip of %s gave %v, %v", mode, got, err)
		}
	}
	if _, err := ParseOrdering("random"); err == nil {
		t.Fatalf("expected an error for an unknown mode")
	}
}
