package main

import (
	"bytes"
	"strings"
	"testing"

	"ferrous-engine/engine"
	fm "ferrous-engine/ferrousmg"
)

func runUCI(t *testing.T, script string) []string {
	t.Helper()
	eng, err := engine.New(engine.Config{Side: fm.White, Depth: 2})
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	defer eng.Close()
	var out bytes.Buffer
	uciLoop(strings.NewReader(script), &out, eng)
	return strings.Split(strings.TrimSpace(out.String()), "\n")
}

func lastLine(lines []string, prefix string) string {
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(lines[i], prefix) {
			return lines[i]
		}
	}
	return ""
}

func TestUCIHandshake(t *testing.T) {
	lines := runUCI(t, "uci\nisready\nquit\n")
	if lastLine(lines, "uciok") == "" || lastLine(lines, "readyok") == "" {
		t.Fatalf("missing handshake replies: %q", lines)
	}
	if lastLine(lines, "option name Depth") == "" {
		t.Fatalf("Depth option not advertised: %q", lines)
	}
}

func TestUCIPositionWithMoves(t *testing.T) {
	lines := runUCI(t, "position startpos moves e2e4 e7e5 g1f3\nd\n")
	want := "info string fen rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"
	if got := lastLine(lines, "info string fen"); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUCIRejectsIllegalMove(t *testing.T) {
	lines := runUCI(t, "position startpos moves e2e5\n")
	if !strings.Contains(lastLine(lines, "info string Move"), "e2e5") {
		t.Fatalf("illegal move not reported: %q", lines)
	}
}

func TestUCIGoFindsMate(t *testing.T) {
	lines := runUCI(t, "position fen 6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1\ngo depth 2\n")
	if got := lastLine(lines, "bestmove"); got != "bestmove a1a8" {
		t.Fatalf("got %q: %q", got, lines)
	}
	if !strings.Contains(lastLine(lines, "info depth"), "score mate 1") {
		t.Fatalf("mate score not reported: %q", lines)
	}
}

func TestUCIGoClampsDepth(t *testing.T) {
	lines := runUCI(t, "position startpos\ngo depth 0\n")
	if !strings.HasPrefix(lastLine(lines, "info depth"), "info depth 1 ") {
		t.Fatalf("depth not clamped: %q", lines)
	}
	if lastLine(lines, "info string Invalid depth") != "" || lastLine(lines, "bestmove") == "" {
		t.Fatalf("go with a clamped depth failed: %q", lines)
	}
}

func TestUCISetOption(t *testing.T) {
	lines := runUCI(t, "setoption name Ordering value captures\nsetoption name CutStats value true\nsetoption name Depth value 1\ngo\n")
	if lastLine(lines, "info string Cut statistics:") == "" {
		t.Fatalf("cut statistics not printed: %q", lines)
	}
	if !strings.HasPrefix(lastLine(lines, "info depth"), "info depth 1 ") {
		t.Fatalf("depth option ignored: %q", lines)
	}
	lines = runUCI(t, "setoption name Ordering value random\n")
	if lastLine(lines, "info string") == "" {
		t.Fatalf("bad ordering accepted: %q", lines)
	}
}

func TestUCIPerft(t *testing.T) {
	lines := runUCI(t, "position startpos\nperft 3\n")
	if got := lastLine(lines, "info string nodes"); got != "info string nodes 8902" {
		t.Fatalf("got %q", got)
	}
}

func BenchmarkUCIGo(b *testing.B) {
	eng, err := engine.New(engine.Config{Side: fm.White, Depth: 3})
	if err != nil {
		b.Fatalf("engine.New: %v", err)
	}
	defer eng.Close()
	for i := 0; i < b.N; i++ {
		uciLoop(strings.NewReader("position startpos\ngo\n"), &bytes.Buffer{}, eng)
	}
}
