package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	fm "ferrous-engine/ferrousmg"

	"github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func main() {
	fen := flag.String("fen", fm.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	oracle := flag.String("oracle", "", "Cross-check the root divide against a reference generator: dragontooth or goose")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := fm.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *oracle != "" {
		var ref map[string]uint64
		switch *oracle {
		case "dragontooth":
			ref = dragontoothDivide(*fen, *depth)
		case "goose":
			ref, err = gooseDivide(*fen, *depth)
		default:
			err = fmt.Errorf("unknown oracle %q", *oracle)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "oracle: %v\n", err)
			os.Exit(2)
		}
		if diffs := compareDivide(stringDivide(fm.PerftDivide(board, *depth)), ref); diffs > 0 {
			fmt.Printf("%d root moves disagree with %s\n", diffs, *oracle)
			os.Exit(1)
		}
		fmt.Printf("divide matches %s at depth %d\n", *oracle, *depth)
		return
	}

	// Optional divide output
	if *divide {
		div := stringDivide(fm.PerftDivide(board, *depth))
		keys := maps.Keys(div)
		slices.Sort(keys)
		var sum uint64
		for _, k := range keys {
			fmt.Printf("%s: %d\n", k, div[k])
			sum += div[k]
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	// Optional CPU profiling
	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	// Timing loop
	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += fm.Perft(board, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	// Optional heap profile after run
	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}

func stringDivide(div map[fm.Move]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(div))
	for m, n := range div {
		out[m.String()] = n
	}
	return out
}

// compareDivide prints every root move whose count differs and returns
// how many did.
func compareDivide(ours, ref map[string]uint64) int {
	seen := make(map[string]bool, len(ours)+len(ref))
	for _, k := range maps.Keys(ours) {
		seen[k] = true
	}
	for _, k := range maps.Keys(ref) {
		seen[k] = true
	}
	keys := maps.Keys(seen)
	slices.Sort(keys)

	diffs := 0
	for _, k := range keys {
		a, okA := ours[k]
		b, okB := ref[k]
		switch {
		case !okA:
			fmt.Printf("%s: missing (reference %d)\n", k, b)
		case !okB:
			fmt.Printf("%s: %d (not legal for reference)\n", k, a)
		case a != b:
			fmt.Printf("%s: %d (reference %d)\n", k, a, b)
		default:
			continue
		}
		diffs++
	}
	return diffs
}

func gooseDivide(fen string, depth int) (map[string]uint64, error) {
	board, err := goosemg.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	out := make(map[string]uint64)
	for m, n := range goosemg.PerftDivide(board, depth) {
		out[m.String()] = n
	}
	return out, nil
}

func dragontoothDivide(fen string, depth int) map[string]uint64 {
	board := dragontoothmg.ParseFen(fen)
	out := make(map[string]uint64)
	for _, m := range board.GenerateLegalMoves() {
		unapply := board.Apply(m)
		out[m.String()] = dragontoothPerft(&board, depth-1)
		unapply()
	}
	return out
}

func dragontoothPerft(board *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := board.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := board.Apply(m)
		nodes += dragontoothPerft(board, depth-1)
		unapply()
	}
	return nodes
}
