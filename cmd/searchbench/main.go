package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"ferrous-engine/engine"
	fm "ferrous-engine/ferrousmg"
)

func main() {
	// --- Flags ---
	depthFlag := flag.Int("depth", engine.DefaultDepth, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	orderingFlag := flag.String("ordering", "heuristic", "move ordering: heuristic or captures")
	logFlag := flag.String("log", "", "append engine debug lines to this file")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}
	ordering, err := engine.ParseOrdering(*orderingFlag)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// --- Optional CPU profiling setup ---
	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	// FEN selection
	fen := fm.FENStartPos
	if *fenFlag != "" {
		fen = *fenFlag
	}
	board, err := fm.ParseFEN(fen)
	if err != nil {
		log.Fatalf("could not parse FEN: %v", err)
	}

	eng, err := engine.New(engine.Config{
		Side:     board.SideToMove(),
		Depth:    *depthFlag,
		Ordering: ordering,
		LogPath:  *logFlag,
	})
	if err != nil {
		log.Fatalf("could not create engine: %v", err)
	}
	defer eng.Close()

	fmt.Printf("searchbench: fen=%q depth=%d ordering=%s repeat=%d\n", fen, *depthFlag, ordering, *repeatFlag)

	var totalNodes uint64
	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		res := eng.Search(board)
		totalNodes += res.Nodes
		fmt.Printf("iteration %d: bestmove %v  score=%s  nodes=%d  cutoffs=%d  time=%v\n",
			i+1, res.Move, engine.FormatScore(res.Score), res.Nodes, res.Cuts.BetaCutoffs, res.Elapsed)
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v  nps: %.0f\n", totalElapsed, float64(totalNodes)/totalElapsed.Seconds())

	// --- Optional heap profile at the end ---
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
	}
}
