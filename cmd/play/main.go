package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"ferrous-engine/engine"
	fm "ferrous-engine/ferrousmg"

	"github.com/gdamore/tcell/v2"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	defaultDepth, err := strconv.Atoi(getenv("FERROUS_DEPTH", strconv.Itoa(engine.DefaultDepth)))
	if err != nil {
		log.Fatalf("FERROUS_DEPTH: %v", err)
	}
	depth := flag.Int("depth", defaultDepth, "engine search depth in plies")
	side := flag.String("side", "white", "color you play: white or black")
	fen := flag.String("fen", fm.FENStartPos, "starting position")
	ordering := flag.String("ordering", "heuristic", "engine move ordering: heuristic or captures")
	logPath := flag.String("log", getenv("FERROUS_LOG", ""), "append engine debug lines to this file")
	flag.Parse()

	human := fm.White
	switch *side {
	case "white":
	case "black":
		human = fm.Black
	default:
		log.Fatalf("-side must be white or black, got %q", *side)
	}
	mode, err := engine.ParseOrdering(*ordering)
	if err != nil {
		log.Fatalf("%v", err)
	}
	board, err := fm.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("could not parse FEN: %v", err)
	}
	eng, err := engine.New(engine.Config{Side: human.Other(), Depth: *depth, Ordering: mode, LogPath: *logPath})
	if err != nil {
		log.Fatalf("could not create engine: %v", err)
	}
	defer eng.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("could not create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("could not init screen: %v", err)
	}
	defer screen.Fini()

	newGame(screen, board, eng, human).run()
}
