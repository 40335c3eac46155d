package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"ferrous-engine/engine"
	fm "ferrous-engine/ferrousmg"
)

func main() {
	cfg, err := configFromEnv()
	if err != nil {
		log.Fatalf("ferrous: %v", err)
	}
	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatalf("ferrous: %v", err)
	}
	defer eng.Close()
	uciLoop(os.Stdin, os.Stdout, eng)
}

// configFromEnv reads FERROUS_DEPTH and FERROUS_LOG.
func configFromEnv() (engine.Config, error) {
	cfg := engine.Config{Side: fm.White, Depth: engine.DefaultDepth, Ordering: engine.OrderHeuristic}
	if v := os.Getenv("FERROUS_DEPTH"); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("FERROUS_DEPTH: %w", err)
		}
		cfg.Depth = depth
	}
	cfg.LogPath = os.Getenv("FERROUS_LOG")
	return cfg, nil
}

type uciSession struct {
	out      io.Writer
	board    *fm.Board
	engine   *engine.Engine
	cutStats bool
}

func uciLoop(in io.Reader, out io.Writer, eng *engine.Engine) {
	s := &uciSession{out: out, board: fm.MustParseFEN(fm.FENStartPos), engine: eng}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			s.println("id name Ferrous")
			s.println("id author Ferrous developers")
			s.println("option name Depth type spin default", eng.Config().Depth, "min 1 max", engine.MaxDepth)
			s.println("option name Ordering type combo default", eng.Config().Ordering, "var heuristic var captures")
			s.println("option name CutStats type check default false")
			s.println("uciok")
		case "isready":
			s.println("readyok")
		case "ucinewgame":
			s.board = fm.MustParseFEN(fm.FENStartPos)
		case "quit":
			return
		case "position":
			s.position(tokens[1:])
		case "go":
			s.search(tokens[1:])
		case "setoption":
			s.setOption(tokens[1:])
		case "eval":
			s.println("info string eval", engine.FormatScore(engine.Evaluate(s.board)))
		case "d":
			s.println("info string fen", s.board.ToFEN())
		case "perft":
			s.perft(tokens[1:])
		default:
			s.println("info string Unknown command:", line)
		}
	}
}

func (s *uciSession) println(args ...any) { fmt.Fprintln(s.out, args...) }

func (s *uciSession) position(tokens []string) {
	if len(tokens) == 0 {
		s.println("info string Malformed position command")
		return
	}
	rest := tokens[1:]
	var board *fm.Board
	switch strings.ToLower(tokens[0]) {
	case "startpos":
		board = fm.MustParseFEN(fm.FENStartPos)
	case "fen":
		end := len(rest)
		for i, tok := range rest {
			if strings.ToLower(tok) == "moves" {
				end = i
				break
			}
		}
		var err error
		board, err = fm.ParseFEN(strings.Join(rest[:end], " "))
		if err != nil {
			s.println("info string Invalid fen position:", err)
			return
		}
		rest = rest[end:]
	default:
		s.println("info string Invalid position subcommand")
		return
	}
	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, text := range rest[1:] {
			m, err := board.ParseMove(strings.ToLower(text))
			if err == nil {
				err = board.PlayMove(m)
			}
			if err != nil {
				s.println("info string Move", text, "not found for position", board.ToFEN())
				break
			}
		}
	}
	s.board = board
}

func (s *uciSession) search(tokens []string) {
	depth := s.engine.Config().Depth
	for i := 0; i < len(tokens); i++ {
		switch strings.ToLower(tokens[i]) {
		case "depth":
			if i+1 >= len(tokens) {
				s.println("info string Malformed go command option depth")
				continue
			}
			i++
			n, err := strconv.Atoi(tokens[i])
			if err != nil {
				s.println("info string Malformed go command option; could not convert depth")
				continue
			}
			depth = engine.Clamp(n, 1, engine.MaxDepth)
		case "infinite":
		default:
			s.println("info string Unknown go subcommand", tokens[i])
		}
	}

	saved := s.engine.Config().Depth
	if err := s.engine.SetDepth(depth); err != nil {
		s.println("info string Invalid depth:", err)
		return
	}
	s.engine.SetSide(s.board.SideToMove())
	res := s.engine.Search(s.board)
	s.engine.SetDepth(saved)

	s.println("info depth", depth, "score", engine.FormatScore(res.Score), "nodes", res.Nodes,
		"time", res.Elapsed.Milliseconds(), "pv", res.Move)
	if s.cutStats {
		for _, line := range res.Cuts.Lines() {
			s.println("info string", line)
		}
	}
	s.println("bestmove", res.Move)
}

// setOption handles "setoption name <id> value <x>".
func (s *uciSession) setOption(tokens []string) {
	if len(tokens) < 4 || strings.ToLower(tokens[0]) != "name" || strings.ToLower(tokens[2]) != "value" {
		s.println("info string Malformed setoption command")
		return
	}
	name, value := strings.ToLower(tokens[1]), strings.ToLower(tokens[3])
	switch name {
	case "depth":
		n, err := strconv.Atoi(value)
		if err == nil {
			err = s.engine.SetDepth(n)
		}
		if err != nil {
			s.println("info string Invalid depth:", err)
		}
	case "ordering":
		mode, err := engine.ParseOrdering(value)
		if err != nil {
			s.println("info string", err)
			return
		}
		s.engine.SetOrdering(mode)
	case "cutstats":
		s.cutStats = value == "true"
	default:
		s.println("info string Unknown option", tokens[1])
	}
}

func (s *uciSession) perft(tokens []string) {
	if len(tokens) == 0 {
		s.println("info string Malformed perft command")
		return
	}
	depth, err := strconv.Atoi(tokens[0])
	if err != nil || depth < 0 {
		s.println("info string Invalid perft depth")
		return
	}
	s.println("info string nodes", fm.Perft(s.board, depth))
}
