package engine

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	fm "ferrous-engine/ferrousmg"
)

const (
	MaxScore  int32 = 32500
	MateScore int32 = MaxScore - 1
	DrawScore int32 = 0

	MaxDepth     = 32
	DefaultDepth = 4
)

// ErrInvalidDepth is returned by New for a depth outside [1, MaxDepth].
var ErrInvalidDepth = errors.New("search depth out of range")

// Config chooses what the engine plays and how deep it looks.
type Config struct {
	// Side is the color FindBestMove answers for.
	Side  fm.Color
	Depth int
	// Ordering applies at every node, root included.
	Ordering OrderingMode
	// LogPath, when set, receives a debug line per search.
	LogPath string
}

// Result is the outcome of one Search.
type Result struct {
	Move    fm.Move
	Score   int32
	Nodes   uint64
	Cuts    CutStatistics
	Elapsed time.Duration
}

// Engine runs fixed-depth alpha-beta searches. An Engine is not safe for
// concurrent use; give each goroutine its own.
type Engine struct {
	cfg     Config
	logger  *log.Logger
	closer  io.Closer
	killers KillerTable
	nodes   uint64
	cuts    CutStatistics

	lists   [MaxDepth + 1]moveList
	buffers [MaxDepth + 1][]fm.Move
}

// New validates cfg and opens the debug log.
func New(cfg Config) (*Engine, error) {
	if cfg.Depth < 1 || cfg.Depth > MaxDepth {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDepth, cfg.Depth)
	}
	logger, closer, err := openLog(cfg.LogPath)
	if err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, logger: logger, closer: closer}, nil
}

// Close releases the debug log.
func (e *Engine) Close() error {
	if e.closer == nil {
		return nil
	}
	err := e.closer.Close()
	e.closer = nil
	return err
}

func (e *Engine) Config() Config { return e.cfg }

// SetDepth changes the search depth for later searches.
func (e *Engine) SetDepth(depth int) error {
	if depth < 1 || depth > MaxDepth {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	e.cfg.Depth = depth
	return nil
}

func (e *Engine) SetOrdering(mode OrderingMode) { e.cfg.Ordering = mode }

// SetSide changes the color FindBestMove answers for.
func (e *Engine) SetSide(c fm.Color) { e.cfg.Side = c }

// FindBestMove searches b when it is the engine's turn. It returns false
// when the side to move is not the engine's or there is no legal move.
// The board is left as it was found.
func (e *Engine) FindBestMove(b *fm.Board) (fm.Move, bool) {
	if b.SideToMove() != e.cfg.Side {
		return fm.NoMove, false
	}
	res := e.Search(b)
	return res.Move, res.Move != fm.NoMove
}

// Search runs a full-depth search for the side to move, whichever it is.
// White maximizes and Black minimizes the White-positive score. Among
// equally scored moves the first searched wins.
func (e *Engine) Search(b *fm.Board) Result {
	start := time.Now()
	e.nodes = 0
	e.cuts = CutStatistics{}
	e.killers.ClearKillers()

	maximizing := b.SideToMove() == fm.White
	alpha, beta := -MaxScore, MaxScore
	res := Result{Score: -MaxScore}
	if !maximizing {
		res.Score = MaxScore
	}

	ml := e.orderedMoves(b, 0)
	for i := range ml.moves {
		m := ml.pick(i)
		e.play(b, m)
		score := e.alphabeta(b, e.cfg.Depth-1, 1, alpha, beta, !maximizing)
		b.Cancel()

		if res.Move == fm.NoMove || (maximizing && score > res.Score) || (!maximizing && score < res.Score) {
			res.Move, res.Score = m, score
		}
		if maximizing {
			alpha = Max(alpha, score)
		} else {
			beta = Min(beta, score)
		}
	}
	if res.Move == fm.NoMove {
		res.Score = Evaluate(b)
	}

	res.Nodes = e.nodes
	res.Cuts = e.cuts
	res.Elapsed = time.Since(start)
	e.logger.Printf("%s depth %d ordering %s best %s score %s nodes %d time %s fen %q",
		b.SideToMove(), e.cfg.Depth, e.cfg.Ordering, res.Move, FormatScore(res.Score), res.Nodes, res.Elapsed, b.ToFEN())
	return res
}

// play makes m and hands the turn over.
func (e *Engine) play(b *fm.Board, m fm.Move) {
	if err := b.Apply(m); err != nil {
		// Generated moves always apply.
		panic(err)
	}
	b.ToggleTurn()
	b.Refresh()
}

func (e *Engine) orderedMoves(b *fm.Board, ply int) *moveList {
	moves := b.GenerateMovesInto(e.buffers[ply])
	e.buffers[ply] = moves[:0]
	ml := &e.lists[ply]
	fillMoveList(ml, moves, e.cfg.Ordering, ply, &e.killers)
	return ml
}

// alphabeta is minimax with pruning. alpha and beta bound the
// White-positive score; maximizing is true when White is to move.
func (e *Engine) alphabeta(b *fm.Board, depth, ply int, alpha, beta int32, maximizing bool) int32 {
	e.nodes++

	if b.RepetitionCount() >= 2 {
		e.cuts.DrawNodes++
		return DrawScore
	}
	if b.IsDrawBy50() {
		// Mate on the hundredth half-move still wins.
		if b.InCheckmate() {
			e.cuts.MateNodes++
			return mateDistance(Evaluate(b), ply)
		}
		e.cuts.DrawNodes++
		return DrawScore
	}
	if depth == 0 {
		return mateDistance(Evaluate(b), ply)
	}

	ml := e.orderedMoves(b, ply)
	if len(ml.moves) == 0 {
		if !b.Check().InCheck() {
			e.cuts.StalemateNodes++
			return DrawScore
		}
		e.cuts.MateNodes++
		return mateDistance(Evaluate(b), ply)
	}

	if maximizing {
		best := -MaxScore
		for i := range ml.moves {
			m := ml.pick(i)
			e.play(b, m)
			score := e.alphabeta(b, depth-1, ply+1, alpha, beta, false)
			b.Cancel()

			best = Max(best, score)
			alpha = Max(alpha, score)
			if alpha >= beta {
				e.cutoff(m, ply)
				break
			}
		}
		return best
	}

	best := MaxScore
	for i := range ml.moves {
		m := ml.pick(i)
		e.play(b, m)
		score := e.alphabeta(b, depth-1, ply+1, alpha, beta, true)
		b.Cancel()

		best = Min(best, score)
		beta = Min(beta, score)
		if alpha >= beta {
			e.cutoff(m, ply)
			break
		}
	}
	return best
}

// cutoff records a beta cutoff by m; quiet moves become killers.
func (e *Engine) cutoff(m fm.Move, ply int) {
	e.cuts.BetaCutoffs++
	if e.killers.IsKiller(m, ply) {
		e.cuts.KillerCutoffs++
	}
	if !m.IsCapture() {
		e.killers.InsertKiller(m, ply)
	}
}

// mateDistance pulls a mate score toward zero by ply so nearer mates
// score higher for the winner.
func mateDistance(score int32, ply int) int32 {
	switch score {
	case MateScore:
		return MateScore - int32(ply)
	case -MateScore:
		return -MateScore + int32(ply)
	}
	return score
}

// IsMateScore reports whether score stands for a forced mate.
func IsMateScore(score int32) bool { return abs(score) > MateScore-MaxDepth-1 }

// FormatScore renders a score as centipawns, or as "mate N" (N in moves,
// negative when Black mates) for mate scores.
func FormatScore(score int32) string {
	if !IsMateScore(score) {
		return fmt.Sprintf("cp %d", score)
	}
	plies := MateScore - abs(score)
	moves := (plies + 1) / 2
	if score < 0 {
		moves = -moves
	}
	return fmt.Sprintf("mate %d", moves)
}
