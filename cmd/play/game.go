package main

import (
	"fmt"
	"strings"

	"ferrous-engine/engine"
	fm "ferrous-engine/ferrousmg"

	"github.com/gdamore/tcell/v2"
)

const (
	boardX      = 3
	boardY      = 1
	squareWidth = 3
)

var (
	lightSquare = tcell.NewRGBColor(240, 217, 181)
	darkSquare  = tcell.NewRGBColor(181, 136, 99)
)

// game is the terminal front end: it draws the board, turns key presses
// into moves and lets the engine answer.
type game struct {
	screen   tcell.Screen
	board    *fm.Board
	eng      *engine.Engine
	human    fm.Color
	cursor   fm.Square
	selected fm.Square
	status   string
	info     string
}

func newGame(screen tcell.Screen, board *fm.Board, eng *engine.Engine, human fm.Color) *game {
	cursor := fm.NewSquare(4, 1)
	if human == fm.Black {
		cursor = fm.NewSquare(4, 6)
	}
	return &game{
		screen:   screen,
		board:    board,
		eng:      eng,
		human:    human,
		cursor:   cursor,
		selected: fm.NoSquare,
		status:   "arrows move, enter selects, u undoes, q quits",
	}
}

func (g *game) run() {
	g.engineTurn()
	for {
		g.draw()
		switch ev := g.screen.PollEvent().(type) {
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			if !g.handleKey(ev) {
				return
			}
		}
	}
}

// handleKey returns false when the player quits.
func (g *game) handleKey(ev *tcell.EventKey) bool {
	up := 1
	if g.human == fm.Black {
		up = -1
	}
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		g.moveCursor(0, up)
	case tcell.KeyDown:
		g.moveCursor(0, -up)
	case tcell.KeyLeft:
		g.moveCursor(-up, 0)
	case tcell.KeyRight:
		g.moveCursor(up, 0)
	case tcell.KeyEnter:
		g.activate()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			g.activate()
		case 'u':
			g.undo()
		}
	}
	return true
}

func (g *game) moveCursor(df, dr int) {
	file := engine.Clamp(g.cursor.File()+df, 0, 7)
	rank := engine.Clamp(g.cursor.Rank()+dr, 0, 7)
	g.cursor = fm.NewSquare(file, rank)
}

// activate selects the piece under the cursor or moves the selected one there.
func (g *game) activate() {
	if _, over := g.outcome(); over || g.board.SideToMove() != g.human {
		return
	}
	p := g.board.PieceAt(g.cursor)
	switch {
	case p != fm.NoPiece && p.Color() == g.human && g.cursor != g.selected:
		g.selected = g.cursor
		return
	case g.selected == fm.NoSquare || g.cursor == g.selected:
		g.selected = fm.NoSquare
		return
	}

	m, err := g.board.ResolveMove(g.selected, g.cursor, g)
	if err != nil {
		g.status = err.Error()
		return
	}
	if err := g.board.PlayMove(m); err != nil {
		g.status = err.Error()
		return
	}
	g.selected = fm.NoSquare
	g.status = "you played " + m.String()
	g.engineTurn()
}

// ChoosePromotion asks the player for a promotion piece.
func (g *game) ChoosePromotion(from, to fm.Square) fm.PieceType {
	g.status = fmt.Sprintf("promote %s%s to: q r b n", from, to)
	for {
		g.draw()
		ev, ok := g.screen.PollEvent().(*tcell.EventKey)
		if !ok {
			continue
		}
		if ev.Key() == tcell.KeyEscape {
			return fm.PieceTypeQueen
		}
		switch ev.Rune() {
		case 'q':
			return fm.PieceTypeQueen
		case 'r':
			return fm.PieceTypeRook
		case 'b':
			return fm.PieceTypeBishop
		case 'n':
			return fm.PieceTypeKnight
		}
	}
}

func (g *game) engineTurn() {
	if msg, over := g.outcome(); over {
		g.status = msg
		return
	}
	if g.board.SideToMove() == g.human {
		return
	}
	g.info = "thinking..."
	g.draw()
	res := g.eng.Search(g.board)
	if res.Move == fm.NoMove {
		return
	}
	if err := g.board.PlayMove(res.Move); err != nil {
		g.status = err.Error()
		return
	}
	g.info = fmt.Sprintf("engine %s  %s  nodes %d  %s", res.Move, engine.FormatScore(res.Score), res.Nodes, res.Elapsed.Round(1e6))
	if msg, over := g.outcome(); over {
		g.status = msg
	}
}

// undo takes back moves until it is the player's turn again.
func (g *game) undo() {
	if g.board.Depth() == 0 {
		return
	}
	g.board.Cancel()
	for g.board.Depth() > 0 && g.board.SideToMove() != g.human {
		g.board.Cancel()
	}
	g.selected = fm.NoSquare
	g.status = "took back"
	g.info = ""
}

func (g *game) outcome() (string, bool) {
	switch {
	case g.board.InCheckmate():
		return fmt.Sprintf("checkmate, %s wins", g.board.SideToMove().Other()), true
	case g.board.InStalemate():
		return "stalemate", true
	case g.board.IsDrawBy50():
		return "draw by the fifty-move rule", true
	case g.board.RepetitionCount() >= 2:
		return "draw by repetition", true
	}
	return "", false
}

// squareAt maps a screen row and column to a board square, White at the
// bottom when the player is White.
func (g *game) squareAt(row, col int) fm.Square {
	if g.human == fm.Black {
		return fm.NewSquare(7-col, row)
	}
	return fm.NewSquare(col, 7-row)
}

func (g *game) draw() {
	s := g.screen
	s.Clear()
	var dests uint64
	if g.selected != fm.NoSquare {
		dests = g.board.LegalDestinations(g.selected)
	}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := g.squareAt(row, col)
			bg := darkSquare
			if (sq.File()+sq.Rank())%2 == 1 {
				bg = lightSquare
			}
			switch {
			case sq == g.cursor:
				bg = tcell.ColorBlue
			case sq == g.selected:
				bg = tcell.ColorYellow
			case dests&(1<<uint(sq)) != 0:
				bg = tcell.ColorGreen
			}
			p := g.board.PieceAt(sq)
			fg := tcell.ColorWhite
			if p != fm.NoPiece && p.Color() == fm.Black {
				fg = tcell.ColorBlack
			}
			style := tcell.StyleDefault.Background(bg).Foreground(fg).Bold(true)
			label := " " + strings.ToUpper(p.String()) + " "
			drawText(s, boardX+col*squareWidth, boardY+row, style, label)
		}
		rank := g.squareAt(row, 0).Rank()
		drawText(s, boardX-2, boardY+row, tcell.StyleDefault, string(rune('1'+rank)))
	}
	for col := 0; col < 8; col++ {
		file := g.squareAt(0, col).File()
		drawText(s, boardX+col*squareWidth+1, boardY+8, tcell.StyleDefault, string(rune('a'+file)))
	}

	turn := fmt.Sprintf("%s to move", g.board.SideToMove())
	if g.board.Check().InCheck() {
		turn += ", check"
	}
	drawText(s, boardX, boardY+10, tcell.StyleDefault, turn)
	drawText(s, boardX, boardY+11, tcell.StyleDefault, g.info)
	drawText(s, boardX, boardY+12, tcell.StyleDefault, g.status)
	drawText(s, boardX, boardY+13, tcell.StyleDefault.Dim(true), g.board.ToFEN())
	s.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
