// interface.go - Terminal rendering of the board with termbox
package main

import (
	"fmt"
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	"gesturegame/game"
)

// Cores do tabuleiro
const (
	corBorda   = termbox.ColorWhite
	corJogador = termbox.ColorGreen | termbox.AttrBold
	corAlvo    = termbox.ColorRed | termbox.AttrBold
	corTexto   = termbox.ColorDefault
	corFundo   = termbox.ColorDefault
)

const (
	runeJogador = '@'
	runeAlvo    = '*'
)

type setCellFunc func(x, y int, ch rune, fg, bg termbox.Attribute)

// TermView draws the game on the terminal. One board cell covers cellPx
// pixels in each direction. Methods may be called from the runner goroutine
// and from the main loop on resize.
type TermView struct {
	mu      sync.Mutex
	cellPx  int
	board   game.Size
	player  game.Point
	target  game.Point
	score   int
	high    int
	gesture string

	setCell setCellFunc
	clear   func()
	flush   func() error
}

func NewTermView(board game.Size, cellPx int) *TermView {
	if cellPx <= 0 {
		cellPx = 20
	}
	return &TermView{
		cellPx:  cellPx,
		board:   board,
		setCell: termbox.SetCell,
		clear:   func() { termbox.Clear(corTexto, corFundo) },
		flush:   termbox.Flush,
	}
}

// interfaceIniciar puts the terminal in full-screen mode.
func interfaceIniciar() error {
	if err := termbox.Init(); err != nil {
		return err
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()
	return nil
}

func interfaceFinalizar() {
	termbox.Close()
}

func (v *TermView) ShowPlayer(p game.Point) { v.update(func() { v.player = p }) }
func (v *TermView) ShowTarget(p game.Point) { v.update(func() { v.target = p }) }
func (v *TermView) ShowScore(n int)         { v.update(func() { v.score = n }) }
func (v *TermView) ShowHighScore(n int)     { v.update(func() { v.high = n }) }
func (v *TermView) ShowGesture(s string)    { v.update(func() { v.gesture = s }) }

// Redraw repaints everything, e.g. after a resize.
func (v *TermView) Redraw() { v.update(func() {}) }

func (v *TermView) update(change func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	change()
	if v.setCell == nil {
		return
	}
	if v.clear != nil {
		v.clear()
	}
	v.draw()
	if v.flush != nil {
		v.flush()
	}
}

// cols and rows are the board's inner size in cells.
func (v *TermView) cols() int { return (v.board.W + v.cellPx - 1) / v.cellPx }
func (v *TermView) rows() int { return (v.board.H + v.cellPx - 1) / v.cellPx }

// cell maps a pixel offset to a screen cell inside the border.
func (v *TermView) cell(p game.Point) (int, int) {
	return 1 + p.X/v.cellPx, 1 + p.Y/v.cellPx
}

func (v *TermView) draw() {
	cols, rows := v.cols(), v.rows()
	v.drawBorder(cols+1, rows+1)

	tx, ty := v.cell(v.target)
	v.setCell(tx, ty, runeAlvo, corAlvo, corFundo)
	// The player is drawn last so it stays visible on top of the target.
	px, py := v.cell(v.player)
	v.setCell(px, py, runeJogador, corJogador, corFundo)

	gesture := v.gesture
	if gesture == "" {
		gesture = "-"
	}
	status := fmt.Sprintf("Score: %d  High Score: %d  Gesture: %s", v.score, v.high, gesture)
	v.print(0, rows+2, status, corTexto)
	v.print(0, rows+3, "ESC/q: quit", corTexto)
}

func (v *TermView) drawBorder(right, bottom int) {
	for x := 1; x < right; x++ {
		v.setCell(x, 0, '─', corBorda, corFundo)
		v.setCell(x, bottom, '─', corBorda, corFundo)
	}
	for y := 1; y < bottom; y++ {
		v.setCell(0, y, '│', corBorda, corFundo)
		v.setCell(right, y, '│', corBorda, corFundo)
	}
	v.setCell(0, 0, '┌', corBorda, corFundo)
	v.setCell(right, 0, '┐', corBorda, corFundo)
	v.setCell(0, bottom, '└', corBorda, corFundo)
	v.setCell(right, bottom, '┘', corBorda, corFundo)
}

func (v *TermView) print(x, y int, msg string, fg termbox.Attribute) {
	for _, c := range msg {
		v.setCell(x, y, c, fg, corFundo)
		x += runewidth.RuneWidth(c)
	}
}

// interfaceLerEventoTeclado blocks until the player quits, the terminal
// fails or termbox.Interrupt is called. Resizes repaint the board.
func interfaceLerEventoTeclado(view *TermView) {
	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventKey:
			if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q' {
				return
			}
		case termbox.EventResize:
			view.Redraw()
		case termbox.EventError, termbox.EventInterrupt:
			return
		}
	}
}
