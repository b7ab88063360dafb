package main

import (
	"github.com/gdamore/tcell/v2"
)

// Viewer steps through a tour on a full terminal screen
type Viewer struct {
	screen  tcell.Screen
	display *Display
	order   []int
	step    int
	header  string
}

// NewViewer opens the terminal screen. The caller must call Close.
func NewViewer(display *Display, order []int, header string) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newViewer(screen, display, order, header)
}

func newViewer(screen tcell.Screen, display *Display, order []int, header string) (*Viewer, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return &Viewer{
		screen:  screen,
		display: display,
		order:   order,
		step:    len(order),
		header:  header,
	}, nil
}

// Close restores the terminal
func (v *Viewer) Close() {
	v.screen.Fini()
}

// Run draws and handles keys until the user quits. Left/right move one
// stop, Home/End jump to the ends, q or Esc quits.
func (v *Viewer) Run() {
	for {
		v.draw()
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return
			}
		case nil:
			return
		}
	}
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		v.step = max(v.step-1, min(1, len(v.order)))
	case tcell.KeyRight:
		v.step = min(v.step+1, len(v.order))
	case tcell.KeyHome:
		v.step = min(1, len(v.order))
	case tcell.KeyEnd:
		v.step = len(v.order)
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return false
		}
	}
	return true
}

func (v *Viewer) draw() {
	v.screen.Clear()
	plain := tcell.StyleDefault
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	v.text(0, 0, v.header, plain.Bold(true))

	order := v.order[:v.step]
	grid := v.display.Grid(order)
	rows := len(grid)
	for y := rows - 1; y >= 0; y-- {
		sy := 1 + rows - 1 - y
		for x, r := range grid[y] {
			v.screen.SetContent(x, sy, r, nil, cellStyle(r))
		}
	}

	v.text(0, rows+1, v.display.Status(order), plain)
	v.text(0, rows+2, "←/→ step  Home/End jump  q quit", dim)
	v.screen.Show()
}

func (v *Viewer) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func cellStyle(r rune) tcell.Style {
	switch r {
	case 'S':
		return tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	case '@':
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	case 'o':
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	case '*':
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
	return tcell.StyleDefault
}
