package display

import (
	"fmt"

	"github.com/lixenwraith/wavetrail/terminal"
)

// ANSI paints into a cell buffer and flushes it through the terminal package
type ANSI struct {
	term    terminal.Terminal
	palette Palette
	geo     Geometry
	cells   []terminal.Cell
}

// NewANSI creates a backend over term; Init must be called before drawing
func NewANSI(term terminal.Terminal, palette Palette) *ANSI {
	return &ANSI{term: term, palette: palette}
}

// Init enters raw mode and the alternate screen, and snapshots the geometry
func (a *ANSI) Init() (Geometry, error) {
	if err := a.term.Init(); err != nil {
		return Geometry{}, fmt.Errorf("terminal init: %w", err)
	}
	a.term.SetCursorVisible(false)

	w, h := a.term.Size()
	a.geo = Geometry{Rows: h, Cols: w}
	if w > 0 && h > 0 {
		a.cells = make([]terminal.Cell, w*h)
		for i := range a.cells {
			a.cells[i] = terminal.Blank
		}
	}
	return a.geo, nil
}

// WriteChar stores glyph in the back buffer
func (a *ANSI) WriteChar(row, col int, glyph rune, attr Attr) {
	if !a.geo.Contains(row, col) {
		return
	}
	a.cells[row*a.geo.Cols+col] = a.cell(glyph, attr)
}

// cell builds the terminal cell for glyph in attr's pen
func (a *ANSI) cell(glyph rune, attr Attr) terminal.Cell {
	c := terminal.Cell{Rune: glyph, Attrs: terminal.AttrBgDefault}
	pen := a.palette.Pen(attr)
	switch {
	case pen.Default:
		c.Attrs |= terminal.AttrFgDefault
	case pen.UseRGB:
		c.Fg = pen.RGB
	default:
		c.Fg = terminal.RGB{R: pen.Index}
		c.Attrs |= terminal.AttrFg256
	}
	return c
}

// Refresh diffs the back buffer against the screen and writes the changes
func (a *ANSI) Refresh() {
	if a.cells == nil {
		return
	}
	a.term.Flush(a.cells, a.geo.Cols, a.geo.Rows)
}

// Shutdown shows the cursor and restores the terminal
func (a *ANSI) Shutdown() {
	a.term.SetCursorVisible(true)
	a.term.Fini()
}
