// Package display is the cell-addressed drawing surface the animation paints on.
//
// A Backend is initialized once, reports the grid geometry, accepts single
// glyph writes at 0-indexed (row, col) cells, flushes on Refresh and restores
// the terminal on Shutdown. Writes outside the grid are dropped.
package display

import "fmt"

// Attr selects the color a glyph is painted with
type Attr uint8

const (
	// AttrNormal is the terminal's default foreground
	AttrNormal Attr = iota
	// AttrPrimary is the accent color of the moving marker
	AttrPrimary
	// AttrSecondary is the neutral color of erased trail cells
	AttrSecondary
)

func (a Attr) String() string {
	switch a {
	case AttrNormal:
		return "normal"
	case AttrPrimary:
		return "primary"
	case AttrSecondary:
		return "secondary"
	default:
		return fmt.Sprintf("attr(%d)", uint8(a))
	}
}

// Geometry is the size of the character grid
type Geometry struct {
	Rows int
	Cols int
}

// Contains reports whether (row, col) addresses a cell of the grid
func (g Geometry) Contains(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// Backend is a cell-addressed display
type Backend interface {
	// Init enters the display mode, hides the cursor and returns the grid size
	Init() (Geometry, error)

	// WriteChar paints glyph at (row, col); out-of-bounds writes are ignored
	WriteChar(row, col int, glyph rune, attr Attr)

	// Refresh flushes pending writes to the visible display
	Refresh()

	// Shutdown restores cursor visibility and normal display mode
	// Safe to call more than once
	Shutdown()
}

// Interrupter is implemented by backends that consume the terminal's interrupt
// key themselves; the channel is closed when the user asks to quit
type Interrupter interface {
	Interrupted() <-chan struct{}
}
