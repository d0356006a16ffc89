// @lixen: #focus{sys[term,io,output]}
// @lixen: #interact{trigger[output,ansi]}
package terminal

import (
	"bufio"
	"io"

	"github.com/mattn/go-runewidth"
)

// Blank is what the screen holds right after a clear
var Blank = Cell{Rune: ' ', Attrs: AttrFgDefault | AttrBgDefault}

// outputBuffer manages double-buffered terminal output with diffing
type outputBuffer struct {
	front     []Cell
	width     int
	height    int
	colorMode ColorMode
	writer    *bufio.Writer

	cursorX     int
	cursorY     int
	cursorValid bool

	// Style state for coalescing
	lastFg    RGB
	lastBg    RGB
	lastAttr  Attr
	lastValid bool
}

// newOutputBuffer creates a new output buffer
func newOutputBuffer(w io.Writer, colorMode ColorMode) *outputBuffer {
	return &outputBuffer{
		writer:    bufio.NewWriterSize(w, 65536),
		colorMode: colorMode,
	}
}

// resize updates buffer dimensions, front buffer assumed blank
func (o *outputBuffer) resize(width, height int) {
	size := width * height
	if cap(o.front) < size {
		o.front = make([]Cell, size)
	} else {
		o.front = o.front[:size]
	}
	o.width = width
	o.height = height

	for i := range o.front {
		o.front[i] = Blank
	}
	o.lastValid = false
	o.cursorValid = false
}

// clear erases the physical screen and resets the front buffer to match
func (o *outputBuffer) clear() {
	w := o.writer
	w.Write(csiSGR0)
	w.Write(csiClear)
	w.Flush()

	o.resize(o.width, o.height)
	o.cursorX, o.cursorY = 0, 0
	o.cursorValid = true
}

// normalize maps the zero rune to a space so both compare equal
func normalize(c Cell) Cell {
	if c.Rune == 0 {
		c.Rune = ' '
	}
	return c
}

// cellEqual compares two cells for equality (standalone for inlining)
func cellEqual(a, b Cell) bool {
	a, b = normalize(a), normalize(b)
	if a.Rune != b.Rune || a.Attrs != b.Attrs {
		return false
	}
	if a.Attrs&AttrFgDefault == 0 && a.Fg != b.Fg {
		return false
	}
	if a.Attrs&AttrBgDefault == 0 && a.Bg != b.Bg {
		return false
	}
	return true
}

// flush writes the back buffer to terminal, diffing against front buffer
func (o *outputBuffer) flush(cells []Cell, width, height int) {
	if width != o.width || height != o.height {
		o.resize(width, height)
	}

	if len(cells) < width*height {
		return
	}

	w := o.writer

	for y := 0; y < height; y++ {
		rowStart := y * width
		x := 0

		for x < width {
			idx := rowStart + x
			if cellEqual(cells[idx], o.front[idx]) {
				x++
				continue
			}

			// Position cursor once for this dirty region
			if !o.cursorValid || x != o.cursorX || y != o.cursorY {
				if o.cursorValid && y == o.cursorY && x > o.cursorX {
					writeCursorForward(w, x-o.cursorX)
				} else {
					writeCursorPos(w, x, y)
				}
				o.cursorX = x
				o.cursorY = y
				o.cursorValid = true
			}

			// Write all contiguous dirty cells, emitting style only when changed
			for x < width {
				cidx := rowStart + x
				c := normalize(cells[cidx])

				if cellEqual(c, o.front[cidx]) {
					break
				}

				o.writeStyleCoalesced(w, c.Fg, c.Bg, c.Attrs)

				if c.Rune < 0x80 {
					w.WriteByte(byte(c.Rune))
				} else {
					w.WriteRune(c.Rune)
				}

				o.front[cidx] = c
				x++

				// Terminal cursor moved by the glyph's display width, not by one cell
				rw := runewidth.RuneWidth(c.Rune)
				if rw != 1 {
					o.cursorValid = false
					break
				}
				o.cursorX++
			}
		}
	}

	w.Write(csiSGR0)
	o.lastValid = false

	w.Flush()
}

// writeStyleCoalesced emits a single combined SGR sequence when style changes
func (o *outputBuffer) writeStyleCoalesced(w *bufio.Writer, fg, bg RGB, attr Attr) {
	if o.lastValid && fg == o.lastFg && bg == o.lastBg && attr == o.lastAttr {
		return
	}

	// Reset first so a default color cannot inherit the previous cell's color
	w.Write(csi)
	w.WriteByte('0')
	o.writeFgInline(w, fg, attr)
	o.writeBgInline(w, bg, attr)

	w.WriteByte('m')

	o.lastFg = fg
	o.lastBg = bg
	o.lastAttr = attr
	o.lastValid = true
}

// writeFgInline writes fg color parameters (no CSI prefix, no 'm' suffix)
func (o *outputBuffer) writeFgInline(w *bufio.Writer, fg RGB, attr Attr) {
	if attr&AttrFgDefault != 0 {
		// Reset already selected the default foreground
		return
	}
	w.WriteByte(';')
	switch {
	case attr&AttrFg256 != 0:
		w.Write(sgrFg256)
		writeInt(w, int(fg.R))
	case o.colorMode == ColorModeTrueColor:
		w.Write(sgrFgRGB)
		writeRGB(w, fg)
	default:
		w.Write(sgrFg256)
		writeInt(w, int(RGBTo256(fg)))
	}
}

// writeBgInline writes bg color parameters (no CSI prefix, no 'm' suffix)
func (o *outputBuffer) writeBgInline(w *bufio.Writer, bg RGB, attr Attr) {
	if attr&AttrBgDefault != 0 {
		return
	}
	w.WriteByte(';')
	switch {
	case attr&AttrBg256 != 0:
		w.Write(sgrBg256)
		writeInt(w, int(bg.R))
	case o.colorMode == ColorModeTrueColor:
		w.Write(sgrBgRGB)
		writeRGB(w, bg)
	default:
		w.Write(sgrBg256)
		writeInt(w, int(RGBTo256(bg)))
	}
}

func writeRGB(w *bufio.Writer, c RGB) {
	writeInt(w, int(c.R))
	w.WriteByte(';')
	writeInt(w, int(c.G))
	w.WriteByte(';')
	writeInt(w, int(c.B))
}
