package terminal

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Attr selects how a cell's colors are interpreted (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrFg256     Attr = 1 << 0 // Fg.R is 256-color palette index
	AttrBg256     Attr = 1 << 1 // Bg.R is 256-color palette index
	AttrFgDefault Attr = 1 << 2 // Fg ignored, terminal default foreground
	AttrBgDefault Attr = 1 << 3 // Bg ignored, terminal default background
)

// Cell represents a single terminal cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// Terminal provides low-level terminal access
type Terminal interface {
	// Init enters raw mode, alternate screen buffer, hides cursor
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// Flush writes cell buffer to terminal
	// Cells are row-major: cells[y*width + x]
	Flush(cells []Cell, width, height int)

	// SetCursorVisible shows/hides cursor
	SetCursorVisible(visible bool)
}

// termImpl implements Terminal using the Backend interface
type termImpl struct {
	backend Backend
	output  *outputBuffer

	cursorVisible atomic.Bool

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a new Terminal instance on stdin/stdout
func New(colorMode ...ColorMode) Terminal {
	return newTerm(newBackend(), colorMode...)
}

func newTerm(b Backend, colorMode ...ColorMode) *termImpl {
	var c ColorMode
	if len(colorMode) == 0 {
		c = DetectColorMode()
	} else {
		c = colorMode[0]
	}

	t := &termImpl{backend: b}
	t.output = newOutputBuffer(b, c)
	// Cursor starts visible until Init hides it
	t.cursorVisible.Store(true)
	return t
}

// Init enters raw mode and sets up terminal
func (t *termImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return err
	}

	w, h := t.backend.Size()
	t.output.resize(w, h)

	t.writeRaw(csiAltScreenEnter)
	t.writeRaw(csiCursorHide)

	// Prevents terminal scroll/wrap on bottom-right corner write
	t.writeRaw(csiAutoWrapOff)

	t.cursorVisible.Store(false)

	t.output.clear()

	t.initialized = true
	return nil
}

// Fini restores terminal state
func (t *termImpl) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	t.writeRaw(csiCursorShow)
	t.writeRaw(csiAltScreenExit)

	// Re-enable auto-wrap after leaving the alt screen so the main buffer gets it
	t.writeRaw(csiAutoWrapOn)
	t.writeRaw(csiSGR0)

	t.backend.Fini()

	t.cursorVisible.Store(true)
	t.finalized = true
}

// Size returns current terminal dimensions
func (t *termImpl) Size() (int, int) {
	return t.backend.Size()
}

// Flush writes cell buffer to terminal
// Holds lock for entire operation to prevent race with Fini
func (t *termImpl) Flush(cells []Cell, width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	t.output.flush(cells, width, height)
}

// SetCursorVisible shows/hides cursor
func (t *termImpl) SetCursorVisible(visible bool) {
	if t.cursorVisible.Swap(visible) == visible {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	w := t.output.writer
	if visible {
		w.Write(csiCursorShow)
	} else {
		w.Write(csiCursorHide)
	}
	w.Flush()
}

// writeRaw writes raw bytes to output
func (t *termImpl) writeRaw(data []byte) {
	t.backend.Write(data)
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios; best-effort in crash context
	resetTerminalMode()
}
