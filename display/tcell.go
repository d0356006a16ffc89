package display

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Tcell paints through a tcell.Screen
// tcell owns the input stream, so the interrupt key arrives as an event rather
// than a signal; it is surfaced through Interrupted
type Tcell struct {
	screen  tcell.Screen
	palette Palette
	geo     Geometry
	styles  [3]tcell.Style

	interrupted   chan struct{}
	interruptOnce sync.Once
	shutdownOnce  sync.Once

	// Set once screen.Init succeeds; Fini on an uninitialized screen panics
	initialized bool
}

// NewTcell creates a backend on the process terminal
func NewTcell(palette Palette) *Tcell {
	return NewTcellScreen(nil, palette)
}

// NewTcellScreen creates a backend on an existing screen
// A nil screen is created with tcell.NewScreen during Init
func NewTcellScreen(screen tcell.Screen, palette Palette) *Tcell {
	t := &Tcell{
		screen:      screen,
		palette:     palette,
		interrupted: make(chan struct{}),
	}
	for _, attr := range []Attr{AttrNormal, AttrPrimary, AttrSecondary} {
		t.styles[attr] = tcellStyle(palette.Pen(attr))
	}
	return t
}

// tcellStyle converts a pen to a style on the default background
func tcellStyle(pen Pen) tcell.Style {
	var fg tcell.Color
	switch {
	case pen.Default:
		fg = tcell.ColorDefault
	case pen.UseRGB:
		fg = tcell.NewRGBColor(int32(pen.RGB.R), int32(pen.RGB.G), int32(pen.RGB.B))
	default:
		fg = tcell.PaletteColor(int(pen.Index))
	}
	return tcell.StyleDefault.Foreground(fg).Background(tcell.ColorDefault)
}

// Init initializes the screen and starts watching for the interrupt key
func (t *Tcell) Init() (Geometry, error) {
	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return Geometry{}, fmt.Errorf("tcell screen: %w", err)
		}
		t.screen = screen
	}

	if err := t.screen.Init(); err != nil {
		return Geometry{}, fmt.Errorf("tcell init: %w", err)
	}
	t.initialized = true
	t.screen.HideCursor()
	t.screen.Clear()

	w, h := t.screen.Size()
	t.geo = Geometry{Rows: h, Cols: w}

	go t.pollEvents()
	return t.geo, nil
}

// pollEvents runs until Fini makes PollEvent return nil
func (t *Tcell) pollEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		if key, ok := ev.(*tcell.EventKey); ok {
			switch key.Key() {
			case tcell.KeyCtrlC, tcell.KeyEscape:
				t.interruptOnce.Do(func() { close(t.interrupted) })
			}
		}
	}
}

// Interrupted is closed once Ctrl+C or Escape is pressed
func (t *Tcell) Interrupted() <-chan struct{} {
	return t.interrupted
}

// WriteChar sets the screen cell at (row, col)
func (t *Tcell) WriteChar(row, col int, glyph rune, attr Attr) {
	if !t.geo.Contains(row, col) {
		return
	}
	style := t.styles[AttrNormal]
	if int(attr) < len(t.styles) {
		style = t.styles[attr]
	}
	t.screen.SetContent(col, row, glyph, nil, style)
}

// Refresh shows pending changes
func (t *Tcell) Refresh() {
	t.screen.Show()
}

// Shutdown finalizes the screen, restoring the cursor and normal mode
// No-op when Init did not succeed
func (t *Tcell) Shutdown() {
	if !t.initialized {
		return
	}
	t.shutdownOnce.Do(t.screen.Fini)
}
