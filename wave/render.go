package wave

import (
	"github.com/lixenwraith/wavetrail/constant"
	"github.com/lixenwraith/wavetrail/display"
)

// Canvas is the part of a display the renderer paints on
type Canvas interface {
	WriteChar(row, col int, glyph rune, attr display.Attr)
}

// DrawGrid fills every cell with the empty glyph in the default color
func DrawGrid(c Canvas, g display.Geometry) {
	for col := 0; col < g.Cols; col++ {
		for row := 0; row < g.Rows; row++ {
			c.WriteChar(row, col, constant.EmptyGlyph, display.AttrNormal)
		}
	}
}

// DrawFrame sweeps the curve from column cols down to 1
// Each column erases the trail's stale cell, then paints the marker
// The frame counter is not advanced here
func DrawFrame(c Canvas, s *State) {
	for x := s.Geometry.Cols; x > 0; x-- {
		row := Sample(s.Variant, x, s.Params, s.Frame)
		stale := s.Trail.RecordAndGetStale(Position{Row: row, Col: x})

		c.WriteChar(stale.Row, stale.Col, constant.EmptyGlyph, display.AttrSecondary)
		c.WriteChar(row, x, constant.MarkerGlyph, display.AttrPrimary)
	}
}
