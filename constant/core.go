package constant

import "time"

// Animation Loop Timing
const (
	// FrameInterval is the fixed pause after each frame (~40 FPS)
	FrameInterval = 24 * time.Millisecond

	// SlowDownFactor divides the frame counter into the curve phase
	SlowDownFactor = 16.0
)

// Grid Limits
const (
	// TrailMargin is subtracted from the column count to size the trail,
	// keeping it shorter than one sweep of the grid
	TrailMargin = 2

	// MinCols is the narrowest grid that leaves a non-empty trail
	MinCols = TrailMargin + 1

	// MinRows is the shortest drawable grid
	MinRows = 1
)

// Glyphs
const (
	// MarkerGlyph is the moving curve cell
	MarkerGlyph = '⬣'

	// EmptyGlyph fills the grid and replaces cells leaving the trail
	EmptyGlyph = '⸱'
)
