package wave

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/wavetrail/constant"
	"github.com/lixenwraith/wavetrail/display"
)

// ErrInvalidGeometry reports a grid too small to animate
var ErrInvalidGeometry = errors.New("invalid geometry")

// GeometryError carries the rejected grid size
type GeometryError struct {
	Rows int
	Cols int
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%v: %dx%d grid, need at least %d columns and %d row",
		ErrInvalidGeometry, e.Cols, e.Rows, constant.MinCols, constant.MinRows)
}

func (e *GeometryError) Unwrap() error {
	return ErrInvalidGeometry
}

// ValidateGeometry rejects grids whose trail length cols-2 would not be positive
func ValidateGeometry(g display.Geometry) error {
	if g.Cols < constant.MinCols || g.Rows < constant.MinRows {
		return &GeometryError{Rows: g.Rows, Cols: g.Cols}
	}
	return nil
}

// ParamsFor derives the waveform constants from the grid
// frequency = 1 / (cols >> 3), amplitude = rows >> 1
func ParamsFor(g display.Geometry) Params {
	// Grids narrower than 8 columns would divide by zero
	period := max(g.Cols>>3, 1)
	return Params{
		Frequency: 1.0 / float64(period),
		Amplitude: float64(g.Rows >> 1),
		SlowDown:  constant.SlowDownFactor,
	}
}

// State is everything the animation carries between frames
type State struct {
	Geometry display.Geometry
	Params   Params
	Variant  Variant
	Trail    *Trail
	// Frame counts completed frames; wraps on overflow
	Frame uint64
}

// NewState validates the grid and allocates the trail
func NewState(g display.Geometry, v Variant) (*State, error) {
	if err := ValidateGeometry(g); err != nil {
		return nil, err
	}

	trail, err := NewTrail(g.Cols - constant.TrailMargin)
	if err != nil {
		return nil, err
	}

	return &State{
		Geometry: g,
		Params:   ParamsFor(g),
		Variant:  v,
		Trail:    trail,
	}, nil
}

// HeadRow returns the row of the last column drawn in the most recent frame
func (s *State) HeadRow() int {
	if s.Frame == 0 {
		return Sample(s.Variant, 1, s.Params, 0)
	}
	return Sample(s.Variant, 1, s.Params, s.Frame-1)
}
