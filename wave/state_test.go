package wave

import (
	"errors"
	"testing"

	"github.com/lixenwraith/wavetrail/display"
)

func TestNewStateGeometryValidation(t *testing.T) {
	tests := []struct {
		name      string
		geo       display.Geometry
		wantErr   bool
		wantTrail int
	}{
		{"Two columns", display.Geometry{Rows: 5, Cols: 2}, true, 0},
		{"Zero columns", display.Geometry{Rows: 5, Cols: 0}, true, 0},
		{"Negative columns", display.Geometry{Rows: 5, Cols: -4}, true, 0},
		{"Zero rows", display.Geometry{Rows: 0, Cols: 80}, true, 0},
		{"Minimal", display.Geometry{Rows: 5, Cols: 3}, false, 1},
		{"One row", display.Geometry{Rows: 1, Cols: 10}, false, 8},
		{"Standard", display.Geometry{Rows: 24, Cols: 80}, false, 78},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewState(tt.geo, Sine)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidGeometry) {
					t.Fatalf("err = %v, want ErrInvalidGeometry", err)
				}
				var ge *GeometryError
				if !errors.As(err, &ge) || ge.Rows != tt.geo.Rows || ge.Cols != tt.geo.Cols {
					t.Errorf("GeometryError = %+v, want %dx%d", ge, tt.geo.Cols, tt.geo.Rows)
				}
				if s != nil {
					t.Error("state returned alongside error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Trail.Len() != tt.wantTrail {
				t.Errorf("trail length = %d, want %d", s.Trail.Len(), tt.wantTrail)
			}
			if s.Frame != 0 {
				t.Errorf("frame = %d, want 0", s.Frame)
			}
		})
	}
}

func TestParamsFor(t *testing.T) {
	tests := []struct {
		name     string
		geo      display.Geometry
		wantFreq float64
		wantAmp  float64
	}{
		{"80x24", display.Geometry{Rows: 24, Cols: 80}, 0.1, 12},
		{"Odd rows floor", display.Geometry{Rows: 25, Cols: 80}, 0.1, 12},
		{"Columns shift floor", display.Geometry{Rows: 4, Cols: 87}, 0.1, 2},
		{"Narrow grid", display.Geometry{Rows: 5, Cols: 5}, 1, 2},
		{"Single row", display.Geometry{Rows: 1, Cols: 16}, 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParamsFor(tt.geo)
			if p.Frequency != tt.wantFreq || p.Amplitude != tt.wantAmp {
				t.Errorf("ParamsFor(%+v) = %+v, want f=%v a=%v", tt.geo, p, tt.wantFreq, tt.wantAmp)
			}
			if p.SlowDown != 16.0 {
				t.Errorf("SlowDown = %v, want 16", p.SlowDown)
			}
		})
	}
}

func TestGeometryErrorMessage(t *testing.T) {
	err := ValidateGeometry(display.Geometry{Rows: 3, Cols: 2})
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := err.Error(), "invalid geometry: 2x3 grid, need at least 3 columns and 1 row"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestHeadRowTracksLastFrame(t *testing.T) {
	s, err := NewState(display.Geometry{Rows: 24, Cols: 80}, Sine)
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}

	if got, want := s.HeadRow(), Sample(Sine, 1, s.Params, 0); got != want {
		t.Errorf("before first frame: %d, want %d", got, want)
	}

	s.Frame = 41
	if got, want := s.HeadRow(), Sample(Sine, 1, s.Params, 40); got != want {
		t.Errorf("after frame 40: %d, want %d", got, want)
	}
}
