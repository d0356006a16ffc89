package wave

import (
	"fmt"
	"math"
)

// Variant selects the curve shape
type Variant uint8

const (
	// Sine is a plain travelling sine wave
	Sine Variant = iota
	// Bounce warps the column by x^cos(x), giving a jittering, bouncing curve
	Bounce
)

func (v Variant) String() string {
	switch v {
	case Sine:
		return "sine"
	case Bounce:
		return "bounce"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// ParseVariant resolves a variant by name
func ParseVariant(name string) (Variant, error) {
	switch name {
	case "sine", "":
		return Sine, nil
	case "bounce":
		return Bounce, nil
	default:
		return 0, fmt.Errorf("unknown waveform variant %q", name)
	}
}

// Params are the waveform constants derived once from the grid
type Params struct {
	Frequency float64
	Amplitude float64
	SlowDown  float64
}

// Sample returns the row of column x at frame t
// Rows are not clamped to the grid; out-of-range rows are dropped by the display
func Sample(v Variant, x int, p Params, t uint64) int {
	fx := float64(x)
	phase := float64(t) / p.SlowDown

	var arg float64
	switch v {
	case Bounce:
		arg = math.Pow(fx, math.Cos(fx))*p.Frequency + phase
	default:
		arg = fx*p.Frequency + phase
	}
	return toRow(math.Sin(arg)*p.Amplitude + p.Amplitude)
}

// toRow narrows a curve value to a row index by truncating toward zero, the
// same result as storing the double in an unsigned integer
// Negative and non-finite values yield -1, which no grid contains
func toRow(y float64) int {
	if math.IsNaN(y) || math.IsInf(y, 0) || y < 0 {
		return -1
	}
	if y >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Trunc(y))
}
