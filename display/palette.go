package display

import (
	"fmt"

	"github.com/lixenwraith/wavetrail/terminal"
)

// Pen is a foreground color drawn on the terminal's default background
type Pen struct {
	// Default uses the terminal's own foreground; other fields ignored
	Default bool
	// UseRGB selects RGB, otherwise Index into the 256-color palette
	UseRGB bool
	Index  uint8
	RGB    terminal.RGB
}

// Palette maps each Attr to a Pen
type Palette struct {
	Normal    Pen
	Primary   Pen
	Secondary Pen
}

// Pen returns the pen for attr, Normal for unknown values
func (p Palette) Pen(attr Attr) Pen {
	switch attr {
	case AttrPrimary:
		return p.Primary
	case AttrSecondary:
		return p.Secondary
	default:
		return p.Normal
	}
}

// BasicPalette uses the 8 standard colors: cyan marker, white trail
var BasicPalette = Palette{
	Normal:    Pen{Default: true},
	Primary:   Pen{Index: 6},
	Secondary: Pen{Index: 7},
}

// RGBPalette uses xterm's RGB values for cyan and white, so the colors do not
// depend on the user's terminal theme
var RGBPalette = Palette{
	Normal:    Pen{Default: true},
	Primary:   Pen{UseRGB: true, RGB: terminal.RGB{R: 0, G: 205, B: 205}},
	Secondary: Pen{UseRGB: true, RGB: terminal.RGB{R: 229, G: 229, B: 229}},
}

// ParseColorFlag resolves the -color flag into a palette and terminal color mode
func ParseColorFlag(value string) (Palette, terminal.ColorMode, error) {
	switch value {
	case "basic", "":
		return BasicPalette, terminal.DetectColorMode(), nil
	case "auto":
		return RGBPalette, terminal.DetectColorMode(), nil
	case "truecolor", "true", "24bit":
		return RGBPalette, terminal.ColorModeTrueColor, nil
	case "256":
		return RGBPalette, terminal.ColorMode256, nil
	default:
		return Palette{}, 0, fmt.Errorf("unknown color mode %q", value)
	}
}
