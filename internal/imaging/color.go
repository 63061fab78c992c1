package imaging

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// HSVColor represents a color in HSV space, the representation the
// brightness transform edits.
type HSVColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	V int `json:"v"` // Value: 0-100 percent
}

// ColorResult contains a sampled color in several representations.
type ColorResult struct {
	X   int      `json:"x"`
	Y   int      `json:"y"`
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB RGBColor `json:"rgb"`
	HSL HSLColor `json:"hsl"`
	HSV HSVColor `json:"hsv"`
}

// SampleColor extracts the color of the pixel at column x, row y.
//
// Coordinates are 0-based with origin at top-left. Intensity buffers report
// the same value in all three RGB components.
//
// Returns ErrNoImageLoaded for a nil buffer and ErrInvalidParameter when the
// coordinates fall outside the buffer.
func SampleColor(buf *Buffer, x, y int) (*ColorResult, error) {
	if buf == nil {
		return nil, ErrNoImageLoaded
	}
	if x < 0 || x >= buf.Width || y < 0 || y >= buf.Height {
		return nil, fmt.Errorf("%w: coordinates (%d,%d) outside image bounds %dx%d",
			ErrInvalidParameter, x, y, buf.Width, buf.Height)
	}

	var r, g, b uint8
	if buf.Channels == 1 {
		v := buf.At(y, x, 0)
		r, g, b = v, v, v
	} else {
		r, g, b = buf.At(y, x, 0), buf.At(y, x, 1), buf.At(y, x, 2)
	}

	c := colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
	h, s, l := c.Hsl()
	hv, sv, v := c.Hsv()

	return &ColorResult{
		X:   x,
		Y:   y,
		Hex: fmt.Sprintf("#%02X%02X%02X", r, g, b),
		RGB: RGBColor{R: r, G: g, B: b},
		HSL: HSLColor{H: hueDegrees(h), S: percent(s), L: percent(l)},
		HSV: HSVColor{H: hueDegrees(hv), S: percent(sv), V: percent(v)},
	}, nil
}

// hueDegrees maps a hue to [0, 360). Achromatic colors report NaN hues in
// some conversions; those become 0.
func hueDegrees(h float64) int {
	if math.IsNaN(h) {
		return 0
	}
	d := int(math.Round(h)) % 360
	if d < 0 {
		d += 360
	}
	return d
}

func percent(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	return int(math.Round(f * 100))
}
