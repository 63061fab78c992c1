package imaging

import (
	"fmt"
	"math"

	"github.com/disintegration/imaging"
)

// RotateClockwise rotates src a quarter turn clockwise.
//
// The output has width and height swapped. It is an exact index remap with no
// interpolation: out(row, col) = in(height-1-col, row). Four rotations return
// the original buffer.
func RotateClockwise(src *Buffer) (*Buffer, error) {
	if src == nil {
		return nil, ErrNoImageLoaded
	}
	// Rotate270 turns counter-clockwise by 270 degrees, i.e. clockwise by 90.
	return FromImage(imaging.Rotate270(src.ToNRGBA()))
}

// Scale shrinks src by factor in both dimensions.
//
// The target size is max(1, round(width*factor)) × max(1, round(height*factor)).
// factor must lie in (0, 1], otherwise ErrInvalidParameter. A factor that
// leaves the size unchanged returns an identical copy.
func Scale(src *Buffer, factor float64) (*Buffer, error) {
	if src == nil {
		return nil, ErrNoImageLoaded
	}
	if err := (ScaleBy{Factor: factor}).Validate(); err != nil {
		return nil, err
	}

	width := scaledDimension(src.Width, factor)
	height := scaledDimension(src.Height, factor)
	return Resample(src, width, height)
}

// scaledDimension returns max(1, round(n*factor)).
func scaledDimension(n int, factor float64) int {
	d := int(math.Round(float64(n) * factor))
	if d < 1 {
		return 1
	}
	return d
}

// Resample resizes src to exactly width×height using area averaging (a box
// filter scaled to the reduction ratio), which avoids aliasing when shrinking.
//
// Resampling to the source size returns an identical copy. The result always
// has three channels.
func Resample(src *Buffer, width, height int) (*Buffer, error) {
	if src == nil {
		return nil, ErrNoImageLoaded
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target size %dx%d must be positive", ErrInvalidParameter, width, height)
	}
	if width == src.Width && height == src.Height {
		return src.RGB(), nil
	}
	return FromImage(imaging.Resize(src.ToNRGBA(), width, height, imaging.Box))
}
