package display

import (
	"fmt"
	"math"

	"github.com/Ak23b/vision-studio-app/internal/imaging"
)

// Project returns a preview of buf that fits within maxWidth×maxHeight.
//
// The scale is min(maxWidth/width, maxHeight/height, 1), so the preview is
// never larger than the source. Target dimensions are rounded and kept at
// least one pixel. The result is always a new three-channel RGB buffer, and
// the same input always yields the same pixels.
func Project(buf *imaging.Buffer, maxWidth, maxHeight int) (*imaging.Buffer, error) {
	if buf == nil {
		return nil, imaging.ErrNoImageLoaded
	}
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("%w: preview bounds %dx%d must be positive", imaging.ErrInvalidParameter, maxWidth, maxHeight)
	}
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	width, height := fit(buf.Width, buf.Height, maxWidth, maxHeight)
	return imaging.Resample(buf, width, height)
}

// fit computes the projected size of a width×height image.
func fit(width, height, maxWidth, maxHeight int) (int, int) {
	scale := math.Min(float64(maxWidth)/float64(width), float64(maxHeight)/float64(height))
	if scale >= 1 {
		return width, height
	}

	w := bounded(int(math.Round(float64(width)*scale)), maxWidth)
	h := bounded(int(math.Round(float64(height)*scale)), maxHeight)
	return w, h
}

// bounded clamps n to [1, limit].
func bounded(n, limit int) int {
	if n > limit {
		n = limit
	}
	if n < 1 {
		n = 1
	}
	return n
}
