package imaging

import (
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ToGrayscale converts src to luminance and expands it back to three equal
// channels.
//
// Luminance uses the ITU-R BT.601 weights (0.299*R + 0.587*G + 0.114*B),
// rounded to the nearest integer. Dimensions are unchanged.
func ToGrayscale(src *Buffer) (*Buffer, error) {
	if src == nil {
		return nil, ErrNoImageLoaded
	}
	if src.Channels == 1 {
		return src.RGB(), nil
	}
	return FromImage(imaging.Grayscale(src.ToNRGBA()))
}

// luma returns the single-channel BT.601 luminance of src as float samples
// in the 0-255 range. Used by the edge detector.
func luma(src *Buffer) [][]float64 {
	gray := make([][]float64, src.Height)
	for y := 0; y < src.Height; y++ {
		gray[y] = make([]float64, src.Width)
		for x := 0; x < src.Width; x++ {
			if src.Channels == 1 {
				gray[y][x] = float64(src.At(y, x, 0))
				continue
			}
			r := float64(src.At(y, x, 0))
			g := float64(src.At(y, x, 1))
			b := float64(src.At(y, x, 2))
			gray[y][x] = 0.299*r + 0.587*g + 0.114*b
		}
	}
	return gray
}

// AdjustBrightness shifts the HSV value channel of every pixel by delta
// (expressed in 0-255 units) and converts back to RGB.
//
// The value channel is clamped to its range before conversion, so bright
// pixels saturate at white instead of wrapping around. Hue and saturation are
// preserved.
func AdjustBrightness(src *Buffer, delta float64) (*Buffer, error) {
	if src == nil {
		return nil, ErrNoImageLoaded
	}
	if err := (Brightness{Delta: delta}).Validate(); err != nil {
		return nil, err
	}

	in := src.RGB()
	out := mustBuffer(in.Width, in.Height, 3)
	shift := delta / 255.0

	for i := 0; i < len(in.Pix); i += 3 {
		c := colorful.Color{
			R: float64(in.Pix[i]) / 255.0,
			G: float64(in.Pix[i+1]) / 255.0,
			B: float64(in.Pix[i+2]) / 255.0,
		}
		h, s, v := c.Hsv()
		v = clampUnit(v + shift)
		out.Pix[i], out.Pix[i+1], out.Pix[i+2] = colorful.Hsv(h, s, v).Clamped().RGB255()
	}
	return out, nil
}

// ScaleBrightness multiplies every sample by factor, clamping to [0, 255].
func ScaleBrightness(src *Buffer, factor float64) (*Buffer, error) {
	if src == nil {
		return nil, ErrNoImageLoaded
	}
	if err := (BrightnessScale{Factor: factor}).Validate(); err != nil {
		return nil, err
	}

	result := adjust.Apply(src.ToNRGBA(), func(c color.RGBA) color.RGBA {
		return color.RGBA{
			R: scaleSample(c.R, factor),
			G: scaleSample(c.G, factor),
			B: scaleSample(c.B, factor),
			A: c.A,
		}
	})
	return FromImage(result)
}

// AdjustContrast computes clamp(round(sample*factor), 0, 255) for every
// sample. There is no offset, so factors above 1 also brighten the image.
func AdjustContrast(src *Buffer, factor float64) (*Buffer, error) {
	if src == nil {
		return nil, ErrNoImageLoaded
	}
	if err := (Contrast{Factor: factor}).Validate(); err != nil {
		return nil, err
	}

	result := imaging.AdjustFunc(src.ToNRGBA(), func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: scaleSample(c.R, factor),
			G: scaleSample(c.G, factor),
			B: scaleSample(c.B, factor),
			A: c.A,
		}
	})
	return FromImage(result)
}

func scaleSample(v uint8, factor float64) uint8 {
	return clampByte(math.Round(float64(v) * factor))
}

// clampByte clamps a float sample to [0, 255] and converts it.
func clampByte(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
