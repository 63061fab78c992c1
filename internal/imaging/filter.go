package imaging

import (
	"math"

	"github.com/anthonynsimon/bild/convolution"
)

// sharpenKernel is the 3×3 unsharp kernel. The center weight exceeds the sum
// of the neighbor magnitudes by exactly one, so flat regions are preserved.
var sharpenKernel = []float64{
	0, -1, 0,
	-1, 5, -1,
	0, -1, 0,
}

// convolveOptions replicates edge pixels (no wrap) and rounds to nearest by
// biasing before the library truncates to 8 bits.
var convolveOptions = convolution.Options{Bias: 0.5, Wrap: false, KeepAlpha: true}

// Blur convolves each channel with a kernelSize×kernelSize Gaussian.
//
// The kernel is separable and applied as a horizontal then a vertical pass.
// Sigma follows the usual derivation from the kernel size:
//
//	sigma = 0.3*((kernelSize-1)*0.5 - 1) + 0.8
//
// Border pixels are replicated, so the output has the input's dimensions.
// kernelSize must be odd and at least 3, otherwise ErrInvalidParameter.
func Blur(src *Buffer, kernelSize int) (*Buffer, error) {
	if src == nil {
		return nil, ErrNoImageLoaded
	}
	if err := (GaussianBlur{KernelSize: kernelSize}).Validate(); err != nil {
		return nil, err
	}

	weights := gaussianWeights(kernelSize)
	horizontal := convolution.NewKernel(kernelSize, 1)
	vertical := convolution.NewKernel(1, kernelSize)
	copy(horizontal.Matrix, weights)
	copy(vertical.Matrix, weights)

	pass := convolution.Convolve(src.ToNRGBA(), horizontal, &convolveOptions)
	pass = convolution.Convolve(pass, vertical, &convolveOptions)
	return FromImage(pass)
}

// gaussianWeights returns a normalized 1-D Gaussian of the given odd size.
func gaussianWeights(size int) []float64 {
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	radius := size / 2
	weights := make([]float64, size)
	var sum float64
	for i := range weights {
		x := float64(i - radius)
		weights[i] = math.Exp(-(x * x) / (2 * sigma * sigma))
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

// SharpenImage convolves with the fixed sharpen kernel. Results are clamped
// to [0, 255] per channel, never wrapped.
func SharpenImage(src *Buffer) (*Buffer, error) {
	if src == nil {
		return nil, ErrNoImageLoaded
	}

	k := convolution.NewKernel(3, 3)
	copy(k.Matrix, sharpenKernel)
	return FromImage(convolution.Convolve(src.ToNRGBA(), k, &convolveOptions))
}
