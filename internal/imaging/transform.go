package imaging

import (
	"fmt"
	"math"
)

// Transform identifies one pixel operation and its parameters.
//
// The set of transforms is closed: only types in this package implement it,
// and Apply switches over all of them.
type Transform interface {
	// Kind is the stable name of the operation, e.g. "gaussian_blur".
	Kind() string

	// Validate reports ErrInvalidParameter when the parameters are unusable.
	Validate() error

	transform()
}

// Grayscale converts to BT.601 luma, expanded back to three channels.
type Grayscale struct{}

// GaussianBlur convolves with a Gaussian kernel of KernelSize×KernelSize.
type GaussianBlur struct {
	// KernelSize must be odd and at least 3.
	KernelSize int
}

// Sharpen convolves with the fixed 3×3 unsharp kernel.
type Sharpen struct{}

// EdgeDetect runs Canny edge detection with hysteresis thresholds.
type EdgeDetect struct {
	Low  float64
	High float64
}

// Brightness adds Delta (in 0-255 units) to the HSV value channel.
type Brightness struct {
	Delta float64
}

// BrightnessScale multiplies every sample by Factor.
type BrightnessScale struct {
	Factor float64
}

// Contrast computes clamp(sample*Factor) per sample with no offset.
type Contrast struct {
	Factor float64
}

// Rotate90Clockwise rotates by a quarter turn clockwise.
type Rotate90Clockwise struct{}

// ScaleBy shrinks both dimensions by Factor using area averaging.
type ScaleBy struct {
	// Factor must lie in (0, 1].
	Factor float64
}

// Defaults matching the buttons of the desktop front end.
const (
	DefaultBlurKernel   = 9
	DefaultEdgeLow      = 100
	DefaultEdgeHigh     = 200
	DefaultBrightnessDx = 30
	ContrastUpFactor    = 1.3
	ContrastDownFactor  = 0.7
	DefaultScaleFactor  = 0.5
)

func (Grayscale) Kind() string         { return "grayscale" }
func (GaussianBlur) Kind() string      { return "gaussian_blur" }
func (Sharpen) Kind() string           { return "sharpen" }
func (EdgeDetect) Kind() string        { return "edge_detect" }
func (Brightness) Kind() string        { return "brightness" }
func (BrightnessScale) Kind() string   { return "brightness_scale" }
func (Contrast) Kind() string          { return "contrast" }
func (Rotate90Clockwise) Kind() string { return "rotate90_clockwise" }
func (ScaleBy) Kind() string           { return "scale_by" }

func (Grayscale) transform()         {}
func (GaussianBlur) transform()      {}
func (Sharpen) transform()           {}
func (EdgeDetect) transform()        {}
func (Brightness) transform()        {}
func (BrightnessScale) transform()   {}
func (Contrast) transform()          {}
func (Rotate90Clockwise) transform() {}
func (ScaleBy) transform()           {}

func (Grayscale) Validate() error         { return nil }
func (Sharpen) Validate() error           { return nil }
func (Rotate90Clockwise) Validate() error { return nil }

func (t GaussianBlur) Validate() error {
	if t.KernelSize < 3 || t.KernelSize%2 == 0 {
		return fmt.Errorf("%w: kernel size %d must be odd and >= 3", ErrInvalidParameter, t.KernelSize)
	}
	return nil
}

func (t EdgeDetect) Validate() error {
	if !isFinite(t.Low) || !isFinite(t.High) {
		return fmt.Errorf("%w: edge thresholds must be finite", ErrInvalidParameter)
	}
	if t.Low < 0 || t.High < 0 {
		return fmt.Errorf("%w: edge thresholds (%g, %g) must be non-negative", ErrInvalidParameter, t.Low, t.High)
	}
	if t.Low > t.High {
		return fmt.Errorf("%w: low threshold %g exceeds high threshold %g", ErrInvalidParameter, t.Low, t.High)
	}
	return nil
}

func (t Brightness) Validate() error {
	if !isFinite(t.Delta) {
		return fmt.Errorf("%w: brightness delta must be finite", ErrInvalidParameter)
	}
	return nil
}

func (t BrightnessScale) Validate() error {
	return validateFactor("brightness factor", t.Factor)
}

func (t Contrast) Validate() error {
	return validateFactor("contrast factor", t.Factor)
}

func (t ScaleBy) Validate() error {
	if !isFinite(t.Factor) || t.Factor <= 0 || t.Factor > 1 {
		return fmt.Errorf("%w: scale factor %g must be in (0, 1]", ErrInvalidParameter, t.Factor)
	}
	return nil
}

func validateFactor(name string, f float64) error {
	if !isFinite(f) || f < 0 {
		return fmt.Errorf("%w: %s %g must be finite and non-negative", ErrInvalidParameter, name, f)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Apply validates t and runs it on src, returning a new three-channel buffer.
//
// A nil src is ErrNoImageLoaded, invalid parameters are ErrInvalidParameter.
// src is never modified.
func Apply(t Transform, src *Buffer) (*Buffer, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: no transform given", ErrInvalidParameter)
	}
	if src == nil {
		return nil, ErrNoImageLoaded
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	switch t := t.(type) {
	case Grayscale:
		return ToGrayscale(src)
	case GaussianBlur:
		return Blur(src, t.KernelSize)
	case Sharpen:
		return SharpenImage(src)
	case EdgeDetect:
		return DetectEdges(src, t.Low, t.High)
	case Brightness:
		return AdjustBrightness(src, t.Delta)
	case BrightnessScale:
		return ScaleBrightness(src, t.Factor)
	case Contrast:
		return AdjustContrast(src, t.Factor)
	case Rotate90Clockwise:
		return RotateClockwise(src)
	case ScaleBy:
		return Scale(src, t.Factor)
	default:
		return nil, fmt.Errorf("%w: unsupported transform %T", ErrInvalidParameter, t)
	}
}

// TransformSpec is the JSON form of a Transform, used by front ends that
// receive operations as data.
//
// Only the fields relevant to Kind are read; zero-valued optional fields fall
// back to the defaults above.
type TransformSpec struct {
	Kind       string   `json:"kind"`
	KernelSize int      `json:"kernel_size,omitempty"`
	Low        *float64 `json:"low,omitempty"`
	High       *float64 `json:"high,omitempty"`
	Delta      *float64 `json:"delta,omitempty"`
	Factor     *float64 `json:"factor,omitempty"`
}

// Transform converts s to its Transform and validates it.
//
// Unknown kinds are ErrInvalidParameter.
func (s TransformSpec) Transform() (Transform, error) {
	var t Transform
	switch s.Kind {
	case "grayscale":
		t = Grayscale{}
	case "gaussian_blur", "blur":
		k := s.KernelSize
		if k == 0 {
			k = DefaultBlurKernel
		}
		t = GaussianBlur{KernelSize: k}
	case "sharpen":
		t = Sharpen{}
	case "edge_detect", "edges":
		t = EdgeDetect{Low: orDefault(s.Low, DefaultEdgeLow), High: orDefault(s.High, DefaultEdgeHigh)}
	case "brightness":
		if s.Factor != nil {
			t = BrightnessScale{Factor: *s.Factor}
		} else {
			t = Brightness{Delta: orDefault(s.Delta, DefaultBrightnessDx)}
		}
	case "brightness_scale":
		t = BrightnessScale{Factor: orDefault(s.Factor, 1)}
	case "contrast":
		t = Contrast{Factor: orDefault(s.Factor, ContrastUpFactor)}
	case "rotate90_clockwise", "rotate":
		t = Rotate90Clockwise{}
	case "scale_by", "resize":
		t = ScaleBy{Factor: orDefault(s.Factor, DefaultScaleFactor)}
	default:
		return nil, fmt.Errorf("%w: unknown transform kind %q", ErrInvalidParameter, s.Kind)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func orDefault(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Kinds lists the canonical transform kinds in display order.
func Kinds() []string {
	return []string{
		Grayscale{}.Kind(),
		GaussianBlur{}.Kind(),
		Sharpen{}.Kind(),
		EdgeDetect{}.Kind(),
		Brightness{}.Kind(),
		BrightnessScale{}.Kind(),
		Contrast{}.Kind(),
		Rotate90Clockwise{}.Kind(),
		ScaleBy{}.Kind(),
	}
}
