// Package imaging provides the pixel buffer model and the transform library
// used by the editor and the live capture view.
//
// # Pixel Buffers
//
// A Buffer is a rectangular grid of 8-bit samples with one (intensity) or
// three (R, G, B) channels, stored row-major. Rows and columns are 0-based
// with (0,0) at the top-left corner. Every public transform returns a new
// three-channel Buffer and leaves its input untouched.
//
// # Transforms
//
// Transform is a closed set of operation types, each carrying its own
// parameters:
//   - Grayscale: BT.601 luminance, expanded to three channels
//   - GaussianBlur: separable Gaussian with odd kernel size >= 3
//   - Sharpen: fixed 3x3 unsharp kernel
//   - EdgeDetect: Canny with double-threshold hysteresis
//   - Brightness / BrightnessScale: additive on HSV value, or multiplicative
//   - Contrast: multiplicative scaling with no offset
//   - Rotate90Clockwise: exact quarter-turn index remap
//   - ScaleBy: area-averaging shrink by a factor in (0, 1]
//
// Apply is the single dispatch point. TransformSpec is the JSON form used by
// front ends that receive operations as data.
//
// # Error Handling
//
// Functions return errors wrapping one of the package's sentinel values:
//   - ErrNoImageLoaded: a nil buffer was passed
//   - ErrInvalidParameter: parameters violate their preconditions; they are
//     never silently adjusted
//   - ErrDecode / ErrEncode: codec failures
//
// # Thread Safety
//
// All functions are stateless and safe for concurrent use on distinct
// buffers. A Buffer itself is not synchronized.
package imaging
