package imaging

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Buffer is an 8-bit pixel buffer with one (intensity) or three (R, G, B)
// channels per pixel.
//
// Samples are stored row-major: the sample for (row, col, ch) lives at
// Pix[(row*Width+col)*Channels+ch]. A Buffer returned by any function in this
// package always satisfies Validate.
//
// # Ownership
//
// Transforms never mutate their input; they return a fresh Buffer. A Buffer
// handed to another component (a session, a surface) should be treated as
// owned by that component from then on.
type Buffer struct {
	// Width is the number of columns. Always positive.
	Width int

	// Height is the number of rows. Always positive.
	Height int

	// Channels is 1 for intensity buffers and 3 for RGB buffers.
	Channels int

	// Pix holds Width*Height*Channels samples.
	Pix []uint8
}

// NewBuffer allocates a zeroed buffer.
//
// Returns ErrInvalidParameter if the dimensions are not positive or the
// channel count is not 1 or 3.
func NewBuffer(width, height, channels int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidParameter, width, height)
	}
	if channels != 1 && channels != 3 {
		return nil, fmt.Errorf("%w: unsupported channel count %d", ErrInvalidParameter, channels)
	}
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}, nil
}

// mustBuffer is NewBuffer for dimensions already known to be valid.
func mustBuffer(width, height, channels int) *Buffer {
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// Validate checks the buffer invariants.
func (b *Buffer) Validate() error {
	if b == nil {
		return ErrNoImageLoaded
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidParameter, b.Width, b.Height)
	}
	if b.Channels != 1 && b.Channels != 3 {
		return fmt.Errorf("%w: unsupported channel count %d", ErrInvalidParameter, b.Channels)
	}
	if want := b.Width * b.Height * b.Channels; len(b.Pix) != want {
		return fmt.Errorf("%w: sample count %d, want %d", ErrInvalidParameter, len(b.Pix), want)
	}
	return nil
}

// offset returns the index of the first sample of pixel (row, col).
func (b *Buffer) offset(row, col int) int {
	return (row*b.Width + col) * b.Channels
}

// At returns the sample at (row, col, ch). It panics on out-of-range indices,
// like slice indexing.
func (b *Buffer) At(row, col, ch int) uint8 {
	return b.Pix[b.offset(row, col)+ch]
}

// Set stores v at (row, col, ch).
func (b *Buffer) Set(row, col, ch int, v uint8) {
	b.Pix[b.offset(row, col)+ch] = v
}

// Bounds returns the buffer rectangle anchored at the origin.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// Clone returns a deep copy of b. Cloning nil returns nil.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return nil
	}
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Channels: b.Channels, Pix: pix}
}

// Equal reports whether a and b have the same shape and samples.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.Width == o.Width &&
		b.Height == o.Height &&
		b.Channels == o.Channels &&
		bytes.Equal(b.Pix, o.Pix)
}

// RGB returns b as a three-channel buffer. Intensity buffers are expanded
// by replicating the sample; three-channel buffers are cloned.
func (b *Buffer) RGB() *Buffer {
	if b.Channels == 3 {
		return b.Clone()
	}
	out := mustBuffer(b.Width, b.Height, 3)
	for i, v := range b.Pix {
		out.Pix[i*3] = v
		out.Pix[i*3+1] = v
		out.Pix[i*3+2] = v
	}
	return out
}

// ToNRGBA converts b to an opaque *image.NRGBA for use with image libraries
// and display toolkits.
func (b *Buffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(b.Bounds())
	n := b.Width * b.Height
	for i := 0; i < n; i++ {
		d := i * 4
		if b.Channels == 1 {
			v := b.Pix[i]
			img.Pix[d], img.Pix[d+1], img.Pix[d+2] = v, v, v
		} else {
			s := i * 3
			img.Pix[d], img.Pix[d+1], img.Pix[d+2] = b.Pix[s], b.Pix[s+1], b.Pix[s+2]
		}
		img.Pix[d+3] = 0xff
	}
	return img
}

// FromImage converts any image.Image to a three-channel buffer. Alpha is
// discarded; the image origin is moved to (0, 0).
//
// Returns ErrNoImageLoaded for a nil image and ErrInvalidParameter for an
// empty one.
func FromImage(img image.Image) (*Buffer, error) {
	if img == nil {
		return nil, ErrNoImageLoaded
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty image %dx%d", ErrInvalidParameter, bounds.Dx(), bounds.Dy())
	}

	// Clone normalizes every color model to NRGBA with a zero origin.
	src := imaging.Clone(img)
	out := mustBuffer(bounds.Dx(), bounds.Dy(), 3)
	for y := 0; y < out.Height; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+out.Width*4]
		for x := 0; x < out.Width; x++ {
			d := out.offset(y, x)
			out.Pix[d] = row[x*4]
			out.Pix[d+1] = row[x*4+1]
			out.Pix[d+2] = row[x*4+2]
		}
	}
	return out, nil
}

// FromRGB wraps packed row-major samples in a buffer after checking the
// length. The slice is copied.
func FromRGB(width, height, channels int, pix []uint8) (*Buffer, error) {
	b, err := NewBuffer(width, height, channels)
	if err != nil {
		return nil, err
	}
	if len(pix) != len(b.Pix) {
		return nil, fmt.Errorf("%w: sample count %d, want %d", ErrInvalidParameter, len(pix), len(b.Pix))
	}
	copy(b.Pix, pix)
	return b, nil
}
