package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// createUniformBuffer creates a three-channel buffer filled with one color
func createUniformBuffer(width, height int, r, g, b uint8) *Buffer {
	buf := mustBuffer(width, height, 3)
	for i := 0; i < len(buf.Pix); i += 3 {
		buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2] = r, g, b
	}
	return buf
}

// createPatternBuffer creates a buffer with different colors in each quadrant
func createPatternBuffer(width, height int) *Buffer {
	buf := mustBuffer(width, height, 3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c [3]uint8
			switch {
			case x < width/2 && y < height/2:
				c = [3]uint8{255, 0, 0} // Red top-left
			case x >= width/2 && y < height/2:
				c = [3]uint8{0, 255, 0} // Green top-right
			case x < width/2 && y >= height/2:
				c = [3]uint8{0, 0, 255} // Blue bottom-left
			default:
				c = [3]uint8{255, 255, 255} // White bottom-right
			}
			for ch := 0; ch < 3; ch++ {
				buf.Set(y, x, ch, c[ch])
			}
		}
	}
	return buf
}

// createGradientBuffer creates a buffer where every sample differs, so index
// remapping mistakes are visible
func createGradientBuffer(width, height int) *Buffer {
	buf := mustBuffer(width, height, 3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.Set(y, x, 0, uint8((x*7+y*3)%256))
			buf.Set(y, x, 1, uint8((x*11+y*5)%256))
			buf.Set(y, x, 2, uint8((x*13+y*17)%256))
		}
	}
	return buf
}

func TestNewBuffer(t *testing.T) {
	buf, err := NewBuffer(4, 3, 3)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	if len(buf.Pix) != 36 {
		t.Errorf("sample count: got %d, want 36", len(buf.Pix))
	}
	if err := buf.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestNewBuffer_Invalid(t *testing.T) {
	tests := []struct {
		name                    string
		width, height, channels int
	}{
		{"zero width", 0, 10, 3},
		{"negative height", 10, -1, 3},
		{"four channels", 10, 10, 4},
		{"two channels", 10, 10, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuffer(tt.width, tt.height, tt.channels)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("got %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestBuffer_Validate(t *testing.T) {
	var nilBuf *Buffer
	if err := nilBuf.Validate(); !errors.Is(err, ErrNoImageLoaded) {
		t.Errorf("nil buffer: got %v, want ErrNoImageLoaded", err)
	}

	short := &Buffer{Width: 2, Height: 2, Channels: 3, Pix: make([]uint8, 11)}
	if err := short.Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("short buffer: got %v, want ErrInvalidParameter", err)
	}
}

func TestBuffer_AtSet(t *testing.T) {
	buf := mustBuffer(3, 2, 3)
	buf.Set(1, 2, 1, 200)

	if got := buf.At(1, 2, 1); got != 200 {
		t.Errorf("At(1,2,1): got %d, want 200", got)
	}
	// Row-major layout: (row*width + col)*channels + ch
	if got := buf.Pix[(1*3+2)*3+1]; got != 200 {
		t.Errorf("Pix layout: got %d, want 200", got)
	}
}

func TestBuffer_CloneIsIndependent(t *testing.T) {
	buf := createUniformBuffer(4, 4, 10, 20, 30)
	clone := buf.Clone()

	clone.Set(0, 0, 0, 99)
	if buf.At(0, 0, 0) != 10 {
		t.Error("modifying clone changed the original")
	}
	if buf.Equal(clone) {
		t.Error("Equal should report the difference")
	}
}

func TestBuffer_RGBExpandsIntensity(t *testing.T) {
	gray, _ := FromRGB(2, 1, 1, []uint8{7, 200})
	rgb := gray.RGB()

	if rgb.Channels != 3 {
		t.Fatalf("channels: got %d, want 3", rgb.Channels)
	}
	want := []uint8{7, 7, 7, 200, 200, 200}
	for i, v := range want {
		if rgb.Pix[i] != v {
			t.Errorf("Pix[%d]: got %d, want %d", i, rgb.Pix[i], v)
		}
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 14, 23))
	img.Set(10, 20, color.RGBA{255, 128, 64, 255})

	buf, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if buf.Width != 4 || buf.Height != 3 || buf.Channels != 3 {
		t.Fatalf("shape: got %dx%dx%d, want 4x3x3", buf.Width, buf.Height, buf.Channels)
	}
	if buf.At(0, 0, 0) != 255 || buf.At(0, 0, 1) != 128 || buf.At(0, 0, 2) != 64 {
		t.Errorf("origin pixel: got (%d,%d,%d), want (255,128,64)",
			buf.At(0, 0, 0), buf.At(0, 0, 1), buf.At(0, 0, 2))
	}
}

func TestFromImage_Gray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(1, 1, color.Gray{Y: 77})

	buf, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if buf.Channels != 3 {
		t.Fatalf("channels: got %d, want 3", buf.Channels)
	}
	for ch := 0; ch < 3; ch++ {
		if buf.At(1, 1, ch) != 77 {
			t.Errorf("channel %d: got %d, want 77", ch, buf.At(1, 1, ch))
		}
	}
}

func TestFromImage_Nil(t *testing.T) {
	if _, err := FromImage(nil); !errors.Is(err, ErrNoImageLoaded) {
		t.Errorf("got %v, want ErrNoImageLoaded", err)
	}
}

func TestToNRGBA_RoundTrip(t *testing.T) {
	buf := createGradientBuffer(17, 9)

	back, err := FromImage(buf.ToNRGBA())
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if !back.Equal(buf) {
		t.Error("buffer changed after NRGBA round trip")
	}
}

func TestFromRGB_LengthMismatch(t *testing.T) {
	if _, err := FromRGB(2, 2, 3, make([]uint8, 5)); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
}
