package display

import (
	"errors"
	"testing"

	"github.com/Ak23b/vision-studio-app/internal/imaging"
)

// createTestBuffer creates a width×height RGB buffer with a deterministic
// pattern.
func createTestBuffer(t *testing.T, width, height int) *imaging.Buffer {
	t.Helper()
	buf, err := imaging.NewBuffer(width, height, 3)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.Set(y, x, 0, uint8(x*7))
			buf.Set(y, x, 1, uint8(y*11))
			buf.Set(y, x, 2, uint8((x+y)*3))
		}
	}
	return buf
}

func TestProject_Dimensions(t *testing.T) {
	tests := []struct {
		name                string
		width, height       int
		maxWidth, maxHeight int
		wantW, wantH        int
	}{
		{"fits already", 200, 100, 500, 400, 200, 100},
		{"exact bounds", 500, 400, 500, 400, 500, 400},
		{"wide", 1000, 400, 500, 400, 500, 200},
		{"tall", 300, 1200, 500, 400, 100, 400},
		{"both larger", 1000, 1000, 500, 400, 400, 400},
		{"extreme aspect", 5000, 2, 500, 400, 500, 1},
		{"one pixel bound", 64, 48, 1, 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Project(createTestBuffer(t, tt.width, tt.height), tt.maxWidth, tt.maxHeight)
			if err != nil {
				t.Fatalf("Project failed: %v", err)
			}
			if out.Width != tt.wantW || out.Height != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", out.Width, out.Height, tt.wantW, tt.wantH)
			}
			if out.Channels != 3 {
				t.Errorf("channels: got %d, want 3", out.Channels)
			}
		})
	}
}

func TestProject_NeverExceedsBoundsOrSource(t *testing.T) {
	sizes := []int{1, 2, 3, 7, 49, 50, 51, 399, 400, 401, 999}
	bounds := []int{1, 3, 50, 400, 500}

	for _, w := range sizes {
		for _, h := range sizes {
			for _, mw := range bounds {
				for _, mh := range bounds {
					gotW, gotH := fit(w, h, mw, mh)
					if gotW > mw || gotW > w || gotH > mh || gotH > h {
						t.Fatalf("fit(%d,%d,%d,%d) = %dx%d exceeds bounds or source", w, h, mw, mh, gotW, gotH)
					}
					if gotW < 1 || gotH < 1 {
						t.Fatalf("fit(%d,%d,%d,%d) = %dx%d is empty", w, h, mw, mh, gotW, gotH)
					}
				}
			}
		}
	}
}

func TestProject_IdentityWhenFitting(t *testing.T) {
	src := createTestBuffer(t, 40, 30)
	out, err := Project(src, 40, 30)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if !out.Equal(src) {
		t.Error("projecting within bounds should copy the source")
	}
	out.Set(0, 0, 0, out.At(0, 0, 0)+1)
	if out.Equal(src) {
		t.Error("preview must not alias the source")
	}
}

func TestProject_Deterministic(t *testing.T) {
	src := createTestBuffer(t, 317, 211)
	a, err := Project(src, 100, 100)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	b, err := Project(src, 100, 100)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if !a.Equal(b) {
		t.Error("projection should be deterministic")
	}
}

func TestProject_ExpandsIntensity(t *testing.T) {
	src, err := imaging.FromRGB(2, 1, 1, []uint8{10, 200})
	if err != nil {
		t.Fatalf("FromRGB failed: %v", err)
	}
	out, err := Project(src, 10, 10)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if out.Channels != 3 || out.At(0, 1, 0) != 200 || out.At(0, 1, 2) != 200 {
		t.Errorf("intensity preview not expanded: %+v", out)
	}
}

func TestProject_Errors(t *testing.T) {
	if _, err := Project(nil, 10, 10); !errors.Is(err, imaging.ErrNoImageLoaded) {
		t.Errorf("nil buffer: got %v, want ErrNoImageLoaded", err)
	}

	src := createTestBuffer(t, 4, 4)
	for _, b := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		if _, err := Project(src, b[0], b[1]); !errors.Is(err, imaging.ErrInvalidParameter) {
			t.Errorf("bounds %v: got %v, want ErrInvalidParameter", b, err)
		}
	}
}
