package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/Ak23b/vision-studio-app/internal/imaging"
)

// ImageSurface shows buffers on a fyne canvas.Image. Present and Clear may be
// called from any goroutine.
type ImageSurface struct {
	image *canvas.Image
}

// NewImageSurface creates a blank surface reserving width×height on screen.
func NewImageSurface(width, height int) *ImageSurface {
	img := canvas.NewImageFromImage(nil)
	// Buffers arrive already bounded by the projector; never stretch them.
	img.FillMode = canvas.ImageFillOriginal
	img.SetMinSize(fyne.NewSize(float32(width), float32(height)))
	return &ImageSurface{image: img}
}

// Object returns the canvas object to place in a layout.
func (s *ImageSurface) Object() fyne.CanvasObject {
	return s.image
}

func (s *ImageSurface) Present(buf *imaging.Buffer) {
	if buf == nil {
		s.Clear()
		return
	}
	// Convert off the UI goroutine.
	img := buf.ToNRGBA()
	fyne.Do(func() {
		s.image.Image = img
		s.image.Refresh()
	})
}

func (s *ImageSurface) Clear() {
	fyne.Do(func() {
		s.image.Image = nil
		s.image.Refresh()
	})
}
