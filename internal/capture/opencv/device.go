//go:build cgo

package opencv

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/Ak23b/vision-studio-app/internal/capture"
	"github.com/Ak23b/vision-studio-app/internal/imaging"
)

// Opener acquires cameras with gocv.VideoCaptureDevice.
type Opener struct{}

// Open opens camera index. A camera that opens but reports itself closed is
// released again and treated as unavailable.
func (Opener) Open(index int) (capture.Device, error) {
	webcam, err := gocv.VideoCaptureDevice(index)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", index, err)
	}
	if !webcam.IsOpened() {
		webcam.Close()
		return nil, fmt.Errorf("camera %d did not open", index)
	}
	return &Device{webcam: webcam, frame: gocv.NewMat()}, nil
}

// Device is an open OpenCV camera. It reuses one Mat for every read.
type Device struct {
	webcam *gocv.VideoCapture
	frame  gocv.Mat
}

// ReadFrame grabs the next frame and converts it to RGB.
//
// A failed grab on a camera that is still open is a miss; a failed grab on a
// camera that has closed is a disconnect.
func (d *Device) ReadFrame() (*imaging.Buffer, error) {
	if ok := d.webcam.Read(&d.frame); !ok {
		if !d.webcam.IsOpened() {
			return nil, capture.ErrDeviceDisconnected
		}
		return nil, capture.ErrReadMiss
	}
	if d.frame.Empty() {
		return nil, capture.ErrReadMiss
	}

	img, err := d.frame.ToImage()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", capture.ErrReadMiss, err)
	}
	return imaging.FromImage(img)
}

// Release closes the frame buffer and the camera.
func (d *Device) Release() error {
	frameErr := d.frame.Close()
	if err := d.webcam.Close(); err != nil {
		return fmt.Errorf("close camera: %w", err)
	}
	return frameErr
}
