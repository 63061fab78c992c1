package capture

import (
	"errors"
	"time"

	"github.com/Ak23b/vision-studio-app/internal/imaging"
)

var (
	// ErrDeviceUnavailable is returned by Start when the device cannot be
	// acquired. The user may retry.
	ErrDeviceUnavailable = errors.New("capture device unavailable")

	// ErrDeviceDisconnected is reported by a Device whose camera has gone
	// away. The loop releases the device and returns to Idle.
	ErrDeviceDisconnected = errors.New("capture device disconnected")

	// ErrReadMiss is reported by a Device that had no frame ready. The tick
	// is skipped.
	ErrReadMiss = errors.New("no frame available")
)

// Device is an acquired camera handle.
type Device interface {
	// ReadFrame returns the next frame as an RGB buffer. It returns promptly,
	// with ErrReadMiss when no frame is ready and ErrDeviceDisconnected when
	// the camera is gone.
	ReadFrame() (*imaging.Buffer, error)

	// Release frees the handle. It is called exactly once per acquisition.
	Release() error
}

// Opener acquires camera devices by index.
type Opener interface {
	Open(index int) (Device, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(index int) (Device, error)

// Open calls f(index).
func (f OpenerFunc) Open(index int) (Device, error) {
	return f(index)
}

// Sink receives captured frames. display.Projector is the usual sink.
type Sink interface {
	Present(buf *imaging.Buffer)
	Clear()
}

// Timer is a pending scheduled call.
type Timer interface {
	// Stop prevents the call from running. It reports whether the call was
	// still pending.
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// TimerScheduler schedules ticks with time.AfterFunc.
type TimerScheduler struct{}

// AfterFunc implements Scheduler.
func (TimerScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
