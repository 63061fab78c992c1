// Package studio routes user intents to the image session and the capture
// loop, and keeps the preview surfaces current.
//
// A Controller is what both front ends drive: the fyne desktop window calls
// it from button handlers, and the MCP server calls it from tool handlers.
// It owns one Session, one capture Loop and two projectors, one for the
// still-image editor and one for the live camera view.
package studio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ak23b/vision-studio-app/internal/capture"
	"github.com/Ak23b/vision-studio-app/internal/display"
	"github.com/Ak23b/vision-studio-app/internal/imaging"
	"github.com/Ak23b/vision-studio-app/internal/session"
)

// Options configures a Controller.
type Options struct {
	// Editor shows the session's current image. Required.
	Editor display.Surface

	// Webcam shows live frames. Required when Opener is set.
	Webcam display.Surface

	// Opener acquires the camera. Nil disables capture.
	Opener capture.Opener

	// Scheduler drives capture ticks. Nil uses real timers.
	Scheduler capture.Scheduler

	CameraIndex     int
	CaptureInterval time.Duration

	// PreviewWidth and PreviewHeight bound both surfaces.
	PreviewWidth  int
	PreviewHeight int

	// OnDisconnect is called once when a running camera goes away.
	OnDisconnect func(err error)

	Log logrus.FieldLogger
}

// Controller is the single entry point for front ends.
type Controller struct {
	session *session.Session
	editor  *display.Projector
	loop    *capture.Loop // nil when capture is disabled
	log     logrus.FieldLogger

	mu        sync.Mutex
	presented uint64 // session version last shown on the editor surface
}

// New wires a session, projectors and (optionally) a capture loop.
func New(opts Options) (*Controller, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	editor, err := display.NewProjector(opts.Editor, opts.PreviewWidth, opts.PreviewHeight, log)
	if err != nil {
		return nil, fmt.Errorf("editor surface: %w", err)
	}

	c := &Controller{
		session: session.New(log),
		editor:  editor,
		log:     log.WithField("component", "studio"),
	}

	if opts.Opener != nil {
		webcam, err := display.NewProjector(opts.Webcam, opts.PreviewWidth, opts.PreviewHeight, log)
		if err != nil {
			return nil, fmt.Errorf("webcam surface: %w", err)
		}
		c.loop, err = capture.NewLoop(capture.Config{
			DeviceIndex:  opts.CameraIndex,
			Interval:     opts.CaptureInterval,
			Opener:       opts.Opener,
			Sink:         webcam,
			Scheduler:    opts.Scheduler,
			OnDisconnect: opts.OnDisconnect,
			Log:          log,
		})
		if err != nil {
			return nil, fmt.Errorf("capture loop: %w", err)
		}
	}

	return c, nil
}

// Session exposes the underlying session for read access.
func (c *Controller) Session() *session.Session {
	return c.session
}

// Open loads an image file into the session and shows it.
func (c *Controller) Open(path string) error {
	if err := c.session.LoadFile(path); err != nil {
		return err
	}
	c.refresh()
	return nil
}

// Load makes a copy of buf the current image and shows it.
func (c *Controller) Load(buf *imaging.Buffer) error {
	if err := c.session.Load(buf); err != nil {
		return err
	}
	c.refresh()
	return nil
}

// Save writes the current image to path.
func (c *Controller) Save(path string) error {
	return c.session.SaveFile(path)
}

// Apply transforms the current image and shows the result.
func (c *Controller) Apply(t imaging.Transform) error {
	if err := c.session.Apply(t); err != nil {
		return err
	}
	c.refresh()
	return nil
}

// Filter shows t applied to the current image without committing it. The
// next Filter starts from the same unfiltered image.
func (c *Controller) Filter(t imaging.Transform) (*imaging.Buffer, error) {
	out, err := c.session.Peek(t)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.editor.Present(out)
	// Force the next refresh to redraw the committed image.
	c.presented = 0
	return out, nil
}

// Preview returns the bounded preview of the current image; ok is false
// when nothing is loaded.
func (c *Controller) Preview() (preview *imaging.Buffer, ok bool, err error) {
	w, h := c.editor.Bounds()
	return c.session.CurrentPreview(w, h)
}

// refresh presents the session image if its version changed since the last
// presentation.
func (c *Controller) refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := c.session.Version()
	if v == c.presented {
		return
	}
	c.presented = v

	buf := c.session.Current()
	if buf == nil {
		c.editor.Clear()
		return
	}
	c.editor.Present(buf)
	c.log.WithField("version", v).Debug("editor refreshed")
}

// ErrCaptureDisabled is returned by capture operations on a controller built
// without a camera opener.
var ErrCaptureDisabled = fmt.Errorf("%w: capture disabled", capture.ErrDeviceUnavailable)

// StartCapture starts the live camera view. Starting a running capture is a
// no-op.
func (c *Controller) StartCapture(ctx context.Context) error {
	if c.loop == nil {
		return ErrCaptureDisabled
	}
	return c.loop.Start(ctx)
}

// StopCapture stops the live camera view and blanks it. Stopping an idle
// capture is a no-op.
func (c *Controller) StopCapture() error {
	if c.loop == nil {
		return nil
	}
	return c.loop.Stop()
}

// Status is a snapshot of controller state for display and reporting.
type Status struct {
	HasImage     bool   `json:"has_image"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	Version      uint64 `json:"version"`
	LastError    string `json:"last_error,omitempty"`
	Capture      string `json:"capture"`
	Frames       uint64 `json:"frames"`
	CaptureError string `json:"capture_error,omitempty"`
}

// Status reports the session and capture state.
func (c *Controller) Status() Status {
	st := Status{
		Version: c.session.Version(),
		Capture: "disabled",
	}
	if buf := c.session.Current(); buf != nil {
		st.HasImage = true
		st.Width, st.Height = buf.Width, buf.Height
	}
	if err := c.session.LastError(); err != nil {
		st.LastError = err.Error()
	}
	if c.loop != nil {
		st.Capture = c.loop.State().String()
		st.Frames = c.loop.Frames()
		if err := c.loop.LastError(); err != nil {
			st.CaptureError = err.Error()
		}
	}
	return st
}

// Close stops capture and drops the current image.
func (c *Controller) Close() error {
	err := c.StopCapture()
	c.session.Close()
	c.refresh()
	return err
}
