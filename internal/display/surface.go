package display

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Ak23b/vision-studio-app/internal/imaging"
)

// Surface is an on-screen sink for RGB frames.
//
// Present receives a buffer the surface may keep; callers do not reuse it.
// Clear blanks the surface, for example when live capture stops.
type Surface interface {
	Present(buf *imaging.Buffer)
	Clear()
}

// Projector binds a surface to preview bounds. It is constructed with its
// surface, so a surface always exists before the first frame is presented.
type Projector struct {
	surface   Surface
	maxWidth  int
	maxHeight int
	log       logrus.FieldLogger
}

// NewProjector creates a projector that fits frames into maxWidth×maxHeight
// before forwarding them to surface. A nil logger uses the standard logrus
// logger.
func NewProjector(surface Surface, maxWidth, maxHeight int, log logrus.FieldLogger) (*Projector, error) {
	if surface == nil {
		return nil, fmt.Errorf("%w: projector needs a surface", imaging.ErrInvalidParameter)
	}
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("%w: preview bounds %dx%d must be positive", imaging.ErrInvalidParameter, maxWidth, maxHeight)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Projector{
		surface:   surface,
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		log:       log.WithField("component", "display"),
	}, nil
}

// Bounds returns the preview bounds.
func (p *Projector) Bounds() (maxWidth, maxHeight int) {
	return p.maxWidth, p.maxHeight
}

// Present projects buf and forwards the preview to the surface. Frames that
// cannot be projected are dropped and logged; a surface never sees an invalid
// buffer.
func (p *Projector) Present(buf *imaging.Buffer) {
	preview, err := Project(buf, p.maxWidth, p.maxHeight)
	if err != nil {
		p.log.WithError(err).Warn("dropping frame")
		return
	}
	p.surface.Present(preview)
}

// Clear blanks the surface.
func (p *Projector) Clear() {
	p.surface.Clear()
}

// SnapshotSurface keeps the most recently presented frame in memory.
// It is safe for concurrent use.
type SnapshotSurface struct {
	mu     sync.RWMutex
	frame  *imaging.Buffer
	frames uint64
}

// NewSnapshotSurface creates an empty snapshot surface.
func NewSnapshotSurface() *SnapshotSurface {
	return &SnapshotSurface{}
}

// Present stores buf as the latest frame.
func (s *SnapshotSurface) Present(buf *imaging.Buffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = buf
	s.frames++
}

// Clear drops the latest frame. The frame counter is kept.
func (s *SnapshotSurface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = nil
}

// Latest returns a copy of the latest frame, or nil after Clear or before the
// first Present.
func (s *SnapshotSurface) Latest() *imaging.Buffer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame.Clone()
}

// Frames returns how many frames have been presented.
func (s *SnapshotSurface) Frames() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frames
}
