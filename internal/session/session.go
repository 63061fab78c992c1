// Package session holds the current image of an editing context.
//
// A Session owns exactly one current buffer. Every successful Load or Apply
// replaces it and bumps a version counter that front ends use to skip
// redundant redraws. There is no history: a transform always applies to the
// latest result.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Ak23b/vision-studio-app/internal/display"
	"github.com/Ak23b/vision-studio-app/internal/imaging"
)

// Session is the single owner of an editing context's current buffer.
// It is safe for concurrent use.
type Session struct {
	mu      sync.RWMutex
	current *imaging.Buffer
	version uint64
	lastErr error
	log     logrus.FieldLogger
}

// New creates an empty session. A nil logger uses the standard logrus logger.
func New(log logrus.FieldLogger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Session{log: log.WithField("component", "session")}
}

// Load replaces the current buffer with a copy of buf, bumps the version and
// clears the last error.
func (s *Session) Load(buf *imaging.Buffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	s.replace(buf.Clone(), "load")
	return nil
}

// LoadFile decodes the image at path and loads it. On failure the session is
// unchanged and the decode error is returned as is.
func (s *Session) LoadFile(path string) error {
	buf, err := imaging.LoadFile(path)
	if err != nil {
		s.log.WithError(err).WithField("path", path).Warn("load failed")
		return err
	}
	s.replace(buf, "load")
	return nil
}

// SaveFile encodes the current buffer to path, choosing the format from the
// file extension.
func (s *Session) SaveFile(path string) error {
	s.mu.RLock()
	buf := s.current
	s.mu.RUnlock()

	if buf == nil {
		return imaging.ErrNoImageLoaded
	}
	if err := imaging.SaveFile(path, buf); err != nil {
		s.log.WithError(err).WithField("path", path).Warn("save failed")
		return err
	}
	return nil
}

// Apply runs t on the current buffer and makes the result current.
//
// Apply is atomic: with no image loaded it returns ErrNoImageLoaded, and with
// invalid parameters it returns an error wrapping ErrInvalidParameter. In
// both cases the buffer and version are left untouched. Parameter errors are
// also kept in the last-error slot.
func (s *Session) Apply(t imaging.Transform) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return imaging.ErrNoImageLoaded
	}

	// Buffers are never mutated in place, so the transform may read current
	// directly while the lock keeps other writers out.
	out, err := imaging.Apply(t, s.current)
	if err != nil {
		if errors.Is(err, imaging.ErrInvalidParameter) {
			s.lastErr = err
		}
		s.log.WithError(err).WithField("kind", kindOf(t)).Debug("transform rejected")
		return err
	}

	s.current = out
	s.version++
	s.lastErr = nil
	s.log.WithFields(logrus.Fields{
		"kind":    t.Kind(),
		"version": s.version,
	}).Debug("transform applied")
	return nil
}

// Peek runs t on the current buffer and returns the result without making it
// current. The session, its version and its last error are unchanged.
func (s *Session) Peek(t imaging.Transform) (*imaging.Buffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, imaging.ErrNoImageLoaded
	}
	return imaging.Apply(t, s.current)
}

// Current returns a copy of the current buffer, or nil when nothing is loaded.
func (s *Session) Current() *imaging.Buffer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// CurrentPreview projects the current buffer into maxWidth×maxHeight.
// It returns ok=false and no error when nothing is loaded.
func (s *Session) CurrentPreview(maxWidth, maxHeight int) (preview *imaging.Buffer, ok bool, err error) {
	s.mu.RLock()
	buf := s.current
	s.mu.RUnlock()

	if buf == nil {
		return nil, false, nil
	}
	preview, err = display.Project(buf, maxWidth, maxHeight)
	if err != nil {
		return nil, false, fmt.Errorf("preview: %w", err)
	}
	return preview, true, nil
}

// Version returns the number of successful loads and transforms so far.
func (s *Session) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// HasImage reports whether an image is loaded.
func (s *Session) HasImage() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// LastError returns the most recent parameter error, cleared by the next
// successful Load or Apply.
func (s *Session) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Close drops the current buffer. The version counter keeps counting so that
// observers still see a change.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current = nil
		s.version++
	}
	s.lastErr = nil
}

func (s *Session) replace(buf *imaging.Buffer, op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = buf
	s.version++
	s.lastErr = nil
	s.log.WithFields(logrus.Fields{
		"op":      op,
		"width":   buf.Width,
		"height":  buf.Height,
		"version": s.version,
	}).Debug("image replaced")
}

func kindOf(t imaging.Transform) string {
	if t == nil {
		return "<nil>"
	}
	return t.Kind()
}
