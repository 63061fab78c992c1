package imaging

import "errors"

// Error kinds shared by the transform library, the session and the codec.
// Callers match them with errors.Is; context is added by wrapping.
var (
	// ErrNoImageLoaded is returned when an operation needs a buffer and none
	// was given or loaded.
	ErrNoImageLoaded = errors.New("no image loaded")

	// ErrInvalidParameter is returned when transform parameters violate their
	// preconditions. Parameters are never adjusted to a nearby valid value.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDecode wraps failures to turn encoded bytes into a buffer.
	ErrDecode = errors.New("decode failed")

	// ErrEncode wraps failures to turn a buffer into encoded bytes.
	ErrEncode = errors.New("encode failed")
)
