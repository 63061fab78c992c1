//go:build !cgo

package opencv

import (
	"fmt"

	"github.com/Ak23b/vision-studio-app/internal/capture"
)

// Opener reports every camera as unavailable; OpenCV needs cgo.
type Opener struct{}

// Open always fails.
func (Opener) Open(index int) (capture.Device, error) {
	return nil, fmt.Errorf("camera %d: built without cgo, OpenCV capture disabled", index)
}
