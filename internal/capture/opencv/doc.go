// Package opencv opens cameras through OpenCV (gocv).
//
// Frames arrive from OpenCV in BGR order; Device converts them to RGB
// buffers before handing them to the capture loop. Builds without cgo get an
// Opener that always reports the camera as unavailable, so the rest of the
// program still compiles and runs with still images only.
package opencv
