// Package gui is the fyne desktop front end of Vision Studio.
//
// The window has three tabs:
//
//   - Filters: open an image and preview grayscale, blur, sharpen or edge
//     detection on it. Previews never change the opened image.
//   - Editor: open an image and edit it in place (brightness, contrast,
//     rotate, resize), then save it.
//   - Webcam: start and stop the live camera view.
//
// Each tab with an image owns its own studio.Controller, so the Filters and
// Editor images are independent. Drawing goes through ImageSurface, which
// marshals every update onto the fyne goroutine with fyne.Do.
//
// The package does not import the fyne app driver; cmd/vision-studio creates
// the fyne.App and hands it to NewApplication.
package gui
