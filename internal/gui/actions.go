package gui

import "github.com/Ak23b/vision-studio-app/internal/imaging"

// action is one transform button.
type action struct {
	label     string
	transform imaging.Transform
}

// filterActions are the Filters tab buttons. They preview without committing.
func filterActions() []action {
	return []action{
		{"Grayscale", imaging.Grayscale{}},
		{"Blur", imaging.GaussianBlur{KernelSize: imaging.DefaultBlurKernel}},
		{"Sharpen", imaging.Sharpen{}},
		{"Edge Detect", imaging.EdgeDetect{Low: imaging.DefaultEdgeLow, High: imaging.DefaultEdgeHigh}},
	}
}

// editorActions are the Editor tab buttons. Each one replaces the current
// image.
func editorActions() []action {
	return []action{
		{"Brightness +", imaging.Brightness{Delta: imaging.DefaultBrightnessDx}},
		{"Brightness -", imaging.Brightness{Delta: -imaging.DefaultBrightnessDx}},
		{"Contrast +", imaging.Contrast{Factor: imaging.ContrastUpFactor}},
		{"Contrast -", imaging.Contrast{Factor: imaging.ContrastDownFactor}},
		{"Rotate 90°", imaging.Rotate90Clockwise{}},
		{"Resize 50%", imaging.ScaleBy{Factor: imaging.DefaultScaleFactor}},
	}
}

// openExtensions are offered by the open dialogs.
var openExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}
