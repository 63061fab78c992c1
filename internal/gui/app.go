package gui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/Ak23b/vision-studio-app/internal/capture"
	"github.com/Ak23b/vision-studio-app/internal/config"
	"github.com/Ak23b/vision-studio-app/internal/imaging"
	"github.com/Ak23b/vision-studio-app/internal/studio"
)

// Options configures the desktop window.
type Options struct {
	Config config.Config

	// Opener acquires the camera for the Webcam tab. Nil disables the tab's
	// buttons.
	Opener capture.Opener

	Log logrus.FieldLogger
}

// Application is the Vision Studio main window.
type Application struct {
	window fyne.Window
	log    logrus.FieldLogger

	filters *studio.Controller
	editor  *studio.Controller

	filtersInfo *widget.Label
	editorInfo  *widget.Label
	webcamInfo  *widget.Label
}

// NewApplication builds the window and its controllers.
func NewApplication(a fyne.App, opts Options) (*Application, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	cfg := opts.Config

	ui := &Application{
		window:      a.NewWindow("Vision Studio"),
		log:         log.WithField("component", "gui"),
		filtersInfo: widget.NewLabel("No image"),
		editorInfo:  widget.NewLabel("No image"),
		webcamInfo:  widget.NewLabel("Webcam stopped"),
	}

	filterSurface := NewImageSurface(cfg.PreviewWidth, cfg.PreviewHeight)
	editorSurface := NewImageSurface(cfg.PreviewWidth, cfg.PreviewHeight)
	webcamSurface := NewImageSurface(cfg.PreviewWidth, cfg.PreviewHeight)

	var err error
	ui.filters, err = studio.New(studio.Options{
		Editor:        filterSurface,
		PreviewWidth:  cfg.PreviewWidth,
		PreviewHeight: cfg.PreviewHeight,
		Log:           log.WithField("tab", "filters"),
	})
	if err != nil {
		return nil, fmt.Errorf("filters tab: %w", err)
	}

	ui.editor, err = studio.New(studio.Options{
		Editor:          editorSurface,
		Webcam:          webcamSurface,
		Opener:          opts.Opener,
		CameraIndex:     cfg.CameraIndex,
		CaptureInterval: cfg.CaptureInterval,
		PreviewWidth:    cfg.PreviewWidth,
		PreviewHeight:   cfg.PreviewHeight,
		OnDisconnect:    ui.onDisconnect,
		Log:             log.WithField("tab", "editor"),
	})
	if err != nil {
		return nil, fmt.Errorf("editor tab: %w", err)
	}

	tabs := container.NewAppTabs(
		container.NewTabItem("Filters", ui.filtersTab(filterSurface)),
		container.NewTabItem("Editor", ui.editorTab(editorSurface)),
		container.NewTabItem("Webcam", ui.webcamTab(webcamSurface, opts.Opener != nil)),
	)

	ui.window.SetContent(tabs)
	ui.window.Resize(fyne.NewSize(900, 600))
	ui.window.SetOnClosed(ui.shutdown)
	return ui, nil
}

// ShowAndRun shows the window and blocks until it is closed.
func (ui *Application) ShowAndRun() {
	ui.window.ShowAndRun()
}

func (ui *Application) shutdown() {
	if err := ui.editor.Close(); err != nil {
		ui.log.WithError(err).Warn("release camera")
	}
	if err := ui.filters.Close(); err != nil {
		ui.log.WithError(err).Warn("close filters")
	}
	ui.log.Info("window closed")
}

func title(text string) fyne.CanvasObject {
	return widget.NewLabelWithStyle(text, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
}

func (ui *Application) filtersTab(surface *ImageSurface) fyne.CanvasObject {
	buttons := container.NewHBox(
		widget.NewButton("Open Image", func() { ui.openImage(ui.filters, ui.filtersInfo) }),
	)
	for _, act := range filterActions() {
		buttons.Add(widget.NewButton(act.label, func() {
			ui.run(act.label, ui.filtersInfo, func() error {
				_, err := ui.filters.Filter(act.transform)
				return err
			}, ui.filters)
		}))
	}

	top := container.NewVBox(title("Image Filters"), container.NewCenter(buttons))
	return container.NewBorder(top, ui.filtersInfo, nil, nil, container.NewCenter(surface.Object()))
}

func (ui *Application) editorTab(surface *ImageSurface) fyne.CanvasObject {
	buttons := container.NewHBox(
		widget.NewButton("Open Image", func() { ui.openImage(ui.editor, ui.editorInfo) }),
	)
	for _, act := range editorActions() {
		buttons.Add(widget.NewButton(act.label, func() {
			ui.run(act.label, ui.editorInfo, func() error {
				return ui.editor.Apply(act.transform)
			}, ui.editor)
		}))
	}
	buttons.Add(widget.NewButton("Save Image", ui.saveImage))

	top := container.NewVBox(title("Image Editor"), container.NewCenter(buttons))
	return container.NewBorder(top, ui.editorInfo, nil, nil, container.NewCenter(surface.Object()))
}

func (ui *Application) webcamTab(surface *ImageSurface, enabled bool) fyne.CanvasObject {
	start := widget.NewButton("Start Webcam", ui.startWebcam)
	stop := widget.NewButton("Stop Webcam", ui.stopWebcam)
	if !enabled {
		start.Disable()
		stop.Disable()
		ui.webcamInfo.SetText("Webcam unavailable in this build")
	}

	top := container.NewVBox(title("Webcam"), container.NewCenter(container.NewHBox(start, stop)))
	return container.NewBorder(top, ui.webcamInfo, nil, nil, container.NewCenter(surface.Object()))
}

// run executes a button action off the UI goroutine and reports its outcome.
func (ui *Application) run(name string, info *widget.Label, fn func() error, ctl *studio.Controller) {
	ui.log.WithField("action", name).Debug("button clicked")

	go func() {
		err := fn()
		switch {
		case errors.Is(err, imaging.ErrNoImageLoaded):
			fyne.Do(func() {
				dialog.ShowInformation("No Image", "Please open an image first", ui.window)
			})
		case err != nil:
			ui.log.WithError(err).WithField("action", name).Warn("action failed")
			fyne.Do(func() {
				dialog.ShowError(err, ui.window)
			})
		default:
			text := describe(ctl.Status())
			fyne.Do(func() {
				info.SetText(text)
			})
		}
	}()
}

func describe(st studio.Status) string {
	if !st.HasImage {
		return "No image"
	}
	return fmt.Sprintf("%d × %d  ·  edit %d", st.Width, st.Height, st.Version)
}

func (ui *Application) openImage(ctl *studio.Controller, info *widget.Label) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		ui.log.WithField("path", path).Info("open image")
		ui.run("open", info, func() error { return ctl.Open(path) }, ctl)
	}, ui.window)
	d.SetFilter(storage.NewExtensionFileFilter(openExtensions))
	d.Show()
}

func (ui *Application) saveImage() {
	if !ui.editor.Session().HasImage() {
		dialog.ShowInformation("No Image", "Please open an image first", ui.window)
		return
	}

	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		// The dialog creates the file; it is rewritten below.
		writer.Close()

		if _, err := imaging.FormatFromPath(path); err != nil {
			path = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
		}

		ui.log.WithField("path", path).Info("save image")
		ui.run("save", ui.editorInfo, func() error { return ui.editor.Save(path) }, ui.editor)
	}, ui.window)
}

func (ui *Application) startWebcam() {
	ui.webcamInfo.SetText("Starting webcam...")
	go func() {
		err := ui.editor.StartCapture(context.Background())
		fyne.Do(func() {
			if err != nil {
				ui.webcamInfo.SetText("Webcam stopped")
				dialog.ShowError(err, ui.window)
				return
			}
			ui.webcamInfo.SetText("Webcam running")
		})
	}()
}

func (ui *Application) stopWebcam() {
	go func() {
		err := ui.editor.StopCapture()
		fyne.Do(func() {
			ui.webcamInfo.SetText("Webcam stopped")
			if err != nil {
				dialog.ShowError(err, ui.window)
			}
		})
	}()
}

func (ui *Application) onDisconnect(err error) {
	ui.log.WithError(err).Warn("camera lost")
	fyne.Do(func() {
		ui.webcamInfo.SetText("Webcam disconnected")
		dialog.ShowError(err, ui.window)
	})
}
