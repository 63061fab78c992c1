package main

import (
	"flag"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"

	"github.com/Ak23b/vision-studio-app/internal/capture/opencv"
	"github.com/Ak23b/vision-studio-app/internal/config"
	"github.com/Ak23b/vision-studio-app/internal/gui"
)

const (
	AppID      = "io.github.ak23b.vision-studio"
	AppVersion = "0.1.0"
)

func main() {
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	if *debugMode {
		cfg.LogLevel = logrus.DebugLevel
	}

	logger := initLogger(cfg.LogLevel)
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": *debugMode,
		"camera":     cfg.CameraIndex,
	}).Info("Starting Vision Studio")

	myApp := app.NewWithID(AppID)
	myApp.SetIcon(theme.MediaPhotoIcon())

	studio, err := gui.NewApplication(myApp, gui.Options{
		Config: cfg,
		Opener: opencv.Opener{},
		Log:    logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("build window")
	}
	studio.ShowAndRun()

	logger.Info("Application shutting down gracefully")
}

// initLogger initializes the logger with appropriate level
func initLogger(level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(level)

	if level >= logrus.DebugLevel {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
