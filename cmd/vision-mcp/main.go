package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/Ak23b/vision-studio-app/internal/capture/opencv"
	"github.com/Ak23b/vision-studio-app/internal/config"
	"github.com/Ak23b/vision-studio-app/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("vision-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("vision-mcp - MCP server for the Vision Studio image pipeline")
			fmt.Println()
			fmt.Println("Usage: vision-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  " + config.EnvLogLevel + "=debug          Log level (default: info)")
			fmt.Println("  " + config.EnvCameraIndex + "=0          Camera device index")
			fmt.Println("  " + config.EnvPreviewWidth + "=500       Preview width bound")
			fmt.Println("  " + config.EnvPreviewHeight + "=400      Preview height bound")
			fmt.Println("  " + config.EnvCaptureInterval + "=30ms  Delay between camera frames")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	logger := logrus.New()
	// stdout is for MCP protocol
	logger.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}
	initLogger(logger, cfg.LogLevel)

	logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"commit":     GitCommit,
		"camera":     cfg.CameraIndex,
	}).Debug("starting Vision Studio MCP server")

	srv, err := server.New(server.Options{
		Opener:          opencv.Opener{},
		CameraIndex:     cfg.CameraIndex,
		CaptureInterval: cfg.CaptureInterval,
		PreviewWidth:    cfg.PreviewWidth,
		PreviewHeight:   cfg.PreviewHeight,
		Version:         Version,
		Log:             logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("server setup")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Fatal("server error")
	}
}

// initLogger picks the formatter for level: text when debugging, JSON
// otherwise.
func initLogger(logger *logrus.Logger, level logrus.Level) {
	logger.SetLevel(level)
	if level >= logrus.DebugLevel {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		return
	}
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})
}
