package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ak23b/vision-studio-app/internal/capture"
	"github.com/Ak23b/vision-studio-app/internal/display"
	"github.com/Ak23b/vision-studio-app/internal/studio"
)

// Server handles MCP protocol communication
type Server struct {
	ctl     *studio.Controller
	editor  *display.SnapshotSurface
	webcam  *display.SnapshotSurface
	version string
	log     logrus.FieldLogger
}

// Options configures a Server.
type Options struct {
	// Opener acquires the camera for the capture tools. Nil disables them.
	Opener    capture.Opener
	Scheduler capture.Scheduler

	CameraIndex     int
	CaptureInterval time.Duration
	PreviewWidth    int
	PreviewHeight   int

	// Version is reported in serverInfo.
	Version string

	Log logrus.FieldLogger
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance with a headless controller whose
// surfaces are in-memory snapshots.
func New(opts Options) (*Server, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		editor:  display.NewSnapshotSurface(),
		webcam:  display.NewSnapshotSurface(),
		version: opts.Version,
		log:     log.WithField("component", "server"),
	}

	ctl, err := studio.New(studio.Options{
		Editor:          s.editor,
		Webcam:          s.webcam,
		Opener:          opts.Opener,
		Scheduler:       opts.Scheduler,
		CameraIndex:     opts.CameraIndex,
		CaptureInterval: opts.CaptureInterval,
		PreviewWidth:    opts.PreviewWidth,
		PreviewHeight:   opts.PreviewHeight,
		OnDisconnect: func(err error) {
			s.log.WithError(err).Warn("camera lost, capture stopped")
		},
		Log: log,
	})
	if err != nil {
		return nil, fmt.Errorf("create controller: %w", err)
	}
	s.ctl = ctl
	return s, nil
}

// Run serves MCP on stdin/stdout until stdin closes, then releases the
// camera.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes responses to w.
// It returns when r is exhausted or ctx is cancelled between requests.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	defer func() {
		if err := s.ctl.Close(); err != nil {
			s.log.WithError(err).Warn("shutdown")
		}
	}()

	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.WithError(err).Warn("failed to parse request")
			continue
		}

		resp := s.handleRequest(ctx, &req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.log.WithError(err).Error("failed to encode response")
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	s.log.WithField("method", req.Method).Debug("request")

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "vision-studio-mcp",
				"version": s.version,
			},
		},
	}
}
