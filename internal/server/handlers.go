package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ak23b/vision-studio-app/internal/display"
	"github.com/Ak23b/vision-studio-app/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_apply").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.WithError(err).WithField("tool", params.Name).Info("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Session
	case "image_load":
		return s.handleImageLoad(args)
	case "image_save":
		return s.handleImageSave(args)
	case "image_info":
		return s.ctl.Status(), nil

	// Transforms
	case "image_apply":
		return s.handleImageApply(args)
	case "image_preview":
		return s.handleImagePreview(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Live capture
	case "capture_start":
		if err := s.ctl.StartCapture(ctx); err != nil {
			return nil, err
		}
		return s.ctl.Status(), nil
	case "capture_stop":
		if err := s.ctl.StopCapture(); err != nil {
			return nil, err
		}
		return s.ctl.Status(), nil
	case "capture_status":
		return s.ctl.Status(), nil
	case "capture_snapshot":
		return s.handleCaptureSnapshot(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments. Absent arguments decode as an empty
// object.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", imaging.ErrInvalidParameter, err)
	}
	return nil
}

// === Session Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

// imageResult describes the current image after a session change.
type imageResult struct {
	Path    string `json:"path,omitempty"`
	Format  string `json:"format,omitempty"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Version uint64 `json:"version"`
}

func (s *Server) currentImage(path, format string) imageResult {
	st := s.ctl.Status()
	return imageResult{
		Path:    path,
		Format:  format,
		Width:   st.Width,
		Height:  st.Height,
		Version: st.Version,
	}
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", imaging.ErrInvalidParameter)
	}
	if err := s.ctl.Open(a.Path); err != nil {
		return nil, err
	}
	format := ""
	if f, err := imaging.FormatFromPath(a.Path); err == nil {
		format = imaging.FormatName(f)
	}
	return s.currentImage(a.Path, format), nil
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", imaging.ErrInvalidParameter)
	}
	format, err := imaging.FormatFromPath(a.Path)
	if err != nil {
		return nil, err
	}
	if err := s.ctl.Save(a.Path); err != nil {
		return nil, err
	}
	return s.currentImage(a.Path, imaging.FormatName(format)), nil
}

// === Transform Handlers ===

type imageApplyArgs struct {
	imaging.TransformSpec
	Commit *bool `json:"commit,omitempty"`
}

// applyResult is returned by image_apply. Image is set for uncommitted
// previews only.
type applyResult struct {
	Kind      string                `json:"kind"`
	Committed bool                  `json:"committed"`
	Width     int                   `json:"width"`
	Height    int                   `json:"height"`
	Version   uint64                `json:"version"`
	Image     *imaging.EncodedImage `json:"image,omitempty"`
}

func (s *Server) handleImageApply(args json.RawMessage) (interface{}, error) {
	var a imageApplyArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	t, err := a.Transform()
	if err != nil {
		return nil, err
	}

	if a.Commit != nil && !*a.Commit {
		out, err := s.ctl.Filter(t)
		if err != nil {
			return nil, err
		}
		encoded, err := imaging.EncodeBase64(out, imaging.PNG)
		if err != nil {
			return nil, err
		}
		return applyResult{
			Kind:    t.Kind(),
			Width:   out.Width,
			Height:  out.Height,
			Version: s.ctl.Session().Version(),
			Image:   encoded,
		}, nil
	}

	if err := s.ctl.Apply(t); err != nil {
		return nil, err
	}
	st := s.ctl.Status()
	return applyResult{
		Kind:      t.Kind(),
		Committed: true,
		Width:     st.Width,
		Height:    st.Height,
		Version:   st.Version,
	}, nil
}

type imagePreviewArgs struct {
	MaxWidth  int `json:"max_width"`
	MaxHeight int `json:"max_height"`
}

func (s *Server) handleImagePreview(args json.RawMessage) (interface{}, error) {
	var a imagePreviewArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	if a.MaxWidth == 0 && a.MaxHeight == 0 {
		preview, ok, err := s.ctl.Preview()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, imaging.ErrNoImageLoaded
		}
		return imaging.EncodeBase64(preview, imaging.PNG)
	}

	current := s.ctl.Session().Current()
	if current == nil {
		return nil, imaging.ErrNoImageLoaded
	}
	if a.MaxWidth == 0 {
		a.MaxWidth = current.Width
	}
	if a.MaxHeight == 0 {
		a.MaxHeight = current.Height
	}
	preview, err := display.Project(current, a.MaxWidth, a.MaxHeight)
	if err != nil {
		return nil, err
	}
	return imaging.EncodeBase64(preview, imaging.PNG)
}

type imageSampleColorArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	current := s.ctl.Session().Current()
	if current == nil {
		return nil, imaging.ErrNoImageLoaded
	}
	return imaging.SampleColor(current, a.X, a.Y)
}

// === Capture Handlers ===

type captureSnapshotArgs struct {
	Load bool `json:"load"`
}

type snapshotResult struct {
	*imaging.EncodedImage
	Frames uint64 `json:"frames"`
	Loaded bool   `json:"loaded"`
}

func (s *Server) handleCaptureSnapshot(args json.RawMessage) (interface{}, error) {
	var a captureSnapshotArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	frame := s.webcam.Latest()
	if frame == nil {
		return nil, fmt.Errorf("%w: no live frame (capture is %s)", imaging.ErrNoImageLoaded, s.ctl.Status().Capture)
	}
	encoded, err := imaging.EncodeBase64(frame, imaging.PNG)
	if err != nil {
		return nil, err
	}

	if a.Load {
		if err := s.ctl.Load(frame); err != nil {
			return nil, err
		}
	}
	return snapshotResult{EncodedImage: encoded, Frames: s.webcam.Frames(), Loaded: a.Load}, nil
}
