// Package server implements the MCP (Model Context Protocol) front end of
// Vision Studio.
//
// It exposes the same session and live capture a desktop user drives with
// buttons as JSON-RPC 2.0 tools, so an MCP client can load an image, apply
// edits, preview filters and look at the camera.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Session:
//   - image_load: Make an image file the current image
//   - image_save: Write the current image (format from extension)
//   - image_info: Size, edit version and capture state
//
// Transforms:
//   - image_apply: Apply one transform; commit=false previews it instead
//   - image_preview: Bounded, never-upscaled preview as base64 PNG
//   - image_sample_color: Color at a pixel
//
// Live capture:
//   - capture_start, capture_stop: Acquire and release the camera
//   - capture_status: Capture state and frame count
//   - capture_snapshot: Latest live frame, optionally loaded as the current image
//
// # State
//
// Unlike a stateless image toolbox, the server holds one current image for
// its lifetime. Every committed transform bumps the session version reported
// by image_info. Live frames are kept in an in-memory surface sized like the
// desktop preview. When stdin closes, the camera is released and the image
// dropped.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "invalid parameter: ..."
//
// # Usage
//
//	srv, err := server.New(server.Options{PreviewWidth: 500, PreviewHeight: 400})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
